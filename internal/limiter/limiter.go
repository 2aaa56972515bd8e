// Package limiter throttles repeated failed logins per (email, client address).
package limiter

import (
	"context"
	"crypto/sha256"
	"strings"
	"time"
)

// Limiter controls login attempts and temporary lockouts.
type Limiter interface {
	// Allow reports whether login is currently allowed and the remaining lockout if not.
	Allow(ctx context.Context, key Key) (bool, time.Duration, error)
	// Success clears the failure counter after a successful login.
	Success(ctx context.Context, key Key) error
	// Failure records a failed attempt and reports whether the key is now locked.
	Failure(ctx context.Context, key Key) (bool, time.Duration, error)
}

// Key identifies a throttled login source.
type Key struct {
	Email  string
	IPHash []byte
}

// NewKey normalizes email and hashes the remote address so raw IPs are never stored.
func NewKey(email, remoteAddr string) Key {
	return Key{Email: strings.ToLower(strings.TrimSpace(email)), IPHash: HashIP(hostOnly(remoteAddr))}
}

// HashIP returns a stable hash for an IP string.
func HashIP(ip string) []byte {
	h := sha256.Sum256([]byte(ip))
	return h[:]
}

// hostOnly strips the ephemeral port so retries from new connections share a key.
func hostOnly(addr string) string {
	if strings.HasPrefix(addr, "[") {
		if i := strings.Index(addr, "]"); i > 0 {
			return addr[1:i]
		}
	}
	if i := strings.LastIndex(addr, ":"); i > 0 && strings.Count(addr, ":") == 1 {
		return addr[:i]
	}
	return addr
}
