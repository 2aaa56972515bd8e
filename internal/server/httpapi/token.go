package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// tokenLeeway tolerates small clock drift between issuer and verifier.
const tokenLeeway = 30 * time.Second

// userIDFromRequest extracts "Authorization: Bearer <JWT>", verifies HS256 and returns sub as UUID.
func (s *Server) userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	tok, err := bearerToken(r)
	if err != nil {
		return uuid.Nil, err
	}
	return parseAccessToken(tok, s.signKey)
}

func parseAccessToken(tok string, key []byte) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithLeeway(tokenLeeway), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("bad subject")
	}
	return id, nil
}

func bearerToken(r *http.Request) (string, error) {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if v == "" {
		return "", errors.New("no authorization header")
	}
	if len(v) < 7 || !strings.EqualFold(v[:7], "bearer ") {
		return "", errors.New("no bearer token")
	}
	t := strings.TrimSpace(v[7:])
	if t == "" {
		return "", errors.New("empty bearer token")
	}
	return t, nil
}
