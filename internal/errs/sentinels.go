// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (email taken, item already favourited).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation")

	// ErrInvalidImage indicates an upload that is not a decodable image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrNoSkinDetected indicates the image holds no usable skin region.
	ErrNoSkinDetected = errors.New("no skin detected")
)
