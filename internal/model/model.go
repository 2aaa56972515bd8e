// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// TokenTypeBearer is the only token type issued by the API.
const TokenTypeBearer = "bearer"

// Tokens collects an issued access token.
type Tokens struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// User represents an account stored on the server. The password is never stored in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Email     string    // unique, lower-cased
	PwdHash   []byte    // Argon2id(password, SaltAuth)
	SaltAuth  []byte    // per-user auth salt
	CreatedAt time.Time
}

// SkinToneAnalysis is the outcome of a single photo analysis.
type SkinToneAnalysis struct {
	ID                uuid.UUID
	UserID            uuid.NullUUID // anonymous analyses have no user
	DetectedColor     string        // #rrggbb
	Tone              string        // Fair, Light, Medium, Tan, Deep
	RecommendedColors []string      // ordered palette, never empty
	CreatedAt         time.Time
}

// CatalogItem is one product of the fashion dataset.
type CatalogItem struct {
	ItemID      string
	Gender      string
	Category    string // masterCategory
	SubCategory string
	ArticleType string
	BaseColour  string
	Season      string
	Year        int
	Usage       string
	ProductName string
}

// Recommendation is a catalog item returned for a palette query.
type Recommendation struct {
	ID          uuid.UUID // per-response identifier
	ItemID      string
	ProductName string
	Category    string
	SubCategory string
	ArticleType string
	BaseColour  string
	Gender      string
	Season      string
	Usage       string
	ImageURL    string
}

// RecommendationQuery narrows the catalog by facets.
type RecommendationQuery struct {
	Gender string
	Colors []string
	Limit  int
}

// Favorite is an item saved by a user.
type Favorite struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ItemID      string
	ProductName string
	BaseColour  string
	CreatedAt   time.Time
}

// CategoryCount reports how many catalog items fall into a category pair.
type CategoryCount struct {
	MasterCategory string
	SubCategory    string
	Count          int64
}
