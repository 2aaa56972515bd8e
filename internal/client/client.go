// Package client is a Go client for the Tonefit HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// APIError is any non-2xx answer from the server.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the current account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Analysis is the skin-tone result for an uploaded photo.
type Analysis struct {
	DetectedSkinTone  string   `json:"detected_skin_tone"`
	SkinTone          string   `json:"skin_tone"`
	RecommendedColors []string `json:"recommended_colors"`
	AnalysisID        string   `json:"analysis_id"`
	CreatedAt         string   `json:"created_at,omitempty"`
}

// Recommendation is one suggested catalog item.
type Recommendation struct {
	ID          string `json:"id"`
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	ArticleType string `json:"article_type"`
	BaseColour  string `json:"base_colour"`
	Gender      string `json:"gender"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	ImageURL    string `json:"image_url"`
}

// Category is a category pair with its item count.
type Category struct {
	MasterCategory string `json:"master_category"`
	SubCategory    string `json:"sub_category"`
	Count          int64  `json:"count"`
}

// Favorite is a saved item.
type Favorite struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ItemID      string    `json:"item_id"`
	ProductName string    `json:"product_name"`
	BaseColour  string    `json:"base_colour"`
	CreatedAt   time.Time `json:"created_at"`
}

// FavoriteInput describes an item to save.
type FavoriteInput struct {
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name"`
	BaseColour  string `json:"base_colour"`
}

// RecommendOptions narrows a recommendation query; zero values use server defaults.
type RecommendOptions struct {
	Gender string
	Colors []string
	Limit  int
}

// Client talks to one API base URL. It is safe for sequential use by one flow.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithToken preloads a bearer token.
func WithToken(tok string) Option { return func(c *Client) { c.token = tok } }

// New builds a client for baseURL, e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Token returns the bearer token in use, if any.
func (c *Client) Token() string { return c.token }

// SetToken replaces the bearer token; empty clears it.
func (c *Client) SetToken(tok string) { c.token = tok }

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", nil, credentials{email, password}, nil)
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	var tok Token
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, credentials{email, password}, &tok); err != nil {
		return Token{}, err
	}
	c.token = tok.AccessToken
	return tok, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, nil, &u)
	return u, err
}

// Analyze uploads a photo. The part content type is guessed from the file name, then from the bytes.
func (c *Client) Analyze(ctx context.Context, filename string, img io.Reader) (Analysis, error) {
	data, err := io.ReadAll(img)
	if err != nil {
		return Analysis{}, err
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	h.Set("Content-Type", imageContentType(filename, data))
	part, err := mw.CreatePart(h)
	if err != nil {
		return Analysis{}, err
	}
	if _, err := part.Write(data); err != nil {
		return Analysis{}, err
	}
	if err := mw.Close(); err != nil {
		return Analysis{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/analyze-skin-tone", nil, &body)
	if err != nil {
		return Analysis{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out Analysis
	return out, c.do(req, &out)
}

// LatestAnalysis returns the caller's most recent stored analysis.
func (c *Client) LatestAnalysis(ctx context.Context) (Analysis, error) {
	var out Analysis
	err := c.doJSON(ctx, http.MethodGet, "/analyses/latest", nil, nil, &out)
	return out, err
}

// Recommend fetches items matching a palette.
func (c *Client) Recommend(ctx context.Context, opts RecommendOptions) ([]Recommendation, error) {
	q := url.Values{}
	if opts.Gender != "" {
		q.Set("gender", opts.Gender)
	}
	if len(opts.Colors) > 0 {
		q.Set("recommended_colors", strings.Join(opts.Colors, ","))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	var out struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/outfit-recommendations", q, nil, &out)
	return out.Recommendations, err
}

// Categories lists catalog category counts.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/fashion-categories", nil, nil, &out)
	return out.Categories, err
}

// Favorites lists saved items, newest first.
func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	var out struct {
		Favorites []Favorite `json:"favorites"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/favorites", nil, nil, &out)
	return out.Favorites, err
}

// AddFavorite saves an item.
func (c *Client) AddFavorite(ctx context.Context, in FavoriteInput) error {
	return c.doJSON(ctx, http.MethodPost, "/favorites", nil, in, nil)
}

// RemoveFavorite deletes a saved item.
func (c *Client) RemoveFavorite(ctx context.Context, itemID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(itemID), nil, nil, nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, q, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var d struct {
			Detail string `json:"detail"`
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&d) == nil {
			apiErr.Detail = d.Detail
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func imageContentType(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return http.DetectContentType(data)
}
