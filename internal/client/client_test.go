package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const goodToken = "good-token"

// fakeAPI answers a subset of the API the way the server does.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	favs := map[string]FavoriteInput{}

	authed := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer "+goodToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Invalid authentication credentials"}`)
			return false
		}
		return true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.Email == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"detail":"Email already registered"}`)
			return
		}
		_, _ = io.WriteString(w, `{"message":"User created successfully"}`)
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"`+goodToken+`","token_type":"bearer"}`)
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if authed(w, r) {
			_, _ = io.WriteString(w, `{"id":"u-1","email":"a@example.com"}`)
		}
	})
	mux.HandleFunc("POST /api/analyze-skin-tone", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil || !strings.HasPrefix(hdr.Header.Get("Content-Type"), "image/") {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"detail":"File must be an image"}`)
			return
		}
		_ = f.Close()
		_, _ = io.WriteString(w, `{"detected_skin_tone":"#c89678","skin_tone":"Medium","recommended_colors":["Olive"],"analysis_id":"a-1"}`)
	})
	mux.HandleFunc("GET /api/outfit-recommendations", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("gender") != "Women" || q.Get("recommended_colors") != "Olive,Rust" || q.Get("limit") != "2" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"recommendations":[{"item_id":"1","base_colour":"Olive","image_url":"x"}]}`)
	})
	mux.HandleFunc("GET /api/fashion-categories", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"categories":[{"master_category":"Apparel","sub_category":"Topwear","count":3}]}`)
	})
	mux.HandleFunc("GET /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		out := struct {
			Favorites []Favorite `json:"favorites"`
		}{Favorites: []Favorite{}}
		for _, f := range favs {
			out.Favorites = append(out.Favorites, Favorite{ItemID: f.ItemID, ProductName: f.ProductName})
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("POST /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		var in FavoriteInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if _, ok := favs[in.ItemID]; ok {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"detail":"Item already in favorites"}`)
			return
		}
		favs[in.ItemID] = in
		_, _ = io.WriteString(w, `{"message":"Added to favorites"}`)
	})
	mux.HandleFunc("DELETE /api/favorites/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		id := r.PathValue("id")
		if _, ok := favs[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Favorite not found"}`)
			return
		}
		delete(favs, id)
		_, _ = io.WriteString(w, `{"message":"Removed from favorites"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func requireAPIError(t *testing.T, err error, status int, detail string) {
	t.Helper()
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "want *APIError, got %v", err)
	require.Equal(t, status, apiErr.Status)
	require.Equal(t, detail, apiErr.Detail)
}

func TestClient_AuthFlow(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL + "/api/")
	ctx := context.Background()

	require.NoError(t, c.Signup(ctx, "a@example.com", "secret"))
	requireAPIError(t, c.Signup(ctx, "taken@example.com", "secret"), http.StatusBadRequest, "Email already registered")

	_, err := c.Login(ctx, "a@example.com", "wrong")
	requireAPIError(t, err, http.StatusUnauthorized, "Incorrect email or password")
	require.Empty(t, c.Token())

	tok, err := c.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, goodToken, tok.AccessToken)
	require.Equal(t, goodToken, c.Token())

	u, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", u.Email)
}

func TestClient_Analyze(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	a, err := c.Analyze(ctx, "face.JPG", strings.NewReader("not really a jpeg"))
	require.NoError(t, err)
	require.Equal(t, "Medium", a.SkinTone)
	require.Equal(t, []string{"Olive"}, a.RecommendedColors)

	_, err = c.Analyze(ctx, "notes.txt", strings.NewReader("plain text"))
	requireAPIError(t, err, http.StatusBadRequest, "File must be an image")
}

func TestClient_RecommendAndCategories(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	recs, err := c.Recommend(ctx, RecommendOptions{Gender: "Women", Colors: []string{"Olive", "Rust"}, Limit: 2})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Olive", recs[0].BaseColour)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []Category{{MasterCategory: "Apparel", SubCategory: "Topwear", Count: 3}}, cats)
}

func TestClient_Favorites(t *testing.T) {
	srv := fakeAPI(t)
	ctx := context.Background()

	_, err := New(srv.URL + "/api").Favorites(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid authentication credentials")

	c := New(srv.URL+"/api", WithToken(goodToken))
	require.NoError(t, c.AddFavorite(ctx, FavoriteInput{ItemID: "10", ProductName: "Tee"}))
	requireAPIError(t, c.AddFavorite(ctx, FavoriteInput{ItemID: "10"}), http.StatusConflict, "Item already in favorites")

	favs, err := c.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.Equal(t, "10", favs[0].ItemID)

	require.NoError(t, c.RemoveFavorite(ctx, "10"))
	requireAPIError(t, c.RemoveFavorite(ctx, "10"), http.StatusNotFound, "Favorite not found")
}

func TestAPIError_Message(t *testing.T) {
	t.Parallel()

	require.Equal(t, "api: 404 Favorite not found", (&APIError{Status: 404, Detail: "Favorite not found"}).Error())
	require.Equal(t, "api: 502 Bad Gateway", (&APIError{Status: 502}).Error())
}

func Test_imageContentType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "image/jpeg", imageContentType("a.jpeg", nil))
	require.Equal(t, "image/png", imageContentType("a.PNG", nil))
	png := []byte("\x89PNG\r\n\x1a\n0000")
	require.Equal(t, "image/png", imageContentType("upload", png))
	require.True(t, strings.HasPrefix(imageContentType("upload", []byte("hello")), "text/plain"))
}
