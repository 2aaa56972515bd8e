package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/tonefit/internal/errs"
	"github.com/and161185/tonefit/internal/model"
)

var testKey = []byte("test-sign-key")

func makeJWT(t *testing.T, key []byte, sub string, exp time.Time, method jwt.SigningMethod) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

type fakeAuth struct {
	users    map[string]*model.User
	limited  bool
	failNext error
}

func newFakeAuth() *fakeAuth { return &fakeAuth{users: map[string]*model.User{}} }

func (f *fakeAuth) Register(_ context.Context, email, _ string) (string, error) {
	if f.failNext != nil {
		return "", f.failNext
	}
	if _, ok := f.users[email]; ok {
		return "", errs.ErrAlreadyExists
	}
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Email: email}
	f.users[email] = u
	return u.ID.String(), nil
}

func (f *fakeAuth) LoginWithIP(_ context.Context, email, password, _ string) (model.Tokens, model.User, error) {
	if f.limited {
		return model.Tokens{}, model.User{}, errs.ErrRateLimited
	}
	u, ok := f.users[email]
	if !ok || password != "secret" {
		return model.Tokens{}, model.User{}, errs.ErrUnauthorized
	}
	return model.Tokens{AccessToken: "tok-" + u.ID.String(), TokenType: model.TokenTypeBearer}, *u, nil
}

func (f *fakeAuth) CurrentUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errs.ErrUnauthorized
}

type fakeAnalysis struct {
	err    error
	gotUID uuid.NullUUID
	gotLen int
	latest *model.SkinToneAnalysis
}

func (f *fakeAnalysis) Analyze(_ context.Context, userID uuid.NullUUID, img io.Reader) (*model.SkinToneAnalysis, error) {
	f.gotUID = userID
	b, _ := io.ReadAll(img)
	f.gotLen = len(b)
	if f.err != nil {
		return nil, f.err
	}
	return &model.SkinToneAnalysis{
		ID:                uuid.Must(uuid.NewV4()),
		UserID:            userID,
		DetectedColor:     "#c89678",
		Tone:              "Medium",
		RecommendedColors: []string{"Olive", "Rust"},
	}, nil
}

func (f *fakeAnalysis) Latest(context.Context, uuid.UUID) (*model.SkinToneAnalysis, error) {
	if f.latest == nil {
		return nil, errs.ErrNotFound
	}
	return f.latest, nil
}

type fakeRecs struct {
	gotQuery model.RecommendationQuery
	items    []model.Recommendation
	cats     []model.CategoryCount
}

func (f *fakeRecs) Recommend(_ context.Context, q model.RecommendationQuery) ([]model.Recommendation, error) {
	f.gotQuery = q
	return f.items, nil
}

func (f *fakeRecs) Categories(context.Context) ([]model.CategoryCount, error) {
	return f.cats, nil
}

type fakeFavs struct {
	rows []model.Favorite
}

func (f *fakeFavs) Add(_ context.Context, userID uuid.UUID, itemID, name, colour string) (*model.Favorite, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, errs.ErrValidation
	}
	for _, r := range f.rows {
		if r.UserID == userID && r.ItemID == itemID {
			return nil, errs.ErrAlreadyExists
		}
	}
	fav := model.Favorite{ID: uuid.Must(uuid.NewV4()), UserID: userID, ItemID: itemID, ProductName: name, BaseColour: colour, CreatedAt: time.Now()}
	f.rows = append(f.rows, fav)
	return &fav, nil
}

func (f *fakeFavs) List(_ context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var out []model.Favorite
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFavs) Remove(_ context.Context, userID uuid.UUID, itemID string) error {
	for i, r := range f.rows {
		if r.UserID == userID && r.ItemID == itemID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

type testAPI struct {
	auth     *fakeAuth
	analysis *fakeAnalysis
	recs     *fakeRecs
	favs     *fakeFavs
	handler  http.Handler
}

func newTestAPI(t *testing.T, maxUpload int64) *testAPI {
	t.Helper()
	a := &testAPI{
		auth:     newFakeAuth(),
		analysis: &fakeAnalysis{},
		recs:     &fakeRecs{},
		favs:     &fakeFavs{},
	}
	srv := New(a.auth, a.analysis, a.recs, a.favs, Config{
		SignKey:   testKey,
		MaxUpload: maxUpload,
		Log:       zaptest.NewLogger(t),
	})
	a.handler = srv.Handler()
	return a
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

// addUser registers a user in the fake and returns a valid bearer token for it.
func (a *testAPI) addUser(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Email: email}
	a.auth.users[email] = u
	return u.ID, makeJWT(t, testKey, u.ID.String(), time.Now().Add(time.Hour), jwt.SigningMethodHS256)
}
