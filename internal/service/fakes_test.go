package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/and161185/tonefit/internal/errs"
	"github.com/and161185/tonefit/internal/limiter"
	"github.com/and161185/tonefit/internal/model"
	"github.com/and161185/tonefit/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeUsers struct {
	byEmail map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*model.User{}
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	lastKey      limiter.Key
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(_ context.Context, k limiter.Key) (bool, time.Duration, error) {
	l.lastKey = k
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, limiter.Key) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, limiter.Key) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

type fakeCatalog struct {
	items []model.CatalogItem
	err   error

	calls     [][]string
	upserted  []model.CatalogItem
	upsertErr error
}

var _ repository.CatalogRepository = (*fakeCatalog)(nil)

func (f *fakeCatalog) Sample(_ context.Context, gender string, colors []string, limit int) ([]model.CatalogItem, error) {
	f.calls = append(f.calls, colors)
	if f.err != nil {
		return nil, f.err
	}
	var out []model.CatalogItem
	for _, it := range f.items {
		if len(out) == limit {
			break
		}
		if !strings.EqualFold(it.Gender, gender) {
			continue
		}
		if len(colors) > 0 && !containsFold(colors, it.BaseColour) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeCatalog) Categories(context.Context) ([]model.CategoryCount, error) {
	return nil, f.err
}

func (f *fakeCatalog) Count(context.Context) (int64, error) { return int64(len(f.items)), f.err }

func (f *fakeCatalog) UpsertBatch(_ context.Context, items []model.CatalogItem) (int64, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.upserted = append(f.upserted, items...)
	return int64(len(items)), nil
}

type fakeFavorites struct {
	mu   sync.Mutex
	rows map[uuid.UUID][]model.Favorite
	err  error
}

var _ repository.FavoriteRepository = (*fakeFavorites)(nil)

func (f *fakeFavorites) Add(_ context.Context, fav *model.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = map[uuid.UUID][]model.Favorite{}
	}
	for _, r := range f.rows[fav.UserID] {
		if r.ItemID == fav.ItemID {
			return errs.ErrAlreadyExists
		}
	}
	fav.CreatedAt = time.Now()
	f.rows[fav.UserID] = append([]model.Favorite{*fav}, f.rows[fav.UserID]...)
	return nil
}

func (f *fakeFavorites) List(_ context.Context, userID uuid.UUID, limit int) ([]model.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rows := f.rows[userID]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return append([]model.Favorite{}, rows...), nil
}

func (f *fakeFavorites) Remove(_ context.Context, userID uuid.UUID, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.rows[userID]
	for i, r := range rows {
		if r.ItemID == itemID {
			f.rows[userID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeAnalyses struct {
	saved   []model.SkinToneAnalysis
	saveErr error
}

var _ repository.AnalysisRepository = (*fakeAnalyses)(nil)

func (f *fakeAnalyses) Save(_ context.Context, a *model.SkinToneAnalysis) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	a.CreatedAt = time.Now()
	f.saved = append(f.saved, *a)
	return nil
}

func (f *fakeAnalyses) Latest(_ context.Context, userID uuid.UUID) (*model.SkinToneAnalysis, error) {
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].UserID.Valid && f.saved[i].UserID.UUID == userID {
			a := f.saved[i]
			return &a, nil
		}
	}
	return nil, errs.ErrNotFound
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
