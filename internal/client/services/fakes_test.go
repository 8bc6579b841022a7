package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/moviekeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
)

// fakeClient implements client.Client with per-call hooks.
type fakeClient struct {
	TopRatedFn func(ctx context.Context, page int) (*models.MoviePage, error)
	DetailFn   func(ctx context.Context, id int64) (*models.Movie, error)
	SearchFn   func(ctx context.Context, query string, page int) (*models.MoviePage, error)

	TopRatedCalls atomic.Int32
	DetailCalls   atomic.Int32
	SearchCalls   atomic.Int32
}

func (f *fakeClient) FetchTopRated(ctx context.Context, page int) (*models.MoviePage, error) {
	f.TopRatedCalls.Add(1)
	return f.TopRatedFn(ctx, page)
}

func (f *fakeClient) FetchDetail(ctx context.Context, id int64) (*models.Movie, error) {
	f.DetailCalls.Add(1)
	return f.DetailFn(ctx, id)
}

func (f *fakeClient) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	f.SearchCalls.Add(1)
	return f.SearchFn(ctx, query, page)
}

// countingStore records every call that reaches the key-value store.
type countingStore struct {
	kvstore.Store
	mu    sync.Mutex
	calls []string
}

func newCountingStore() *countingStore {
	return &countingStore{Store: kvstore.NewMemoryStore()}
}

func (s *countingStore) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, op)
}

func (s *countingStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.record("get " + key)
	return s.Store.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key string, value []byte) error {
	s.record("set " + key)
	return s.Store.Set(ctx, key, value)
}

func (s *countingStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	s.record("setmany")
	return s.Store.SetMany(ctx, entries)
}

func (s *countingStore) Delete(ctx context.Context, keys ...string) error {
	s.record("delete")
	return s.Store.Delete(ctx, keys...)
}

func page(movies ...models.Movie) *models.MoviePage {
	return &models.MoviePage{Page: 1, Results: movies, TotalPages: 1, TotalResults: len(movies)}
}

func numbered(n int, prefix string) []models.Movie {
	out := make([]models.Movie, n)
	for i := range out {
		out[i] = models.Movie{ID: int64(i + 1), Title: prefix + string(rune('A'+i)), VoteAverage: 8}
	}
	return out
}
