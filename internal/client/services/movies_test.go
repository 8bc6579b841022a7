package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/moviekeeper/internal/client/cache"
	"github.com/dmitrijs2005/moviekeeper/internal/client/client"
	"github.com/dmitrijs2005/moviekeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
	"github.com/dmitrijs2005/moviekeeper/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newFixture(fc *fakeClient) (MovieService, *cache.Cache, *clock, *metrics.Metrics) {
	clk := &clock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	m := metrics.New(nil)
	c := cache.New(kvstore.NewMemoryStore(), cache.WithClock(clk.Now), cache.WithMetrics(m))
	return NewMovieService(fc, c, nil, m), c, clk, m
}

func TestLoadMovies_FetchesThenServesFromCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{TopRatedFn: func(_ context.Context, p int) (*models.MoviePage, error) {
		assert.Equal(t, 1, p)
		return page(numbered(15, "m")...), nil
	}}
	svc, c, _, _ := newFixture(fc)

	first, err := svc.LoadMovies(ctx, false)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, int32(1), fc.TopRatedCalls.Load())

	snap, ok := c.LoadMovieList(ctx)
	require.True(t, ok)
	assert.Equal(t, first, snap.Movies)

	second, err := svc.LoadMovies(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fc.TopRatedCalls.Load(), "fresh snapshot must not hit the network")
}

func TestLoadMovies_StaleSnapshotRefetches(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{TopRatedFn: func(context.Context, int) (*models.MoviePage, error) {
		return page(numbered(3, "m")...), nil
	}}
	svc, _, clk, _ := newFixture(fc)

	_, err := svc.LoadMovies(ctx, false)
	require.NoError(t, err)

	clk.t = clk.t.Add(time.Hour)
	_, err = svc.LoadMovies(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), fc.TopRatedCalls.Load())

	clk.t = clk.t.Add(time.Second)
	_, err = svc.LoadMovies(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fc.TopRatedCalls.Load())
}

func TestLoadMovies_ForceRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{TopRatedFn: func(context.Context, int) (*models.MoviePage, error) {
		return page(numbered(2, "m")...), nil
	}}
	svc, _, _, _ := newFixture(fc)

	_, _ = svc.LoadMovies(ctx, false)
	_, err := svc.LoadMovies(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fc.TopRatedCalls.Load())
}

func TestLoadMovies_FailedRefreshDoesNotFallBack(t *testing.T) {
	ctx := context.Background()
	fail := false
	fc := &fakeClient{TopRatedFn: func(context.Context, int) (*models.MoviePage, error) {
		if fail {
			return nil, client.ServerError(503)
		}
		return page(numbered(5, "m")...), nil
	}}
	svc, c, _, _ := newFixture(fc)

	got, err := svc.LoadMovies(ctx, false)
	require.NoError(t, err)
	require.Len(t, got, 5)

	fail = true
	got, err = svc.LoadMovies(ctx, true)
	require.ErrorIs(t, err, client.ServerError(503))
	assert.Nil(t, got)

	snap, ok := c.LoadMovieList(ctx)
	require.True(t, ok, "previous snapshot is left in place")
	assert.Len(t, snap.Movies, 5)
}

func TestLoadMovies_EmptyCacheFailure(t *testing.T) {
	fc := &fakeClient{TopRatedFn: func(context.Context, int) (*models.MoviePage, error) {
		return nil, client.ErrTransport
	}}
	svc, c, _, _ := newFixture(fc)

	_, err := svc.LoadMovies(context.Background(), false)
	require.ErrorIs(t, err, client.ErrTransport)
	assert.True(t, c.IsListStale(context.Background()))
}

func TestLoadMovies_OutOfOrderCompletionKeepsNewest(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})

	older := numbered(3, "old")
	newer := numbered(4, "new")

	fc := &fakeClient{}
	fc.TopRatedFn = func(context.Context, int) (*models.MoviePage, error) {
		if fc.TopRatedCalls.Load() == 1 {
			close(entered)
			<-release
			return page(older...), nil
		}
		return page(newer...), nil
	}
	svc, c, _, m := newFixture(fc)

	done := Async(ctx, func(ctx context.Context) ([]models.Movie, error) {
		return svc.LoadMovies(ctx, true)
	})
	<-entered

	got, err := svc.LoadMovies(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	close(release)
	res := <-done
	require.NoError(t, res.Err)
	assert.Equal(t, older, res.Value, "each caller gets its own result")

	snap, ok := c.LoadMovieList(ctx)
	require.True(t, ok)
	assert.Equal(t, newer, snap.Movies, "the later-issued fetch wins")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FencedWrites))
}

func TestLoadMovieDetail_CacheHitSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{DetailFn: func(context.Context, int64) (*models.Movie, error) {
		t.Fatal("network must not be called")
		return nil, nil
	}}
	svc, c, _, _ := newFixture(fc)

	c.SaveMovieDetail(ctx, models.Movie{ID: 9, Title: "Cached", Runtime: 100})

	got, err := svc.LoadMovieDetail(ctx, &models.Movie{ID: 9, Title: "Summary"})
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Title)
	assert.Equal(t, 100, got.Runtime)
}

func TestLoadMovieDetail_FetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{DetailFn: func(_ context.Context, id int64) (*models.Movie, error) {
		return &models.Movie{ID: id, Title: "Full", Runtime: 120, Tagline: "t"}, nil
	}}
	svc, c, _, _ := newFixture(fc)

	got, err := svc.LoadMovieDetail(ctx, &models.Movie{ID: 3, Title: "Summary"})
	require.NoError(t, err)
	assert.Equal(t, "Full", got.Title)

	cached, ok := c.LoadMovieDetail(ctx, 3)
	require.True(t, ok)
	assert.Equal(t, got, cached)

	_, err = svc.LoadMovieDetail(ctx, &models.Movie{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, int32(1), fc.DetailCalls.Load())
}

func TestLoadMovieDetail_FailureFallsBackToSummary(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{DetailFn: func(context.Context, int64) (*models.Movie, error) {
		return nil, client.ErrTransport
	}}
	svc, c, _, m := newFixture(fc)

	summary := models.Movie{ID: 77, Title: "Known Title", VoteAverage: 7.1}
	got, err := svc.LoadMovieDetail(ctx, &summary)
	require.NoError(t, err)
	assert.Equal(t, summary.ID, got.ID)
	assert.Equal(t, summary.Title, got.Title)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DetailFallbacks))

	_, ok := c.LoadMovieDetail(ctx, 77)
	assert.False(t, ok, "degraded data is not cached")
}

func TestLoadMovieDetail_NilSummary(t *testing.T) {
	svc, _, _, _ := newFixture(&fakeClient{})

	_, err := svc.LoadMovieDetail(context.Background(), nil)
	require.ErrorIs(t, err, client.ErrInvalidRequest)
}

func TestLoadMovieDetailByID(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		TopRatedFn: func(context.Context, int) (*models.MoviePage, error) {
			return page(numbered(3, "m")...), nil
		},
		DetailFn: func(context.Context, int64) (*models.Movie, error) {
			return nil, client.ServerError(500)
		},
	}
	svc, _, _, _ := newFixture(fc)

	// unknown id: nothing to fall back to
	_, err := svc.LoadMovieDetailByID(ctx, 2)
	require.ErrorIs(t, err, client.ServerError(500))

	_, err = svc.LoadMovies(ctx, false)
	require.NoError(t, err)

	got, err := svc.LoadMovieDetailByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "mB", got.Title)
}

func TestSearch_RemembersSummaries(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		SearchFn: func(_ context.Context, q string, p int) (*models.MoviePage, error) {
			assert.Equal(t, "god", q)
			return page(models.Movie{ID: 238, Title: "The Godfather"}), nil
		},
		DetailFn: func(context.Context, int64) (*models.Movie, error) {
			return nil, client.ErrNoData
		},
	}
	svc, _, _, _ := newFixture(fc)

	res, err := svc.Search(ctx, "god", 1)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)

	got, err := svc.LoadMovieDetailByID(ctx, 238)
	require.NoError(t, err)
	assert.Equal(t, "The Godfather", got.Title)
}

func TestSearch_PropagatesError(t *testing.T) {
	fc := &fakeClient{SearchFn: func(context.Context, string, int) (*models.MoviePage, error) {
		return nil, client.ErrInvalidRequest
	}}
	svc, _, _, _ := newFixture(fc)

	_, err := svc.Search(context.Background(), "", 1)
	require.ErrorIs(t, err, client.ErrInvalidRequest)
}

func TestLoadMovies_CachedListIsTruncated(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}

	// another writer sharing the store saved more than a full list
	store := kvstore.NewMemoryStore()
	list, err := json.Marshal(numbered(15, "m"))
	require.NoError(t, err)
	ts, err := json.Marshal(clk.t)
	require.NoError(t, err)
	require.NoError(t, store.SetMany(ctx, map[string][]byte{cache.KeyMovieList: list, cache.KeyListFetchedAt: ts}))

	fc := &fakeClient{}
	svc := NewMovieService(fc, cache.New(store, cache.WithClock(clk.Now)), nil, nil)

	got, err := svc.LoadMovies(ctx, false)
	require.NoError(t, err)
	require.Len(t, got, models.MaxListSize)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int32(0), fc.TopRatedCalls.Load())
}

// malformedCatalog answers every request with 200 and body.
func malformedCatalog(t *testing.T, body string) client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return client.NewHTTPClient(client.Options{BaseURL: srv.URL})
}

func TestLoadMovieDetail_MalformedPayloadFallsBackToSummary(t *testing.T) {
	for _, body := range []string{`null`, `{}`, `{"foo":1}`} {
		t.Run(body, func(t *testing.T) {
			ctx := context.Background()
			m := metrics.New(nil)
			c := cache.New(kvstore.NewMemoryStore(), cache.WithMetrics(m))
			svc := NewMovieService(malformedCatalog(t, body), c, nil, m)

			summary := models.Movie{ID: 42, Title: "Known Title", VoteAverage: 7.9}
			got, err := svc.LoadMovieDetail(ctx, &summary)
			require.NoError(t, err)
			assert.Equal(t, summary, got)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.DetailFallbacks))

			_, ok := c.LoadMovieDetail(ctx, 42)
			assert.False(t, ok)
			_, ok = c.LoadMovieDetail(ctx, 0)
			assert.False(t, ok, "nothing stored under an empty id")
		})
	}
}

func TestLoadMovies_MalformedPayloadKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	c := cache.New(kvstore.NewMemoryStore())
	c.SaveMovieList(ctx, numbered(5, "m"))

	svc := NewMovieService(malformedCatalog(t, `null`), c, nil, nil)

	got, err := svc.LoadMovies(ctx, true)
	require.ErrorIs(t, err, client.ErrDecoding)
	assert.Nil(t, got)

	snap, ok := c.LoadMovieList(ctx)
	require.True(t, ok)
	assert.Len(t, snap.Movies, 5)
}
