// Package cache is the typed layer over the key-value store: session state,
// the top-rated list snapshot with its capture time, and per-movie details.
//
// Cache methods never return errors. A missing key, a store failure and an
// undecodable value all read as "absent"; failures are logged at Warn and
// counted. Every save is visible to the next load in the same process.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviekeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
	"github.com/dmitrijs2005/moviekeeper/internal/logging"
	"github.com/dmitrijs2005/moviekeeper/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Persisted keys.
const (
	KeySession       = "loggedInUser"
	KeyLoggedIn      = "isLoggedIn"
	KeyMovieList     = "topRatedMovies"
	KeyListFetchedAt = "lastFetchTime"
	detailKeyPrefix  = "movie_"
)

// DefaultFreshness is how long a list snapshot is trusted.
const DefaultFreshness = time.Hour

// DetailKey is the store key of the cached detail for id.
func DetailKey(id int64) string {
	return detailKeyPrefix + strconv.FormatInt(id, 10)
}

// Cache is the typed view of the key-value store used by the movie client.
// Read failures surface as absent values, never as errors.
type Cache struct {
	store     kvstore.Store
	now       func() time.Time
	freshness time.Duration
	details   *expirable.LRU[int64, models.Movie]
	log       logging.Logger
	metrics   *metrics.Metrics

	// mu makes multi-key reads and writes appear atomic to other callers.
	mu sync.RWMutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithFreshness sets the list snapshot window; non-positive values are ignored.
func WithFreshness(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.freshness = d
		}
	}
}

// WithDetailMemory keeps up to size details in memory in front of the
// store. Zero disables it.
func WithDetailMemory(size int) Option {
	return func(c *Cache) {
		if size <= 0 {
			c.details = nil
			return
		}
		c.details = expirable.NewLRU[int64, models.Movie](size, nil, 0)
	}
}

// WithLogger sets the logger for swallowed store and codec failures.
func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// WithMetrics sets the collectors for hits, misses and corrupt reads.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// New returns a Cache over store with a one hour list window.
func New(store kvstore.Store, opts ...Option) *Cache {
	c := &Cache{
		store:     store,
		now:       time.Now,
		freshness: DefaultFreshness,
		log:       logging.NewNop(),
		metrics:   metrics.New(nil),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Freshness returns the list snapshot window in use.
func (c *Cache) Freshness() time.Duration { return c.freshness }

// SaveSession stores the credential and raises the logged-in flag in one write.
func (c *Cache) SaveSession(ctx context.Context, s models.Session) {
	data, ok := c.encode(ctx, KeySession, s)
	if !ok {
		return
	}
	flag, _ := json.Marshal(true)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.write(ctx, func() error {
		return c.store.SetMany(ctx, map[string][]byte{KeySession: data, KeyLoggedIn: flag})
	}, "key", KeySession)
}

// LoadSession returns the saved session, if any.
func (c *Cache) LoadSession(ctx context.Context) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var s models.Session
	ok := c.read(ctx, KeySession, &s)
	c.count(metrics.ResourceSession, ok)
	return s, ok
}

// IsLoggedIn reports the persisted flag; false when never set.
func (c *Cache) IsLoggedIn(ctx context.Context) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var v bool
	return c.read(ctx, KeyLoggedIn, &v) && v
}

// ClearSession removes the credential and lowers the flag. Calling it
// again is harmless.
func (c *Cache) ClearSession(ctx context.Context) {
	flag, _ := json.Marshal(false)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.write(ctx, func() error { return c.store.Delete(ctx, KeySession) }, "key", KeySession)
	c.write(ctx, func() error { return c.store.Set(ctx, KeyLoggedIn, flag) }, "key", KeyLoggedIn)
}

// SaveMovieList replaces the list snapshot with at most models.MaxListSize
// movies, stamped with the current time.
func (c *Cache) SaveMovieList(ctx context.Context, movies []models.Movie) {
	movies = models.Truncate(movies, models.MaxListSize)

	list, ok := c.encode(ctx, KeyMovieList, movies)
	if !ok {
		return
	}
	ts, ok := c.encode(ctx, KeyListFetchedAt, c.now())
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.write(ctx, func() error {
		return c.store.SetMany(ctx, map[string][]byte{KeyMovieList: list, KeyListFetchedAt: ts})
	}, "key", KeyMovieList)
}

// LoadMovieList returns the snapshot; a snapshot without a readable
// timestamp counts as absent.
func (c *Cache) LoadMovieList(ctx context.Context) (models.MovieListSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.loadList(ctx)
	c.count(metrics.ResourceList, ok)
	return snap, ok
}

func (c *Cache) loadList(ctx context.Context) (models.MovieListSnapshot, bool) {
	var snap models.MovieListSnapshot
	if !c.read(ctx, KeyMovieList, &snap.Movies) {
		return models.MovieListSnapshot{}, false
	}
	if !c.read(ctx, KeyListFetchedAt, &snap.FetchedAt) {
		return models.MovieListSnapshot{}, false
	}
	return snap, true
}

// IsListStale is true when there is no snapshot or it is older than the
// freshness window.
func (c *Cache) IsListStale(ctx context.Context) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.loadList(ctx)
	if !ok {
		return true
	}
	return snap.IsStale(c.now(), c.freshness)
}

// SaveMovieDetail stores m under its id, replacing any earlier record.
func (c *Cache) SaveMovieDetail(ctx context.Context, m models.Movie) {
	key := DetailKey(m.ID)
	data, ok := c.encode(ctx, key, m)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.details != nil {
		c.details.Add(m.ID, m)
	}
	if !ok {
		return
	}
	c.write(ctx, func() error { return c.store.Set(ctx, key, data) }, "key", key)
}

// LoadMovieDetail returns the cached detail for id. Details never expire.
func (c *Cache) LoadMovieDetail(ctx context.Context, id int64) (models.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.details != nil {
		if m, ok := c.details.Get(id); ok {
			c.count(metrics.ResourceDetail, true)
			return m, true
		}
	}

	var m models.Movie
	ok := c.read(ctx, DetailKey(id), &m)
	c.count(metrics.ResourceDetail, ok)
	if !ok {
		return models.Movie{}, false
	}
	if c.details != nil {
		c.details.Add(id, m)
	}
	return m, true
}

func (c *Cache) encode(ctx context.Context, key string, v any) ([]byte, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn(ctx, "cache encode failed, write skipped", "key", key, "err", err)
		return nil, false
	}
	return data, true
}

func (c *Cache) write(ctx context.Context, fn func() error, args ...any) {
	if err := fn(); err != nil {
		c.log.Warn(ctx, "cache write failed", append(args, "err", err)...)
	}
}

func (c *Cache) count(resource string, hit bool) {
	if hit {
		c.metrics.CacheHits.WithLabelValues(resource).Inc()
		return
	}
	c.metrics.CacheMisses.WithLabelValues(resource).Inc()
}

// read decodes key into out and reports whether a usable value was found.
func (c *Cache) read(ctx context.Context, key string, out any) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn(ctx, "cache read failed", "key", key, "err", err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn(ctx, "corrupt cache entry treated as absent", "key", key, "err", err)
		c.metrics.CacheCorruptReads.Inc()
		return false
	}
	return true
}
