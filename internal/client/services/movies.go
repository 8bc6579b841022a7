package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/moviekeeper/internal/client/client"
	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
	"github.com/dmitrijs2005/moviekeeper/internal/logging"
	"github.com/dmitrijs2005/moviekeeper/internal/metrics"
)

// MovieCache is the part of the cache layer the sync policy needs.
type MovieCache interface {
	SaveMovieList(ctx context.Context, movies []models.Movie)
	LoadMovieList(ctx context.Context) (models.MovieListSnapshot, bool)
	IsListStale(ctx context.Context) bool
	SaveMovieDetail(ctx context.Context, m models.Movie)
	LoadMovieDetail(ctx context.Context, id int64) (models.Movie, bool)
}

// MovieService applies the sync policy.
//
// Lists are served from the cache while the snapshot is fresh, otherwise
// fetched; a failed fetch is returned as is, never masked by an old
// snapshot. Details are cached forever once fetched; a failed detail fetch
// degrades to the summary the caller already holds.
type MovieService interface {
	LoadMovies(ctx context.Context, forceRefresh bool) ([]models.Movie, error)
	LoadMovieDetail(ctx context.Context, summary *models.Movie) (models.Movie, error)
	LoadMovieDetailByID(ctx context.Context, id int64) (models.Movie, error)
	Search(ctx context.Context, query string, page int) (*models.MoviePage, error)
}

type movieService struct {
	client  client.Client
	cache   MovieCache
	log     logging.Logger
	metrics *metrics.Metrics

	// issued numbers list fetches in start order; persisted is the number
	// of the fetch whose snapshot is in the cache.
	issued    atomic.Uint64
	mu        sync.Mutex
	persisted uint64

	// summaries holds every movie seen in a list or search result.
	summaries map[int64]models.Movie
}

// NewMovieService returns a MovieService over the catalog client c and
// cache. Nil log and m fall back to no-op ones.
func NewMovieService(c client.Client, cache MovieCache, log logging.Logger, m *metrics.Metrics) MovieService {
	if log == nil {
		log = logging.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &movieService{
		client:    c,
		cache:     cache,
		log:       log,
		metrics:   m,
		summaries: make(map[int64]models.Movie),
	}
}

func (s *movieService) LoadMovies(ctx context.Context, forceRefresh bool) ([]models.Movie, error) {
	if !forceRefresh && !s.cache.IsListStale(ctx) {
		if snap, ok := s.cache.LoadMovieList(ctx); ok {
			s.log.Debug(ctx, "movie list served from cache", "count", len(snap.Movies), "fetched_at", snap.FetchedAt)
			movies := models.Truncate(snap.Movies, models.MaxListSize)
			s.remember(movies)
			return movies, nil
		}
	}

	seq := s.issued.Add(1)
	s.log.Debug(ctx, "fetching movie list", "seq", seq, "force", forceRefresh)

	page, err := s.client.FetchTopRated(ctx, 1)
	if err != nil {
		s.log.Debug(ctx, "movie list fetch failed", "seq", seq, "err", err)
		return nil, err
	}

	movies := models.Truncate(page.Results, models.MaxListSize)

	s.mu.Lock()
	if seq > s.persisted {
		s.cache.SaveMovieList(ctx, movies)
		s.persisted = seq
	} else {
		s.metrics.FencedWrites.Inc()
		s.log.Debug(ctx, "movie list not persisted, newer fetch already saved", "seq", seq, "persisted", s.persisted)
	}
	s.rememberLocked(movies)
	s.mu.Unlock()

	return movies, nil
}

func (s *movieService) LoadMovieDetail(ctx context.Context, summary *models.Movie) (models.Movie, error) {
	if summary == nil {
		return models.Movie{}, client.ErrInvalidRequest
	}
	return s.loadDetail(ctx, summary.ID, summary)
}

// LoadMovieDetailByID looks the movie up among the summaries seen so far
// and then behaves like LoadMovieDetail. An unknown id has no fallback.
func (s *movieService) LoadMovieDetailByID(ctx context.Context, id int64) (models.Movie, error) {
	s.mu.Lock()
	summary, ok := s.summaries[id]
	s.mu.Unlock()

	if !ok {
		return s.loadDetail(ctx, id, nil)
	}
	return s.loadDetail(ctx, id, &summary)
}

func (s *movieService) loadDetail(ctx context.Context, id int64, fallback *models.Movie) (models.Movie, error) {
	if m, ok := s.cache.LoadMovieDetail(ctx, id); ok {
		s.log.Debug(ctx, "movie detail served from cache", "id", id)
		return m, nil
	}

	m, err := s.client.FetchDetail(ctx, id)
	if err != nil {
		if fallback == nil {
			return models.Movie{}, err
		}
		s.metrics.DetailFallbacks.Inc()
		s.log.Warn(ctx, "movie detail fetch failed, showing summary", "id", id, "err", err)
		return *fallback, nil
	}

	s.cache.SaveMovieDetail(ctx, *m)
	return *m, nil
}

// Search queries the catalog directly; results are not cached but become
// known summaries for LoadMovieDetailByID.
func (s *movieService) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	res, err := s.client.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	s.remember(res.Results)
	return res, nil
}

func (s *movieService) remember(movies []models.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rememberLocked(movies)
}

func (s *movieService) rememberLocked(movies []models.Movie) {
	for _, m := range movies {
		s.summaries[m.ID] = m
	}
}
