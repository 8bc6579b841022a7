package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/moviekeeper/internal/client/cache"
	"github.com/dmitrijs2005/moviekeeper/internal/client/client"
	"github.com/dmitrijs2005/moviekeeper/internal/client/config"
	"github.com/dmitrijs2005/moviekeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/moviekeeper/internal/client/services"
	"github.com/dmitrijs2005/moviekeeper/internal/logging"
	"github.com/dmitrijs2005/moviekeeper/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config       *config.Config
	log          logging.Logger
	authService  services.AuthService
	movieService services.MovieService

	store    kvstore.Store
	registry *prometheus.Registry

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured store and wires the cache, the catalog client
// and the services on top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(os.Stderr, c.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, err := kvstore.Open(ctx, kvstore.Options{
		Backend:    c.StoreBackend,
		SQLitePath: c.DatabasePath,
		RedisURL:   c.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening %s store: %w", c.StoreBackend, err)
	}

	ch := cache.New(store,
		cache.WithFreshness(c.ListFreshness),
		cache.WithDetailMemory(c.DetailMemoryCacheSize),
		cache.WithLogger(log.With("component", "cache")),
		cache.WithMetrics(m),
	)

	api := client.NewHTTPClient(client.Options{
		BaseURL:       c.CatalogBaseURL,
		APIKey:        c.APIKey,
		Language:      c.Language,
		RateLimit:     c.RateLimit,
		RateBurst:     c.RateBurst,
		RetryAttempts: c.RetryAttempts,
		Metrics:       m,
		Logger:        log.With("component", "catalog"),
	})

	return &App{
		config:       c,
		log:          log,
		authService:  services.NewAuthService(ch, log.With("component", "auth")),
		movieService: services.NewMovieService(api, ch, log.With("component", "movies"), m),
		store:        store,
		registry:     reg,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Run serves /metrics when configured and blocks in the REPL until the
// user leaves.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Warn(ctx, "error closing store", "err", err)
		}
	}()

	if a.config.MetricsAddr != "" {
		srv := a.startMetricsServer(ctx)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	a.Root(ctx)
}

func (a *App) metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))
	return mux
}

func (a *App) startMetricsServer(ctx context.Context) *http.Server {
	srv := &http.Server{Addr: a.config.MetricsAddr, Handler: a.metricsMux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.log.Info(ctx, "metrics listener started", "addr", a.config.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "metrics listener failed", "err", err)
		}
	}()
	return srv
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsLoggedIn(ctx)
}
