// Command catalogmock runs a local stand-in for the remote movie catalog.
//
//	catalogmock -a :8089 -k devkey
//
// then start the client with -u http://localhost:8089 -k devkey.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/moviekeeper/internal/catalogmock"
	"github.com/dmitrijs2005/moviekeeper/internal/logging"
)

func main() {
	addr := flag.String("a", ":8089", "listen address")
	apiKey := flag.String("k", "", "required api_key (empty accepts any)")
	level := flag.String("l", "info", "log level")
	flag.Parse()

	ctx := context.Background()
	log := logging.New(os.Stderr, *level)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           catalogmock.New(catalogmock.Fixtures(), *apiKey).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(ctx, "catalog mock listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info(ctx, "catalog mock stopped")
}
