package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/movie-night/movie-night/internal/auth"
	"github.com/movie-night/movie-night/internal/cache"
	"github.com/movie-night/movie-night/internal/config"
	httpserver "github.com/movie-night/movie-night/internal/http"
	"github.com/movie-night/movie-night/internal/metadata"
	"github.com/movie-night/movie-night/internal/repository"
	"github.com/movie-night/movie-night/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[movie-night] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	weeklyCache, err := cache.New(dbCtx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer weeklyCache.Close()
	if weeklyCache == nil {
		logger.Println("weekly-pick cache disabled (REDIS_URL unset)")
	}

	var metaClient metadata.Client
	if cfg.MetadataURL != "" {
		client, err := metadata.NewHTTPClient(cfg.MetadataURL, cfg.MetadataAPIKey, time.Duration(cfg.MetadataTimeoutSecs)*time.Second, logger)
		if err != nil {
			log.Fatalf("init metadata client: %v", err)
		}
		metaClient = client
	} else {
		logger.Println("metadata enrichment disabled (METADATA_URL unset)")
	}

	authSvc := auth.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMins)*time.Minute)
	repo := repository.New(st)
	server := httpserver.New(cfg, st, repo, authSvc, metaClient, weeklyCache, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}
