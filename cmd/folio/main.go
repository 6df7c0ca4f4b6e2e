package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/config"
	dbRedis "github.com/kailas-cloud/folio/internal/db/redis"
	logpkg "github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/metrics"
	commentrepo "github.com/kailas-cloud/folio/internal/repository/comment"
	contentrepo "github.com/kailas-cloud/folio/internal/repository/content"
	"github.com/kailas-cloud/folio/internal/repository/outbox"
	voterepo "github.com/kailas-cloud/folio/internal/repository/vote"
	chiTransport "github.com/kailas-cloud/folio/internal/transport/chi"
	commentuc "github.com/kailas-cloud/folio/internal/usecase/comment"
	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	searchuc "github.com/kailas-cloud/folio/internal/usecase/search"
	"github.com/kailas-cloud/folio/internal/usecase/spam"
	voteuc "github.com/kailas-cloud/folio/internal/usecase/vote"
	"github.com/kailas-cloud/folio/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting folio API server",
		zap.String("build", version.String()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("votes_backend", cfg.Votes.Backend),
	)

	// rueidis speaks both Redis and Valkey.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Password:   cfg.Database.Password,
		ClientName: "folio-" + version.Version,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	prefix := cfg.Storage.KeyPrefix
	comments := commentrepo.New(store, prefix)
	content := contentrepo.New(store, prefix)

	ledger, votesHealth, closeLedger, err := openLedger(cfg.Votes, store, prefix, logger)
	if err != nil {
		logger.Fatal("Failed to open vote ledger", zap.Error(err))
	}
	defer closeLedger()
	content.WithVotes(ledger)

	pool, err := ants.NewPool(cfg.Search.Workers, ants.WithPreAlloc(true))
	if err != nil {
		logger.Fatal("Failed to create search pool", zap.Error(err))
	}
	defer pool.Release()

	healthOpts := []healthuc.Option{}
	if votesHealth != nil {
		healthOpts = append(healthOpts, healthuc.WithComponent(healthuc.ComponentVotes, votesHealth))
	}

	services := chiTransport.Services{
		Search: searchuc.New(content, pool).
			WithLimits(cfg.Search.MaxResults, cfg.Search.SuggestionLimit, cfg.Search.TagLimit),
		Votes: voteuc.New(ledger, voterepo.NewTargets(content, comments)),
		Comments: commentuc.New(comments, content,
			spam.NewClassifier(cfg.Spam.Threshold, cfg.Spam.CommentWeights())),
		Contact: contactuc.New(outbox.New(store, prefix),
			spam.NewClassifier(cfg.Spam.Threshold, cfg.Spam.ContactWeights()),
			contactuc.Config{
				From:  cfg.Contact.From,
				Owner: cfg.Contact.Owner,
				Info: contactuc.Info{
					Location:     cfg.Contact.Location,
					Availability: cfg.Contact.Availability,
					ResponseTime: cfg.Contact.ResponseTime,
				},
			}),
		Health: healthuc.New(store, healthOpts...),
	}

	server := chiTransport.NewServer(services,
		chiTransport.NewVoterIdentity(cfg.Votes.VoterSalt), cfg.Auth.AdminKeys, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware("/metrics"))
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openLedger selects the vote backend. The returned pinger is nil when the
// backend has no health of its own; close is always safe to call.
func openLedger(
	cfg config.VotesConfig,
	store *dbRedis.Store,
	prefix string,
	logger *zap.Logger,
) (voteuc.Ledger, healthuc.Pinger, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.VotesMemory:
		logger.Warn("Vote ledger is in memory; tallies are lost on restart")
		return voteuc.NewMemoryLedger(), nil, noop, nil
	case config.VotesRedis:
		return voterepo.NewRedisLedger(store, prefix), nil, noop, nil
	case config.VotesBadger:
		l, err := voterepo.OpenBadgerLedger(cfg.BadgerPath, logger)
		if err != nil {
			return nil, nil, noop, err
		}
		return l, l, func() {
			if err := l.Close(); err != nil {
				logger.Error("Failed to close badger ledger", zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, noop, fmt.Errorf("unknown votes backend %q", cfg.Backend)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"code":    chiTransport.CodeInternal,
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request. The client address is
			// omitted: votes are keyed by a salted hash of it.
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
