// Command server runs the pathlight career-intelligence gateway.
//
// Configuration is layered: built-in defaults, a YAML config file
// (path via -config or PATHLIGHT_CONFIG), then PATHLIGHT_* environment
// overrides. The only required setting is the upstream backend URL
// (upstream.base_url / PATHLIGHT_BACKEND_URL).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pathlight-ai/pathlight/pkg/auth"
	"github.com/pathlight-ai/pathlight/pkg/auth/noop"
	"github.com/pathlight-ai/pathlight/pkg/auth/session"
	"github.com/pathlight-ai/pathlight/pkg/auth/static"
	"github.com/pathlight-ai/pathlight/pkg/config"
	"github.com/pathlight-ai/pathlight/pkg/observability"
	"github.com/pathlight-ai/pathlight/pkg/profile"
	"github.com/pathlight-ai/pathlight/pkg/profile/memory"
	"github.com/pathlight-ai/pathlight/pkg/profile/postgres"
	"github.com/pathlight-ai/pathlight/pkg/transport"
	"github.com/pathlight-ai/pathlight/pkg/upstream"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Upstream client.
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	defer client.Close()

	// Profile store.
	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Session provider chain.
	chain, err := buildChain(cfg)
	if err != nil {
		return err
	}

	limiter := auth.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateLimitBurst)

	handler := transport.NewHandler(client, store, transport.Config{
		LongTimeout: cfg.Upstream.LongTimeout,
	})

	mux := handler.Routes()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.HealthCheck(ctx); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	if cfg.Observability.Metrics.Enabled {
		mux.Handle("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	root := auth.Middleware(chain, limiter, auth.DefaultBypassEndpoints)(
		observability.MetricsMiddleware(mux),
	)

	srv := transport.NewServer(root,
		transport.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transport.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)

	slog.Info("pathlight starting",
		"port", cfg.Server.Port,
		"backend", cfg.Upstream.BaseURL,
		"storage", cfg.Storage.Type,
		"auth", cfg.Auth.Type,
	)

	return srv.ListenAndServe()
}

func buildStore(cfg *config.Config) (profile.Store, error) {
	switch cfg.Storage.Type {
	case "postgres":
		store, err := postgres.New(context.Background(), postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, fmt.Errorf("creating postgres store: %w", err)
		}
		slog.Info("storage enabled", "type", "postgres")
		return store, nil
	default:
		slog.Info("storage enabled", "type", "memory")
		return memory.New(), nil
	}
}

func buildChain(cfg *config.Config) (*auth.Chain, error) {
	switch cfg.Auth.Type {
	case "session":
		return &auth.Chain{Providers: []auth.SessionProvider{
			session.New(session.Config{
				Secret: cfg.Auth.Secret,
				Issuer: cfg.Auth.Issuer,
			}),
		}}, nil
	case "static":
		entries := make([]static.RawEntry, 0, len(cfg.Auth.Tokens))
		for _, t := range cfg.Auth.Tokens {
			entries = append(entries, static.RawEntry{
				Token:      t.Token,
				Subject:    t.Subject,
				Credential: t.Credential,
			})
		}
		return &auth.Chain{Providers: []auth.SessionProvider{static.New(entries)}}, nil
	case "none":
		slog.Warn("auth disabled, all requests resolve to the dev identity")
		return &auth.Chain{Providers: []auth.SessionProvider{&noop.Provider{}}}, nil
	default:
		return nil, fmt.Errorf("unknown auth type %q", cfg.Auth.Type)
	}
}
