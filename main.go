package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/agent"
	"github.com/ideaforge-io/ideaforge/internal/chain"
	"github.com/ideaforge-io/ideaforge/internal/handler"
	"github.com/ideaforge-io/ideaforge/internal/repository/kv"
	"github.com/ideaforge-io/ideaforge/internal/service"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	port := envOrDefault("PORT", "3001")
	dbPath := envOrDefault("DATABASE_PATH", "ideaforge.db")
	tokenSecret := os.Getenv("TOKEN_SECRET")
	if tokenSecret == "" {
		slog.Error("TOKEN_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(tokenSecret) < 32 {
		slog.Error("TOKEN_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	sessionTTL := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			slog.Error("SESSION_TTL_HOURS must be a positive integer", "value", v)
			os.Exit(1)
		}
		sessionTTL = time.Duration(parsed) * time.Hour
	}

	sweepInterval := 60 * time.Minute
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			slog.Error("SWEEP_INTERVAL_MINUTES must be a positive integer", "value", v)
			os.Exit(1)
		}
		sweepInterval = time.Duration(parsed) * time.Minute
	}

	st, err := store.Open(dbPath)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("store opened", "path", dbPath)

	users := kv.NewUserRepository(st)
	sessions := kv.NewSessionRepository(st)
	ideas := kv.NewIdeaRepository(st)
	projects := kv.NewProjectRepository(st)
	funding := kv.NewFundingRepository(st)
	records := kv.NewDataRecordRepository(st)
	stats := kv.NewStatsRepository(st)

	oracle := agent.New(os.Getenv("ORACLE_URL"))
	chainClient := chain.New(os.Getenv("CHAIN_RPC_URL"), os.Getenv("CHAIN_API_KEY"), os.Getenv("CHAIN_NETWORK"))

	authService := service.NewAuthService(users, sessions, tokenSecret, bcryptCost, sessionTTL)
	ideaService := service.NewIdeaService(ideas, oracle)
	projectService := service.NewProjectService(projects)
	fundingService := service.NewFundingService(funding, projects)
	dataService := service.NewDataService(records)
	profileService := service.NewProfileService(users, ideas, projects)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Ideas:    handler.NewIdeaHandler(ideaService),
		Projects: handler.NewProjectHandler(projectService),
		Funding:  handler.NewFundingHandler(fundingService),
		Profiles: handler.NewProfileHandler(profileService),
		DB:       handler.NewDBHandler(profileService, dataService, users, sessions, stats),
		Agents:   handler.NewAgentHandler(oracle),
		Chain:    handler.NewChainHandler(chainClient),
		Health:   handler.NewHealthHandler(),
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.CORS(handler.WithAuth(authService, mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Periodic purge of expired sessions. ResolveToken also removes
	// expired sessions opportunistically; the sweep bounds how long dead
	// sessions linger without traffic.
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := sessions.SweepExpired(ctx)
				if err != nil {
					slog.Error("session sweep failed", "error", err)
					continue
				}
				if removed > 0 {
					slog.Info("expired sessions removed", "count", removed)
				}
			}
		}
	}()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
