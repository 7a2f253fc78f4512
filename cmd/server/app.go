package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jwhitfield/baseline-api/internal/config"
	"github.com/jwhitfield/baseline-api/internal/platform/postgres"
	"github.com/jwhitfield/baseline-api/internal/service"
	"github.com/jwhitfield/baseline-api/internal/service/auth"
	"github.com/jwhitfield/baseline-api/internal/validation"
)

// application holds the constructed dependency graph. Everything is built
// once at startup and injected explicitly; no package-level singletons.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	pool         *pgxpool.Pool
	tokenService auth.TokenService
	userService  *service.UserService
	gate         *validation.Gate
}

// newApplication wires the application together: database pool, token
// service, password hasher, stores, services, and the validation gate.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	hasher := auth.NewBcryptHasher()
	userStore := postgres.NewUserStore(pool)
	userService := service.NewUserService(userStore, tokenService, hasher, hasher)

	return &application{
		config:       cfg,
		logger:       log,
		pool:         pool,
		tokenService: tokenService,
		userService:  userService,
		gate:         validation.New(),
	}, nil
}

// cleanup releases resources owned by the application.
func (app *application) cleanup() {
	if app.pool != nil {
		app.pool.Close()
	}
}
