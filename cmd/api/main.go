package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/99minutos/user-accounts/internal/api"
	"github.com/99minutos/user-accounts/internal/api/handler"
	"github.com/99minutos/user-accounts/internal/core/ports"
	"github.com/99minutos/user-accounts/internal/core/service"
	"github.com/99minutos/user-accounts/internal/identity"
	"github.com/99minutos/user-accounts/internal/infrastructure/db/mongo"
	"github.com/99minutos/user-accounts/internal/infrastructure/db/postgres"
	"github.com/99minutos/user-accounts/internal/infrastructure/db/redis"
	"github.com/99minutos/user-accounts/internal/pkg/config"
	"github.com/99minutos/user-accounts/pkg/logger"
)

// userStore is what main needs from either backend.
type userStore struct {
	users ports.UserRepository
	roles ports.UserRoleRepository
	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-accounts",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open user store")
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing user store")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	roleService := service.NewUserRoleService(store.roles)
	userService := service.NewUserService(store.users, roleService, logger.Component("user_service"))

	accounts := identity.NewManager(
		identity.NewStore(userService, roleService),
		identity.NewBcryptHasher(),
		logger.Component("identity"),
	)
	signIn := identity.NewSignInManager(
		accounts,
		redis.NewTokenStore(rdb),
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		logger.Component("signin"),
	)

	if cfg.Admin.Email != "" {
		if _, err := identity.EnsureAdmin(ctx, accounts, roleService, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin account")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Accounts: accounts,
		SignIn:   signIn,
		Tokens:   signIn,
		Users:    userService,
		HealthChecks: map[string]handler.HealthCheck{
			cfg.StoreDriver: store.ping,
			"redis":         pingRedis(rdb),
		},
	}, logger.Component("http"))

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("user accounts API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*userStore, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		return &userStore{users: s.Users, roles: s.Roles, ping: s.Ping, close: s.Close}, nil
	default:
		s, err := mongo.Open(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "user-accounts",
		})
		if err != nil {
			return nil, err
		}
		return &userStore{users: s.Users, roles: s.Roles, ping: s.Ping, close: s.Close}, nil
	}
}

func pingRedis(rdb *goredis.Client) handler.HealthCheck {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
