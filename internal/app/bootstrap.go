package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"planboard/internal/config"
	"planboard/internal/database"
	"planboard/internal/database/postgres"
	"planboard/internal/database/schema"
	"planboard/internal/database/sqlite"
	"planboard/internal/delivery/http/handler"
	"planboard/internal/delivery/http/middleware"
	"planboard/internal/delivery/http/routes"
	"planboard/internal/domain/resource"
	"planboard/internal/infrastructure/cache"
	"planboard/internal/pkg/password"
	"planboard/internal/pkg/token"
	"planboard/internal/repository"
	ucauth "planboard/internal/usecase/auth"
)

type App struct {
	Fiber *fiber.App
	DB    database.DB
}

// Bootstrap connects the configured backend, initializes the schema, and
// wires every handler. The returned cleanup closes shared resources.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	if err := schema.Init(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}

	listCache := cache.NewRedis(cfg.Cache, logger)

	passwords := password.NewService(cfg.Auth.BcryptCost)
	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	users := repository.NewUserRepository(db)
	authSvc := ucauth.NewService(users, passwords, tokens)

	mounted := make([]routes.MountedResource, 0, len(resource.All)+1)
	for _, d := range resource.All {
		repo := repository.NewResourceRepository(db, d)
		if d.Table == resource.CalendarEvents.Table {
			// The canonical surface speaks the short field names; the legacy
			// one keeps the raw column names. Both write the same table.
			mounted = append(mounted,
				routes.MountedResource{
					Base:    "/events",
					Handler: handler.NewResourceHandler(repo, listCache, cfg.Cache.ListTTL, resource.EventRenames),
				},
				routes.MountedResource{
					Base:    "/" + d.Name,
					Handler: handler.NewResourceHandler(repo, listCache, cfg.Cache.ListTTL, nil),
				},
			)
			continue
		}
		mounted = append(mounted, routes.MountedResource{
			Base:    "/" + d.Name,
			Handler: handler.NewResourceHandler(repo, listCache, cfg.Cache.ListTTL, nil),
		})
	}

	registry := routes.NewRegistry(
		handler.NewAuthHandler(authSvc),
		handler.NewHealthHandler(db),
		handler.NewProjectDescriptionHandler(repository.NewProjectDescriptionRepository(db)),
		mounted,
		middleware.NewAuthMiddleware(tokens, cfg.Auth.AuthRequired),
	)

	// The access log must wrap the error middleware so it observes the
	// status actually written for failed requests.
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(logger).Middleware())
	registry.Register(f)

	cleanup := func() error {
		_ = listCache.Close()
		return db.Close()
	}

	return &App{Fiber: f, DB: db}, cleanup, nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Connect(ctx, cfg)
	case "sqlite", "":
		return sqlite.Connect(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
