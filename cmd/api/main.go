package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"restaurantapi/docs"
	"restaurantapi/internal/config"
	"restaurantapi/internal/database"
	"restaurantapi/internal/database/migration"
	handlers "restaurantapi/internal/http/handler"
	"restaurantapi/internal/http/middleware"
	"restaurantapi/internal/logger"
	"restaurantapi/internal/otel"
	"restaurantapi/internal/repository"
	"restaurantapi/internal/repository/memory"
	mongorepo "restaurantapi/internal/repository/mongo"
	"restaurantapi/internal/seed"
	"restaurantapi/internal/service"
	"restaurantapi/internal/storage"
)

// @title Restaurant API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server_exit", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return errors.Wrap(err, "initializing tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	if err := seedRepository(ctx, cfg, repo, log); err != nil {
		return err
	}

	svc := service.NewRestaurantService(repo, service.Options{
		ExcludedCity: cfg.Query.ExcludedCity,
		FixedCuisine: cfg.Query.FixedCuisine,
	})

	app, err := newApp(svc, repo, log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("server_listening", zap.String("addr", addr), zap.String("db_driver", cfg.Database.Driver))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "starting server")
	case <-ctx.Done():
	}

	log.Info("server_shutdown", zap.Int("timeout_sec", cfg.ShutdownTimeoutSec))
	return app.ShutdownWithTimeout(time.Duration(cfg.ShutdownTimeoutSec) * time.Second)
}

// openRepository returns the configured store and a func that releases it.
func openRepository(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (repository.RestaurantRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		return memory.NewRestaurantMemory(), func() {}, nil
	case config.DriverMongo:
		client, err := database.NewMongo(cfg.Database)
		if err != nil {
			return nil, nil, errors.Wrap(err, "connecting to database")
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Warn("db_disconnect_failed", zap.Error(err))
			}
		}

		coll := database.Collection(client, cfg.Database)
		if err := migration.EnsureIndexes(ctx, coll, log); err != nil {
			closeFn()
			return nil, nil, err
		}
		return mongorepo.NewRestaurantMongo(coll), closeFn, nil
	default:
		return nil, nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}

// seedRepository loads the configured seed source, preferring object storage over a local file.
func seedRepository(ctx context.Context, cfg *config.AppConfig, repo repository.RestaurantRepository, log *zap.Logger) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	var src seed.Source
	switch {
	case cfg.MinIO.Enabled() && cfg.Seed.ObjectKey != "":
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return errors.Wrap(err, "initializing object storage")
		}
		src = seed.ObjectSource{Store: objStore, Key: cfg.Seed.ObjectKey}
	case cfg.Seed.File != "":
		src = seed.FileSource{Path: cfg.Seed.File}
	default:
		log.Info("seed_skipped", zap.String("reason", "no seed source configured"))
		return nil
	}

	_, err := seed.NewSeeder(repo, src, cfg.Seed.DropExisting, log).Seed(ctx)
	return err
}

func newApp(svc service.RestaurantService, db handlers.Pinger, log *zap.Logger) (*fiber.App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, errors.Wrap(err, "registering metrics")
	}

	app := fiber.New(handlers.NewAppConfig(log))

	// RequestID adds/propagates X-Request-ID and stores a request-scoped logger
	app.Use(middleware.RequestID(log))
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svc, log)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app, nil
}
