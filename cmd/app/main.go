package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/citamed/agenda-slots-service/internal/adapters/in/http"
	"github.com/citamed/agenda-slots-service/internal/adapters/in/rabbitmq"
	"github.com/citamed/agenda-slots-service/internal/adapters/out/cache"
	"github.com/citamed/agenda-slots-service/internal/adapters/out/logger"
	"github.com/citamed/agenda-slots-service/internal/adapters/out/postgres"
	"github.com/citamed/agenda-slots-service/internal/config"
	"github.com/citamed/agenda-slots-service/internal/core/ports/out"
	"github.com/citamed/agenda-slots-service/internal/core/services"
)

func main() {
	// Local development reads a .env file; other environments rely on real
	// environment variables
	godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewZapLogger(string(cfg.App.Env), cfg.App.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPostgresPool(ctx, cfg)
	if err != nil {
		log.Error("app.postgres.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, mainLogger.WithModule("Migrations")); err != nil {
		log.Error("app.migrations.failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	agendaAdapter := postgres.NewAgendaAdapter(pool, mainLogger)

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger)
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	slotEngineService := services.NewSlotEngineService(
		agendaAdapter,
		cacheAdapter,
		mainLogger,
		cfg,
	)

	router := gin.Default()
	controller := http.NewSlotEngineController(slotEngineService, cfg)
	controller.RegisterRoutes(router)

	// The listener only exists to keep the cache honest, so it is pointless
	// without one
	if cfg.RabbitMQ.Enabled && cacheAdapter != nil {
		listener, err := rabbitmq.NewAppointmentListener(
			cacheAdapter,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
