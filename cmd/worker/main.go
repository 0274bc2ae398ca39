package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/config"
	"github.com/ariefcatur/zenzee-admin/internal/events"
	"github.com/ariefcatur/zenzee-admin/internal/inventory"
	kafkax "github.com/ariefcatur/zenzee-admin/internal/kafka"
	"github.com/ariefcatur/zenzee-admin/internal/logging"
	"github.com/ariefcatur/zenzee-admin/internal/mailer"
	"github.com/ariefcatur/zenzee-admin/internal/notify"
	"github.com/ariefcatur/zenzee-admin/internal/postgres"
	"github.com/ariefcatur/zenzee-admin/internal/redisx"
	"github.com/ariefcatur/zenzee-admin/internal/settings"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// worker runs the change-feed consumers: order notifications, the inventory
// snapshot refresher and settings cache invalidation.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName+"-worker")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN, int32(cfg.PostgresPool))
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	store := &settings.CachedStore{
		Next:     &settings.PostgresStore{DB: db},
		Redis:    rdb,
		TTL:      cfg.SettingsCacheTTL,
		Producer: cfg.ServiceName + "-worker",
		Log:      logger,
	}

	mail := mailer.New(cfg.EmailFunctionURL, cfg.EmailFunctionKey, 10*time.Second, logger)
	notifier := &notify.Service{
		Settings:     store,
		Redis:        rdb,
		Mailer:       mail,
		DefaultPhone: cfg.WhatsAppPhone,
		Log:          logger,
	}
	inv := &inventory.Service{
		Repo:        &inventory.Repo{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-worker",
		Log:         logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	run := func(group, topic string, workers int, h kafkax.Handler) {
		c := kafkax.NewConsumer(cfg.KafkaBrokers, group, topic, workers, logger)
		g.Go(func() error {
			logger.Info("consumer started", zap.String("group", group), zap.String("topic", topic), zap.Int("workers", workers))
			return c.Start(gctx, h)
		})
	}
	run(cfg.NotifyGroup, events.TopicOrderCreated, cfg.Workers, notifier.HandleOrderCreated)
	// one worker keeps snapshot rebuilds in feed order
	run(cfg.InventoryGroup, events.TopicProductsChanged, 1, inv.HandleProductChanged)
	run(cfg.ServiceName+"-settings-cache", events.TopicSettingsChanged, 1, store.HandleSettingChanged)

	if err := g.Wait(); err != nil {
		logger.Error("consumer exit", zap.Error(err))
	}
	logger.Info("draining mail")
	mail.Wait()
}
