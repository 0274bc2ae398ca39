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

	"github.com/ariefcatur/zenzee-admin/internal/config"
	"github.com/ariefcatur/zenzee-admin/internal/events"
	"github.com/ariefcatur/zenzee-admin/internal/httpx"
	"github.com/ariefcatur/zenzee-admin/internal/inventory"
	kafkax "github.com/ariefcatur/zenzee-admin/internal/kafka"
	"github.com/ariefcatur/zenzee-admin/internal/logging"
	"github.com/ariefcatur/zenzee-admin/internal/media"
	"github.com/ariefcatur/zenzee-admin/internal/notify"
	"github.com/ariefcatur/zenzee-admin/internal/orders"
	"github.com/ariefcatur/zenzee-admin/internal/postgres"
	"github.com/ariefcatur/zenzee-admin/internal/redisx"
	"github.com/ariefcatur/zenzee-admin/internal/sections"
	"github.com/ariefcatur/zenzee-admin/internal/settings"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN, int32(cfg.PostgresPool))
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	orderFeed := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicOrderCreated, 1024, logger)
	productFeed := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicProductsChanged, 256, logger)
	settingsFeed := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicSettingsChanged, 256, logger)
	producers := []*kafkax.Producer{orderFeed, productFeed, settingsFeed}
	for _, p := range producers {
		p.Start()
	}

	store := &settings.CachedStore{
		Next:     &settings.PostgresStore{DB: db},
		Redis:    rdb,
		TTL:      cfg.SettingsCacheTTL,
		Feed:     settingsFeed,
		Producer: cfg.ServiceName,
		Log:      logger,
	}
	orderStore := settings.SectionOrderStore{Store: store}

	sessions := sections.NewSessions(orderStore, cfg.HistoryLimit, cfg.SessionTTL, logger)
	sessions.Start(time.Minute)

	var uploader media.Uploader
	if cfg.CloudinaryURL != "" {
		cu, err := media.NewCloudinary(cfg.CloudinaryURL, "zenzee")
		if err != nil {
			logger.Fatal("cloudinary", zap.Error(err))
		}
		uploader = cu
	} else {
		logger.Warn("CLOUDINARY_URL not set; media uploads disabled")
	}
	limits := media.DefaultLimits(cfg.MaxImageMB, cfg.MaxVideoMB)

	router := httpx.NewRouter()
	(&httpx.SectionsHandler{Sessions: sessions, Collections: orderStore, Log: logger}).Register(router)
	(&httpx.SettingsHandler{Store: store, Log: logger}).Register(router)
	(&httpx.InventoryHandler{Service: &inventory.Service{
		Repo:        &inventory.Repo{DB: db},
		Redis:       rdb,
		Feed:        productFeed,
		ServiceName: cfg.ServiceName,
		Log:         logger,
	}}).Register(router)
	(&httpx.MediaHandler{
		Service:  &media.Service{Limits: limits, Uploader: uploader, Settings: store, Log: logger},
		MaxBytes: limits.Max(),
		Log:      logger,
	}).Register(router)
	(&httpx.OrdersHandler{
		Repo:          &orders.Repo{DB: db},
		Producer:      orderFeed,
		Redis:         rdb,
		Notifications: &notify.Service{Redis: rdb, Log: logger},
		Service:       cfg.ServiceName,
		Log:           logger,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)
	sessions.Close()
	sessions.Wait()
	for _, p := range producers {
		p.Close()
	}
	for _, p := range producers {
		p.WaitClosed()
	}
}
