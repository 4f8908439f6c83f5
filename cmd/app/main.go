package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/servicehub/api"
	"github.com/Domenick1991/servicehub/config"
	"github.com/Domenick1991/servicehub/internal/bootstrap"
	"github.com/Domenick1991/servicehub/internal/cache"
	"github.com/Domenick1991/servicehub/internal/jobs"
	"github.com/Domenick1991/servicehub/internal/kafka"
	"github.com/Domenick1991/servicehub/internal/logger"
	"github.com/Domenick1991/servicehub/internal/repository"
	"github.com/Domenick1991/servicehub/internal/service/auth"
	"github.com/Domenick1991/servicehub/internal/service/booking"
	"github.com/Domenick1991/servicehub/internal/service/contact"
	"github.com/Domenick1991/servicehub/internal/service/providers"
	"github.com/Domenick1991/servicehub/internal/session"
	"github.com/Domenick1991/servicehub/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.Log, "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open store")
	}
	defer closeStore()

	prefix := cfg.Storage.KeyPrefix
	if cfg.Storage.Seed {
		if err := store.Seed(ctx, st, prefix); err != nil {
			log.Fatal().Err(err).Msg("seed store")
		}
	}

	userRepo := repository.NewUserRepository(st, prefix)
	providerRepo := repository.NewProviderRepository(st, prefix)
	bookingRepo := repository.NewBookingRepository(st, prefix)
	contactRepo := repository.NewContactRepository(st, prefix)

	var (
		providerCache providers.ProviderCache
		bookingOpts   = []booking.BookingServiceOption{booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic)}
	)
	slotLockTTL := time.Duration(cfg.Booking.SlotLockTTLSeconds) * time.Second
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ProvidersCacheTTL)*time.Second)
		defer redisCache.Close()
		providerCache = redisCache
		if cfg.Booking.ExclusiveSlots {
			bookingOpts = append(bookingOpts, booking.WithExclusiveSlots(redisCache, slotLockTTL))
		}
	} else if cfg.Booking.ExclusiveSlots {
		bookingOpts = append(bookingOpts, booking.WithExclusiveSlots(nil, slotLockTTL))
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer kafkaProducer.Close()
		if err := kafkaProducer.CheckConnection(ctx); err != nil {
			log.Warn().Err(err).Msg("kafka unavailable, booking events may be dropped")
		}
		producer = kafkaProducer
	}

	tokens := session.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)
	authService := auth.NewAuthService(userRepo, st, prefix, tokens)
	providerService := providers.NewProviderService(providerRepo, providerCache)
	contactService := contact.NewContactService(contactRepo)
	bookingService := booking.NewBookingService(
		bookingRepo,
		providerRepo,
		userRepo,
		producer,
		cfg.Kafka.BookingTopic,
		cfg.Booking.PaymentDelay(),
		bookingOpts...,
	)
	defer bookingService.Close()

	sweep, err := jobs.StartPaymentSweep(bookingService, cfg.Booking.OverduePaymentSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("start payment sweep")
	}
	defer sweep.Stop()

	if err := bootstrap.Run(ctx, cfg, api.Services{
		Auth:      authService,
		Providers: providerService,
		Bookings:  bookingService,
		Contact:   contactService,
	}); err != nil {
		log.Error().Err(err).Msg("server error")
	}
}
