package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/servicehub/config"
	"github.com/Domenick1991/servicehub/internal/email"
	"github.com/Domenick1991/servicehub/internal/kafka"
	"github.com/Domenick1991/servicehub/internal/logger"
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
	logger.Setup(cfg.Log, "worker")

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		log.Fatal().Msg("kafka brokers and notifications topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(cfg.SMTP)

	log.Info().Str("topic", cfg.Kafka.NotificationsTopic).Msg("worker started")
	err = consumer.Consume(ctx, kafka.BookingEventHandler(func(ctx context.Context, event kafka.BookingEvent) error {
		if err := emailSender.Send(ctx, event); err != nil {
			// A failed mail must not stall the partition.
			log.Error().Err(err).Str("booking_id", event.BookingID).Msg("send notification")
		}
		return nil
	}))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("consumer stopped")
		return
	}
	log.Info().Msg("worker stopped")
}
