// feed-logger tails the location ping topic and logs each event. Used to
// verify the Kafka pipeline end to end without attaching a real consumer.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/internal/infra"
)

const (
	pingTopic     = "lettertrail.player.location.pinged"
	consumerGroup = "lettertrail-feed-logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("feed logger failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.KafkaEnabled {
		return fmt.Errorf("KAFKA_ENABLED must be true for the feed logger")
	}

	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, pingTopic, consumerGroup, cfg.KafkaEnabled, logger)
	defer consumer.Close()

	logger.Info("feed-logger starting", "topic", pingTopic, "group", consumerGroup)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("feed-logger shutting down")
				return nil
			}
			logger.Error("read message", "error", err)
			continue
		}

		var loc domain.PlayerLocation
		if err := json.Unmarshal(msg.Value, &loc); err != nil {
			logger.Warn("malformed ping payload", "error", err, "offset", msg.Offset)
			continue
		}

		logger.Info("location ping",
			"player_id", loc.PlayerID,
			"latitude", loc.Latitude,
			"longitude", loc.Longitude,
			"recorded_at", loc.RecordedAt,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
	}
}
