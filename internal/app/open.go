package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/config"
	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/notify"
	"github.com/mmynk/pocketledger/internal/settings"
	"github.com/mmynk/pocketledger/internal/storage"
	"github.com/mmynk/pocketledger/internal/storage/cached"
	"github.com/mmynk/pocketledger/internal/storage/sqlite"
)

// Open builds a session from configuration: a SQLite keyed store, optionally
// behind an LRU cache, with notifications logged and, when configured,
// published over AMQP. Metrics are registered on reg when it is non-nil.
func Open(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer, theme settings.Theme) (*Session, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Debug("Storage initialized", "database", cfg.DBPath)

	var kv storage.KV = db
	if cfg.CacheSize > 0 {
		c, err := cached.New(db, cfg.CacheSize)
		if err != nil {
			db.Close()
			return nil, err
		}
		kv = c
	}

	var recorder metrics.Recorder = metrics.Nop
	if reg != nil {
		p, err := metrics.NewPrometheus(reg)
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		recorder = p
	}

	sinks := []notify.Sink{notify.NewLogSink(logger)}
	var closers []io.Closer
	if cfg.AMQPURL != "" {
		amqpSink, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("failed to connect to broker: %w", err)
		}
		sinks = append(sinks, amqpSink)
		closers = append(closers, amqpSink)
	}

	return New(kv, Options{
		Latency: cfg.AuthLatency,
		Hasher:  auth.NewBcryptHasher(cfg.BcryptCost),
		Theme:   theme,
		Notify:  notify.Multi(sinks...),
		Logger:  logger,
		Metrics: recorder,
		Closers: closers,
	}), nil
}
