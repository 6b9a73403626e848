// Package worker consumes queued SEO jobs from Kafka and executes them
// out of band from the HTTP request cycle.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"seopilot/internal/config"
	"seopilot/internal/logger"
	"seopilot/internal/runner"
	"seopilot/internal/sitemap"
)

const (
	Topic     = "seo-jobs"
	groupID   = "seopilot-worker"
	EventRun  = "seo.run"
	EventPing = "seo.ping"
)

// Event is the wire format for queued jobs.
type Event struct {
	Type      string    `json:"type"`
	BatchSize int       `json:"batch_size,omitempty"`
	DryRun    bool      `json:"dry_run,omitempty"`
	Force     bool      `json:"force,omitempty"`
	Rebuild   bool      `json:"rebuild,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PingFunc runs the search-engine ping fan-out for EventPing jobs. The
// caller bakes in the sitemap URL and sink toggles.
type PingFunc func(ctx context.Context) []sitemap.PingResult

type Worker struct {
	config *config.Config
	logger *logger.Logger
	reader *kafka.Reader
	runner *runner.Runner
	ping   PingFunc
}

func New(cfg *config.Config, log *logger.Logger, r *runner.Runner, ping PingFunc) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        groupID,
		Topic:          Topic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config: cfg,
		logger: log,
		reader: reader,
		runner: r,
		ping:   ping,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for SEO jobs...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		var event Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		if err := w.process(event); err != nil {
			w.logger.Error("Failed to process event: %v", err)
			continue
		}

		w.logger.Debug("Event processed successfully")
	}
}

func (w *Worker) process(event Event) error {
	switch event.Type {
	case EventRun:
		opts := w.runner.DefaultOptions()
		if event.BatchSize > 0 {
			opts.BatchSize = event.BatchSize
		}
		if event.DryRun {
			opts.DryRun = true
		}
		if event.Force {
			opts.ForceOverwrite = true
		}
		if event.Rebuild {
			opts.RebuildKeywords = true
		}
		summary, err := w.runner.Run(context.Background(), opts)
		if err != nil {
			if err == runner.ErrLocked {
				return nil
			}
			return err
		}
		w.logger.Info("Queued run %s finished: %d updated, %d unchanged, %d errors",
			summary.RunID, summary.Updated, summary.NoChange, summary.Errors)
		return nil

	case EventPing:
		if w.ping == nil {
			w.logger.Warn("No ping sinks configured, dropping ping job")
			return nil
		}
		for _, res := range w.ping(context.Background()) {
			w.logger.Info("Ping %s ok=%t", res.Sink, res.OK)
		}
		return nil

	default:
		w.logger.Warn("Unknown event type: %s", event.Type)
		return nil
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
