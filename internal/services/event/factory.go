package event

import (
	"time"

	"github.com/rs/zerolog"

	"salesdrive/internal/store/repositories"
)

// WorkerConfig holds configuration for the event worker
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	DedupTTL     time.Duration
}

// DefaultWorkerConfig returns sensible defaults for the worker
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    50,
		DedupTTL:     24 * time.Hour,
	}
}

// System bundles the inbound webhook pipeline
type System struct {
	Ingestor  *Ingestor
	Processor *Processor
	Worker    *Worker
	Replay    *ReplayService
}

// NewEventProcessingSystem wires the pipeline over one repository
func NewEventProcessingSystem(
	eventRepo repositories.EventRepository,
	dedup repositories.Deduper,
	orders OrderFinder,
	config WorkerConfig,
	logger zerolog.Logger,
) *System {
	processor := NewProcessor(eventRepo, orders, logger)
	return &System{
		Ingestor:  NewIngestor(eventRepo, dedup, config.DedupTTL, logger),
		Processor: processor,
		Worker:    NewWorker(eventRepo, processor, config.PollInterval, config.BatchSize, logger),
		Replay:    NewReplayService(eventRepo, logger),
	}
}
