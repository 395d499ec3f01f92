// Package journal keeps an append-only record of the lifecycle events handled by the scanner.
package journal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/pkg/batcher"
)

// Nop discards entries. It is used when no journal store is configured.
type Nop struct{}

func (Nop) Record(model.JournalEntry) {}

// Journal buffers entries and writes them to a Store in batches. Recording never blocks: an
// entry that does not fit into the buffer is dropped and counted.
type Journal struct {
	store   Store
	metrics Metrics
	logger  *zap.Logger
	batcher *batcher.Batcher[model.JournalEntry]
}

// New creates a Journal. Call Start before Record.
func New(store Store, metrics Metrics, logger *zap.Logger, cfg batcher.Config) *Journal {
	j := &Journal{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
	j.batcher = batcher.New(logger, j.flush, cfg)
	return j
}

// Start runs the background writer until ctx is done or Stop is called.
func (j *Journal) Start(ctx context.Context) {
	j.batcher.Start(ctx)
}

// Stop writes the buffered entries and stops the writer.
func (j *Journal) Stop() {
	j.batcher.Stop()
}

// Record queues entry for writing.
func (j *Journal) Record(entry model.JournalEntry) {
	if j.batcher.TryAdd(entry) {
		return
	}
	j.metrics.ObserveDropped()
	j.logger.Warn("journal entry dropped",
		zap.Uint64("height", entry.Height),
		zap.String("tx_hash", entry.TxHash),
		zap.Uint32("agreement_id", entry.AgreementID),
	)
}

func (j *Journal) flush(ctx context.Context, entries []model.JournalEntry) error {
	started := time.Now()
	err := j.store.InsertEntries(ctx, entries)
	j.metrics.ObserveFlush(err, len(entries), started)
	return err
}
