package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/pkg/safe"
)

// Marker looks up the processed marker for a transaction, or for the whole block when txHash is
// model.BlockSentinel. found is false when no marker was written.
func (l *Ledger) Marker(ctx context.Context, height uint64, txHash string) (_ model.ProcessedMarker, found bool, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("marker", err, start)
	}()

	h, err := safe.Int64(height)
	if err != nil {
		return model.ProcessedMarker{}, false, fmt.Errorf("marker height: %w", err)
	}

	query := l.rebind(`SELECT is_processed FROM processed_markers WHERE height = ? AND tx_hash = ?`)

	var processed bool
	if err = l.db.GetContext(ctx, &processed, query, h, txHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProcessedMarker{}, false, nil
		}
		return model.ProcessedMarker{}, false, fmt.Errorf("select marker %d/%s: %w", height, txHash, err)
	}
	return model.ProcessedMarker{Height: height, TxHash: txHash, Processed: processed}, true, nil
}

// MarkProcessed records a transaction (or the whole block) as handled. Repeating it is a no-op.
func (l *Ledger) MarkProcessed(ctx context.Context, height uint64, txHash string) (err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("mark_processed", err, start)
	}()

	h, err := safe.Int64(height)
	if err != nil {
		return fmt.Errorf("marker height: %w", err)
	}

	query := l.rebind(`
INSERT INTO processed_markers (height, tx_hash, is_processed) VALUES (?, ?, ?)
ON CONFLICT (height, tx_hash) DO UPDATE SET is_processed = excluded.is_processed`)

	if _, err = l.db.ExecContext(ctx, query, h, txHash, true); err != nil {
		return fmt.Errorf("upsert marker %d/%s: %w", height, txHash, err)
	}
	return nil
}

// LatestProcessedHeight returns the highest height carrying a processed marker.
// ok is false when nothing was processed yet.
func (l *Ledger) LatestProcessedHeight(ctx context.Context) (_ uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("latest_processed_height", err, start)
	}()

	query := l.rebind(`SELECT MAX(height) FROM processed_markers WHERE is_processed = ?`)

	var height sql.NullInt64
	if err = l.db.GetContext(ctx, &height, query, true); err != nil {
		return 0, false, fmt.Errorf("select latest processed height: %w", err)
	}
	if !height.Valid {
		return 0, false, nil
	}

	h, err := safe.Uint64(height.Int64)
	if err != nil {
		return 0, false, fmt.Errorf("latest processed height: %w", err)
	}
	return h, true, nil
}

// PruneMarkers deletes markers below the given height. The highest block sentinel is always kept
// so the resume position survives pruning.
func (l *Ledger) PruneMarkers(ctx context.Context, below uint64) (_ int64, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("prune_markers", err, start)
	}()

	h, err := safe.Int64(below)
	if err != nil {
		return 0, fmt.Errorf("prune height: %w", err)
	}

	query := l.rebind(`
DELETE FROM processed_markers
WHERE height < ?
  AND NOT (tx_hash = ? AND height = (SELECT MAX(height) FROM processed_markers WHERE tx_hash = ?))`)

	res, err := l.db.ExecContext(ctx, query, h, model.BlockSentinel, model.BlockSentinel)
	if err != nil {
		return 0, fmt.Errorf("delete markers below %d: %w", below, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruned markers count: %w", err)
	}
	return n, nil
}
