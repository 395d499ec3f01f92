package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

// ClickhouseStore writes journal entries to the event_journal table.
type ClickhouseStore struct {
	conn clickhouse.Conn
}

func NewClickhouseStore(dsn string) (*ClickhouseStore, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &ClickhouseStore{conn: conn}, nil
}

// InsertEntries stores entries in a single batch.
func (s *ClickhouseStore) InsertEntries(ctx context.Context, entries []model.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	const query = `
INSERT INTO event_journal (
	height,
	tx_hash,
	log_index,
	contract,
	kind,
	agreement_id,
	provider_id,
	outcome,
	error,
	recorded_at
) VALUES`

	batch, err := s.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare journal batch: %w", err)
	}

	for _, entry := range entries {
		if err := batch.Append(
			entry.Height,
			entry.TxHash,
			uint32(entry.LogIndex),
			entry.Contract,
			string(entry.Kind),
			entry.AgreementID,
			entry.ProviderID,
			string(entry.Outcome),
			entry.Error,
			entry.RecordedAt,
		); err != nil {
			return fmt.Errorf("append journal entry: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("insert journal entries: %w", err)
	}
	return nil
}

func (s *ClickhouseStore) Close() error {
	return s.conn.Close()
}
