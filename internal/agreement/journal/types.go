package journal

import (
	"context"
	"time"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		InsertEntries(ctx context.Context, entries []model.JournalEntry) error
	}

	Metrics interface {
		ObserveFlush(err error, rows int, started time.Time)
		ObserveDropped()
	}
)
