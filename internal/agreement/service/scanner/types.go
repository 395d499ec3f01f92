package scanner

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Feed interface {
		HeadHeight(ctx context.Context) (uint64, error)
		BlockAt(ctx context.Context, height uint64) (*chain.Block, error)
		Receipt(ctx context.Context, txHash string) (*chain.Receipt, error)
	}

	EventDecoder interface {
		Decode(contract common.Address, height uint64, receipt *chain.Receipt) ([]model.LifecycleEvent, error)
	}

	Ledger interface {
		Marker(ctx context.Context, height uint64, txHash string) (model.ProcessedMarker, bool, error)
		MarkProcessed(ctx context.Context, height uint64, txHash string) error
		LatestProcessedHeight(ctx context.Context) (uint64, bool, error)
		PruneMarkers(ctx context.Context, below uint64) (int64, error)
	}

	Providers interface {
		Contracts() []common.Address
		Source(contract common.Address) (chain.AgreementSource, bool)
		ByOwner(contract, owner common.Address) (provider.Registration, bool)
	}

	Dispatcher interface {
		AgreementCreated(ctx context.Context, reg provider.Registration, contract common.Address, agreement model.Agreement, offer model.Offer) error
		AgreementClosed(ctx context.Context, reg provider.Registration, contract common.Address, agreement model.Agreement, offer model.Offer) error
	}

	Journal interface {
		Record(entry model.JournalEntry)
	}

	Metrics interface {
		ObserveStep(result string, started time.Time)
		ObserveEvent(kind, outcome string)
		SetCursor(height uint64)
	}
)
