// Package chain defines the chain-facing interfaces consumed by the scanner, orchestrator and sweeper.
package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

// ErrBlockNotFound is returned by Feed.BlockAt when the block is not mined yet.
var ErrBlockNotFound = errors.New("block not found")

// Feed provides finalized blocks and receipts as an ordered stream.
type Feed interface {
	HeadHeight(ctx context.Context) (uint64, error)
	BlockAt(ctx context.Context, height uint64) (*Block, error)
	Receipt(ctx context.Context, txHash string) (*Receipt, error)
}

// EventDecoder extracts agreement lifecycle events from a receipt emitted by a tracked contract.
type EventDecoder interface {
	Decode(contract common.Address, height uint64, receipt *Receipt) ([]model.LifecycleEvent, error)
}

// AgreementSource reads and closes agreements of a single tracked contract on behalf of one provider.
// Protocol and product-category contracts are both served by this abstraction.
type AgreementSource interface {
	Address() common.Address
	Agreement(ctx context.Context, id uint32) (model.Agreement, error)
	Offer(ctx context.Context, id uint32) (model.Offer, error)
	ProviderAgreements(ctx context.Context, owner common.Address) ([]model.Agreement, error)
	AgreementBalance(ctx context.Context, id uint32) (*big.Int, error)
	CloseAgreement(ctx context.Context, id uint32) error
	DetailsLink(ctx context.Context) (string, error)
}

// ActorRegistry looks up network actor registrations.
type ActorRegistry interface {
	// Actor returns nil without error when the owner is not registered.
	Actor(ctx context.Context, owner common.Address) (*model.Provider, error)
	RegisteredProtocols(ctx context.Context, providerID uint32) ([]common.Address, error)
}

// Block is a mined block with its transactions in feed order.
type Block struct {
	Height       uint64
	Hash         string
	Transactions []Transaction
}

// Transaction is the subset of a transaction the scanner needs.
type Transaction struct {
	Hash string
	// To is nil for contract creations.
	To *common.Address
}

// Receipt is a transaction receipt with its event logs.
type Receipt struct {
	TxHash   string
	Reverted bool
	Logs     []Log
}

// Log is a raw event log.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
	Index   uint
}
