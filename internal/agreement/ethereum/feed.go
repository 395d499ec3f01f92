package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
)

// Feed serves blocks and receipts from a JSON-RPC backend.
type Feed struct {
	backend Backend
}

// NewFeed constructs a Feed.
func NewFeed(backend Backend) *Feed {
	return &Feed{backend: backend}
}

// HeadHeight returns the latest block number known to the node.
func (f *Feed) HeadHeight(ctx context.Context) (uint64, error) {
	height, err := f.backend.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("get head height: %w", err)
	}
	return height, nil
}

// BlockAt returns the block at height with its transactions, or chain.ErrBlockNotFound.
func (f *Feed) BlockAt(ctx context.Context, height uint64) (*chain.Block, error) {
	block, err := f.backend.BlockByNumber(ctx, new(big.Int).SetUint64(height))
	if err != nil {
		if errors.Is(err, geth.NotFound) {
			return nil, fmt.Errorf("block %d: %w", height, chain.ErrBlockNotFound)
		}
		return nil, fmt.Errorf("get block %d: %w", height, err)
	}
	if block == nil {
		return nil, fmt.Errorf("block %d: %w", height, chain.ErrBlockNotFound)
	}

	out := &chain.Block{
		Height:       block.NumberU64(),
		Hash:         block.Hash().Hex(),
		Transactions: make([]chain.Transaction, 0, len(block.Transactions())),
	}
	for _, tx := range block.Transactions() {
		out.Transactions = append(out.Transactions, chain.Transaction{
			Hash: tx.Hash().Hex(),
			To:   tx.To(),
		})
	}
	return out, nil
}

// Receipt returns the receipt of a mined transaction.
func (f *Feed) Receipt(ctx context.Context, txHash string) (*chain.Receipt, error) {
	receipt, err := f.backend.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return nil, fmt.Errorf("get receipt %s: %w", txHash, err)
	}

	out := &chain.Receipt{
		TxHash:   txHash,
		Reverted: receipt.Status == types.ReceiptStatusFailed,
		Logs:     make([]chain.Log, 0, len(receipt.Logs)),
	}
	for _, l := range receipt.Logs {
		if l == nil {
			continue
		}
		out.Logs = append(out.Logs, chain.Log{
			Address: l.Address,
			Topics:  l.Topics,
			Data:    l.Data,
			Index:   l.Index,
		})
	}
	return out, nil
}
