// Package ethereum implements the chain interfaces on top of go-ethereum's JSON-RPC client.
package ethereum

import (
	"context"
	"errors"
	"math/big"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/ratelimit"
)

// ObservedClient rate limits and instruments every RPC call of the wrapped backend.
type ObservedClient struct {
	client     Backend
	rpcMetrics RPCMetrics
	rl         ratelimit.Limiter
}

// NewObservedClient wraps client. rps <= 0 disables rate limiting.
func NewObservedClient(client Backend, rpcMetrics RPCMetrics, rps int) *ObservedClient {
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		rl:         rl,
	}
}

func (r *ObservedClient) observe(operation string, err error, started time.Time) {
	// a missing block or receipt is an expected answer while following the head
	if errors.Is(err, geth.NotFound) {
		err = nil
	}
	r.rpcMetrics.Observe(operation, err, started)
}

func (r *ObservedClient) BlockNumber(ctx context.Context) (height uint64, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("block_number", err, started)
	}()
	return r.client.BlockNumber(ctx)
}

func (r *ObservedClient) BlockByNumber(ctx context.Context, number *big.Int) (block *types.Block, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("block_by_number", err, started)
	}()
	return r.client.BlockByNumber(ctx, number)
}

func (r *ObservedClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (receipt *types.Receipt, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("transaction_receipt", err, started)
	}()
	return r.client.TransactionReceipt(ctx, txHash)
}

func (r *ObservedClient) CallContract(ctx context.Context, call geth.CallMsg, blockNumber *big.Int) (out []byte, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("call_contract", err, started)
	}()
	return r.client.CallContract(ctx, call, blockNumber)
}

func (r *ObservedClient) PendingNonceAt(ctx context.Context, account common.Address) (nonce uint64, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("pending_nonce_at", err, started)
	}()
	return r.client.PendingNonceAt(ctx, account)
}

func (r *ObservedClient) SuggestGasPrice(ctx context.Context) (price *big.Int, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("suggest_gas_price", err, started)
	}()
	return r.client.SuggestGasPrice(ctx)
}

func (r *ObservedClient) EstimateGas(ctx context.Context, call geth.CallMsg) (gas uint64, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("estimate_gas", err, started)
	}()
	return r.client.EstimateGas(ctx, call)
}

func (r *ObservedClient) SendTransaction(ctx context.Context, tx *types.Transaction) (err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.observe("send_transaction", err, started)
	}()
	return r.client.SendTransaction(ctx, tx)
}
