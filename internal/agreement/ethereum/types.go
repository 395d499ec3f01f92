package ethereum

import (
	"context"
	"math/big"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Backend is the subset of an Ethereum JSON-RPC client used by the adapter.
	Backend interface {
		BlockNumber(ctx context.Context) (uint64, error)
		BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)
		TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
		CallContract(ctx context.Context, call geth.CallMsg, blockNumber *big.Int) ([]byte, error)
		PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
		SuggestGasPrice(ctx context.Context) (*big.Int, error)
		EstimateGas(ctx context.Context, call geth.CallMsg) (uint64, error)
		SendTransaction(ctx context.Context, tx *types.Transaction) error
	}
)
