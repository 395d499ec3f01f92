package router

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Pipe is the transport endpoint of one operator.
	Pipe interface {
		Handle(method, path string, endpoint Endpoint)
	}

	Ledger interface {
		OwnedResource(ctx context.Context, key model.ResourceKey, owner common.Address) (model.Resource, error)
		ResourcesOfOwner(ctx context.Context, owner common.Address) ([]model.Resource, error)
		DetailDocuments(ctx context.Context, cids []string) ([]model.DetailDocument, error)
	}

	Metrics interface {
		Observe(method, path string, code int, started time.Time)
	}
)
