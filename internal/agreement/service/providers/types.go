package providers

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/router"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		SaveDetailDocuments(ctx context.Context, contents []string) ([]model.DetailDocument, error)
		UpsertProvider(ctx context.Context, p model.Provider) error
		UpsertContract(ctx context.Context, c model.Contract) error
	}

	Registry interface {
		Actor(ctx context.Context, owner common.Address) (*model.Provider, error)
		RegisteredProtocols(ctx context.Context, providerID uint32) ([]common.Address, error)
	}

	Router interface {
		Bind(operator common.Address, newPipe func() (router.Pipe, error)) (router.Pipe, error)
		RegisterProvider(reg provider.Registration) error
	}
)
