package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

// RegistryClient reads actor registrations from the network registry contract.
type RegistryClient struct {
	backend Backend
	address common.Address
}

// NewRegistryClient constructs a RegistryClient.
func NewRegistryClient(backend Backend, address common.Address) *RegistryClient {
	return &RegistryClient{backend: backend, address: address}
}

// Actor returns the registration of owner, or nil when owner is not registered.
func (c *RegistryClient) Actor(ctx context.Context, owner common.Address) (*model.Provider, error) {
	out, err := call(ctx, c.backend, registryABI, c.address, "getActor", owner)
	if err != nil {
		return nil, fmt.Errorf("get actor %s: %w", owner.Hex(), err)
	}
	a := *abi.ConvertType(out[0], new(actorTuple)).(*actorTuple)
	if a.OwnerAddr == (common.Address{}) {
		return nil, nil
	}
	return &model.Provider{
		ID:              a.Id,
		OwnerAddress:    a.OwnerAddr,
		OperatorAddress: a.OperatorAddr,
		DetailsLink:     a.DetailsLink,
	}, nil
}

// RegisteredProtocols lists protocol contracts the provider registered in.
func (c *RegistryClient) RegisteredProtocols(ctx context.Context, providerID uint32) ([]common.Address, error) {
	out, err := call(ctx, c.backend, registryABI, c.address, "getRegisteredProtocolsOfProvider", providerID)
	if err != nil {
		return nil, fmt.Errorf("get protocols of provider %d: %w", providerID, err)
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}
