package providers

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/router"
)

// ErrNotRegistered is returned when the provider key has no actor in the network registry.
var ErrNotRegistered = errors.New("provider is not registered in the network")

// Config describes one provider served by the daemon.
type Config struct {
	Tag             string
	ProviderKey     *ecdsa.PrivateKey
	OperatorKey     *ecdsa.PrivateKey
	ProtocolAddress *common.Address
	Hooks           provider.Hooks
}

// SourceFactory builds the agreement source of a protocol contract signing with key.
type SourceFactory func(contract common.Address, key *ecdsa.PrivateKey) chain.AgreementSource

// PipeFactory creates the transport endpoint of an operator.
type PipeFactory func(operator common.Address, key *ecdsa.PrivateKey) (router.Pipe, error)

// Bootstrapper loads detail documents and registers configured providers.
type Bootstrapper struct {
	ledger    Ledger
	registry  Registry
	router    Router
	set       *Set
	newSource SourceFactory
	newPipe   PipeFactory
	logger    *zap.Logger
}

func NewBootstrapper(
	ledger Ledger,
	registry Registry,
	router Router,
	set *Set,
	newSource SourceFactory,
	newPipe PipeFactory,
	logger *zap.Logger,
) *Bootstrapper {
	return &Bootstrapper{
		ledger:    ledger,
		registry:  registry,
		router:    router,
		set:       set,
		newSource: newSource,
		newPipe:   newPipe,
		logger:    logger,
	}
}

// LoadDetails stores every regular file under dir, recursively, as a detail document.
func (b *Bootstrapper) LoadDetails(ctx context.Context, dir string) (int, error) {
	var contents []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		contents = append(contents, string(raw))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk details dir %s: %w", dir, err)
	}

	docs, err := b.ledger.SaveDetailDocuments(ctx, contents)
	if err != nil {
		return 0, fmt.Errorf("save detail documents: %w", err)
	}
	b.logger.Info("detail documents loaded", zap.String("dir", dir), zap.Int("count", len(docs)))
	return len(docs), nil
}

// Register checks the provider in the network registry, binds its operator pipe and starts
// serving it.
func (b *Bootstrapper) Register(ctx context.Context, cfg Config) (provider.Registration, error) {
	logger := b.logger.With(zap.String("tag", cfg.Tag))
	logger.Info("provider initializing")

	if cfg.ProviderKey == nil || cfg.OperatorKey == nil {
		return provider.Registration{}, fmt.Errorf("provider %q: provider and operator keys are required", cfg.Tag)
	}
	owner := crypto.PubkeyToAddress(cfg.ProviderKey.PublicKey)

	actor, err := b.registry.Actor(ctx, owner)
	if err != nil {
		return provider.Registration{}, fmt.Errorf("provider %q: %w", cfg.Tag, err)
	}
	if actor == nil {
		return provider.Registration{}, fmt.Errorf("provider %q (%s): %w", cfg.Tag, owner.Hex(), ErrNotRegistered)
	}
	if err := b.ledger.UpsertProvider(ctx, *actor); err != nil {
		return provider.Registration{}, fmt.Errorf("provider %q: %w", cfg.Tag, err)
	}

	operator := crypto.PubkeyToAddress(cfg.OperatorKey.PublicKey)
	if operator != actor.OperatorAddress {
		return provider.Registration{}, fmt.Errorf("provider %q: operator key is %s, registry has %s",
			cfg.Tag, operator.Hex(), actor.OperatorAddress.Hex())
	}

	protocol, err := b.protocol(ctx, logger, cfg, actor.ID)
	if err != nil {
		return provider.Registration{}, err
	}
	source := b.newSource(protocol, cfg.ProviderKey)

	link, err := source.DetailsLink(ctx)
	if err != nil {
		return provider.Registration{}, fmt.Errorf("provider %q: details link of %s: %w", cfg.Tag, protocol.Hex(), err)
	}
	if err := b.ledger.UpsertContract(ctx, model.Contract{Address: protocol, DetailsLink: link}); err != nil {
		logger.Warn("contract details are not stored", zap.String("contract", protocol.Hex()), zap.Error(err))
	}

	reg := provider.Registration{Info: *actor, Hooks: cfg.Hooks, Source: source}
	if err := b.set.Add(reg); err != nil {
		return provider.Registration{}, fmt.Errorf("provider %q: %w", cfg.Tag, err)
	}

	if _, err := b.router.Bind(operator, func() (router.Pipe, error) {
		return b.newPipe(operator, cfg.OperatorKey)
	}); err != nil {
		return provider.Registration{}, fmt.Errorf("provider %q: %w", cfg.Tag, err)
	}
	if err := b.router.RegisterProvider(reg); err != nil {
		return provider.Registration{}, fmt.Errorf("provider %q: %w", cfg.Tag, err)
	}

	logger.Info("provider initialized",
		zap.Uint32("provider_id", actor.ID),
		zap.String("owner", owner.Hex()),
		zap.String("operator", operator.Hex()),
		zap.String("protocol", protocol.Hex()),
	)
	return reg, nil
}

func (b *Bootstrapper) protocol(ctx context.Context, logger *zap.Logger, cfg Config, providerID uint32) (common.Address, error) {
	if cfg.ProtocolAddress != nil {
		logger.Info("using configured protocol", zap.String("protocol", cfg.ProtocolAddress.Hex()))
		return *cfg.ProtocolAddress, nil
	}

	registered, err := b.registry.RegisteredProtocols(ctx, providerID)
	if err != nil {
		return common.Address{}, fmt.Errorf("provider %q: %w", cfg.Tag, err)
	}
	if len(registered) == 0 {
		return common.Address{}, fmt.Errorf("provider %q: not registered in any protocol", cfg.Tag)
	}
	logger.Warn("using first registered protocol", zap.String("protocol", registered[0].Hex()))
	return registered[0], nil
}
