// Package orchestrator drives the resource state machine: it provisions a resource when an
// agreement is created, polls it until it runs and tears it down when the agreement closes.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/ledger"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
	"github.com/goodnatureofminers/provider-daemon/internal/clock"
)

const (
	hookCreate     = "create"
	hookGetDetails = "get_details"
	hookDelete     = "delete"
)

type pollTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Orchestrator reacts to agreement lifecycle events of every provider.
type Orchestrator struct {
	ledger   Ledger
	metrics  Metrics
	logger   *zap.Logger
	interval time.Duration
	newName  func() string
	every    func(ctx context.Context, interval time.Duration, tick func(context.Context) bool)

	base  context.Context
	stop  context.CancelFunc
	mu    sync.Mutex
	tasks map[model.ResourceKey]*pollTask
	wg    sync.WaitGroup
}

// New creates an Orchestrator polling deploying resources every interval.
func New(ledger Ledger, metrics Metrics, logger *zap.Logger, interval time.Duration) *Orchestrator {
	base, stop := context.WithCancel(context.Background())
	return &Orchestrator{
		ledger:   ledger,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		newName:  randomName,
		every:    clock.Every,
		base:     base,
		stop:     stop,
		tasks:    make(map[model.ResourceKey]*pollTask),
	}
}

// AgreementCreated provisions the resource of a new agreement. A failing create hook leaves a
// Failed resource behind and is reported as an error.
func (o *Orchestrator) AgreementCreated(
	ctx context.Context,
	reg provider.Registration,
	contract common.Address,
	agreement model.Agreement,
	offer model.Offer,
) error {
	key := model.ResourceKey{ID: agreement.ID, Contract: contract}
	logger := o.logger.With(
		zap.Uint32("agreement_id", agreement.ID),
		zap.String("contract", contract.Hex()),
		zap.Uint32("provider_id", reg.Info.ID),
	)
	detailed := o.detailedOffer(ctx, logger, offer)

	resource := model.Resource{
		ID:              agreement.ID,
		ContractAddress: contract,
		GroupName:       model.DefaultGroupName,
		OwnerAddress:    agreement.UserAddress,
		OfferID:         agreement.OfferID,
		ProviderID:      reg.Info.ID,
		IsActive:        true,
	}

	start := time.Now()
	details, hookErr := reg.Hooks.Create(ctx, agreement, detailed)
	o.metrics.ObserveHook(hookCreate, hookErr, start)
	if hookErr != nil {
		logger.Error("create hook failed", zap.Error(hookErr))
		resource.DeploymentStatus = model.DeploymentFailed
		resource.Details = map[string]any{}
		if err := o.ledger.CreateResource(ctx, resource); err != nil {
			return errors.Join(fmt.Errorf("create hook: %w", hookErr), err)
		}
		o.metrics.ObserveTransition(string(model.DeploymentFailed))
		return fmt.Errorf("create hook: %w", hookErr)
	}

	resource.DeploymentStatus = details.Status
	if resource.DeploymentStatus == "" {
		resource.DeploymentStatus = model.DeploymentDeploying
	}
	resource.Name = details.Name
	if resource.Name == "" {
		resource.Name = o.newName()
	}
	resource.Details = details.Fields
	if resource.Details == nil {
		resource.Details = map[string]any{}
	}

	if err := o.ledger.CreateResource(ctx, resource); err != nil {
		return err
	}
	o.metrics.ObserveTransition(string(resource.DeploymentStatus))
	logger.Info("resource created",
		zap.String("name", resource.Name),
		zap.String("status", string(resource.DeploymentStatus)),
	)

	if resource.DeploymentStatus == model.DeploymentDeploying {
		o.schedule(reg, key, agreement, detailed)
	}
	return nil
}

// AgreementClosed tears down the resource of a closed agreement. The resource is marked Closed
// even when the delete hook fails.
func (o *Orchestrator) AgreementClosed(
	ctx context.Context,
	reg provider.Registration,
	contract common.Address,
	agreement model.Agreement,
	offer model.Offer,
) error {
	key := model.ResourceKey{ID: agreement.ID, Contract: contract}
	logger := o.logger.With(
		zap.Uint32("agreement_id", agreement.ID),
		zap.String("contract", contract.Hex()),
		zap.Uint32("provider_id", reg.Info.ID),
	)

	if err := o.cancel(ctx, key); err != nil {
		return err
	}

	resource, err := o.ledger.Resource(ctx, key)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		logger.Warn("closed agreement has no resource")
	case err != nil:
		logger.Error("load resource of closed agreement", zap.Error(err))
	case resource.IsActive:
		start := time.Now()
		hookErr := reg.Hooks.Delete(ctx, agreement, o.detailedOffer(ctx, logger, offer), resource)
		o.metrics.ObserveHook(hookDelete, hookErr, start)
		if hookErr != nil {
			logger.Error("delete hook failed, closing resource anyway", zap.Error(hookErr))
		}
	}

	if err := o.ledger.CloseResource(ctx, key); err != nil {
		return err
	}
	o.metrics.ObserveTransition(string(model.DeploymentClosed))
	logger.Info("resource closed")
	return nil
}

// ResumePolling restarts polling for resources left Deploying by a previous run.
func (o *Orchestrator) ResumePolling(ctx context.Context, regs Registrations) (int, error) {
	resources, err := o.ledger.ResourcesByStatus(ctx, model.DeploymentDeploying)
	if err != nil {
		return 0, err
	}

	resumed := 0
	for _, resource := range resources {
		logger := o.logger.With(
			zap.Uint32("agreement_id", resource.ID),
			zap.String("contract", resource.ContractAddress.Hex()),
		)
		reg, ok := regs.Registration(resource.ProviderID)
		if !ok || reg.Source.Address() != resource.ContractAddress {
			logger.Warn("no provider serves deploying resource", zap.Uint32("provider_id", resource.ProviderID))
			continue
		}

		agreement, err := reg.Source.Agreement(ctx, resource.ID)
		if err != nil {
			logger.Error("load agreement of deploying resource", zap.Error(err))
			continue
		}
		offer, err := reg.Source.Offer(ctx, agreement.OfferID)
		if err != nil {
			logger.Error("load offer of deploying resource", zap.Error(err))
			continue
		}

		o.schedule(reg, resource.Key(), agreement, o.detailedOffer(ctx, logger, offer))
		resumed++
	}
	return resumed, nil
}

// Stop cancels every poll task and waits for them to exit.
func (o *Orchestrator) Stop() {
	o.stop()
	o.wg.Wait()
}

func (o *Orchestrator) detailedOffer(ctx context.Context, logger *zap.Logger, offer model.Offer) model.DetailedOffer {
	detailed := model.DetailedOffer{Offer: offer}
	if offer.DetailsLink == "" {
		logger.Warn("offer has no detail file", zap.Uint32("offer_id", offer.ID))
		return detailed
	}

	doc, err := o.ledger.DetailDocument(ctx, offer.DetailsLink)
	if err != nil {
		logger.Warn("offer detail file not loaded",
			zap.Uint32("offer_id", offer.ID),
			zap.String("cid", offer.DetailsLink),
			zap.Error(err),
		)
		return detailed
	}

	var parsed any
	if err := json.Unmarshal([]byte(doc.Content), &parsed); err == nil {
		detailed.Details = parsed
	}
	return detailed
}
