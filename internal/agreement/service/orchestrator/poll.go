package orchestrator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/ledger"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

// schedule starts a poll task for key unless one is already running.
func (o *Orchestrator) schedule(
	reg provider.Registration,
	key model.ResourceKey,
	agreement model.Agreement,
	offer model.DetailedOffer,
) {
	o.mu.Lock()
	if _, ok := o.tasks[key]; ok {
		o.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(o.base)
	task := &pollTask{cancel: cancel, done: make(chan struct{})}
	o.tasks[key] = task
	o.metrics.SetPollTasks(len(o.tasks))
	o.wg.Add(1)
	o.mu.Unlock()

	logger := o.logger.With(
		zap.Uint32("agreement_id", key.ID),
		zap.String("contract", key.Contract.Hex()),
		zap.Uint32("provider_id", reg.Info.ID),
	)

	go func() {
		defer o.wg.Done()
		defer close(task.done)
		defer o.forget(key, task)
		defer cancel()

		o.every(ctx, o.interval, func(ctx context.Context) bool {
			return o.poll(ctx, logger, reg, key, agreement, offer)
		})
	}()
}

// cancel stops the poll task of key, if any, and waits until it no longer writes.
func (o *Orchestrator) cancel(ctx context.Context, key model.ResourceKey) error {
	o.mu.Lock()
	task, ok := o.tasks[key]
	o.mu.Unlock()
	if !ok {
		return nil
	}

	task.cancel()
	select {
	case <-task.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) forget(key model.ResourceKey, task *pollTask) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tasks[key] == task {
		delete(o.tasks, key)
	}
	o.metrics.SetPollTasks(len(o.tasks))
}

// poll runs one tick and reports whether polling should continue.
func (o *Orchestrator) poll(
	ctx context.Context,
	logger *zap.Logger,
	reg provider.Registration,
	key model.ResourceKey,
	agreement model.Agreement,
	offer model.DetailedOffer,
) bool {
	resource, err := o.ledger.Resource(ctx, key)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			logger.Warn("polled resource disappeared")
			return false
		}
		logger.Error("load polled resource", zap.Error(err))
		return true
	}
	if !resource.IsActive || resource.DeploymentStatus != model.DeploymentDeploying {
		return false
	}

	start := time.Now()
	details, err := reg.Hooks.GetDetails(ctx, agreement, offer, resource)
	o.metrics.ObserveHook(hookGetDetails, err, start)
	if errors.Is(err, provider.ErrNotFound) {
		// The provider no longer knows the resource; it will never become Running.
		if err := o.ledger.UpdateResourceStatus(ctx, key, model.DeploymentFailed, map[string]any{}); err != nil {
			logger.Error("mark resource failed", zap.Error(err))
			return true
		}
		o.metrics.ObserveTransition(string(model.DeploymentFailed))
		logger.Warn("resource unknown to provider, marked failed")
		return false
	}
	if err != nil {
		logger.Error("get details hook failed", zap.Error(err))
		return true
	}
	if details.Status != model.DeploymentRunning {
		return true
	}

	fields := details.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	if err := o.ledger.UpdateResourceStatus(ctx, key, model.DeploymentRunning, fields); err != nil {
		logger.Error("mark resource running", zap.Error(err))
		return true
	}
	o.metrics.ObserveTransition(string(model.DeploymentRunning))
	logger.Info("resource is running")
	return false
}
