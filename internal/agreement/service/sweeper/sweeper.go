// Package sweeper force-closes agreements whose prepaid balance ran out.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
	"github.com/goodnatureofminers/provider-daemon/pkg/workerpool"
)

const defaultWorkers = 4

// Config tunes the sweeper.
type Config struct {
	// Schedule is a cron spec, e.g. "@every 1m".
	Schedule string
	// Workers bounds the close requests in flight during one tick.
	Workers int
}

// Sweeper periodically scans the active agreements of every registered provider.
type Sweeper struct {
	registrations Registrations
	metrics       Metrics
	logger        *zap.Logger
	cfg           Config

	cron *cron.Cron
	wg   sync.WaitGroup
}

type exhausted struct {
	source    chain.AgreementSource
	agreement model.Agreement
}

// New builds a Sweeper.
func New(registrations Registrations, metrics Metrics, logger *zap.Logger, cfg Config) *Sweeper {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Sweeper{
		registrations: registrations,
		metrics:       metrics,
		logger:        logger,
		cfg:           cfg,
	}
}

// Start runs one tick right away and then schedules ticks. A tick is skipped while the
// previous one is still running.
func (s *Sweeper) Start(ctx context.Context) error {
	logger := cronLogger{logger: s.logger.Sugar()}
	c := cron.New(cron.WithLogger(logger))

	job := cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(func() {
		if err := s.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("balance sweep finished with errors", zap.Error(err))
		}
	}))
	if _, err := c.AddJob(s.cfg.Schedule, job); err != nil {
		return fmt.Errorf("schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron = c
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		job.Run()
	}()
	c.Start()
	return nil
}

// Stop stops scheduling and waits for a running tick to return.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
}

// Tick checks every active agreement once and requests closing of those with a non-positive
// balance. Every close is attempted; the joined errors are returned and retried next tick.
func (s *Sweeper) Tick(ctx context.Context) error {
	started := time.Now()
	defer s.metrics.ObserveTick(started)
	s.logger.Info("checking agreement balances")

	var (
		targets []exhausted
		errs    []error
	)
	for _, reg := range s.registrations.All() {
		found, err := s.collect(ctx, reg)
		if err != nil {
			s.logger.Error("list provider agreements",
				zap.Uint32("provider_id", reg.Info.ID),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
		targets = append(targets, found...)
	}

	if len(targets) > 0 {
		errs = append(errs, workerpool.ProcessAll(ctx, s.cfg.Workers, targets, s.close))
	}
	return errors.Join(errs...)
}

func (s *Sweeper) collect(ctx context.Context, reg provider.Registration) ([]exhausted, error) {
	agreements, err := reg.Source.ProviderAgreements(ctx, reg.Info.OwnerAddress)
	if err != nil {
		return nil, fmt.Errorf("agreements of provider %d: %w", reg.Info.ID, err)
	}

	var (
		out  []exhausted
		errs []error
	)
	for _, agreement := range agreements {
		if agreement.Status != model.AgreementActive {
			continue
		}

		balance, err := reg.Source.AgreementBalance(ctx, agreement.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("balance of agreement %d: %w", agreement.ID, err))
			continue
		}
		if balance.Sign() > 0 {
			continue
		}

		s.logger.Warn("agreement ran out of balance",
			zap.Uint32("agreement_id", agreement.ID),
			zap.String("user", agreement.UserAddress.Hex()),
			zap.String("contract", reg.Source.Address().Hex()),
		)
		out = append(out, exhausted{source: reg.Source, agreement: agreement})
	}
	return out, errors.Join(errs...)
}

func (s *Sweeper) close(ctx context.Context, target exhausted) error {
	err := target.source.CloseAgreement(ctx, target.agreement.ID)
	s.metrics.ObserveClose(err)
	if err != nil {
		s.logger.Error("force close agreement",
			zap.Uint32("agreement_id", target.agreement.ID),
			zap.Error(err),
		)
		return fmt.Errorf("close agreement %d: %w", target.agreement.ID, err)
	}
	return nil
}

type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
