// Package scanner walks the chain block by block and turns agreement events emitted by
// tracked contracts into orchestrator calls.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/clock"
	"github.com/goodnatureofminers/provider-daemon/internal/metrics"
)

// pruneEvery is how often, in blocks, old markers are pruned.
const pruneEvery = 100

// Config tunes the scanner.
type Config struct {
	// Retry is the pause before retrying a block that is not mined yet or failed.
	Retry time.Duration
	// Retention is how many blocks of markers to keep. Zero keeps every marker.
	Retention uint64
}

// Scanner is the single sequential consumer of the block feed.
type Scanner struct {
	feed       Feed
	decoder    EventDecoder
	ledger     Ledger
	providers  Providers
	dispatcher Dispatcher
	journal    Journal
	metrics    Metrics
	logger     *zap.Logger
	cfg        Config
	sleep      func(context.Context, time.Duration) error
	now        func() time.Time

	cursor uint64
}

// New builds a Scanner. Call Resume before Step.
func New(
	feed Feed,
	decoder EventDecoder,
	ledger Ledger,
	providers Providers,
	dispatcher Dispatcher,
	journal Journal,
	metrics Metrics,
	logger *zap.Logger,
	cfg Config,
) *Scanner {
	return &Scanner{
		feed:       feed,
		decoder:    decoder,
		ledger:     ledger,
		providers:  providers,
		dispatcher: dispatcher,
		journal:    journal,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
		sleep:      clock.SleepWithContext,
		now:        time.Now,
	}
}

// Cursor returns the height of the next block to process.
func (s *Scanner) Cursor() uint64 {
	return s.cursor
}

// Resume positions the cursor after the last fully processed block. A block with some
// processed transactions but no block marker is scanned again. Without any marker the
// scanner starts at the current head.
func (s *Scanner) Resume(ctx context.Context) error {
	latest, ok, err := s.ledger.LatestProcessedHeight(ctx)
	if err != nil {
		return fmt.Errorf("latest processed height: %w", err)
	}

	if !ok {
		head, err := s.feed.HeadHeight(ctx)
		if err != nil {
			return fmt.Errorf("head height: %w", err)
		}
		s.setCursor(head)
		s.logger.Info("no processed blocks, starting from head", zap.Uint64("height", head))
		return nil
	}

	marker, found, err := s.ledger.Marker(ctx, latest, model.BlockSentinel)
	if err != nil {
		return fmt.Errorf("block marker %d: %w", latest, err)
	}
	if found && marker.Processed {
		latest++
	}
	s.setCursor(latest)
	s.logger.Info("resuming scan", zap.Uint64("height", latest))
	return nil
}

// Run resumes and then processes blocks until the context is canceled.
func (s *Scanner) Run(ctx context.Context) error {
	if err := s.Resume(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		advanced, err := s.Step(ctx)
		switch {
		case err != nil:
			s.logger.Warn("scan step failed, retrying",
				zap.Uint64("height", s.cursor),
				zap.Duration("sleep", s.cfg.Retry),
				zap.Error(err),
			)
		case !advanced:
			s.logger.Debug("block not mined yet", zap.Uint64("height", s.cursor))
		default:
			continue
		}

		if err := s.sleep(ctx, s.cfg.Retry); err != nil {
			return err
		}
	}
}

// Step processes the block at the cursor. It reports false without error when the block does
// not exist yet. On error the cursor stays and the block is retried by the next Step.
func (s *Scanner) Step(ctx context.Context) (advanced bool, err error) {
	started := time.Now()
	height := s.cursor
	result := metrics.StepProcessed
	defer func() {
		s.metrics.ObserveStep(result, started)
	}()

	block, err := s.feed.BlockAt(ctx, height)
	if err != nil {
		if errors.Is(err, chain.ErrBlockNotFound) {
			result = metrics.StepWaiting
			return false, nil
		}
		result = metrics.StepFailed
		return false, fmt.Errorf("block %d: %w", height, err)
	}

	if err = s.processBlock(ctx, block); err != nil {
		result = metrics.StepFailed
		return false, err
	}

	if err = s.ledger.MarkProcessed(ctx, height, model.BlockSentinel); err != nil {
		result = metrics.StepFailed
		return false, fmt.Errorf("mark block %d processed: %w", height, err)
	}
	s.prune(ctx, height)

	s.setCursor(height + 1)
	return true, nil
}

func (s *Scanner) processBlock(ctx context.Context, block *chain.Block) error {
	logger := s.logger.With(zap.Uint64("height", block.Height))
	if len(block.Transactions) == 0 {
		logger.Debug("no transactions in block")
		return nil
	}

	tracked := make(map[common.Address]struct{})
	for _, contract := range s.providers.Contracts() {
		tracked[contract] = struct{}{}
	}

	for _, tx := range block.Transactions {
		if tx.To == nil {
			continue
		}
		if _, ok := tracked[*tx.To]; !ok {
			continue
		}
		if err := s.processTransaction(ctx, logger, block.Height, tx); err != nil {
			return err
		}
	}
	return nil
}

// processTransaction dispatches the events of one tracked transaction and then marks it
// processed, so a dispatched event is never delivered twice.
func (s *Scanner) processTransaction(ctx context.Context, logger *zap.Logger, height uint64, tx chain.Transaction) error {
	logger = logger.With(zap.String("tx_hash", tx.Hash))

	marker, found, err := s.ledger.Marker(ctx, height, tx.Hash)
	if err != nil {
		return fmt.Errorf("marker of %s: %w", tx.Hash, err)
	}
	if found && marker.Processed {
		logger.Debug("transaction already processed")
		return nil
	}

	receipt, err := s.feed.Receipt(ctx, tx.Hash)
	if err != nil {
		return fmt.Errorf("receipt of %s: %w", tx.Hash, err)
	}
	if receipt.Reverted {
		logger.Debug("transaction reverted")
		return nil
	}

	events, err := s.decoder.Decode(*tx.To, height, receipt)
	if err != nil {
		logger.Warn("malformed event logs", zap.Error(err))
	}
	for _, event := range events {
		s.handle(ctx, logger, event)
	}

	if err := s.ledger.MarkProcessed(ctx, height, tx.Hash); err != nil {
		return fmt.Errorf("mark %s processed: %w", tx.Hash, err)
	}
	return nil
}

// handle dispatches a single event. Failures are logged and journaled, never returned.
func (s *Scanner) handle(ctx context.Context, logger *zap.Logger, event model.LifecycleEvent) {
	logger = logger.With(
		zap.String("kind", string(event.Kind)),
		zap.Uint32("agreement_id", event.AgreementID),
		zap.String("contract", event.Contract.Hex()),
	)
	entry := model.JournalEntry{
		Height:      event.Height,
		TxHash:      event.TxHash,
		LogIndex:    event.LogIndex,
		Contract:    model.AddressKey(event.Contract),
		Kind:        event.Kind,
		AgreementID: event.AgreementID,
	}

	providerID, err := s.dispatch(ctx, logger, event)
	entry.ProviderID = providerID
	switch {
	case errors.Is(err, errUnknownProvider):
		entry.Outcome = model.OutcomeSkipped
		entry.Error = err.Error()
	case err != nil:
		logger.Error("event handling failed", zap.Error(err))
		entry.Outcome = model.OutcomeFailed
		entry.Error = err.Error()
	default:
		entry.Outcome = model.OutcomeOK
	}

	entry.RecordedAt = s.now()
	s.journal.Record(entry)
	s.metrics.ObserveEvent(string(event.Kind), string(entry.Outcome))
}

var errUnknownProvider = errors.New("offer owner is not a served provider")

func (s *Scanner) dispatch(ctx context.Context, logger *zap.Logger, event model.LifecycleEvent) (uint32, error) {
	source, ok := s.providers.Source(event.Contract)
	if !ok {
		return 0, fmt.Errorf("no source for contract %s", event.Contract.Hex())
	}

	agreement, err := source.Agreement(ctx, event.AgreementID)
	if err != nil {
		return 0, fmt.Errorf("get agreement: %w", err)
	}
	offer, err := source.Offer(ctx, agreement.OfferID)
	if err != nil {
		return 0, fmt.Errorf("get offer %d: %w", agreement.OfferID, err)
	}

	reg, ok := s.providers.ByOwner(event.Contract, offer.OwnerAddress)
	if !ok {
		logger.Warn("provider not found, skipping event", zap.String("offer_owner", offer.OwnerAddress.Hex()))
		return 0, errUnknownProvider
	}

	switch event.Kind {
	case model.AgreementCreated:
		err = s.dispatcher.AgreementCreated(ctx, reg, event.Contract, agreement, offer)
	case model.AgreementClosed:
		err = s.dispatcher.AgreementClosed(ctx, reg, event.Contract, agreement, offer)
	default:
		err = fmt.Errorf("unsupported event kind %q", event.Kind)
	}
	return reg.Info.ID, err
}

func (s *Scanner) prune(ctx context.Context, height uint64) {
	if s.cfg.Retention == 0 || height%pruneEvery != 0 || height <= s.cfg.Retention {
		return
	}
	removed, err := s.ledger.PruneMarkers(ctx, height-s.cfg.Retention)
	if err != nil {
		s.logger.Warn("prune markers", zap.Uint64("height", height), zap.Error(err))
		return
	}
	s.logger.Debug("pruned markers", zap.Uint64("below", height-s.cfg.Retention), zap.Int64("removed", removed))
}

func (s *Scanner) setCursor(height uint64) {
	s.cursor = height
	s.metrics.SetCursor(height)
}
