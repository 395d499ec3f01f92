package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// BlockSentinel is the marker hash meaning "the entire block has been handled".
const BlockSentinel = ""

// ProcessedMarker records that a transaction (or a whole block) was handled by the scanner.
type ProcessedMarker struct {
	Height    uint64
	TxHash    string
	Processed bool
}

// EventKind names an agreement lifecycle event emitted by a tracked contract.
type EventKind string

var (
	AgreementCreated EventKind = "AgreementCreated"
	AgreementClosed  EventKind = "AgreementClosed"
)

// LifecycleEvent is a decoded agreement event log.
type LifecycleEvent struct {
	Kind        EventKind
	AgreementID uint32
	Contract    common.Address
	Height      uint64
	TxHash      string
	LogIndex    uint
}

// EventOutcome summarizes how the scanner handled an event.
type EventOutcome string

var (
	OutcomeOK      EventOutcome = "ok"
	OutcomeFailed  EventOutcome = "failed"
	OutcomeSkipped EventOutcome = "skipped"
)

// JournalEntry is an append-only record of a dispatched lifecycle event.
type JournalEntry struct {
	Height      uint64
	TxHash      string
	LogIndex    uint
	Contract    string
	Kind        EventKind
	AgreementID uint32
	ProviderID  uint32
	Outcome     EventOutcome
	Error       string
	RecordedAt  time.Time
}
