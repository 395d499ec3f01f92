package ethereum

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/pkg/safe"
)

// Decoder extracts agreement lifecycle events from receipts of tracked contracts.
type Decoder struct {
	events map[common.Hash]abi.Event
	kinds  map[common.Hash]model.EventKind
}

// NewDecoder constructs a Decoder for the protocol contract ABI.
func NewDecoder() *Decoder {
	d := &Decoder{
		events: make(map[common.Hash]abi.Event),
		kinds:  make(map[common.Hash]model.EventKind),
	}
	for _, kind := range []model.EventKind{model.AgreementCreated, model.AgreementClosed} {
		ev := protocolABI.Events[string(kind)]
		d.events[ev.ID] = ev
		d.kinds[ev.ID] = kind
	}
	return d
}

// Decode returns lifecycle events emitted by contract in receipt order. Logs of other contracts
// and unrelated events are ignored. Logs that match a lifecycle event but cannot be decoded are
// reported in the joined error while the remaining events are still returned.
func (d *Decoder) Decode(contract common.Address, height uint64, receipt *chain.Receipt) ([]model.LifecycleEvent, error) {
	var (
		events []model.LifecycleEvent
		errs   []error
	)
	for _, log := range receipt.Logs {
		if log.Address != contract || len(log.Topics) == 0 {
			continue
		}
		ev, ok := d.events[log.Topics[0]]
		if !ok {
			continue
		}

		id, err := agreementID(ev, log)
		if err != nil {
			errs = append(errs, fmt.Errorf("decode %s log %d of %s: %w", ev.Name, log.Index, receipt.TxHash, err))
			continue
		}
		events = append(events, model.LifecycleEvent{
			Kind:        d.kinds[ev.ID],
			AgreementID: id,
			Contract:    contract,
			Height:      height,
			TxHash:      receipt.TxHash,
			LogIndex:    log.Index,
		})
	}
	return events, errors.Join(errs...)
}

func agreementID(ev abi.Event, log chain.Log) (uint32, error) {
	fields := make(map[string]any)

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, log.Topics[1:]); err != nil {
		return 0, fmt.Errorf("parse topics: %w", err)
	}
	if err := ev.Inputs.UnpackIntoMap(fields, log.Data); err != nil {
		return 0, fmt.Errorf("unpack data: %w", err)
	}

	switch v := fields["id"].(type) {
	case uint32:
		return v, nil
	case *big.Int:
		return safe.BigUint32(v)
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}
