// Package providers keeps the providers served by the daemon and registers them at startup.
package providers

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

type ownerKey struct {
	contract common.Address
	owner    common.Address
}

// Set is the registry of served providers. It is safe for concurrent use.
type Set struct {
	mu        sync.RWMutex
	regs      []provider.Registration
	byID      map[uint32]provider.Registration
	byOwner   map[ownerKey]provider.Registration
	sources   map[common.Address]chain.AgreementSource
	contracts []common.Address
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		byID:    make(map[uint32]provider.Registration),
		byOwner: make(map[ownerKey]provider.Registration),
		sources: make(map[common.Address]chain.AgreementSource),
	}
}

// Add stores reg and starts tracking its contract. A provider id can be added once.
func (s *Set) Add(reg provider.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[reg.Info.ID]; ok {
		return fmt.Errorf("provider %d is already registered", reg.Info.ID)
	}

	contract := reg.Source.Address()
	s.regs = append(s.regs, reg)
	s.byID[reg.Info.ID] = reg
	s.byOwner[ownerKey{contract: contract, owner: reg.Info.OwnerAddress}] = reg
	if _, ok := s.sources[contract]; !ok {
		s.sources[contract] = reg.Source
		s.contracts = append(s.contracts, contract)
	}
	return nil
}

// All returns every registration in the order they were added.
func (s *Set) All() []provider.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]provider.Registration(nil), s.regs...)
}

// Contracts returns the distinct tracked contract addresses.
func (s *Set) Contracts() []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]common.Address(nil), s.contracts...)
}

// Source returns a reader of a tracked contract.
func (s *Set) Source(contract common.Address) (chain.AgreementSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	source, ok := s.sources[contract]
	return source, ok
}

// ByOwner finds the provider owning offers on contract.
func (s *Set) ByOwner(contract, owner common.Address) (provider.Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.byOwner[ownerKey{contract: contract, owner: owner}]
	return reg, ok
}

func (s *Set) Registration(providerID uint32) (provider.Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.byID[providerID]
	return reg, ok
}
