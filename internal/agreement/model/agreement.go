// Package model defines domain models for agreement synchronization and provisioning.
package model

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AgreementStatus mirrors the on-chain agreement state.
type AgreementStatus uint8

const (
	// AgreementNotActive marks a closed agreement.
	AgreementNotActive AgreementStatus = 0
	// AgreementActive marks an agreement that is still billed.
	AgreementActive AgreementStatus = 1
)

func (s AgreementStatus) String() string {
	if s == AgreementActive {
		return "Active"
	}
	return "NotActive"
}

// Agreement is an on-chain record binding a user to an offer.
type Agreement struct {
	ID           uint32
	OfferID      uint32
	UserAddress  common.Address
	OwnerAddress common.Address
	Status       AgreementStatus
	Balance      *big.Int
	StartTS      int64
}

// Offer is a provider's published service listing.
type Offer struct {
	ID           uint32
	OwnerAddress common.Address
	DetailsLink  string
}

// DetailedOffer is an offer with its detail document parsed as JSON.
// Details is nil when the document is missing or not valid JSON.
type DetailedOffer struct {
	Offer
	Details any
}

// Provider is a network actor registration cached from the chain registry.
type Provider struct {
	ID              uint32
	OwnerAddress    common.Address
	OperatorAddress common.Address
	DetailsLink     string
}

// Contract is a tracked agreement contract (protocol or product category).
type Contract struct {
	Address     common.Address
	DetailsLink string
}

// DetailDocument is an immutable, content-addressed descriptive blob.
type DetailDocument struct {
	CID     string `db:"cid" json:"cid"`
	Content string `db:"content" json:"content"`
}

// AddressKey returns the canonical lower-case hex form used for storage and lookups.
func AddressKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
