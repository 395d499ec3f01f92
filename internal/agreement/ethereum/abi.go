package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const protocolABIJSON = `[
  {"type":"event","name":"AgreementCreated","anonymous":false,"inputs":[
    {"name":"id","type":"uint32","indexed":true},
    {"name":"userAddr","type":"address","indexed":true},
    {"name":"offerId","type":"uint32","indexed":false},
    {"name":"initialDeposit","type":"uint256","indexed":false}]},
  {"type":"event","name":"AgreementClosed","anonymous":false,"inputs":[
    {"name":"id","type":"uint32","indexed":true},
    {"name":"userAddr","type":"address","indexed":true}]},
  {"type":"function","name":"getAgreement","stateMutability":"view",
   "inputs":[{"name":"id","type":"uint32"}],
   "outputs":[{"name":"","type":"tuple","components":[
     {"name":"id","type":"uint32"},
     {"name":"offerId","type":"uint32"},
     {"name":"userAddr","type":"address"},
     {"name":"balance","type":"uint256"},
     {"name":"startTs","type":"uint256"},
     {"name":"endTs","type":"uint256"},
     {"name":"status","type":"uint8"}]}]},
  {"type":"function","name":"getOffer","stateMutability":"view",
   "inputs":[{"name":"id","type":"uint32"}],
   "outputs":[{"name":"","type":"tuple","components":[
     {"name":"id","type":"uint32"},
     {"name":"ownerAddr","type":"address"},
     {"name":"fee","type":"uint256"},
     {"name":"stockAmount","type":"uint32"},
     {"name":"activeAgreements","type":"uint32"},
     {"name":"status","type":"uint8"},
     {"name":"detailsLink","type":"string"}]}]},
  {"type":"function","name":"getAgreementsCount","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint32"}]},
  {"type":"function","name":"getRemainingAgreementBalance","stateMutability":"view",
   "inputs":[{"name":"id","type":"uint32"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getDetailsLink","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"closeAgreement","stateMutability":"nonpayable",
   "inputs":[{"name":"id","type":"uint32"}],"outputs":[]}
]`

const registryABIJSON = `[
  {"type":"function","name":"getActor","stateMutability":"view",
   "inputs":[{"name":"ownerAddr","type":"address"}],
   "outputs":[{"name":"","type":"tuple","components":[
     {"name":"actorType","type":"uint8"},
     {"name":"id","type":"uint32"},
     {"name":"registrationTs","type":"uint256"},
     {"name":"ownerAddr","type":"address"},
     {"name":"operatorAddr","type":"address"},
     {"name":"billingAddr","type":"address"},
     {"name":"detailsLink","type":"string"}]}]},
  {"type":"function","name":"getRegisteredProtocolsOfProvider","stateMutability":"view",
   "inputs":[{"name":"providerId","type":"uint32"}],
   "outputs":[{"name":"","type":"address[]"}]}
]`

var (
	protocolABI = mustParseABI(protocolABIJSON)
	registryABI = mustParseABI(registryABIJSON)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse abi: %v", err))
	}
	return parsed
}

// Tuple layouts returned by the contracts. Field names follow the ABI component names.
type (
	agreementTuple struct {
		Id       uint32
		OfferId  uint32
		UserAddr common.Address
		Balance  *big.Int
		StartTs  *big.Int
		EndTs    *big.Int
		Status   uint8
	}

	offerTuple struct {
		Id               uint32
		OwnerAddr        common.Address
		Fee              *big.Int
		StockAmount      uint32
		ActiveAgreements uint32
		Status           uint8
		DetailsLink      string
	}

	actorTuple struct {
		ActorType      uint8
		Id             uint32
		RegistrationTs *big.Int
		OwnerAddr      common.Address
		OperatorAddr   common.Address
		BillingAddr    common.Address
		DetailsLink    string
	}
)
