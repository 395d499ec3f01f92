package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

// ProtocolClient reads and closes agreements of one protocol contract on behalf of one provider.
type ProtocolClient struct {
	backend Backend
	address common.Address
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int

	// txMu serializes nonce assignment through SendTransaction for the signing account.
	txMu      sync.Mutex
	nextNonce uint64
	hasNonce  bool
}

// NewProtocolClient binds a protocol contract to the provider's signing key.
func NewProtocolClient(backend Backend, address common.Address, key *ecdsa.PrivateKey, chainID *big.Int) *ProtocolClient {
	return &ProtocolClient{
		backend: backend,
		address: address,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
	}
}

// Address returns the contract address.
func (c *ProtocolClient) Address() common.Address {
	return c.address
}

// Agreement reads an agreement by id.
func (c *ProtocolClient) Agreement(ctx context.Context, id uint32) (model.Agreement, error) {
	out, err := call(ctx, c.backend, protocolABI, c.address, "getAgreement", id)
	if err != nil {
		return model.Agreement{}, fmt.Errorf("get agreement %d: %w", id, err)
	}
	a := *abi.ConvertType(out[0], new(agreementTuple)).(*agreementTuple)

	startTS := int64(0)
	if a.StartTs != nil && a.StartTs.IsInt64() {
		startTS = a.StartTs.Int64()
	}
	return model.Agreement{
		ID:          a.Id,
		OfferID:     a.OfferId,
		UserAddress: a.UserAddr,
		Status:      model.AgreementStatus(a.Status),
		Balance:     a.Balance,
		StartTS:     startTS,
	}, nil
}

// Offer reads an offer by id.
func (c *ProtocolClient) Offer(ctx context.Context, id uint32) (model.Offer, error) {
	out, err := call(ctx, c.backend, protocolABI, c.address, "getOffer", id)
	if err != nil {
		return model.Offer{}, fmt.Errorf("get offer %d: %w", id, err)
	}
	o := *abi.ConvertType(out[0], new(offerTuple)).(*offerTuple)
	return model.Offer{
		ID:           o.Id,
		OwnerAddress: o.OwnerAddr,
		DetailsLink:  o.DetailsLink,
	}, nil
}

// ProviderAgreements lists every agreement made on offers owned by owner.
func (c *ProtocolClient) ProviderAgreements(ctx context.Context, owner common.Address) ([]model.Agreement, error) {
	out, err := call(ctx, c.backend, protocolABI, c.address, "getAgreementsCount")
	if err != nil {
		return nil, fmt.Errorf("get agreements count: %w", err)
	}
	count := *abi.ConvertType(out[0], new(uint32)).(*uint32)

	offerOwners := make(map[uint32]common.Address)
	var agreements []model.Agreement
	for id := uint32(1); id <= count; id++ {
		agreement, err := c.Agreement(ctx, id)
		if err != nil {
			return nil, err
		}

		offerOwner, ok := offerOwners[agreement.OfferID]
		if !ok {
			offer, err := c.Offer(ctx, agreement.OfferID)
			if err != nil {
				return nil, err
			}
			offerOwner = offer.OwnerAddress
			offerOwners[agreement.OfferID] = offerOwner
		}
		if offerOwner != owner {
			continue
		}
		agreement.OwnerAddress = offerOwner
		agreements = append(agreements, agreement)
	}
	return agreements, nil
}

// AgreementBalance returns the remaining balance of an agreement.
func (c *ProtocolClient) AgreementBalance(ctx context.Context, id uint32) (*big.Int, error) {
	out, err := call(ctx, c.backend, protocolABI, c.address, "getRemainingAgreementBalance", id)
	if err != nil {
		return nil, fmt.Errorf("get agreement %d balance: %w", id, err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// DetailsLink returns the CID of the contract's detail document.
func (c *ProtocolClient) DetailsLink(ctx context.Context) (string, error) {
	out, err := call(ctx, c.backend, protocolABI, c.address, "getDetailsLink")
	if err != nil {
		return "", fmt.Errorf("get details link: %w", err)
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// CloseAgreement submits a closeAgreement transaction signed by the provider key.
// It returns once the node accepted the transaction. Concurrent calls get consecutive nonces.
func (c *ProtocolClient) CloseAgreement(ctx context.Context, id uint32) error {
	data, err := protocolABI.Pack("closeAgreement", id)
	if err != nil {
		return fmt.Errorf("pack closeAgreement: %w", err)
	}
	if _, err := c.transact(ctx, data); err != nil {
		return fmt.Errorf("close agreement %d: %w", id, err)
	}
	return nil
}

func (c *ProtocolClient) transact(ctx context.Context, data []byte) (*types.Transaction, error) {
	c.txMu.Lock()
	defer c.txMu.Unlock()

	nonce, err := c.backend.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}
	// Nodes may report the pending nonce before our last transaction reached their pool.
	if c.hasNonce && c.nextNonce > nonce {
		nonce = c.nextNonce
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}
	gas, err := c.backend.EstimateGas(ctx, geth.CallMsg{
		From:     c.from,
		To:       &c.address,
		GasPrice: gasPrice,
		Data:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &c.address,
		Value:    new(big.Int),
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send tx %s: %w", signed.Hash().Hex(), err)
	}
	c.nextNonce = nonce + 1
	c.hasNonce = true
	return signed, nil
}

func call(ctx context.Context, backend Backend, parsed abi.ABI, to common.Address, method string, args ...any) ([]any, error) {
	input, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := backend.CallContract(ctx, geth.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	out, err := parsed.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, errors.New("empty result of " + method)
	}
	return out, nil
}
