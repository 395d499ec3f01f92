// Package config loads the providers file served by the daemon.
package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Provider holds the wallets of one provider. The billing key is accepted for compatibility
// with existing providers files.
type Provider struct {
	ProviderWalletPrivateKey string `yaml:"providerWalletPrivateKey" validate:"required,startswith=0x,len=66,hexadecimal"`
	BillingWalletPrivateKey  string `yaml:"billingWalletPrivateKey" validate:"required,startswith=0x,len=66,hexadecimal"`
	OperatorWalletPrivateKey string `yaml:"operatorWalletPrivateKey" validate:"required,startswith=0x,len=66,hexadecimal"`
	ProtocolAddress          string `yaml:"protocolAddress" validate:"omitempty,eth_addr"`
}

// Providers maps a provider tag to its configuration.
type Providers map[string]Provider

// LoadProviders reads and validates the providers file at path. JSON files are accepted too.
func LoadProviders(path string) (Providers, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}
	return ParseProviders(raw)
}

// ParseProviders decodes and validates a providers document.
func ParseProviders(raw []byte) (Providers, error) {
	var providers Providers
	if err := yaml.Unmarshal(raw, &providers); err != nil {
		return nil, fmt.Errorf("decode providers: %w", err)
	}
	if len(providers) == 0 {
		return nil, errors.New("no providers configured")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	for _, tag := range providers.Tags() {
		if strings.TrimSpace(tag) == "" {
			return nil, errors.New("provider tag must not be empty")
		}
		if err := validate.Struct(providers[tag]); err != nil {
			return nil, fmt.Errorf("provider %q: %w", tag, err)
		}
	}
	return providers, nil
}

// Tags returns the provider tags in lexical order.
func (p Providers) Tags() []string {
	tags := make([]string, 0, len(p))
	for tag := range p {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ProviderKey parses the provider wallet key.
func (p Provider) ProviderKey() (*ecdsa.PrivateKey, error) {
	return parseKey(p.ProviderWalletPrivateKey)
}

// OperatorKey parses the operator wallet key.
func (p Provider) OperatorKey() (*ecdsa.PrivateKey, error) {
	return parseKey(p.OperatorWalletPrivateKey)
}

// Protocol returns the configured protocol address, or nil to use the first registered one.
func (p Provider) Protocol() *common.Address {
	if p.ProtocolAddress == "" {
		return nil
	}
	addr := common.HexToAddress(p.ProtocolAddress)
	return &addr
}

func parseKey(hex string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}
