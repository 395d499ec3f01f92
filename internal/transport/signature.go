package transport

import (
	"crypto/ecdsa"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/router"
)

// SignatureHeader carries the EIP-191 signature of a pipe message.
const SignatureHeader = "X-Pipe-Signature"

var errBadSignature = errors.New("invalid signature")

// RequestDigest is the digest a requester signs. Variable-length fields are hashed one by one, so
// bytes cannot move between them:
//
//	keccak256(keccak256(id) | keccak256(method) | keccak256(path) | uint64be(timestamp) |
//	          keccak256(body) | keccak256(params))
//
// body and params are the exact bytes of the envelope fields, empty when absent.
func RequestDigest(req router.Request) []byte {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(req.Timestamp))
	return crypto.Keccak256(
		crypto.Keccak256([]byte(req.ID)),
		crypto.Keccak256([]byte(req.Method)),
		crypto.Keccak256([]byte(req.Path)),
		ts[:],
		crypto.Keccak256(req.Body),
		crypto.Keccak256(req.Params),
	)
}

// ResponseDigest is the digest the operator signs: keccak256 of "id|code|body".
func ResponseDigest(id string, code int, body []byte) []byte {
	return crypto.Keccak256([]byte(id + "|" + strconv.Itoa(code) + "|" + string(body)))
}

// Sign returns the hex encoded personal signature of digest.
func Sign(key *ecdsa.PrivateKey, digest []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(digest), key)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// Recover returns the address that produced signature over digest.
func Recover(signature string, digest []byte) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, errBadSignature
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(digest), sig)
	if err != nil {
		return common.Address{}, errBadSignature
	}
	return crypto.PubkeyToAddress(*pub), nil
}
