// Package verifier implements per-chain wallet signature verification.
package verifier

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainpost/vouch/ports"
)

// EVMVerifier verifies secp256k1 personal-message signatures by recovering
// the signer address and comparing it to the claimed one.
type EVMVerifier struct{}

// NewEVMVerifier creates a verifier for EVM-family chains
func NewEVMVerifier() ports.Verifier {
	return &EVMVerifier{}
}

// Verify recovers the signing address from a 65-byte r||s||v signature over
// the EIP-191 personal-message hash of message. The signature and address
// arrive hex encoded. Any decode or recovery failure is a false result.
func (v *EVMVerifier) Verify(message []byte, signature string, address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	claimed := common.HexToAddress(address)

	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != 65 {
		return false
	}

	// Wallets encode the recovery id as 27/28; go-ethereum expects 0/1.
	sig = append([]byte(nil), sig...)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return false
	}

	return crypto.PubkeyToAddress(*pubKey) == claimed
}
