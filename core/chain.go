package core

// Chain identifies a supported blockchain family.
type Chain string

const (
	// ChainEthereum covers EVM chains using secp256k1 personal-message signatures
	ChainEthereum Chain = "ethereum"

	// ChainSolana covers Ed25519 chains with base58-encoded public-key addresses
	ChainSolana Chain = "solana"
)

// ParseChain converts a wire-level chain identifier into a Chain.
// Unknown identifiers return ErrUnsupportedChain.
func ParseChain(s string) (Chain, error) {
	switch Chain(s) {
	case ChainEthereum:
		return ChainEthereum, nil
	case ChainSolana:
		return ChainSolana, nil
	default:
		return "", ErrUnsupportedChain
	}
}

func (c Chain) String() string {
	return string(c)
}
