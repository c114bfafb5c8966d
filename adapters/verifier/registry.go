package verifier

import (
	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
)

// DefaultRegistry returns the verifier for every supported chain. The map is
// the single dispatch point: a chain missing here is an unsupported chain,
// there is no fallback branch.
func DefaultRegistry() map[core.Chain]ports.Verifier {
	return map[core.Chain]ports.Verifier{
		core.ChainEthereum: NewEVMVerifier(),
		core.ChainSolana:   NewSolanaVerifier(),
	}
}
