package precompiles

import (
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/olonho/aurora-engine/statedb"
	"github.com/olonho/aurora-engine/types"
)

var sentinelInvalidV = func() (h [32]byte) {
	for i := range h {
		h[i] = 0xff
	}
	return h
}()

// ECRecover overrides the standard address-0x1 precompile so signature
// recovery math is delegated entirely to the host's crypto collaborator,
// since secp256k1 recovery is never reimplemented by the engine itself,
// while the input-shaping and sentinel-on-bad-v behavior stays engine
// logic.
type ECRecover struct{}

// RequiredGas is the flat base cost; the engine does not charge per-byte
// for this precompile.
func (ECRecover) RequiredGas(_ []byte) uint64 { return ECRecoverBaseGas }

// Run implements the forked PrecompiledContract interface
// (github.com/cosmos/go-ethereum's extension over stock go-ethereum's
// Run(input) signature, needed so a precompile can reach call context and,
// via the evm.StateDB type assertion, its host collaborators).
func (ECRecover) Run(evm *vm.EVM, contract *vm.Contract, _ bool) ([]byte, error) {
	input := rightPad(contract.Input, 128)

	hash := types.H256(input[0:32])
	vBytes := input[32:64]
	rBytes := input[64:96]
	sBytes := input[96:128]

	for _, b := range vBytes[:31] {
		if b != 0 {
			return sentinelInvalidV[:], nil
		}
	}
	v := vBytes[31]
	if v != 27 && v != 28 {
		return sentinelInvalidV[:], nil
	}

	db, ok := evm.StateDB.(*statedb.StateDB)
	if !ok {
		return sentinelInvalidV[:], nil
	}

	var r, s types.U256
	r.SetBytes(rBytes)
	s.SetBytes(sBytes)

	addr, recovered := db.Host.Crypto.Ecrecover(hash, v-27, &r, &s)
	if !recovered {
		return sentinelInvalidV[:], nil
	}
	out := make([]byte, 32)
	copy(out[12:], addr.Bytes())
	return out, nil
}

func rightPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
