// Package engine implements the submit pipeline, wiring together the
// backend state, the bundled EVM executor, and the exit precompiles into
// the single `Submit` entry point.
package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"

	"github.com/olonho/aurora-engine/types"
)

// IntrinsicGas reuses the bundled EVM executor's own EIP-2/2930 cost
// function rather than reimplementing it; the engine already depends on
// go-ethereum/core/vm for opcode execution, so this is the same library,
// not an extra dependency.
func IntrinsicGas(data []byte, accessList gethtypes.AccessList, isContractCreation bool) (uint64, error) {
	rules := params.Rules{IsHomestead: true, IsIstanbul: true, IsShanghai: false}
	return core.IntrinsicGas(data, accessList, isContractCreation, rules.IsHomestead, rules.IsIstanbul, rules.IsShanghai)
}

// checkedMulU256 computes a*b and reports whether it overflowed a 256-bit
// unsigned integer.
func checkedMulU256(a, b *types.U256) (*types.U256, bool) {
	var out types.U256
	_, overflow := out.MulOverflow(a, b)
	return &out, overflow
}

func u256FromUint64(v uint64) *types.U256 {
	out := new(types.U256)
	out.SetUint64(v)
	return out
}

func u256FromBigInt(v *big.Int) *types.U256 {
	out := new(types.U256)
	out.SetFromBig(v)
	return out
}
