package statedb

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EVMConfig bundles the parameters needed to construct an EVM, adapted from
// the teacher's x/vm/statedb.EVMConfig (x/vm/statedb/config.go) with the
// cosmos fee-market/params fields swapped for this engine's own chain-id
// and fixed-gas-price model (spec.md §4.3).
type EVMConfig struct {
	ChainID   *big.Int
	Coinbase  common.Address
	BaseFee   *big.Int
	GasLimit  uint64
	BlockNum  *big.Int
	Timestamp uint64
}

// TxConfig carries per-transaction bookkeeping a StateDB needs to number
// its logs, mirroring the teacher's x/vm/statedb.TxConfig.
type TxConfig struct {
	TxHash  common.Hash
	TxIndex uint
}

// NewEmptyTxConfig returns a TxConfig for contexts with no enclosing
// transaction, such as a read-only view call.
func NewEmptyTxConfig() TxConfig {
	return TxConfig{}
}
