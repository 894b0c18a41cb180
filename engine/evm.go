package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/olonho/aurora-engine/host"
	"github.com/olonho/aurora-engine/precompiles"
	"github.com/olonho/aurora-engine/statedb"
	"github.com/olonho/aurora-engine/types"
)

// blockHashPrefix is the fixed leading byte of the deterministic block-hash
// derivation.
const blockHashPrefix = 0x00

// deriveBlockHash computes sha256(0x00 || chain_id(32B) || account_id ||
// height (big-endian u64)) in place of a real block header chain this
// engine never persists.
func deriveBlockHash(chainID [32]byte, accountID types.AccountId, height uint64) types.H256 {
	h := sha256.New()
	h.Write([]byte{blockHashPrefix})
	h.Write(chainID[:])
	h.Write(accountID.Bytes())
	var hb [8]byte
	binary.BigEndian.PutUint64(hb[:], height)
	h.Write(hb[:])
	var out types.H256
	copy(out[:], h.Sum(nil))
	return out
}

// getHashFn builds the BLOCKHASH opcode's backing function: only the 256
// most recent past blocks are addressable, everything else is zero.
func getHashFn(chainID [32]byte, accountID types.AccountId, currentHeight uint64) func(uint64) common.Hash {
	return func(n uint64) common.Hash {
		if n >= currentHeight || n+256 <= currentHeight {
			return common.Hash{}
		}
		return deriveBlockHash(chainID, accountID, n)
	}
}

// NewEVM constructs the go-ethereum EVM this engine delegates opcode
// execution to, wired with London rules, a zero base fee since this engine
// never enforces an EIP-1559 base-fee market, and the two exit precompiles
// plus the ECRecover override installed at their fixed addresses.
func NewEVM(db *statedb.StateDB, env host.Env, chainID [32]byte, origin common.Address, gasPrice *big.Int) *vm.EVM {
	blockCtx := vm.BlockContext{
		CanTransfer: canTransfer,
		Transfer:    transfer,
		GetHash:     getHashFn(chainID, env.CurrentAccountID(), env.BlockHeight()),
		Coinbase:    precompiles.BlockCoinbase,
		BlockNumber: new(big.Int).SetUint64(env.BlockHeight()),
		Time:        env.BlockTimestampNanos() / 1_000_000_000,
		Difficulty:  big.NewInt(0),
		BaseFee:     big.NewInt(0),
		GasLimit:    env.PrepaidGas(),
	}
	txCtx := vm.TxContext{
		Origin:   origin,
		GasPrice: gasPrice,
	}

	chainConfig := &params.ChainConfig{
		ChainID:             new(big.Int).SetBytes(chainID[:]),
		HomesteadBlock:      big.NewInt(0),
		EIP150Block:         big.NewInt(0),
		EIP155Block:         big.NewInt(0),
		EIP158Block:         big.NewInt(0),
		ByzantiumBlock:      big.NewInt(0),
		ConstantinopleBlock: big.NewInt(0),
		PetersburgBlock:     big.NewInt(0),
		IstanbulBlock:       big.NewInt(0),
		BerlinBlock:         big.NewInt(0),
		LondonBlock:         big.NewInt(0),
	}

	evm := vm.NewEVM(blockCtx, db, chainConfig, vm.Config{})
	evm.SetTxContext(txCtx)
	installExitPrecompiles(evm)
	return evm
}

// installExitPrecompiles overrides the standard ECRecover precompile and
// adds the two exit pseudo-contracts at their fixed addresses, using the
// forked go-ethereum's `EVM.WithPrecompiles` seam (see go.mod's replace
// directive).
func installExitPrecompiles(evm *vm.EVM) {
	evm.WithPrecompiles(map[common.Address]vm.PrecompiledContract{
		precompiles.ECRecoverAddress:      precompiles.ECRecover{},
		precompiles.ExitToNearAddress:     precompiles.ExitToNear{},
		precompiles.ExitToEthereumAddress: precompiles.ExitToEthereum{},
	})
}

func canTransfer(db vm.StateDB, addr common.Address, amount *uint256.Int) bool {
	return db.GetBalance(addr).Cmp(amount) >= 0
}

func transfer(db vm.StateDB, sender, recipient common.Address, amount *uint256.Int) {
	db.SubBalance(sender, amount, tracing.BalanceChangeTransfer)
	db.AddBalance(recipient, amount, tracing.BalanceChangeTransfer)
}
