package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/olonho/aurora-engine/host"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/statedb"
	"github.com/olonho/aurora-engine/types"
)

// Engine bundles the host collaborators and backing store the submit
// pipeline, ERC-20 deployment and inbound-mint flow all run against.
type Engine struct {
	Store              *state.Store
	Env                host.Env
	Promises           host.PromiseHandler
	Crypto             host.Crypto
	ErrorRefundEnabled bool
}

// New constructs an Engine over the given host collaborators.
func New(io host.IO, env host.Env, promises host.PromiseHandler, crypto host.Crypto) *Engine {
	return &Engine{Store: state.New(io), Env: env, Promises: promises, Crypto: crypto}
}

func (e *Engine) hostContext() statedb.HostContext {
	return statedb.HostContext{
		Crypto:             e.Crypto,
		Promises:           e.Promises,
		Env:                e.Env,
		EngineAccountID:    e.Env.CurrentAccountID(),
		ErrorRefundEnabled: e.ErrorRefundEnabled,
	}
}

// newEVM constructs a fresh StateDB/EVM pair for one transaction.
func (e *Engine) newEVM(st types.EngineState, txHash common.Hash, origin types.Address, gasPrice *big.Int) (*statedb.StateDB, *vm.EVM) {
	db := statedb.New(e.Store, statedb.TxConfig{TxHash: txHash}, e.hostContext())
	evm := NewEVM(db, e.Env, st.ChainID, common.Address(origin), gasPrice)
	return db, evm
}
