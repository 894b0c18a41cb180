package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/olonho/aurora-engine/precompiles"
	"github.com/olonho/aurora-engine/types"
)

// Call runs a host-authenticated contract call with no accompanying signed
// Ethereum transaction: the predecessor account id is authenticated by the
// host itself, so there is no sender signature to recover, no nonce to
// check and no gas fee market to settle. On success the resulting state is
// committed and promises are scheduled exactly as Submit does.
func (e *Engine) Call(sender types.Address, args types.CallArgs) (types.SubmitResult, error) {
	st, err := e.Store.GetEngineState()
	if err != nil {
		return types.SubmitResult{}, types.NewEngineError(err, 0)
	}

	db, evm := e.newEVM(st, common.Hash{}, sender, big.NewInt(0))

	value := args.Value()
	value256, _ := uint256.FromBig(new(big.Int).SetBytes(value[:]))

	returnData, leftOver, vmErr := evm.Call(common.Address(sender), common.Address(args.Contract()), args.Input(), e.Env.PrepaidGas(), value256)
	status := statusFromVMError(vmErr, returnData)
	gasUsed := e.Env.PrepaidGas() - leftOver

	var resultLogs []types.ResultLog
	if status.IsOk() {
		if err := db.Commit(true); err != nil {
			return types.SubmitResult{}, types.NewEngineError(err, gasUsed)
		}
		resultLogs, err = precompiles.ExtractPromises(db.Logs(), db.Host.Promises)
		if err != nil {
			return types.SubmitResult{}, types.NewEngineError(err, gasUsed)
		}
	}

	return types.NewSubmitResult(status, gasUsed, resultLogs), nil
}

// DeployCode deploys bytecode at the address that would result from
// sender's current nonce, without going through the signed-transaction
// pipeline (used directly by the ERC-20 deployment flow).
func (e *Engine) DeployCode(sender types.Address, code []byte, value *types.U256) (types.Address, types.SubmitResult, error) {
	st, err := e.Store.GetEngineState()
	if err != nil {
		return types.Address{}, types.SubmitResult{}, types.NewEngineError(err, 0)
	}

	db, evm := e.newEVM(st, common.Hash{}, sender, big.NewInt(0))

	value256, _ := uint256.FromBig(value.ToBig())
	returnData, deployed, leftOver, vmErr := evm.Create(common.Address(sender), code, e.Env.PrepaidGas(), value256)
	status := statusFromVMError(vmErr, returnData)
	gasUsed := e.Env.PrepaidGas() - leftOver

	if !status.IsOk() {
		return types.Address{}, types.NewSubmitResult(status, gasUsed, nil), nil
	}
	if err := db.Commit(true); err != nil {
		return types.Address{}, types.SubmitResult{}, types.NewEngineError(err, gasUsed)
	}
	resultLogs, err := precompiles.ExtractPromises(db.Logs(), db.Host.Promises)
	if err != nil {
		return types.Address{}, types.SubmitResult{}, types.NewEngineError(err, gasUsed)
	}
	return types.Address(deployed), types.NewSubmitResult(status, gasUsed, resultLogs), nil
}

// View executes a read-only call: every state change the EVM would have
// made is discarded, since the returned StateDB is simply never committed,
// and no promises are ever scheduled from it.
func (e *Engine) View(args types.ViewCallArgs) (types.TransactionStatus, error) {
	st, err := e.Store.GetEngineState()
	if err != nil {
		return types.TransactionStatus{}, types.NewEngineError(err, 0)
	}

	_, evm := e.newEVM(st, common.Hash{}, args.Sender, big.NewInt(0))

	// StaticCall has no value parameter, so args.Amount is not used: no
	// balance moves and CALLVALUE reads zero inside the callee.
	returnData, _, vmErr := evm.StaticCall(common.Address(args.Sender), common.Address(args.Address), args.Input, e.Env.PrepaidGas())
	return statusFromVMError(vmErr, returnData), nil
}
