package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"

	"github.com/olonho/aurora-engine/precompiles"
	"github.com/olonho/aurora-engine/types"
)

// Submit runs the full pipeline a signed Ethereum transaction goes through:
// parse, validate, prepay gas, execute against a fresh StateDB, commit the
// result, extract promises, refund unused gas and pay the relayer, then
// package the outcome.
//
// A returned *types.EngineError means the transaction was rejected before
// ever touching state or the sender's nonce (steps 1-6); a returned
// types.SubmitResult, even one carrying an "out of ..." status, means the
// nonce was consumed and the pipeline ran to completion.
func (e *Engine) Submit(raw []byte) (types.SubmitResult, error) {
	// 1. parse + recover sender.
	tx, err := ParseTransaction(raw)
	if err != nil {
		return types.SubmitResult{}, types.NewEngineError(err, 0)
	}

	st, err := e.Store.GetEngineState()
	if err != nil {
		return types.SubmitResult{}, types.NewEngineError(err, 0)
	}

	// 2. chain id, when the transaction carries one (pre-EIP-155 transactions
	// carry none and are accepted regardless).
	if tx.HasChainID && tx.ChainID.Cmp(st.ChainIDU256()) != 0 {
		return types.SubmitResult{}, types.NewEngineError(types.ErrInvalidChainId, 0)
	}

	// 3. nonce.
	currentNonce := e.Store.GetNonce(tx.Sender)
	if tx.Nonce != currentNonce {
		return types.SubmitResult{}, types.NewEngineError(types.ErrIncorrectNonce, 0)
	}

	// 4. intrinsic gas.
	intrinsic, err := IntrinsicGas(tx.Data, tx.AccessList, tx.To == nil)
	if err != nil {
		return types.SubmitResult{}, types.NewEngineError(types.ErrGasOverflow, 0)
	}
	if tx.GasLimit < intrinsic {
		return types.SubmitResult{}, types.NewEngineError(types.ErrIntrinsicGasNotMet, 0)
	}

	// 5. fee sanity: the tip can never exceed the cap.
	if tx.MaxPriorityFeePerGas.Cmp(tx.MaxFeePerGas) > 0 {
		return types.SubmitResult{}, types.NewEngineError(types.ErrMaxPriorityGasFeeTooLarge, 0)
	}

	// effective_gas_price = min(max_fee, base_fee + priority_fee); base fee
	// is fixed at zero since this engine never enforces an EIP-1559
	// base-fee market.
	effectiveGasPrice := tx.MaxPriorityFeePerGas
	if tx.MaxFeePerGas.Cmp(effectiveGasPrice) < 0 {
		effectiveGasPrice = tx.MaxFeePerGas
	}

	// 6. prepaid gas cost, checked against overflow.
	prepaid, overflow := checkedMulU256(u256FromUint64(tx.GasLimit), effectiveGasPrice)
	if overflow {
		return types.SubmitResult{}, types.NewEngineError(types.ErrGasOverflow, 0)
	}
	prepaidWei := types.NewWei(prepaid)

	senderBalance := e.Store.GetBalance(tx.Sender)
	needed, err := prepaidWei.Add(types.NewWei(tx.Value))
	if err != nil {
		return types.SubmitResult{}, types.NewEngineError(types.ErrGasEthAmountOverflow, 0)
	}

	// 7. Insufficient balance to cover gas+value is not a parse/validation
	// failure: the nonce is still consumed and an OutOfFund result is
	// returned to the caller.
	if senderBalance.Cmp(needed) < 0 {
		e.Store.IncrementNonce(tx.Sender)
		return types.NewSubmitResult(types.TransactionStatus{Kind: types.TxStatusOutOfFund}, 0, nil), nil
	}

	// 8. execute against a fresh StateDB/EVM pair.
	db, evm := e.newEVM(st, common.Hash{}, tx.Sender, effectiveGasPrice.ToBig())

	// Contract creation derives both the deployed address and its own nonce
	// bump from the sender's current nonce inside evm.Create, so the nonce
	// must still read tx.Nonce going in; the call path has no such built-in
	// bump and must be incremented here instead.
	if tx.To != nil {
		db.SetNonce(common.Address(tx.Sender), tx.Nonce+1, tracing.NonceChangeReason(0))
	}
	prepaidU256, _ := uint256.FromBig(prepaid.ToBig())
	db.SubBalance(common.Address(tx.Sender), prepaidU256, tracing.BalanceChangeTransfer)

	gasLimit := tx.GasLimit - intrinsic
	value256, _ := uint256.FromBig(tx.Value.ToBig())

	var (
		returnData []byte
		leftOver   uint64
		vmErr      error
		deployed   common.Address
	)
	if tx.To == nil {
		returnData, deployed, leftOver, vmErr = evm.Create(common.Address(tx.Sender), tx.Data, gasLimit, value256)
		_ = deployed
		db.SetNonce(common.Address(tx.Sender), tx.Nonce+1, tracing.NonceChangeReason(0))
	} else {
		returnData, leftOver, vmErr = evm.Call(common.Address(tx.Sender), tx.toAddress(), tx.Data, gasLimit, value256)
	}

	status := statusFromVMError(vmErr, returnData)
	gasUsedByEVM := gasLimit - leftOver
	gasUsedTotal := intrinsic + gasUsedByEVM

	// Every status reaching here - Succeed, Revert, OutOfGas, OutOfFund,
	// OutOfOffset, CallTooDeep - already consumed the nonce and prepaid
	// balance above, so the commit persisting those must run regardless of
	// outcome; only a failure to parse/validate the transaction (steps 1-6)
	// skips state entirely, and step 7's out-of-fund result touches only the
	// nonce. The EVM's own internal snapshot/revert already
	// discarded any partial execution effects on a non-Succeed status, so
	// committing here only ever persists the nonce/prepay bookkeeping plus
	// whatever the execution itself left intact.
	if err := db.Commit(true); err != nil {
		return types.SubmitResult{}, types.NewEngineError(err, gasUsedTotal)
	}
	resultLogs, err := precompiles.ExtractPromises(db.Logs(), db.Host.Promises)
	if err != nil {
		return types.SubmitResult{}, types.NewEngineError(err, gasUsedTotal)
	}

	// 9. refund unused prepaid gas, and pay the relayer its priority-fee reward.
	e.settleGas(tx.Sender, prepaidWei, gasUsedTotal, effectiveGasPrice, tx.MaxPriorityFeePerGas)

	return types.NewSubmitResult(status, gasUsedTotal, resultLogs), nil
}

func statusFromVMError(err error, output []byte) types.TransactionStatus {
	switch err {
	case nil:
		return types.Succeed(output)
	case vm.ErrExecutionReverted:
		return types.Revert(output)
	case vm.ErrOutOfGas, vm.ErrGasUintOverflow, vm.ErrCodeStoreOutOfGas:
		return types.TransactionStatus{Kind: types.TxStatusOutOfGas}
	case vm.ErrInsufficientBalance:
		return types.TransactionStatus{Kind: types.TxStatusOutOfFund}
	case vm.ErrDepth:
		return types.TransactionStatus{Kind: types.TxStatusCallTooDeep}
	default:
		return types.TransactionStatus{Kind: types.TxStatusOutOfOffset}
	}
}
