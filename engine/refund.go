package engine

import "github.com/olonho/aurora-engine/types"

// settleGas computes the unused-gas refund owed to the sender and the
// priority-fee reward owed to the relayer that submitted the transaction,
// then applies both to the store. Skipped entirely when effectiveGasPrice
// is zero, matching the fee-less submissions the original network accepts
// (invariant: no balance movement when the price is zero).
func (e *Engine) settleGas(sender types.Address, prepaid types.Wei, gasUsed uint64, effectiveGasPrice, priorityFee *types.U256) {
	if effectiveGasPrice.Sign() == 0 {
		return
	}

	spent, overflow := checkedMulU256(u256FromUint64(gasUsed), effectiveGasPrice)
	if !overflow {
		if refund, err := prepaid.Sub(types.NewWei(spent)); err == nil && !refund.IsZero() {
			_ = e.Store.AddBalance(sender, refund)
		}
	}

	relayer, ok := e.Store.Relayer(e.Env.PredecessorAccountID())
	if !ok {
		return
	}
	reward, overflow := checkedMulU256(u256FromUint64(gasUsed), priorityFee)
	if !overflow && !reward.IsZero() {
		_ = e.Store.AddBalance(relayer, types.NewWei(reward))
	}
}
