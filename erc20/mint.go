package erc20

import (
	"github.com/olonho/aurora-engine/engine"
	"github.com/olonho/aurora-engine/types"
)

// ReceiveERC20Tokens credits the ERC-20 shadow of an inbound NEP-141
// transfer. It must never panic or return an error the caller can't render:
// every failure path refunds the full transferred amount back to the
// caller by returning its decimal string, and only a fully successful mint
// returns "0", matching the ft_on_transfer contract of never panicking and
// always reporting the amount left unused.
func ReceiveERC20Tokens(e *engine.Engine, token types.AccountId, relayerAccountID types.AccountId, args types.NEP141FtOnTransferArgs) string {
	refundAll := `"` + args.Amount + `"`

	msg, err := types.ParseOnTransferMessage(args.Msg)
	if err != nil {
		return refundAll
	}

	erc20Token, ok := e.Store.Erc20ForAccount(token)
	if !ok {
		return refundAll
	}

	amount, err := decimalToU256(args.Amount)
	if err != nil {
		return refundAll
	}

	if msg.Fee.Sign() != 0 {
		relayer, ok := e.Store.Relayer(relayerAccountID)
		if !ok {
			return refundAll
		}
		if err := transferNative(e, msg.Recipient, relayer, &msg.Fee); err != nil {
			return refundAll
		}
	}

	calldata, err := ABI.Pack("mint", msg.Recipient, amount.ToBig())
	if err != nil {
		return refundAll
	}

	admin := e.Env.CurrentAccountID().EVMAddress()
	callArgs := types.CallArgs{Variant: types.CallArgsV2, V2: &types.FunctionCallArgsV2{Contract: erc20Token, Input: calldata}}
	result, err := e.Call(admin, callArgs)
	if err != nil || !result.Status.IsOk() {
		return refundAll
	}

	return "0"
}
