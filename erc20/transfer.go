package erc20

import (
	"fmt"

	"github.com/olonho/aurora-engine/engine"
	"github.com/olonho/aurora-engine/types"
)

var errNativeTransferFailed = fmt.Errorf("native transfer failed")

// decimalToU256 parses a base-10 amount string, the wire format NEP-141
// ft_on_transfer amounts always use.
func decimalToU256(amount string) (*types.U256, error) {
	var v types.U256
	if err := v.SetFromDecimal(amount); err != nil {
		return nil, err
	}
	return &v, nil
}

// transferNative moves a plain value transfer (no calldata) from sender to
// recipient through the engine's own Call path, used to pay a relayer its
// fee out of the not-yet-minted recipient's existing native balance.
func transferNative(e *engine.Engine, sender, recipient types.Address, amount *types.U256) error {
	value := amount.Bytes32()
	args := types.CallArgs{Variant: types.CallArgsV2, V2: &types.FunctionCallArgsV2{Contract: recipient, Value: value}}
	result, err := e.Call(sender, args)
	if err != nil {
		return err
	}
	if !result.Status.IsOk() {
		return errNativeTransferFailed
	}
	return nil
}
