package precompiles

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/olonho/aurora-engine/statedb"
	"github.com/olonho/aurora-engine/types"
)

// ExitToNear implements the exitToNear pseudo-contract.
type ExitToNear struct{}

func (ExitToNear) RequiredGas(_ []byte) uint64 { return ExitToNearGas }

func (ExitToNear) Run(evm *vm.EVM, contract *vm.Contract, readonly bool) ([]byte, error) {
	if readonly {
		return revertWith("ERR_INVALID_IN_STATIC")
	}
	db, ok := evm.StateDB.(*statedb.StateDB)
	if !ok {
		return revertWith("ERR_INVALID_CONTEXT")
	}

	flag, refundAddress, rest, ok := parseExitInput(contract.Input, db.Host.ErrorRefundEnabled)
	if !ok {
		return revertWith("ERR_INVALID_INPUT")
	}

	var sender, erc20 common.Address
	var amount [16]byte
	var destBytes []byte
	targetAccount := db.Host.EngineAccountID

	switch flag {
	case exitFlagETH:
		sender = contract.Caller()
		erc20 = EthSentinelErc20Address
		val := contract.Value()
		b := val.Bytes32()
		copy(amount[:], b[16:])
		destBytes = rest
	case exitFlagERC20:
		if contract.Value().Sign() != 0 {
			return revertWith("ERR_ETH_ATTACHED_FOR_ERC20_EXIT")
		}
		if len(rest) < 32 {
			return revertWith("ERR_INVALID_INPUT")
		}
		copy(amount[:], rest[16:32])
		destBytes = rest[32:]
		sender = contract.Caller()
		erc20 = contract.Caller()
		nep141, found := db.Store().AccountForErc20(types.Address(erc20))
		if !found {
			return revertWith("ERR_TOKEN_NOT_MAPPED")
		}
		targetAccount = nep141
	default:
		return revertWith("ERR_INVALID_FLAG")
	}

	destAccount, err := types.ParseAccountId(destBytes)
	if err != nil {
		return revertWith("ERR_INVALID_RECEIVER_ACCOUNT_ID")
	}

	promiseArgs := buildFtTransferPromise(db, targetAccount, destAccount, amount, refundAddress, erc20)
	emitPromise(db, ExitToNearAddress, promiseArgs)

	topics, data := ExitToNearLog(sender, erc20, destAccount.String(), amount[:])
	emitEvent(db, ExitToNearAddress, topics, data)

	return nil, nil
}

type ftTransferArgs struct {
	ReceiverID string  `json:"receiver_id"`
	Amount     string  `json:"amount"`
	Memo       *string `json:"memo"`
}

var oneYocto = [16]byte{15: 1}

func u128ToDecimal(b [16]byte) string {
	var v types.U256
	v.SetBytes(b[:])
	return v.Dec()
}

// buildFtTransferPromise assembles the ft_transfer promise, wrapping it
// with a refund_on_error callback when error-refund is enabled. target is
// the engine's own account for an ETH exit (ETH is held as a fungible
// token at the engine address) or the resolved NEP-141 account for an
// ERC-20 exit.
func buildFtTransferPromise(db *statedb.StateDB, target types.AccountId, dest types.AccountId, amount [16]byte, refundAddress *types.Address, erc20 common.Address) types.PromiseArgs {
	args := ftTransferArgs{ReceiverID: dest.String(), Amount: u128ToDecimal(amount)}
	argsJSON, _ := json.Marshal(args)

	base := types.PromiseCreateArgs{
		TargetAccountID: target,
		Method:          "ft_transfer",
		Args:            argsJSON,
		AttachedBalance: oneYocto,
		AttachedGas:     FTTransferGas,
	}

	if refundAddress == nil {
		return types.NewCreatePromise(base)
	}

	var erc20Ptr *types.Address
	if erc20 != (common.Address{}) {
		v := types.Address(erc20)
		erc20Ptr = &v
	}
	var amount32 [32]byte
	copy(amount32[16:], amount[:])
	refundArgs := types.RefundCallArgs{RecipientAddress: *refundAddress, Erc20Address: erc20Ptr, Amount: amount32}
	callback := types.PromiseCreateArgs{
		TargetAccountID: db.Host.EngineAccountID,
		Method:          "refund_on_error",
		Args:            refundArgs.Encode(),
		AttachedGas:     RefundOnErrorGas,
	}
	return types.NewCallbackPromise(types.PromiseWithCallbackArgs{Base: base, Callback: callback})
}
