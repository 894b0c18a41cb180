package precompiles

import (
	"encoding/hex"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/olonho/aurora-engine/statedb"
	"github.com/olonho/aurora-engine/types"
)

// ExitToEthereum implements the exitToEthereum pseudo-contract.
type ExitToEthereum struct{}

func (ExitToEthereum) RequiredGas(_ []byte) uint64 { return ExitToEthereumGas }

func (ExitToEthereum) Run(evm *vm.EVM, contract *vm.Contract, readonly bool) ([]byte, error) {
	if readonly {
		return revertWith("ERR_INVALID_IN_STATIC")
	}
	db, ok := evm.StateDB.(*statedb.StateDB)
	if !ok {
		return revertWith("ERR_INVALID_CONTEXT")
	}

	// exitToEthereum never carries the error-refund prefix: it already
	// leaves the burned value on the remote chain's withdrawal path.
	flag, _, rest, ok := parseExitInput(contract.Input, false)
	if !ok {
		return revertWith("ERR_INVALID_INPUT")
	}

	var sender, erc20, recipient common.Address
	var amount [16]byte

	switch flag {
	case exitFlagETH:
		if len(rest) != 20 {
			return revertWith("ERR_INVALID_RECIPIENT_ADDRESS")
		}
		sender = contract.Caller()
		erc20 = EthSentinelErc20Address
		recipient = common.BytesToAddress(rest)
		val := contract.Value()
		b := val.Bytes32()
		copy(amount[:], b[16:])

		args := withdrawBorshArgs(recipient, amount)
		create := types.PromiseCreateArgs{
			TargetAccountID: db.Host.EngineAccountID,
			Method:          "withdraw",
			Args:            args,
			AttachedBalance: oneYocto,
			AttachedGas:     WithdrawalGas,
		}
		emitPromise(db, ExitToEthereumAddress, types.NewCreatePromise(create))

	case exitFlagERC20:
		if contract.Value().Sign() != 0 {
			return revertWith("ERR_ETH_ATTACHED_FOR_ERC20_EXIT")
		}
		if len(rest) < 32 {
			return revertWith("ERR_INVALID_INPUT")
		}
		if len(rest) != 52 {
			return revertWith("ERR_INVALID_RECIPIENT_ADDRESS")
		}
		copy(amount[:], rest[16:32])
		recipient = common.BytesToAddress(rest[32:52])
		sender = contract.Caller()
		erc20 = contract.Caller()
		nep141, found := db.Store().AccountForErc20(types.Address(erc20))
		if !found {
			return revertWith("ERR_TOKEN_NOT_MAPPED")
		}

		args := withdrawJSONArgsERC20(recipient, amount)
		create := types.PromiseCreateArgs{
			TargetAccountID: nep141,
			Method:          "withdraw",
			Args:            args,
			AttachedBalance: oneYocto,
			AttachedGas:     WithdrawalGas,
		}
		emitPromise(db, ExitToEthereumAddress, types.NewCreatePromise(create))

	default:
		return revertWith("ERR_INVALID_RECEIVER_ACCOUNT_ID")
	}

	topics, data := ExitToEthLog(sender, erc20, recipient, amount[:])
	emitEvent(db, ExitToEthereumAddress, topics, data)

	return nil, nil
}

func withdrawBorshArgs(recipient common.Address, amount [16]byte) []byte {
	w := types.WithdrawCallArgs{RecipientAddress: types.Address(recipient), Amount: amount}
	return w.Encode()
}

// withdrawJSONArgsERC20 builds the ERC-20 withdraw payload:
// `{"amount":"<u128>","recipient":"<40-hex>"}` (field order and naming
// differ from the ETH branch's WithdrawCallArgs shape).
func withdrawJSONArgsERC20(recipient common.Address, amount [16]byte) []byte {
	type erc20WithdrawArgs struct {
		Amount    string `json:"amount"`
		Recipient string `json:"recipient"`
	}
	args := erc20WithdrawArgs{Amount: u128ToDecimal(amount), Recipient: hex.EncodeToString(recipient.Bytes())}
	b, _ := json.Marshal(args)
	return b
}
