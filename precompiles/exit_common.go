package precompiles

import (
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/olonho/aurora-engine/statedb"
	"github.com/olonho/aurora-engine/types"
)

const (
	exitFlagETH   byte = 0x0
	exitFlagERC20 byte = 0x1
)

func revertWith(msg string) ([]byte, error) {
	return []byte(msg), vm.ErrExecutionReverted
}

// parseExitInput splits the flag byte and optional refund address prefix
// from the precompile's raw input.
func parseExitInput(input []byte, errorRefundEnabled bool) (flag byte, refundAddress *types.Address, rest []byte, ok bool) {
	if len(input) < 1 {
		return 0, nil, nil, false
	}
	flag = input[0]
	rest = input[1:]
	if errorRefundEnabled {
		if len(rest) < 20 {
			return 0, nil, nil, false
		}
		addr := types.Address(common.BytesToAddress(rest[:20]))
		refundAddress = &addr
		rest = rest[20:]
	}
	return flag, refundAddress, rest, true
}

// emitPromise appends the internal, empty-topic promise envelope log that
// ExtractPromises later converts into a scheduled host promise.
func emitPromise(db *statedb.StateDB, exitAddress common.Address, args types.PromiseArgs) {
	db.AddLog(&gethtypes.Log{
		Address: exitAddress,
		Topics:  nil,
		Data:    args.Encode(),
	})
}

// emitEvent appends the user-visible exit event log.
func emitEvent(db *statedb.StateDB, exitAddress common.Address, topics []common.Hash, data []byte) {
	db.AddLog(&gethtypes.Log{
		Address: exitAddress,
		Topics:  topics,
		Data:    data,
	})
}
