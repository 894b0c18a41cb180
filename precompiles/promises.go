package precompiles

import (
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/olonho/aurora-engine/host"
	"github.com/olonho/aurora-engine/types"
)

func isExitAddress(addr common.Address) bool {
	return addr == ExitToNearAddress || addr == ExitToEthereumAddress
}

// ExtractPromises filters the executor's raw logs, converting empty-topic
// logs at one of the two exit addresses into scheduled host promises and
// passing everything else through as a user-visible ResultLog. Only logs
// at the exit addresses are ever interpreted as promise envelopes, so user
// contracts cannot forge one by emitting an empty-topic log of their own.
func ExtractPromises(logs []*gethtypes.Log, handler host.PromiseHandler) ([]types.ResultLog, error) {
	out := make([]types.ResultLog, 0, len(logs))
	for _, log := range logs {
		if isExitAddress(log.Address) && len(log.Topics) == 0 {
			args, err := types.DecodePromiseArgs(log.Data)
			if err != nil {
				return nil, err
			}
			switch args.Kind {
			case types.PromiseArgsCreate:
				handler.PromiseCreateCall(*args.Create)
			case types.PromiseArgsCallback:
				baseID := handler.PromiseCreateCall(args.Callback.Base)
				handler.PromiseAttachCallback(baseID, args.Callback.Callback)
			}
			continue
		}
		out = append(out, toResultLog(log))
	}
	return out, nil
}

func toResultLog(log *gethtypes.Log) types.ResultLog {
	topics := make([]types.H256, len(log.Topics))
	for i, t := range log.Topics {
		topics[i] = types.H256(t)
	}
	return types.ResultLog{Address: types.Address(log.Address), Topics: topics, Data: log.Data}
}
