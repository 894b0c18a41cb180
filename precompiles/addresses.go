// Package precompiles implements the engine's two "exit" pseudo-contracts
// and its ECRecover override, each reaching the host collaborators bundled
// on the StateDB via the `evm.StateDB.(*statedb.StateDB)` type assertion.
package precompiles

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ExitToNearAddress and ExitToEthereumAddress are derived deterministically
// as keccak("exitToNear")[12:] / keccak("exitToEthereum")[12:].
var (
	ExitToNearAddress     = deriveExitAddress("exitToNear")
	ExitToEthereumAddress = deriveExitAddress("exitToEthereum")
	ECRecoverAddress      = common.BytesToAddress([]byte{0x01})
	BlockCoinbase         = common.HexToAddress("0x4444588443C3a91288c5002483449Aba1054192b")

	// EthSentinelErc20Address fills the ExitToNear/ExitToEth event's
	// erc20_address slot for a plain ETH exit, which has no ERC-20
	// contract to name.
	EthSentinelErc20Address = common.Address{}
)

func deriveExitAddress(name string) common.Address {
	h := crypto.Keccak256([]byte(name))
	return common.BytesToAddress(h[12:])
}

// Gas defaults. ExitToNearGas and ExitToEthereumGas are left at zero: these
// are deployment-tunable parameters, not values this engine derives itself.
const (
	FTTransferGas     uint64 = 100_000_000_000_000
	WithdrawalGas     uint64 = 100_000_000_000_000
	RefundOnErrorGas  uint64 = 60_000_000_000_000
	ExitToNearGas     uint64 = 0
	ExitToEthereumGas uint64 = 0

	ECRecoverBaseGas uint64 = 3_000
)
