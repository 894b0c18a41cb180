package precompiles

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Event signatures, fixed constants per spec.md §6.
var (
	ExitToNearSignature = crypto.Keccak256Hash([]byte("ExitToNear(address,address,string,uint256)"))
	ExitToEthSignature  = crypto.Keccak256Hash([]byte("ExitToEth(address,address,address,uint256)"))
)

// hashIndexedString computes the topic for an indexed `string` parameter:
// keccak256(abi.encode(Token::String(s))), i.e. keccak256 of the full ABI
// encoding of s as a single argument, not of the string's raw bytes.
func hashIndexedString(s string) common.Hash {
	stringTy, _ := abi.NewType("string", "", nil)
	packed, err := abi.Arguments{{Type: stringTy}}.Pack(s)
	if err != nil {
		return crypto.Keccak256Hash([]byte(s))
	}
	// For a lone string argument the ABI encoding is a 32-byte offset, a
	// 32-byte length and the zero-padded data; keccak256 all of it.
	return crypto.Keccak256Hash(packed)
}

// ExitToNearLog builds the user-visible ExitToNear event log.
func ExitToNearLog(sender, erc20 common.Address, dest string, amount []byte) (topics []common.Hash, data []byte) {
	topics = []common.Hash{
		ExitToNearSignature,
		common.BytesToHash(sender.Bytes()),
		common.BytesToHash(erc20.Bytes()),
		hashIndexedString(dest),
	}
	uint256Ty, _ := abi.NewType("uint256", "", nil)
	data, _ = abi.Arguments{{Type: uint256Ty}}.Pack(new(big.Int).SetBytes(amount))
	return topics, data
}

// ExitToEthLog builds the user-visible ExitToEth event log.
func ExitToEthLog(sender, erc20, dest common.Address, amount []byte) (topics []common.Hash, data []byte) {
	topics = []common.Hash{
		ExitToEthSignature,
		common.BytesToHash(sender.Bytes()),
		common.BytesToHash(erc20.Bytes()),
		common.BytesToHash(dest.Bytes()),
	}
	uint256Ty, _ := abi.NewType("uint256", "", nil)
	data, _ = abi.Arguments{{Type: uint256Ty}}.Pack(new(big.Int).SetBytes(amount))
	return topics, data
}
