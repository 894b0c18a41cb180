// Package erc20 implements the two directions of the NEP-141/ERC-20
// bridge: deploying the canonical mintable ERC-20 contract for a bridged
// NEP-141 token, and crediting it on an inbound transfer.
package erc20

import (
	_ "embed"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed contracts/evm_erc20.bin.hex
var creationCodeHex string

//go:embed contracts/abi.json
var abiJSON string

// ABI is the parsed interface of the canonical ERC-20 contract this engine
// deploys for every bridged NEP-141 token.
var ABI abi.ABI

// mintSelector is the first four bytes of keccak256("mint(address,uint256)"),
// the original project's ERC20_MINT_SELECTOR constant.
var mintSelector [4]byte

func init() {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(err)
	}
	ABI = parsed
	copy(mintSelector[:], ABI.Methods["mint"].ID)
}

// creationCode returns the contract's deploy-time bytecode, decoded from
// its embedded hex form on every call.
func creationCode() []byte {
	raw, err := hex.DecodeString(strings.TrimSpace(creationCodeHex))
	if err != nil {
		panic(err)
	}
	return raw
}
