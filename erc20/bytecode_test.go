package erc20_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/erc20"
)

func TestABIExposesConstructorAndMint(t *testing.T) {
	require.NotNil(t, erc20.ABI.Constructor.Inputs)
	require.Len(t, erc20.ABI.Constructor.Inputs, 4)

	mint, ok := erc20.ABI.Methods["mint"]
	require.True(t, ok)
	require.Len(t, mint.Inputs, 2)
}

func TestConstructorArgsPackWithEVMAddress(t *testing.T) {
	admin := common.Address{0xaa}
	packed, err := erc20.ABI.Pack("", "Empty", "EMPTY", uint8(0), admin)
	require.NoError(t, err)
	require.NotEmpty(t, packed)
}
