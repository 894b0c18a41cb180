package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/host/fakehost"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/types"
)

func TestTokenBijectionIsAppendOnly(t *testing.T) {
	s := state.New(fakehost.NewIO())
	account := types.AccountId("usdc.near")
	erc20 := types.Address{0xaa}

	require.NoError(t, s.RegisterToken(account, erc20))

	got, ok := s.Erc20ForAccount(account)
	require.True(t, ok)
	require.Equal(t, erc20, got)

	backAccount, ok := s.AccountForErc20(erc20)
	require.True(t, ok)
	require.Equal(t, account, backAccount)

	// Re-registering the identical pair is a no-op.
	require.NoError(t, s.RegisterToken(account, erc20))

	// Rebinding either side to a different counterpart is rejected.
	err := s.RegisterToken(account, types.Address{0xbb})
	require.ErrorIs(t, err, types.ErrTokenAlreadyRegistered)

	err = s.RegisterToken("other.near", erc20)
	require.ErrorIs(t, err, types.ErrTokenAlreadyRegistered)
}

func TestRelayerLookup(t *testing.T) {
	s := state.New(fakehost.NewIO())
	_, ok := s.Relayer("relayer.near")
	require.False(t, ok)

	s.SetRelayer("relayer.near", types.Address{0x01})
	addr, ok := s.Relayer("relayer.near")
	require.True(t, ok)
	require.Equal(t, types.Address{0x01}, addr)
}
