package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/host/fakehost"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/types"
)

func u256(v uint64) *types.U256 {
	out := new(types.U256)
	out.SetUint64(v)
	return out
}

func TestNonceStartsAtZeroAndIncrements(t *testing.T) {
	s := state.New(fakehost.NewIO())
	addr := types.Address{1}

	require.Equal(t, uint64(0), s.GetNonce(addr))
	s.IncrementNonce(addr)
	require.Equal(t, uint64(1), s.GetNonce(addr))
	s.IncrementNonce(addr)
	require.Equal(t, uint64(2), s.GetNonce(addr))
}

func TestBalanceAddAndRemove(t *testing.T) {
	s := state.New(fakehost.NewIO())
	addr := types.Address{2}

	require.NoError(t, s.AddBalance(addr, types.NewWei(u256(100))))
	require.Equal(t, 0, s.GetBalance(addr).Cmp(types.NewWei(u256(100))))

	require.NoError(t, s.RemoveBalance(addr, types.NewWei(u256(40))))
	require.Equal(t, 0, s.GetBalance(addr).Cmp(types.NewWei(u256(60))))

	require.Error(t, s.RemoveBalance(addr, types.NewWei(u256(1000))), "cannot remove more than the balance")
}

func TestGenerationBumpsMakeOldStorageUnreachable(t *testing.T) {
	s := state.New(fakehost.NewIO())
	addr := types.Address{3}
	slot := types.H256{1}
	value := types.H256{2}

	gen := s.GetGeneration(addr)
	s.SetStorage(addr, gen, slot, value)
	require.Equal(t, value, s.GetStorage(addr, gen, slot))

	newGen := s.IncrementGeneration(addr)
	require.NotEqual(t, gen, newGen)
	require.Equal(t, types.H256{}, s.GetStorage(addr, newGen, slot), "the old slot is unreachable under the new generation")
	// the old generation's data is still physically present but orphaned.
	require.Equal(t, value, s.GetStorage(addr, gen, slot))
}

func TestIsAccountEmptyAndDeleteAccount(t *testing.T) {
	s := state.New(fakehost.NewIO())
	addr := types.Address{4}
	require.True(t, s.IsAccountEmpty(addr))

	require.NoError(t, s.AddBalance(addr, types.NewWei(u256(1))))
	require.False(t, s.IsAccountEmpty(addr))

	gen := s.GetGeneration(addr)
	s.DeleteAccount(addr)
	require.True(t, s.IsAccountEmpty(addr))
	require.NotEqual(t, gen, s.GetGeneration(addr), "deleting an account bumps its generation")
}
