package statedb_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/host/fakehost"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/statedb"
)

func newDB(t *testing.T) (*statedb.StateDB, *state.Store) {
	t.Helper()
	store := state.New(fakehost.NewIO())
	db := statedb.New(store, statedb.NewEmptyTxConfig(), statedb.HostContext{
		Crypto:   fakehost.Crypto{},
		Promises: &fakehost.PromiseHandler{},
		Env:      fakehost.NewEnv("aurora"),
	})
	return db, store
}

func TestSnapshotRevertUndoesBalanceAndNonceChanges(t *testing.T) {
	db, _ := newDB(t)
	addr := common.Address{1}

	db.AddBalance(addr, uint256.NewInt(100), tracing.BalanceChangeUnspecified)
	db.SetNonce(addr, 3, tracing.NonceChangeUnspecified)

	snap := db.Snapshot()
	db.AddBalance(addr, uint256.NewInt(50), tracing.BalanceChangeUnspecified)
	db.SetNonce(addr, 4, tracing.NonceChangeUnspecified)
	require.Equal(t, uint64(150), db.GetBalance(addr).Uint64())
	require.Equal(t, uint64(4), db.GetNonce(addr))

	db.RevertToSnapshot(snap)
	require.Equal(t, uint64(100), db.GetBalance(addr).Uint64())
	require.Equal(t, uint64(3), db.GetNonce(addr))
}

func TestSnapshotRevertUndoesStorageWrite(t *testing.T) {
	db, _ := newDB(t)
	addr := common.Address{2}
	slot := common.Hash{1}

	db.SetState(addr, slot, common.Hash{9})
	snap := db.Snapshot()
	db.SetState(addr, slot, common.Hash{8})
	require.Equal(t, common.Hash{8}, db.GetState(addr, slot))

	db.RevertToSnapshot(snap)
	require.Equal(t, common.Hash{9}, db.GetState(addr, slot))
}

func TestSelfDestructZeroesBalanceAndMarksDestroyed(t *testing.T) {
	db, _ := newDB(t)
	addr := common.Address{3}
	db.AddBalance(addr, uint256.NewInt(10), tracing.BalanceChangeUnspecified)

	require.False(t, db.HasSelfDestructed(addr))
	prev := db.SelfDestruct(addr)
	require.Equal(t, uint64(10), prev.Uint64())
	require.True(t, db.HasSelfDestructed(addr))
	require.Equal(t, uint64(0), db.GetBalance(addr).Uint64())
}

func TestCommitDeletesSelfDestructedAccounts(t *testing.T) {
	db, store := newDB(t)
	addr := common.Address{4}
	db.AddBalance(addr, uint256.NewInt(10), tracing.BalanceChangeUnspecified)
	db.SelfDestruct(addr)

	require.NoError(t, db.Commit(true))
	require.True(t, store.IsAccountEmpty(addr))
}

func TestCommitDeletesEmptyAccountsWhenRequested(t *testing.T) {
	db, store := newDB(t)
	addr := common.Address{5}
	db.AddBalance(addr, uint256.NewInt(10), tracing.BalanceChangeUnspecified)
	db.SubBalance(addr, uint256.NewInt(10), tracing.BalanceChangeUnspecified)
	db.SetNonce(addr, 0, tracing.NonceChangeUnspecified)

	require.NoError(t, db.Commit(true))
	require.True(t, store.IsAccountEmpty(addr))
}

func TestCommitPersistsNonEmptyAccountState(t *testing.T) {
	db, store := newDB(t)
	addr := common.Address{6}
	db.AddBalance(addr, uint256.NewInt(42), tracing.BalanceChangeUnspecified)
	db.SetNonce(addr, 1, tracing.NonceChangeUnspecified)

	require.NoError(t, db.Commit(true))
	require.False(t, store.IsAccountEmpty(addr))
	require.Equal(t, uint64(42), store.GetBalance(addr).Raw().Uint64())
	require.Equal(t, uint64(1), store.GetNonce(addr))
}

func TestAccessListTracksAddressesAndSlots(t *testing.T) {
	db, _ := newDB(t)
	addr := common.Address{7}
	slot := common.Hash{1}

	require.False(t, db.AddressInAccessList(addr))
	db.AddSlotToAccessList(addr, slot)
	require.True(t, db.AddressInAccessList(addr))
	addrOk, slotOk := db.SlotInAccessList(addr, slot)
	require.True(t, addrOk)
	require.True(t, slotOk)
}

func TestCreateContractBumpsGenerationOnlyOnce(t *testing.T) {
	db, store := newDB(t)
	addr := common.Address{8}

	gen := store.GetGeneration(addr)
	db.CreateContract(addr)
	db.CreateContract(addr)
	require.Equal(t, gen+1, store.GetGeneration(addr), "CreateContract invalidates any storage left from a prior deployment at this address")
}
