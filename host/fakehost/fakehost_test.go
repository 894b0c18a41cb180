package fakehost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/host/fakehost"
	"github.com/olonho/aurora-engine/types"
)

func TestIOReadWriteRemove(t *testing.T) {
	io := fakehost.NewIO()
	_, ok := io.Read([]byte("k"))
	require.False(t, ok)

	io.Write([]byte("k"), []byte("v"))
	v, ok := io.Read([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)

	io.Remove([]byte("k"))
	_, ok = io.Read([]byte("k"))
	require.False(t, ok)
}

func TestIOWriteCopiesValue(t *testing.T) {
	io := fakehost.NewIO()
	buf := []byte("v")
	io.Write([]byte("k"), buf)
	buf[0] = 'x'

	v, ok := io.Read([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("v"), v, "Write must copy its input rather than alias it")
}

func TestPromiseHandlerAssignsIncreasingIDs(t *testing.T) {
	p := &fakehost.PromiseHandler{}
	create := types.PromiseCreateArgs{TargetAccountID: "aurora", Method: "ft_transfer"}

	id1 := p.PromiseCreateCall(create)
	id2 := p.PromiseCreateCall(create)
	require.Less(t, id1, id2)
	require.Len(t, p.Created, 2)
}

func TestCryptoEcrecoverRejectsBadRecoveryID(t *testing.T) {
	var hash types.H256
	var r, s types.U256
	_, ok := fakehost.Crypto{}.Ecrecover(hash, 99, &r, &s)
	require.False(t, ok)
}
