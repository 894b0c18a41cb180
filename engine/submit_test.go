package engine_test

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/engine"
	"github.com/olonho/aurora-engine/host/fakehost"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/types"
)

const testChainID = 1313161554

func u256(v uint64) *types.U256 {
	out := new(types.U256)
	out.SetUint64(v)
	return out
}

func newTestEngine(t *testing.T) (*engine.Engine, *state.Store, *ecdsa.PrivateKey, types.Address) {
	t.Helper()
	io := fakehost.NewIO()
	store := state.New(io)

	var chainID [32]byte
	big.NewInt(testChainID).FillBytes(chainID[:])
	store.SetEngineState(types.EngineState{ChainID: chainID, OwnerID: "aurora", BridgeProverID: "prover.near"})

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sender := types.Address(crypto.PubkeyToAddress(key.PublicKey))

	env := fakehost.NewEnv("aurora")
	e := engine.New(io, env, &fakehost.PromiseHandler{}, fakehost.Crypto{})
	return e, store, key, sender
}

func signedLegacyTx(t *testing.T, key *ecdsa.PrivateKey, nonce, gasLimit uint64, gasPrice int64, to *types.Address, value int64, chainID int64) []byte {
	t.Helper()

	inner := &gethtypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(gasPrice),
		Gas:      gasLimit,
		Value:    big.NewInt(value),
	}
	if to != nil {
		addr := *to
		inner.To = &addr
	}

	tx := gethtypes.NewTx(inner)
	signer := gethtypes.NewEIP155Signer(big.NewInt(chainID))
	signed, err := gethtypes.SignTx(tx, signer, key)
	require.NoError(t, err)

	raw, err := signed.MarshalBinary()
	require.NoError(t, err)
	return raw
}

func TestSubmitRejectsChainIDMismatch(t *testing.T) {
	e, _, key, _ := newTestEngine(t)
	raw := signedLegacyTx(t, key, 0, 21000, 1, nil, 0, testChainID+1)

	_, err := e.Submit(raw)
	require.ErrorIs(t, err, types.ErrInvalidChainId)
}

func TestSubmitRejectsIncorrectNonce(t *testing.T) {
	e, _, key, _ := newTestEngine(t)
	raw := signedLegacyTx(t, key, 5, 21000, 1, nil, 0, testChainID)

	_, err := e.Submit(raw)
	require.ErrorIs(t, err, types.ErrIncorrectNonce)
}

func TestSubmitRejectsIntrinsicGasNotMet(t *testing.T) {
	e, _, key, _ := newTestEngine(t)
	raw := signedLegacyTx(t, key, 0, 1000, 1, nil, 0, testChainID)

	_, err := e.Submit(raw)
	require.ErrorIs(t, err, types.ErrIntrinsicGasNotMet)
}

func TestSubmitOutOfFundConsumesNonceWithoutError(t *testing.T) {
	e, store, key, sender := newTestEngine(t)
	recipient := types.Address{0xbb}
	raw := signedLegacyTx(t, key, 0, 21000, 1, &recipient, 1_000_000, testChainID)

	result, err := e.Submit(raw)
	require.NoError(t, err)
	require.Equal(t, types.TxStatusOutOfFund, result.Status.Kind)
	require.Equal(t, uint64(0), result.GasUsed)
	require.Equal(t, uint64(1), store.GetNonce(sender), "the nonce is consumed even though the transaction never executes")
}

func TestSubmitHappyPathTransfersValueAndRefundsUnspentGas(t *testing.T) {
	e, store, key, sender := newTestEngine(t)
	recipient := types.Address{0xcc}

	require.NoError(t, store.AddBalance(sender, types.NewWei(u256(10_000_000))))

	raw := signedLegacyTx(t, key, 0, 21000, 2, &recipient, 1000, testChainID)

	result, err := e.Submit(raw)
	require.NoError(t, err)
	require.True(t, result.Status.IsOk())
	require.Equal(t, uint64(21000), result.GasUsed, "a plain value transfer costs exactly the intrinsic gas")
	require.Equal(t, uint64(1), store.GetNonce(sender))

	require.Equal(t, 0, store.GetBalance(recipient).Cmp(types.NewWei(u256(1000))))

	spent := u256(21000 * 2)
	expectedSenderBalance, err := types.NewWei(u256(10_000_000)).Sub(types.NewWei(u256(1000)))
	require.NoError(t, err)
	expectedSenderBalance, err = expectedSenderBalance.Sub(types.NewWei(spent))
	require.NoError(t, err)
	require.Equal(t, 0, store.GetBalance(sender).Cmp(expectedSenderBalance))
}

func TestSubmitZeroGasPriceSkipsRefundAccounting(t *testing.T) {
	e, store, key, sender := newTestEngine(t)
	recipient := types.Address{0xdd}
	require.NoError(t, store.AddBalance(sender, types.NewWei(u256(1_000_000))))

	raw := signedLegacyTx(t, key, 0, 21000, 0, &recipient, 500, testChainID)

	result, err := e.Submit(raw)
	require.NoError(t, err)
	require.True(t, result.Status.IsOk())

	expected, err := types.NewWei(u256(1_000_000)).Sub(types.NewWei(u256(500)))
	require.NoError(t, err)
	require.Equal(t, 0, store.GetBalance(sender).Cmp(expected), "a zero effective gas price leaves the prepaid amount untouched since none was ever deducted beyond value")
}
