package precompiles_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/host/fakehost"
	"github.com/olonho/aurora-engine/precompiles"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/statedb"
)

func newTestStateDB(promises *fakehost.PromiseHandler) *statedb.StateDB {
	store := state.New(fakehost.NewIO())
	return statedb.New(store, statedb.NewEmptyTxConfig(), statedb.HostContext{
		Crypto:          fakehost.Crypto{},
		Promises:        promises,
		Env:             fakehost.NewEnv("aurora"),
		EngineAccountID: "aurora",
	})
}

func TestECRecoverHappyPath(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	hash := crypto.Keccak256Hash([]byte("hello"))
	sig, err := crypto.Sign(hash.Bytes(), key)
	require.NoError(t, err)

	var input [128]byte
	copy(input[0:32], hash.Bytes())
	input[63] = 27 + sig[64]
	copy(input[64:96], sig[0:32])
	copy(input[96:128], sig[32:64])

	db := newTestStateDB(&fakehost.PromiseHandler{})
	evm := &vm.EVM{StateDB: db}
	contract := vm.NewContract(vm.AccountRef(common.Address{}), vm.AccountRef(precompiles.ECRecoverAddress), new(uint256.Int), 1_000_000)
	contract.Input = input[:]

	out, err := precompiles.ECRecover{}.Run(evm, contract, false)
	require.NoError(t, err)
	require.Equal(t, addr, common.BytesToAddress(out))
}

func TestECRecoverBadVReturnsSentinel(t *testing.T) {
	var input [128]byte
	input[63] = 29 // neither 27 nor 28

	db := newTestStateDB(&fakehost.PromiseHandler{})
	evm := &vm.EVM{StateDB: db}
	contract := vm.NewContract(vm.AccountRef(common.Address{}), vm.AccountRef(precompiles.ECRecoverAddress), new(uint256.Int), 1_000_000)
	contract.Input = input[:]

	out, err := precompiles.ECRecover{}.Run(evm, contract, false)
	require.NoError(t, err)
	for _, b := range out {
		require.Equal(t, byte(0xff), b)
	}
}

func TestECRecoverRequiredGasIsFlat(t *testing.T) {
	require.Equal(t, precompiles.ECRecoverBaseGas, precompiles.ECRecover{}.RequiredGas(nil))
	require.Equal(t, precompiles.ECRecoverBaseGas, precompiles.ECRecover{}.RequiredGas([]byte{1, 2, 3}))
}

func TestExitAddressesAreDerivedFromKeccak(t *testing.T) {
	expectedNear := common.BytesToAddress(crypto.Keccak256([]byte("exitToNear"))[12:])
	expectedEth := common.BytesToAddress(crypto.Keccak256([]byte("exitToEthereum"))[12:])
	require.Equal(t, expectedNear, precompiles.ExitToNearAddress)
	require.Equal(t, expectedEth, precompiles.ExitToEthereumAddress)
	require.NotEqual(t, precompiles.ExitToNearAddress, precompiles.ExitToEthereumAddress)
}

func TestEventSignaturesAreFixed(t *testing.T) {
	require.Equal(t, crypto.Keccak256Hash([]byte("ExitToNear(address,address,string,uint256)")), precompiles.ExitToNearSignature)
	require.Equal(t, crypto.Keccak256Hash([]byte("ExitToEth(address,address,address,uint256)")), precompiles.ExitToEthSignature)
}

func TestExitToNearRejectsStaticCall(t *testing.T) {
	db := newTestStateDB(&fakehost.PromiseHandler{})
	evm := &vm.EVM{StateDB: db}
	contract := vm.NewContract(vm.AccountRef(common.Address{1}), vm.AccountRef(precompiles.ExitToNearAddress), new(uint256.Int), 1_000_000)
	contract.Input = []byte{0x00}

	_, err := precompiles.ExitToNear{}.Run(evm, contract, true)
	require.ErrorIs(t, err, vm.ErrExecutionReverted)
}

func TestExitToEthereumRejectsStaticCall(t *testing.T) {
	db := newTestStateDB(&fakehost.PromiseHandler{})
	evm := &vm.EVM{StateDB: db}
	contract := vm.NewContract(vm.AccountRef(common.Address{1}), vm.AccountRef(precompiles.ExitToEthereumAddress), new(uint256.Int), 1_000_000)
	contract.Input = []byte{0x00}

	_, err := precompiles.ExitToEthereum{}.Run(evm, contract, true)
	require.ErrorIs(t, err, vm.ErrExecutionReverted)
}

func TestExitToNearInvalidAccountIdReverts(t *testing.T) {
	db := newTestStateDB(&fakehost.PromiseHandler{})
	evm := &vm.EVM{StateDB: db}
	contract := vm.NewContract(vm.AccountRef(common.Address{1}), vm.AccountRef(precompiles.ExitToNearAddress), new(uint256.Int), 1_000_000)
	// flag=ETH, destination bytes fail the NEAR account id grammar.
	contract.Input = append([]byte{0x00}, []byte("NOT VALID!!")...)

	out, err := precompiles.ExitToNear{}.Run(evm, contract, false)
	require.ErrorIs(t, err, vm.ErrExecutionReverted)
	require.Equal(t, "ERR_INVALID_RECEIVER_ACCOUNT_ID", string(out))
}

func TestExitToNearEthHappyPathSchedulesPromiseAndEvent(t *testing.T) {
	promises := &fakehost.PromiseHandler{}
	db := newTestStateDB(promises)

	evm := &vm.EVM{StateDB: db}
	value := uint256.NewInt(1_000_000_000_000_000_000)
	contract := vm.NewContract(vm.AccountRef(common.Address{0xaa}), vm.AccountRef(precompiles.ExitToNearAddress), value, 1_000_000)
	contract.Input = append([]byte{0x00}, []byte("bob.near")...)

	out, err := precompiles.ExitToNear{}.Run(evm, contract, false)
	require.NoError(t, err)
	require.Nil(t, out)
	require.Len(t, db.Logs(), 2, "one internal promise envelope log plus one user-visible event log")

	resultLogs, err := precompiles.ExtractPromises(db.Logs(), promises)
	require.NoError(t, err)
	require.Len(t, resultLogs, 1, "only the user-visible event should survive promise extraction")
	require.Len(t, promises.Created, 1)
	require.Equal(t, "aurora", promises.Created[0].TargetAccountID.String())
	require.Equal(t, "ft_transfer", promises.Created[0].Method)
}
