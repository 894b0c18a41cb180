package erc20_test

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olonho/aurora-engine/engine"
	"github.com/olonho/aurora-engine/erc20"
	"github.com/olonho/aurora-engine/host/fakehost"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/types"
)

// validRecipient is a well-formed 20-byte (40 hex char) ft_on_transfer
// message with no fee tail, the minimum ParseOnTransferMessage accepts.
const validRecipient = "00000000000000000000000000000000000000aa"

func newMintTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	io := fakehost.NewIO()
	store := state.New(io)
	store.SetEngineState(types.EngineState{ChainID: [32]byte{31: 1}, OwnerID: "aurora", BridgeProverID: "prover.near"})
	env := fakehost.NewEnv("aurora")
	env.PrepaidGasV = 3_000_000
	return engine.New(io, env, &fakehost.PromiseHandler{}, fakehost.Crypto{})
}

func TestReceiveERC20TokensRefundsOnMalformedMessage(t *testing.T) {
	e := newMintTestEngine(t)
	args := types.NEP141FtOnTransferArgs{SenderID: "alice.near", Amount: "100", Msg: "not-hex"}

	out := erc20.ReceiveERC20Tokens(e, "usdc.near", "relayer.near", args)
	require.Equal(t, `"100"`, out)
}

func TestReceiveERC20TokensRefundsWhenTokenNotRegistered(t *testing.T) {
	e := newMintTestEngine(t)
	args := types.NEP141FtOnTransferArgs{SenderID: "alice.near", Amount: "100", Msg: validRecipient}

	out := erc20.ReceiveERC20Tokens(e, "usdc.near", "relayer.near", args)
	require.Equal(t, `"100"`, out)
}

func TestReceiveERC20TokensRefundsOnNonNumericAmount(t *testing.T) {
	e := newMintTestEngine(t)
	require.NoError(t, e.Store.RegisterToken("usdc.near", types.Address{0xbb}))

	args := types.NEP141FtOnTransferArgs{SenderID: "alice.near", Amount: "not-a-number", Msg: validRecipient}
	out := erc20.ReceiveERC20Tokens(e, "usdc.near", "relayer.near", args)
	require.Equal(t, `"not-a-number"`, out)
}

func TestReceiveERC20TokensRefundsWhenFeeRequestedButRelayerUnregistered(t *testing.T) {
	e := newMintTestEngine(t)
	require.NoError(t, e.Store.RegisterToken("usdc.near", types.Address{0xbb}))

	msg := validRecipient + fmt.Sprintf("%064x", 5)
	args := types.NEP141FtOnTransferArgs{SenderID: "alice.near", Amount: "100", Msg: msg}
	out := erc20.ReceiveERC20Tokens(e, "usdc.near", "relayer.near", args)
	require.Equal(t, `"100"`, out, "a nonzero fee with no registered relayer must refund the full amount")
}

// TestReceiveERC20TokensMintsOnSuccessfulTransfer deploys the real bundled
// ERC-20 contract and drives a full inbound transfer through it, the only
// path that actually exercises the deployed bytecode's constructor and mint
// selector rather than stopping at one of ReceiveERC20Tokens's refund guards.
func TestReceiveERC20TokensMintsOnSuccessfulTransfer(t *testing.T) {
	e := newMintTestEngine(t)

	tokenAddr, err := erc20.DeployERC20Token(e, erc20.DeployErc20TokenArgs{Nep141: "usdc.near"})
	require.NoError(t, err)
	require.NotEqual(t, types.Address{}, tokenAddr)

	recipientBytes, err := hex.DecodeString(validRecipient)
	require.NoError(t, err)
	var recipient types.Address
	copy(recipient[:], recipientBytes)

	args := types.NEP141FtOnTransferArgs{SenderID: "alice.near", Amount: "1000", Msg: validRecipient}
	out := erc20.ReceiveERC20Tokens(e, "usdc.near", "relayer.near", args)
	require.Equal(t, "0", out, "a successful mint reports nothing left to refund")

	balanceCalldata, err := erc20.ABI.Pack("balanceOf", recipient)
	require.NoError(t, err)

	viewArgs := types.ViewCallArgs{
		Sender:  e.Env.CurrentAccountID().EVMAddress(),
		Address: tokenAddr,
		Input:   balanceCalldata,
	}
	status, err := e.View(viewArgs)
	require.NoError(t, err)
	require.True(t, status.IsOk(), "balanceOf view call must succeed")

	unpacked, err := erc20.ABI.Unpack("balanceOf", status.Output)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), unpacked[0].(*big.Int))
}
