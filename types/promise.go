package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// PromiseArgsKind discriminates the two promise shapes the host scheduler
// accepts.
type PromiseArgsKind uint8

const (
	PromiseArgsCreate PromiseArgsKind = iota
	PromiseArgsCallback
)

// PromiseCreateArgs schedules a single cross-contract call.
type PromiseCreateArgs struct {
	TargetAccountID AccountId
	Method          string
	Args            []byte
	AttachedBalance [16]byte // big-endian yoctoNEAR
	AttachedGas     uint64
}

func (p PromiseCreateArgs) encode(w *Writer) {
	w.WriteString(p.TargetAccountID.String())
	w.WriteString(p.Method)
	w.WriteBytes(p.Args)
	w.WriteU128(p.AttachedBalance[:])
	w.WriteU64(p.AttachedGas)
}

func decodePromiseCreateArgs(r *Reader) (PromiseCreateArgs, error) {
	target, err := r.ReadString()
	if err != nil {
		return PromiseCreateArgs{}, err
	}
	method, err := r.ReadString()
	if err != nil {
		return PromiseCreateArgs{}, err
	}
	args, err := r.ReadBytes()
	if err != nil {
		return PromiseCreateArgs{}, err
	}
	balance, err := r.ReadU128()
	if err != nil {
		return PromiseCreateArgs{}, err
	}
	gas, err := r.ReadU64()
	if err != nil {
		return PromiseCreateArgs{}, err
	}
	var p PromiseCreateArgs
	p.TargetAccountID = AccountId(target)
	p.Method = method
	p.Args = args
	copy(p.AttachedBalance[:], balance)
	p.AttachedGas = gas
	return p, nil
}

// PromiseWithCallbackArgs chains a base promise to a callback scheduled on
// its completion, used by exit_to_near to attach a refund_on_error callback
// to its ft_transfer promise when error refund is enabled.
type PromiseWithCallbackArgs struct {
	Base     PromiseCreateArgs
	Callback PromiseCreateArgs
}

// PromiseArgs is the borsh-encoded envelope written into the internal,
// empty-topic log that ExtractPromises turns into a scheduled host promise.
type PromiseArgs struct {
	Kind     PromiseArgsKind
	Create   *PromiseCreateArgs
	Callback *PromiseWithCallbackArgs
}

// NewCreatePromise wraps a single call as a PromiseArgs.
func NewCreatePromise(p PromiseCreateArgs) PromiseArgs {
	return PromiseArgs{Kind: PromiseArgsCreate, Create: &p}
}

// NewCallbackPromise wraps a base+callback pair as a PromiseArgs.
func NewCallbackPromise(p PromiseWithCallbackArgs) PromiseArgs {
	return PromiseArgs{Kind: PromiseArgsCallback, Callback: &p}
}

// Encode borsh-serializes the promise envelope.
func (p PromiseArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU8(uint8(p.Kind))
	switch p.Kind {
	case PromiseArgsCreate:
		p.Create.encode(w)
	case PromiseArgsCallback:
		p.Callback.Base.encode(w)
		p.Callback.Callback.encode(w)
	}
	return w.Bytes()
}

// DecodePromiseArgs borsh-deserializes a promise envelope.
func DecodePromiseArgs(data []byte) (PromiseArgs, error) {
	r := NewReader(data)
	tag, err := r.ReadU8()
	if err != nil {
		return PromiseArgs{}, err
	}
	switch PromiseArgsKind(tag) {
	case PromiseArgsCreate:
		create, err := decodePromiseCreateArgs(r)
		if err != nil {
			return PromiseArgs{}, err
		}
		if err := r.Finish(); err != nil {
			return PromiseArgs{}, err
		}
		return NewCreatePromise(create), nil
	case PromiseArgsCallback:
		base, err := decodePromiseCreateArgs(r)
		if err != nil {
			return PromiseArgs{}, err
		}
		callback, err := decodePromiseCreateArgs(r)
		if err != nil {
			return PromiseArgs{}, err
		}
		if err := r.Finish(); err != nil {
			return PromiseArgs{}, err
		}
		return NewCallbackPromise(PromiseWithCallbackArgs{Base: base, Callback: callback}), nil
	default:
		return PromiseArgs{}, ErrStateCorrupted
	}
}

// WithdrawCallArgs is the borsh payload sent to the bridge connector's
// `withdraw` method when exit_to_ethereum's ETH branch schedules a
// cross-contract call (spec.md §4.4: "args are borsh (recipient_address,
// amount: u128)"). The ERC-20 branch builds a different, JSON-shaped
// payload directly (see exit_to_ethereum.go) since the two branches target
// different methods on different contracts.
type WithdrawCallArgs struct {
	RecipientAddress Address
	Amount           [16]byte // big-endian u128
}

// Encode borsh-serializes the withdraw args.
func (w WithdrawCallArgs) Encode() []byte {
	wr := NewWriter()
	wr.WriteFixedBytes(w.RecipientAddress.Bytes())
	wr.WriteU128(w.Amount[:])
	return wr.Bytes()
}

// RefundCallArgs is the self-callback payload exit_to_near attaches to every
// ft_transfer promise it emits while error refund is enabled, naming where
// the burned amount goes back to if that transfer fails. It targets this
// same engine's `refund_on_error` entry point, so it stays borsh-encoded
// like the rest of the engine's internal wire format.
type RefundCallArgs struct {
	RecipientAddress Address
	Erc20Address     *Address
	Amount           [32]byte
}

// Encode borsh-serializes the refund args.
func (r RefundCallArgs) Encode() []byte {
	w := NewWriter()
	w.WriteFixedBytes(r.RecipientAddress.Bytes())
	w.WriteOption(r.Erc20Address != nil, func() {
		w.WriteFixedBytes(r.Erc20Address.Bytes())
	})
	w.WriteFixedBytes(r.Amount[:])
	return w.Bytes()
}

// DecodeRefundCallArgs borsh-deserializes refund args.
func DecodeRefundCallArgs(data []byte) (RefundCallArgs, error) {
	r := NewReader(data)
	recipient, err := r.ReadFixedBytes(20)
	if err != nil {
		return RefundCallArgs{}, err
	}
	hasErc20, err := r.ReadBool()
	if err != nil {
		return RefundCallArgs{}, err
	}
	var erc20 *Address
	if hasErc20 {
		b, err := r.ReadFixedBytes(20)
		if err != nil {
			return RefundCallArgs{}, err
		}
		addr := Address(b)
		erc20 = &addr
	}
	amount, err := r.ReadFixedBytes(32)
	if err != nil {
		return RefundCallArgs{}, err
	}
	if err := r.Finish(); err != nil {
		return RefundCallArgs{}, err
	}
	var out RefundCallArgs
	out.RecipientAddress = Address(recipient)
	out.Erc20Address = erc20
	copy(out.Amount[:], amount)
	return out, nil
}

// NEP141FtOnTransferArgs is the JSON body NEP-141 token contracts deliver to
// `ft_on_transfer` for the inbound ERC-20 mint flow.
type NEP141FtOnTransferArgs struct {
	SenderID AccountId `json:"sender_id"`
	Amount   string    `json:"amount"`
	Msg      string    `json:"msg"`
}

// ParseNEP141FtOnTransferArgs decodes the ft_on_transfer JSON body.
func ParseNEP141FtOnTransferArgs(data []byte) (NEP141FtOnTransferArgs, error) {
	var raw struct {
		SenderID string `json:"sender_id"`
		Amount   string `json:"amount"`
		Msg      string `json:"msg"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return NEP141FtOnTransferArgs{}, ErrFailedTransactionParse
	}
	senderID, err := ParseAccountId([]byte(raw.SenderID))
	if err != nil {
		return NEP141FtOnTransferArgs{}, err
	}
	return NEP141FtOnTransferArgs{SenderID: senderID, Amount: raw.Amount, Msg: raw.Msg}, nil
}

// OnTransferMessage is the decoded form of NEP141FtOnTransferArgs.Msg: the
// recipient EVM address that should receive the minted ERC-20 tokens,
// followed by an optional relayer fee.
type OnTransferMessage struct {
	Recipient Address
	Fee       U256
}

// ErrMalformedOnTransferMessage is returned when msg is not a recipient
// address optionally followed by a fee, in the exact hex-character layout
// the mint flow requires.
var ErrMalformedOnTransferMessage = fmt.Errorf("malformed ft_on_transfer message")

// ParseOnTransferMessage parses msg as ASCII hex text: the first 40
// characters are the recipient address, and anything left over must be
// exactly 64 hex characters encoding a big-endian u256 fee.
func ParseOnTransferMessage(msg string) (OnTransferMessage, error) {
	if len(msg) < 40 {
		return OnTransferMessage{}, ErrMalformedOnTransferMessage
	}
	recipientBytes, err := hex.DecodeString(msg[:40])
	if err != nil {
		return OnTransferMessage{}, ErrMalformedOnTransferMessage
	}
	rest := msg[40:]

	var out OnTransferMessage
	out.Recipient = Address(recipientBytes)
	if rest == "" {
		return out, nil
	}
	if len(rest) != 64 {
		return OnTransferMessage{}, ErrMalformedOnTransferMessage
	}
	feeBytes, err := hex.DecodeString(rest)
	if err != nil {
		return OnTransferMessage{}, ErrMalformedOnTransferMessage
	}
	out.Fee.SetBytes(feeBytes)
	return out, nil
}

// u128ToDecimalString renders a big-endian 16-byte value as a base-10
// string, the shape NEAR JSON RPC expects for u128 amounts.
func u128ToDecimalString(b [16]byte) string {
	var v U256
	v.SetBytes(b[:])
	return v.Dec()
}
