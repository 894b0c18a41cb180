package types

// CallArgsVariant discriminates the two CallArgs payload shapes a caller
// may submit.
type CallArgsVariant uint8

const (
	// CallArgsV1 is the legacy bare-struct shape (contract, input).
	CallArgsV1 CallArgsVariant = iota
	// CallArgsV2 is the versioned enum shape (contract, value, input).
	CallArgsV2
)

// FunctionCallArgsV1 is the legacy call payload: a contract address and
// calldata, carrying no explicit value (value is always zero for V1 calls).
type FunctionCallArgsV1 struct {
	Contract Address
	Input    []byte
}

// FunctionCallArgsV2 is the current call payload, adding an explicit value.
type FunctionCallArgsV2 struct {
	Contract Address
	Value    [32]byte // big-endian U256 wei amount
	Input    []byte
}

// CallArgs is the decoded form of a `call`-style host entry point argument,
// holding exactly one of V1 or V2.
type CallArgs struct {
	Variant CallArgsVariant
	V1      *FunctionCallArgsV1
	V2      *FunctionCallArgsV2
}

// Contract returns the target contract address regardless of variant.
func (c CallArgs) Contract() Address {
	if c.Variant == CallArgsV2 {
		return c.V2.Contract
	}
	return c.V1.Contract
}

// Input returns the calldata regardless of variant.
func (c CallArgs) Input() []byte {
	if c.Variant == CallArgsV2 {
		return c.V2.Input
	}
	return c.V1.Input
}

// Value returns the attached value regardless of variant (zero for V1).
func (c CallArgs) Value() [32]byte {
	if c.Variant == CallArgsV2 {
		return c.V2.Value
	}
	return [32]byte{}
}

// EncodeCallArgsV2 borsh-encodes the tagged enum shape (tag 0, V2 fields).
func EncodeCallArgsV2(args FunctionCallArgsV2) []byte {
	w := NewWriter()
	w.WriteU8(0)
	w.WriteFixedBytes(args.Contract.Bytes())
	w.WriteFixedBytes(args.Value[:])
	w.WriteBytes(args.Input)
	return w.Bytes()
}

// EncodeCallArgsV1Tagged borsh-encodes the tagged enum shape (tag 1, V1 fields).
func EncodeCallArgsV1Tagged(args FunctionCallArgsV1) []byte {
	w := NewWriter()
	w.WriteU8(1)
	w.WriteFixedBytes(args.Contract.Bytes())
	w.WriteBytes(args.Input)
	return w.Bytes()
}

// EncodeFunctionCallArgsV1Bare borsh-encodes the legacy bare-struct shape
// (no enum tag) some older clients still send.
func EncodeFunctionCallArgsV1Bare(args FunctionCallArgsV1) []byte {
	w := NewWriter()
	w.WriteFixedBytes(args.Contract.Bytes())
	w.WriteBytes(args.Input)
	return w.Bytes()
}

// DecodeCallArgs tries the versioned enum shape first, then falls back to
// the legacy bare struct, preserving probe order exactly. Returns an error
// if neither shape consumes the input exactly.
func DecodeCallArgs(data []byte) (CallArgs, error) {
	if args, ok := tryDecodeCallArgsEnum(data); ok {
		return args, nil
	}
	if v1, ok := tryDecodeFunctionCallArgsV1Bare(data); ok {
		return CallArgs{Variant: CallArgsV1, V1: &v1}, nil
	}
	return CallArgs{}, ErrBorshUnderflow
}

func tryDecodeCallArgsEnum(data []byte) (CallArgs, bool) {
	r := NewReader(data)
	tag, err := r.ReadU8()
	if err != nil {
		return CallArgs{}, false
	}
	switch tag {
	case 0:
		contract, err := r.ReadFixedBytes(20)
		if err != nil {
			return CallArgs{}, false
		}
		value, err := r.ReadFixedBytes(32)
		if err != nil {
			return CallArgs{}, false
		}
		input, err := r.ReadBytes()
		if err != nil {
			return CallArgs{}, false
		}
		if r.Finish() != nil {
			return CallArgs{}, false
		}
		v2 := FunctionCallArgsV2{Contract: Address(contract), Input: input}
		copy(v2.Value[:], value)
		return CallArgs{Variant: CallArgsV2, V2: &v2}, true
	case 1:
		contract, err := r.ReadFixedBytes(20)
		if err != nil {
			return CallArgs{}, false
		}
		input, err := r.ReadBytes()
		if err != nil {
			return CallArgs{}, false
		}
		if r.Finish() != nil {
			return CallArgs{}, false
		}
		return CallArgs{Variant: CallArgsV1, V1: &FunctionCallArgsV1{Contract: Address(contract), Input: input}}, true
	default:
		return CallArgs{}, false
	}
}

func tryDecodeFunctionCallArgsV1Bare(data []byte) (FunctionCallArgsV1, bool) {
	r := NewReader(data)
	contract, err := r.ReadFixedBytes(20)
	if err != nil {
		return FunctionCallArgsV1{}, false
	}
	input, err := r.ReadBytes()
	if err != nil {
		return FunctionCallArgsV1{}, false
	}
	if r.Finish() != nil {
		return FunctionCallArgsV1{}, false
	}
	return FunctionCallArgsV1{Contract: Address(contract), Input: input}, true
}

// ViewCallArgs is the argument payload for a read-only `view` call.
type ViewCallArgs struct {
	Sender  Address
	Address Address
	Amount  [32]byte
	Input   []byte
}

// Encode borsh-serializes the view call args.
func (v ViewCallArgs) Encode() []byte {
	w := NewWriter()
	w.WriteFixedBytes(v.Sender.Bytes())
	w.WriteFixedBytes(v.Address.Bytes())
	w.WriteFixedBytes(v.Amount[:])
	w.WriteBytes(v.Input)
	return w.Bytes()
}

// DecodeViewCallArgs borsh-deserializes a ViewCallArgs.
func DecodeViewCallArgs(data []byte) (ViewCallArgs, error) {
	r := NewReader(data)
	sender, err := r.ReadFixedBytes(20)
	if err != nil {
		return ViewCallArgs{}, err
	}
	addr, err := r.ReadFixedBytes(20)
	if err != nil {
		return ViewCallArgs{}, err
	}
	amount, err := r.ReadFixedBytes(32)
	if err != nil {
		return ViewCallArgs{}, err
	}
	input, err := r.ReadBytes()
	if err != nil {
		return ViewCallArgs{}, err
	}
	if err := r.Finish(); err != nil {
		return ViewCallArgs{}, err
	}
	var v ViewCallArgs
	v.Sender = Address(sender)
	v.Address = Address(addr)
	copy(v.Amount[:], amount)
	v.Input = input
	return v, nil
}
