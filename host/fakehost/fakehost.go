// Package fakehost provides an in-memory host.IO/Env/PromiseHandler/Crypto
// implementation for tests, mirroring the teacher's pattern of driving unit
// tests against a minimal in-process fake rather than a live chain.
package fakehost

import (
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/olonho/aurora-engine/host"
	"github.com/olonho/aurora-engine/types"
)

// IO is an in-memory key-value store.
type IO struct {
	data map[string][]byte
}

// NewIO returns an empty in-memory store.
func NewIO() *IO { return &IO{data: make(map[string][]byte)} }

func (io *IO) Read(key []byte) ([]byte, bool) {
	v, ok := io.data[string(key)]
	return v, ok
}

func (io *IO) Write(key, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	io.data[string(key)] = cp
}

func (io *IO) Remove(key []byte) { delete(io.data, string(key)) }

// Env is a fixed, test-controlled block/chain context.
type Env struct {
	Current     types.AccountId
	Signer      types.AccountId
	Predecessor types.AccountId
	Height      uint64
	TimestampNs uint64
	Hashes      map[uint64]types.H256
	Deposit     *types.U256
	PrepaidGasV uint64
}

// NewEnv returns an Env with an empty zero deposit.
func NewEnv(current types.AccountId) *Env {
	zero := new(types.U256)
	return &Env{Current: current, Signer: current, Predecessor: current, Hashes: map[uint64]types.H256{}, Deposit: zero}
}

func (e *Env) CurrentAccountID() types.AccountId       { return e.Current }
func (e *Env) SignerAccountID() types.AccountId        { return e.Signer }
func (e *Env) PredecessorAccountID() types.AccountId   { return e.Predecessor }
func (e *Env) BlockHeight() uint64                     { return e.Height }
func (e *Env) BlockTimestampNanos() uint64              { return e.TimestampNs }
func (e *Env) AttachedDeposit() *types.U256            { return e.Deposit }
func (e *Env) PrepaidGas() uint64                      { return e.PrepaidGasV }

func (e *Env) BlockHash(n uint64) (types.H256, bool) {
	h, ok := e.Hashes[n]
	return h, ok
}

// PromiseHandler records scheduled promises for assertions.
type PromiseHandler struct {
	Created   []types.PromiseCreateArgs
	Callbacks []AttachedCallback
	nextID    uint64
}

// AttachedCallback records one PromiseAttachCallback call for assertions.
type AttachedCallback struct {
	Base host.PromiseId
	Args types.PromiseCreateArgs
}

func (p *PromiseHandler) PromiseCreateCall(args types.PromiseCreateArgs) host.PromiseId {
	p.Created = append(p.Created, args)
	p.nextID++
	return host.PromiseId(p.nextID)
}

func (p *PromiseHandler) PromiseAttachCallback(base host.PromiseId, args types.PromiseCreateArgs) host.PromiseId {
	p.Callbacks = append(p.Callbacks, AttachedCallback{Base: base, Args: args})
	p.nextID++
	return host.PromiseId(p.nextID)
}

// Crypto delegates secp256k1 recovery to go-ethereum's crypto package, the
// same library the bundled EVM executor already depends on.
type Crypto struct{}

func (Crypto) Ecrecover(hash types.H256, recoveryID uint8, r, s *types.U256) (types.Address, bool) {
	if recoveryID > 3 {
		return types.Address{}, false
	}
	sig := make([]byte, 65)
	rBytes := r.Bytes32()
	sBytes := s.Bytes32()
	copy(sig[0:32], rBytes[:])
	copy(sig[32:64], sBytes[:])
	sig[64] = recoveryID
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return types.Address{}, false
	}
	return crypto.PubkeyToAddress(*pub), true
}
