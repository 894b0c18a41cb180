// Package host declares the narrow set of capabilities this engine expects
// from whatever process embeds it: raw key-value storage, chain/block
// context, promise scheduling, and the one piece of cryptography the engine
// itself never implements (spec.md §6 "External Interfaces").
package host

import "github.com/olonho/aurora-engine/types"

// IO is the raw key-value storage surface the host exposes. Every Engine
// operation reads and writes through this interface rather than touching
// any storage engine directly (spec.md §3 "persistent generation-tagged KV
// store").
type IO interface {
	Read(key []byte) ([]byte, bool)
	Write(key, value []byte)
	Remove(key []byte)
}

// Env exposes the ambient block/chain context the host's runtime provides
// to a contract call (spec.md §4.3 block context fields).
type Env interface {
	CurrentAccountID() types.AccountId
	SignerAccountID() types.AccountId
	PredecessorAccountID() types.AccountId
	BlockHeight() uint64
	BlockTimestampNanos() uint64
	// BlockHash returns the hash of block n if it is available (the host
	// typically retains only the most recent 256), and false otherwise.
	BlockHash(n uint64) (types.H256, bool)
	AttachedDeposit() *types.U256
	PrepaidGas() uint64
}

// PromiseId is an opaque handle to a scheduled promise the host will run
// after the current transaction commits.
type PromiseId uint64

// PromiseHandler schedules outbound cross-contract calls produced by the
// exit precompiles and the submit pipeline's error-refund path (spec.md
// §4.4 "Promise extraction", §6 "Host PromiseHandler trait").
type PromiseHandler interface {
	// PromiseCreateCall schedules a single cross-contract call.
	PromiseCreateCall(args types.PromiseCreateArgs) PromiseId
	// PromiseAttachCallback attaches a callback to run on base's
	// completion, returning the id of the resulting chained promise.
	PromiseAttachCallback(base PromiseId, args types.PromiseCreateArgs) PromiseId
}

// Crypto is the one cryptographic primitive the engine delegates entirely
// to its host rather than implementing itself (spec.md §9 non-goal:
// "secp256k1 signature recovery math").
type Crypto interface {
	// Ecrecover recovers the 20-byte Ethereum address from a message hash,
	// recovery id, r and s. ok is false if the signature is invalid.
	Ecrecover(hash types.H256, recoveryID uint8, r, s *types.U256) (types.Address, bool)
}
