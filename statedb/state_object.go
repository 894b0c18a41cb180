package statedb

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Account is the in-memory mirror of one address's nonce/balance/code,
// adapted from the teacher's x/vm/statedb.Account (x/vm/statedb/state_object.go)
// with CodeHash swapped for a plain code byte slice, since this engine's
// host stores code directly rather than by hash in a separate code table.
type Account struct {
	Nonce   uint64
	Balance *uint256.Int
	Code    []byte
}

// NewEmptyAccount returns an empty account.
func NewEmptyAccount() *Account {
	return &Account{Balance: new(uint256.Int)}
}

// Storage is an in-memory cache/buffer of one address's contract storage.
type Storage map[common.Hash]common.Hash

func (s Storage) Copy() Storage {
	cpy := make(Storage, len(s))
	for k, v := range s {
		cpy[k] = v
	}
	return cpy
}

// SortedKeys returns the storage's keys in deterministic order.
func (s Storage) SortedKeys() []common.Hash {
	keys := make([]common.Hash, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) < 0
	})
	return keys
}

// stateObject is the in-memory state of one account during a single EVM
// execution, journaled so the whole call can be unwound on revert.
type stateObject struct {
	db *StateDB

	account Account

	// generation is the storage generation this object was loaded at; every
	// read/write against committed storage goes through this generation,
	// so a resetObject bump makes prior slots unreachable without
	// enumerating and deleting them (the generation scheme this engine
	// uses in place of the teacher's overrideStorage field).
	generation uint32

	originStorage Storage
	dirtyStorage  Storage

	address common.Address

	dirtyCode      bool
	selfDestructed bool
	newContract    bool
}

func newObject(db *StateDB, address common.Address, account Account) *stateObject {
	if account.Balance == nil {
		account.Balance = new(uint256.Int)
	}
	return &stateObject{
		db:            db,
		address:       address,
		account:       account,
		generation:    db.io.GetGeneration(address),
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
	}
}

// empty reports whether the account is considered absent by EIP-161, the
// condition the Commit sink's delete_empty rule acts on.
func (s *stateObject) empty() bool {
	return s.account.Nonce == 0 && s.account.Balance.Sign() == 0 && len(s.account.Code) == 0
}

func (s *stateObject) markSelfDestructed() { s.selfDestructed = true }

func (s *stateObject) AddBalance(amount *uint256.Int) uint256.Int {
	if amount.IsZero() {
		return *s.Balance()
	}
	return s.SetBalance(new(uint256.Int).Add(s.Balance(), amount))
}

func (s *stateObject) SubBalance(amount *uint256.Int) uint256.Int {
	if amount.IsZero() {
		return *s.Balance()
	}
	return s.SetBalance(new(uint256.Int).Sub(s.Balance(), amount))
}

func (s *stateObject) SetBalance(amount *uint256.Int) uint256.Int {
	prev := *s.account.Balance
	s.db.journal.append(balanceChange{account: &s.address, prev: new(uint256.Int).Set(s.account.Balance)})
	s.setBalance(amount)
	return prev
}

func (s *stateObject) setBalance(amount *uint256.Int) { s.account.Balance = amount }

func (s *stateObject) Address() common.Address { return s.address }

func (s *stateObject) Code() []byte { return s.account.Code }

func (s *stateObject) CodeSize() int { return len(s.account.Code) }

func (s *stateObject) SetCode(codeHash common.Hash, code []byte) {
	prevCode := s.account.Code
	s.db.journal.append(codeChange{account: &s.address, prevcode: prevCode})
	s.setCode(codeHash, code)
}

func (s *stateObject) setCode(_ common.Hash, code []byte) {
	s.account.Code = code
	s.dirtyCode = true
}

func (s *stateObject) SetNonce(nonce uint64) {
	s.db.journal.append(nonceChange{account: &s.address, prev: s.account.Nonce})
	s.setNonce(nonce)
}

func (s *stateObject) setNonce(nonce uint64) { s.account.Nonce = nonce }

func (s *stateObject) Balance() *uint256.Int { return s.account.Balance }

func (s *stateObject) Nonce() uint64 { return s.account.Nonce }

// GetCommittedState queries the value committed under this object's
// generation, caching the result in originStorage.
func (s *stateObject) GetCommittedState(key common.Hash) common.Hash {
	if value, cached := s.originStorage[key]; cached {
		return value
	}
	value := s.db.io.GetStorage(s.address, s.generation, key)
	s.originStorage[key] = value
	return value
}

// GetState queries the current value, preferring the in-flight dirty value.
func (s *stateObject) GetState(key common.Hash) common.Hash {
	if value, dirty := s.dirtyStorage[key]; dirty {
		return value
	}
	return s.GetCommittedState(key)
}

// SetState sets the contract state and returns the previous value.
func (s *stateObject) SetState(key, value common.Hash) common.Hash {
	prev := s.GetState(key)
	if prev == value {
		return prev
	}
	s.db.journal.append(storageChange{account: &s.address, key: key, prevalue: prev})
	s.setState(key, value)
	return prev
}

func (s *stateObject) setState(key, value common.Hash) { s.dirtyStorage[key] = value }

// resetObject bumps the storage generation and clears in-memory caches. It
// is called by CreateContract the first time an address becomes a new
// contract in this StateDB, so storage left at that address is unreachable.
func (s *stateObject) resetObject() {
	s.generation = s.db.io.IncrementGeneration(s.address)
	s.originStorage = make(Storage)
	s.dirtyStorage = make(Storage)
	s.account = Account{Balance: new(uint256.Int)}
}
