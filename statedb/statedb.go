// Package statedb adapts the teacher's journaled StateDB
// (x/vm/statedb/state_object.go) into an implementation of go-ethereum's
// vm.StateDB interface backed by this engine's generation-tagged KV store
// instead of a Cosmos SDK multi-store.
package statedb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/olonho/aurora-engine/host"
	"github.com/olonho/aurora-engine/state"
	"github.com/olonho/aurora-engine/types"
)

// HostContext bundles the host collaborators a precompile recovers via the
// `evm.StateDB.(*statedb.StateDB)` type assertion (the teacher's
// RunNativeAction trick, precompiles/common/precompile.go), since the
// narrow vm.StateDB interface a precompile is handed has no room for them.
type HostContext struct {
	Crypto             host.Crypto
	Promises           host.PromiseHandler
	Env                host.Env
	EngineAccountID    types.AccountId
	ErrorRefundEnabled bool
}

func crypto256(code []byte) common.Hash { return crypto.Keccak256Hash(code) }

// StateDB is the per-transaction state view the EVM executor runs against.
// Commit realizes spec.md §4.3's `apply(values, logs, delete_empty)` sink:
// every dirty account/storage change made through this StateDB is only
// persisted to the underlying Store when Commit is called. The one
// exception is the storage-generation bump CreateContract makes, which is
// written to the Store immediately and is not undone by a revert.
type StateDB struct {
	io *state.Store

	stateObjects map[common.Address]*stateObject

	journal    *journal
	accessList *accessList

	transientStorage map[common.Address]Storage

	logs    []*gethtypes.Log
	logSize uint

	refund uint64

	txConfig TxConfig

	// Host is the bundle of host collaborators precompiles reach through
	// the type-assertion trick described on HostContext.
	Host HostContext
}

// New constructs a StateDB over a host-backed Store.
func New(io *state.Store, txConfig TxConfig, hostCtx HostContext) *StateDB {
	return &StateDB{
		io:               io,
		stateObjects:     make(map[common.Address]*stateObject),
		journal:          newJournal(),
		accessList:       newAccessList(),
		transientStorage: make(map[common.Address]Storage),
		txConfig:         txConfig,
		Host:             hostCtx,
	}
}

// Store exposes the underlying host-backed account/bijection store, used by
// precompiles that need bijection lookups or direct balance adjustments
// outside of the EVM's normal balance-transfer path.
func (db *StateDB) Store() *state.Store { return db.io }

func (db *StateDB) getStateObject(addr common.Address) *stateObject {
	if obj, ok := db.stateObjects[addr]; ok {
		return obj
	}
	account := Account{
		Nonce:   db.io.GetNonce(addr),
		Balance: db.io.GetBalance(addr).Raw(),
		Code:    db.io.GetCode(addr),
	}
	obj := newObject(db, addr, account)
	db.stateObjects[addr] = obj
	return obj
}

func (db *StateDB) getOrNewStateObject(addr common.Address) *stateObject {
	obj := db.getStateObject(addr)
	return obj
}

// CreateAccount ensures addr has a tracked state object; new accounts start
// empty, so this is a no-op beyond making the lookup warm.
func (db *StateDB) CreateAccount(addr common.Address) {
	db.getOrNewStateObject(addr)
}

// CreateContract marks addr as a freshly-deployed contract, bumping its
// storage generation so any storage left from a prior self-destruct at the
// same address is unreachable (spec.md §4.1 remove_all_storage).
func (db *StateDB) CreateContract(addr common.Address) {
	obj := db.getOrNewStateObject(addr)
	if !obj.newContract {
		obj.newContract = true
		obj.resetObject()
	}
}

func (db *StateDB) SubBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) uint256.Int {
	return db.getOrNewStateObject(addr).SubBalance(amount)
}

func (db *StateDB) AddBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) uint256.Int {
	return db.getOrNewStateObject(addr).AddBalance(amount)
}

func (db *StateDB) GetBalance(addr common.Address) *uint256.Int {
	return db.getStateObject(addr).Balance()
}

func (db *StateDB) GetNonce(addr common.Address) uint64 {
	return db.getStateObject(addr).Nonce()
}

func (db *StateDB) SetNonce(addr common.Address, nonce uint64, _ tracing.NonceChangeReason) {
	db.getOrNewStateObject(addr).SetNonce(nonce)
}

func (db *StateDB) GetCodeHash(addr common.Address) common.Hash {
	code := db.GetCode(addr)
	if len(code) == 0 {
		return common.Hash{}
	}
	return crypto256(code)
}

func (db *StateDB) GetCode(addr common.Address) []byte {
	return db.getStateObject(addr).Code()
}

func (db *StateDB) SetCode(addr common.Address, code []byte) []byte {
	obj := db.getOrNewStateObject(addr)
	prev := obj.Code()
	obj.SetCode(crypto256(code), code)
	return prev
}

func (db *StateDB) GetCodeSize(addr common.Address) int {
	return db.getStateObject(addr).CodeSize()
}

func (db *StateDB) AddRefund(gas uint64) {
	db.journal.append(refundChange{prev: db.refund})
	db.refund += gas
}

func (db *StateDB) SubRefund(gas uint64) {
	db.journal.append(refundChange{prev: db.refund})
	if gas > db.refund {
		db.refund = 0
		return
	}
	db.refund -= gas
}

func (db *StateDB) GetRefund() uint64 { return db.refund }

func (db *StateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	return db.getStateObject(addr).GetCommittedState(key)
}

func (db *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	return db.getStateObject(addr).GetState(key)
}

func (db *StateDB) SetState(addr common.Address, key, value common.Hash) common.Hash {
	return db.getOrNewStateObject(addr).SetState(key, value)
}

func (db *StateDB) GetStorageRoot(common.Address) common.Hash { return common.Hash{} }

func (db *StateDB) GetTransientState(addr common.Address, key common.Hash) common.Hash {
	return db.transientStorage[addr][key]
}

func (db *StateDB) SetTransientState(addr common.Address, key, value common.Hash) {
	prev := db.transientStorage[addr][key]
	db.journal.append(transientStorageChange{account: &addr, key: key, prevalue: prev})
	db.setTransientState(addr, key, value)
}

func (db *StateDB) setTransientState(addr common.Address, key, value common.Hash) {
	if db.transientStorage[addr] == nil {
		db.transientStorage[addr] = make(Storage)
	}
	db.transientStorage[addr][key] = value
}

func (db *StateDB) SelfDestruct(addr common.Address) uint256.Int {
	obj := db.getStateObject(addr)
	prevBalance := *obj.Balance()
	db.journal.append(selfDestructChange{account: &addr, prev: obj.selfDestructed, prevbalance: new(uint256.Int).Set(obj.Balance())})
	obj.markSelfDestructed()
	obj.setBalance(new(uint256.Int))
	return prevBalance
}

func (db *StateDB) HasSelfDestructed(addr common.Address) bool {
	obj, ok := db.stateObjects[addr]
	return ok && obj.selfDestructed
}

// SelfDestruct6780 implements EIP-6780's same-transaction-only
// self-destruct: it only clears balance and marks the object destroyed if
// the contract was created in this same transaction.
func (db *StateDB) SelfDestruct6780(addr common.Address) (uint256.Int, bool) {
	obj := db.getStateObject(addr)
	if !obj.newContract {
		return *obj.Balance(), false
	}
	return db.SelfDestruct(addr), true
}

func (db *StateDB) Exist(addr common.Address) bool {
	_, ok := db.stateObjects[addr]
	if ok {
		return true
	}
	return !db.io.IsAccountEmpty(addr)
}

func (db *StateDB) Empty(addr common.Address) bool {
	return db.getStateObject(addr).empty()
}

func (db *StateDB) AddressInAccessList(addr common.Address) bool {
	return db.accessList.containsAddress(addr)
}

func (db *StateDB) SlotInAccessList(addr common.Address, slot common.Hash) (bool, bool) {
	return db.accessList.contains(addr, slot)
}

func (db *StateDB) AddAddressToAccessList(addr common.Address) {
	if db.accessList.containsAddress(addr) {
		return
	}
	db.journal.append(accessListAddAccountChange{address: &addr})
	db.accessList.addAddress(addr)
}

func (db *StateDB) AddSlotToAccessList(addr common.Address, slot common.Hash) {
	addrOk, slotOk := db.accessList.contains(addr, slot)
	if !addrOk {
		db.journal.append(accessListAddAccountChange{address: &addr})
	}
	if !slotOk {
		db.journal.append(accessListAddSlotChange{address: &addr, slot: &slot})
	}
	db.accessList.addSlot(addr, slot)
}

func (db *StateDB) RevertToSnapshot(id int) {
	db.journal.revertToSnapshot(db, id)
}

func (db *StateDB) Snapshot() int { return db.journal.snapshot() }

func (db *StateDB) AddLog(log *gethtypes.Log) {
	log.TxHash = db.txConfig.TxHash
	log.TxIndex = db.txConfig.TxIndex
	log.Index = db.logSize
	db.journal.append(addLogChange{})
	db.logs = append(db.logs, log)
	db.logSize++
}

func (db *StateDB) AddPreimage(common.Hash, []byte) {}

// Prepare warms the sender, recipient and precompile addresses per
// EIP-2929/3651, the way go-ethereum's state transition calls it before
// running a message.
func (db *StateDB) Prepare(sender, coinbase common.Address, dst *common.Address, precompiles []common.Address, _ gethtypes.AccessList) {
	db.AddAddressToAccessList(sender)
	db.AddAddressToAccessList(coinbase)
	if dst != nil {
		db.AddAddressToAccessList(*dst)
	}
	for _, addr := range precompiles {
		db.AddAddressToAccessList(addr)
	}
}

// Witness is unused: this engine never builds Verkle-tree proofs.
func (db *StateDB) Witness() any { return nil }

// Logs returns every log recorded so far, in emission order.
func (db *StateDB) Logs() []*gethtypes.Log { return db.logs }

// Commit flushes every dirty account and storage slot to the host store,
// deleting accounts the empty rule says should vanish. This is the
// `apply(values, logs, delete_empty)` sink spec.md §4.3 describes.
// An empty account is only removed if its storage generation did not change
// in this diff; the generation only changes through CreateContract, which
// also sets newContract, so that flag is the check.
func (db *StateDB) Commit(deleteEmpty bool) error {
	for addr, obj := range db.stateObjects {
		if obj.selfDestructed || (deleteEmpty && obj.empty() && !obj.newContract) {
			db.io.DeleteAccount(addr)
			continue
		}
		db.io.SetNonce(addr, obj.Nonce())
		db.io.SetBalance(addr, types.NewWei(obj.Balance()))
		if obj.dirtyCode {
			db.io.SetCode(addr, obj.Code())
		}
		for key, value := range obj.dirtyStorage {
			if value == (common.Hash{}) {
				db.io.RemoveStorage(addr, obj.generation, types.H256(key))
				continue
			}
			db.io.SetStorage(addr, obj.generation, types.H256(key), types.H256(value))
		}
	}
	return nil
}
