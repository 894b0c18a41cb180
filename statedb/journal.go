package statedb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// journalEntry is a modification to the state that can be reverted on
// demand, the same shape the teacher's stateObject.SetBalance/SetNonce/
// SetCode/SetState calls assume (x/vm/statedb/state_object.go).
type journalEntry interface {
	revert(*StateDB)
	dirtied() *common.Address
}

type journal struct {
	entries []journalEntry
	dirties map[common.Address]int
}

func newJournal() *journal {
	return &journal{dirties: make(map[common.Address]int)}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
	if addr := entry.dirtied(); addr != nil {
		j.dirties[*addr]++
	}
}

// snapshot returns the length that revertToSnapshot rewinds to.
func (j *journal) snapshot() int { return len(j.entries) }

func (j *journal) revertToSnapshot(db *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		entry := j.entries[i]
		entry.revert(db)
		if addr := entry.dirtied(); addr != nil {
			if j.dirties[*addr]--; j.dirties[*addr] == 0 {
				delete(j.dirties, *addr)
			}
		}
	}
	j.entries = j.entries[:snapshot]
}

type (
	createObjectChange struct {
		account *common.Address
	}
	balanceChange struct {
		account *common.Address
		prev    *uint256.Int
	}
	nonceChange struct {
		account *common.Address
		prev    uint64
	}
	codeChange struct {
		account  *common.Address
		prevcode []byte
		prevhash []byte
	}
	storageChange struct {
		account  *common.Address
		key      common.Hash
		prevalue common.Hash
	}
	selfDestructChange struct {
		account     *common.Address
		prev        bool
		prevbalance *uint256.Int
	}
	refundChange struct {
		prev uint64
	}
	addLogChange struct{}
	touchChange  struct {
		account *common.Address
	}
	accessListAddAccountChange struct {
		address *common.Address
	}
	accessListAddSlotChange struct {
		address *common.Address
		slot    *common.Hash
	}
	transientStorageChange struct {
		account       *common.Address
		key, prevalue common.Hash
	}
)

func (ch createObjectChange) revert(db *StateDB) {
	delete(db.stateObjects, *ch.account)
}
func (ch createObjectChange) dirtied() *common.Address { return ch.account }

func (ch balanceChange) revert(db *StateDB) {
	db.getStateObject(*ch.account).setBalance(ch.prev)
}
func (ch balanceChange) dirtied() *common.Address { return ch.account }

func (ch nonceChange) revert(db *StateDB) {
	db.getStateObject(*ch.account).setNonce(ch.prev)
}
func (ch nonceChange) dirtied() *common.Address { return ch.account }

func (ch codeChange) revert(db *StateDB) {
	db.getStateObject(*ch.account).setCode(common.BytesToHash(ch.prevhash), ch.prevcode)
}
func (ch codeChange) dirtied() *common.Address { return ch.account }

func (ch storageChange) revert(db *StateDB) {
	db.getStateObject(*ch.account).setState(ch.key, ch.prevalue)
}
func (ch storageChange) dirtied() *common.Address { return ch.account }

func (ch selfDestructChange) revert(db *StateDB) {
	obj := db.getStateObject(*ch.account)
	obj.selfDestructed = ch.prev
	obj.setBalance(ch.prevbalance)
}
func (ch selfDestructChange) dirtied() *common.Address { return ch.account }

func (ch refundChange) revert(db *StateDB) { db.refund = ch.prev }
func (ch refundChange) dirtied() *common.Address { return nil }

func (ch addLogChange) revert(db *StateDB) {
	db.logs = db.logs[:len(db.logs)-1]
}
func (ch addLogChange) dirtied() *common.Address { return nil }

func (ch touchChange) revert(db *StateDB)         {}
func (ch touchChange) dirtied() *common.Address   { return ch.account }

func (ch accessListAddAccountChange) revert(db *StateDB) {
	db.accessList.removeAddress(*ch.address)
}
func (ch accessListAddAccountChange) dirtied() *common.Address { return nil }

func (ch accessListAddSlotChange) revert(db *StateDB) {
	db.accessList.removeSlot(*ch.address, *ch.slot)
}
func (ch accessListAddSlotChange) dirtied() *common.Address { return nil }

func (ch transientStorageChange) revert(db *StateDB) {
	db.setTransientState(*ch.account, ch.key, ch.prevalue)
}
func (ch transientStorageChange) dirtied() *common.Address { return nil }
