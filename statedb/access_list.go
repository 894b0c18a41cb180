package statedb

import "github.com/ethereum/go-ethereum/common"

// accessList tracks EIP-2929 warm addresses/slots for one transaction.
type accessList struct {
	addresses map[common.Address]struct{}
	slots     map[common.Address]map[common.Hash]struct{}
}

func newAccessList() *accessList {
	return &accessList{addresses: make(map[common.Address]struct{})}
}

func (al *accessList) containsAddress(addr common.Address) bool {
	_, ok := al.addresses[addr]
	return ok
}

func (al *accessList) contains(addr common.Address, slot common.Hash) (bool, bool) {
	addrOk := al.containsAddress(addr)
	if !addrOk {
		return false, false
	}
	slots, ok := al.slots[addr]
	if !ok {
		return true, false
	}
	_, slotOk := slots[slot]
	return true, slotOk
}

func (al *accessList) addAddress(addr common.Address) {
	al.addresses[addr] = struct{}{}
}

func (al *accessList) addSlot(addr common.Address, slot common.Hash) {
	al.addAddress(addr)
	if al.slots == nil {
		al.slots = make(map[common.Address]map[common.Hash]struct{})
	}
	if al.slots[addr] == nil {
		al.slots[addr] = make(map[common.Hash]struct{})
	}
	al.slots[addr][slot] = struct{}{}
}

func (al *accessList) removeAddress(addr common.Address) {
	delete(al.addresses, addr)
}

func (al *accessList) removeSlot(addr common.Address, slot common.Hash) {
	if slots, ok := al.slots[addr]; ok {
		delete(slots, slot)
	}
}
