package state

import (
	"encoding/binary"

	"github.com/olonho/aurora-engine/types"
)

// GetNonce returns an address's transaction nonce, defaulting to zero.
func (s *Store) GetNonce(addr types.Address) uint64 {
	raw, ok := s.get(types.NonceKey(addr))
	if !ok {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

// SetNonce stores an address's transaction nonce.
func (s *Store) SetNonce(addr types.Address, nonce uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], nonce)
	s.set(types.NonceKey(addr), b[:])
}

// IncrementNonce bumps the nonce by one. The submit pipeline uses it on the
// out-of-fund path, where the nonce is consumed without executing; executed
// transactions set their nonce through the StateDB instead.
func (s *Store) IncrementNonce(addr types.Address) {
	s.SetNonce(addr, s.GetNonce(addr)+1)
}

// GetBalance returns an address's wei balance, defaulting to zero.
func (s *Store) GetBalance(addr types.Address) types.Wei {
	raw, ok := s.get(types.BalanceKey(addr))
	if !ok {
		return types.ZeroWei()
	}
	var v types.U256
	v.SetBytes(raw)
	return types.NewWei(&v)
}

// SetBalance stores an address's wei balance.
func (s *Store) SetBalance(addr types.Address, balance types.Wei) {
	raw := balance.Raw()
	b := raw.Bytes32()
	s.set(types.BalanceKey(addr), b[:])
}

// AddBalance credits amount to addr, failing on overflow (spec.md I2).
func (s *Store) AddBalance(addr types.Address, amount types.Wei) error {
	sum, err := s.GetBalance(addr).Add(amount)
	if err != nil {
		return err
	}
	s.SetBalance(addr, sum)
	return nil
}

// RemoveBalance debits amount from addr, failing if the balance is
// insufficient (spec.md I3).
func (s *Store) RemoveBalance(addr types.Address, amount types.Wei) error {
	diff, err := s.GetBalance(addr).Sub(amount)
	if err != nil {
		return err
	}
	s.SetBalance(addr, diff)
	return nil
}

// GetCode returns an address's deployed bytecode, or nil if none.
func (s *Store) GetCode(addr types.Address) []byte {
	raw, _ := s.get(types.CodeKey(addr))
	return raw
}

// SetCode stores an address's deployed bytecode.
func (s *Store) SetCode(addr types.Address, code []byte) {
	s.set(types.CodeKey(addr), code)
}

// RemoveCode deletes an address's deployed bytecode.
func (s *Store) RemoveCode(addr types.Address) {
	s.remove(types.CodeKey(addr))
}

// GetGeneration returns an address's current storage generation.
func (s *Store) GetGeneration(addr types.Address) uint32 {
	raw, ok := s.get(types.GenerationKey(addr))
	if !ok {
		return 0
	}
	return binary.BigEndian.Uint32(raw)
}

// IncrementGeneration bumps and persists an address's storage generation,
// making every previously-written storage slot unreachable without having
// to enumerate and delete each one (spec.md §4.1 remove_all_storage).
func (s *Store) IncrementGeneration(addr types.Address) uint32 {
	next := s.GetGeneration(addr) + 1
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], next)
	s.set(types.GenerationKey(addr), b[:])
	return next
}

// GetStorage returns the value at one storage slot under the given
// generation, or the zero hash if unset.
func (s *Store) GetStorage(addr types.Address, generation uint32, slot types.H256) types.H256 {
	raw, ok := s.get(types.StorageKey(addr, generation, slot))
	if !ok {
		return types.H256{}
	}
	return types.H256(raw)
}

// SetStorage writes a storage slot under the given generation.
func (s *Store) SetStorage(addr types.Address, generation uint32, slot, value types.H256) {
	s.set(types.StorageKey(addr, generation, slot), value.Bytes())
}

// RemoveStorage deletes a storage slot under the given generation.
func (s *Store) RemoveStorage(addr types.Address, generation uint32, slot types.H256) {
	s.remove(types.StorageKey(addr, generation, slot))
}

// IsAccountEmpty reports whether addr has no nonce, balance or code, the
// EIP-161-style condition the apply sink's delete_empty flag acts on.
func (s *Store) IsAccountEmpty(addr types.Address) bool {
	return s.GetNonce(addr) == 0 && s.GetBalance(addr).IsZero() && len(s.GetCode(addr)) == 0
}

// DeleteAccount removes an address's nonce, balance and code, and bumps its
// generation so any remaining storage slots become unreachable.
func (s *Store) DeleteAccount(addr types.Address) {
	s.remove(types.NonceKey(addr))
	s.remove(types.BalanceKey(addr))
	s.RemoveCode(addr)
	s.IncrementGeneration(addr)
}
