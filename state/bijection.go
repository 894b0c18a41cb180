package state

import "github.com/olonho/aurora-engine/types"

// RegisterToken records a new NEP-141 account id <-> ERC-20 address pair.
// The mapping is append-only: once an account id or address has been bound
// it can never be rebound to a different counterpart (spec.md I4 "the token
// bijection is irrevocable").
func (s *Store) RegisterToken(accountID types.AccountId, erc20 types.Address) error {
	if existing, ok := s.Erc20ForAccount(accountID); ok {
		if existing == erc20 {
			return nil
		}
		return types.ErrTokenAlreadyRegistered
	}
	if existing, ok := s.AccountForErc20(erc20); ok {
		if existing == accountID {
			return nil
		}
		return types.ErrTokenAlreadyRegistered
	}
	s.set(types.Nep141Erc20MapKey(accountID), erc20.Bytes())
	s.set(types.Erc20Nep141MapKey(erc20), accountID.Bytes())
	return nil
}

// Erc20ForAccount looks up the ERC-20 address bound to a NEP-141 account id.
func (s *Store) Erc20ForAccount(accountID types.AccountId) (types.Address, bool) {
	raw, ok := s.get(types.Nep141Erc20MapKey(accountID))
	if !ok {
		return types.Address{}, false
	}
	return types.Address(raw), true
}

// AccountForErc20 looks up the NEP-141 account id bound to an ERC-20 address.
func (s *Store) AccountForErc20(erc20 types.Address) (types.AccountId, bool) {
	raw, ok := s.get(types.Erc20Nep141MapKey(erc20))
	if !ok {
		return "", false
	}
	return types.AccountId(raw), true
}
