package state

import "github.com/olonho/aurora-engine/types"

// SetRelayer records the EVM address that should receive a NEP-141
// relayer's fee for the inbound ERC-20 mint flow (spec.md §4.6).
func (s *Store) SetRelayer(accountID types.AccountId, addr types.Address) {
	s.set(types.RelayerKey(accountID), addr.Bytes())
}

// Relayer looks up the EVM address registered for a relayer account id.
func (s *Store) Relayer(accountID types.AccountId) (types.Address, bool) {
	raw, ok := s.get(types.RelayerKey(accountID))
	if !ok {
		return types.Address{}, false
	}
	return types.Address(raw), true
}
