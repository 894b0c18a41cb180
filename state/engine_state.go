package state

import "github.com/olonho/aurora-engine/types"

// GetEngineState reads the singleton EngineState, failing with
// ErrStateNotFound if it has never been written.
func (s *Store) GetEngineState() (types.EngineState, error) {
	raw, ok := s.get(types.ConfigStateKey())
	if !ok {
		return types.EngineState{}, types.ErrStateNotFound
	}
	st, err := types.DecodeEngineState(raw)
	if err != nil {
		return types.EngineState{}, types.ErrStateCorrupted
	}
	return st, nil
}

// SetEngineState writes the singleton EngineState.
func (s *Store) SetEngineState(st types.EngineState) {
	s.set(types.ConfigStateKey(), st.Encode())
}
