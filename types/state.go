package types

// EngineState is the process-wide configuration persisted once under
// ConfigStateKey.
type EngineState struct {
	ChainID            [32]byte
	OwnerID            AccountId
	BridgeProverID     AccountId
	UpgradeDelayBlocks uint64
}

// ChainIDU256 returns the chain id as a U256, so a transaction's chain id
// can be compared numerically rather than byte-for-byte.
func (s EngineState) ChainIDU256() *U256 {
	var v U256
	v.SetBytes(s.ChainID[:])
	return &v
}

// Encode borsh-serializes the engine state.
func (s EngineState) Encode() []byte {
	w := NewWriter()
	w.WriteFixedBytes(s.ChainID[:])
	w.WriteString(s.OwnerID.String())
	w.WriteString(s.BridgeProverID.String())
	w.WriteU64(s.UpgradeDelayBlocks)
	return w.Bytes()
}

// DecodeEngineState borsh-deserializes an EngineState, failing with
// ErrStateCorrupted-shaped errors the caller can map to the host error code.
func DecodeEngineState(data []byte) (EngineState, error) {
	r := NewReader(data)
	var s EngineState
	chainID, err := r.ReadFixedBytes(32)
	if err != nil {
		return EngineState{}, err
	}
	copy(s.ChainID[:], chainID)
	owner, err := r.ReadString()
	if err != nil {
		return EngineState{}, err
	}
	s.OwnerID = AccountId(owner)
	prover, err := r.ReadString()
	if err != nil {
		return EngineState{}, err
	}
	s.BridgeProverID = AccountId(prover)
	delay, err := r.ReadU64()
	if err != nil {
		return EngineState{}, err
	}
	s.UpgradeDelayBlocks = delay
	if err := r.Finish(); err != nil {
		return EngineState{}, err
	}
	return s, nil
}
