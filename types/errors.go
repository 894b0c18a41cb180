package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the error codespace for this engine.
const ModuleName = "engine"

// Registered error kinds. Each description is the stable byte-slice error
// code the host returns to the caller verbatim.
var (
	ErrFailedTransactionParse    = errorsmod.Register(ModuleName, 1, "ERR_PARSE_TX")
	ErrInvalidChainId            = errorsmod.Register(ModuleName, 2, "ERR_INVALID_CHAIN_ID")
	ErrInvalidSignature          = errorsmod.Register(ModuleName, 3, "ERR_INVALID_ECDSA_SIGNATURE")
	ErrIncorrectNonce            = errorsmod.Register(ModuleName, 4, "ERR_INCORRECT_NONCE")
	ErrIntrinsicGasNotMet        = errorsmod.Register(ModuleName, 5, "ERR_INTRINSIC_GAS")
	ErrMaxPriorityGasFeeTooLarge = errorsmod.Register(ModuleName, 6, "ERR_MAX_PRIORITY_FEE_GREATER")
	ErrGasOverflow               = errorsmod.Register(ModuleName, 7, "ERR_GAS_OVERFLOW")
	ErrBalanceOverflowGas        = errorsmod.Register(ModuleName, 8, "ERR_BALANCE_OVERFLOW")
	ErrGasEthAmountOverflow      = errorsmod.Register(ModuleName, 9, "ERR_GAS_ETH_AMOUNT_OVERFLOW")
	ErrGasOutOfFund              = errorsmod.Register(ModuleName, 10, "ERR_OUT_OF_FUND")
	ErrStateNotFound             = errorsmod.Register(ModuleName, 11, "ERR_STATE_NOT_FOUND")
	ErrStateCorrupted            = errorsmod.Register(ModuleName, 12, "ERR_STATE_CORRUPTED")
	ErrInvalidNep141AccountId    = errorsmod.Register(ModuleName, 13, "ERR_INVALID_NEP141_ACCOUNT_ID")
	ErrNep141NotFound            = errorsmod.Register(ModuleName, 14, "ERR_NEP141_NOT_FOUND")
	ErrTokenAlreadyRegistered    = errorsmod.Register(ModuleName, 15, "ERR_NEP141_TOKEN_ALREADY_REGISTERED")
	ErrConnectorUnderflow        = errorsmod.Register(ModuleName, 16, "ERR_CONNECTOR_SUPPLY_UNDERFLOW")
)

// EngineError pairs a registered error with the amount of gas the failed
// submit had already burned, mirroring the original's
// `EngineError{ kind: EngineErrorKind, gas_used: u64 }`.
type EngineError struct {
	Err     error
	GasUsed uint64
}

func (e *EngineError) Error() string { return e.Err.Error() }

func (e *EngineError) Unwrap() error { return e.Err }

// NewEngineError wraps err with the gas already consumed.
func NewEngineError(err error, gasUsed uint64) *EngineError {
	return &EngineError{Err: err, GasUsed: gasUsed}
}
