package erc20

import (
	"github.com/olonho/aurora-engine/engine"
	"github.com/olonho/aurora-engine/types"
)

// DeployErc20TokenArgs names the NEP-141 account id a new ERC-20 contract
// should be bound to.
type DeployErc20TokenArgs struct {
	Nep141 types.AccountId
}

// DeployErrorKind discriminates why DeployERC20Token failed, mirroring the
// original's four-way DeployErc20Error union.
type DeployErrorKind int

const (
	// DeployErrorState means the engine's own configuration could not be read.
	DeployErrorState DeployErrorKind = iota
	// DeployErrorFailed means the constructor reverted or ran out of gas.
	DeployErrorFailed
	// DeployErrorEngine means packing the constructor arguments failed or the
	// deployment call returned an engine error.
	DeployErrorEngine
	// DeployErrorRegister means the deploy succeeded but binding the token
	// bijection failed (almost always because it was already bound).
	DeployErrorRegister
)

// DeployError reports which stage of the deployment failed.
type DeployError struct {
	Kind   DeployErrorKind
	Status types.TransactionStatus
	Err    error
}

func (e *DeployError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "erc20 deployment failed"
}

func (e *DeployError) Unwrap() error { return e.Err }

// DeployERC20Token deploys the canonical mintable ERC-20 contract admin'd by
// the current engine account's synthetic address, then binds it to the given
// NEP-141 account id in the token bijection.
func DeployERC20Token(e *engine.Engine, args DeployErc20TokenArgs) (types.Address, error) {
	if _, err := e.Store.GetEngineState(); err != nil {
		return types.Address{}, &DeployError{Kind: DeployErrorState, Err: err}
	}
	currentAccountID := e.Env.CurrentAccountID()
	admin := currentAccountID.EVMAddress()
	deployer := e.Env.PredecessorAccountID().EVMAddress()

	ctorArgs, err := ABI.Pack("", "Empty", "EMPTY", uint8(0), admin)
	if err != nil {
		return types.Address{}, &DeployError{Kind: DeployErrorEngine, Err: err}
	}
	input := append(append([]byte{}, creationCode()...), ctorArgs...)

	address, result, err := e.DeployCode(deployer, input, new(types.U256))
	if err != nil {
		return types.Address{}, &DeployError{Kind: DeployErrorEngine, Err: err}
	}
	if !result.Status.IsOk() {
		return types.Address{}, &DeployError{Kind: DeployErrorFailed, Status: result.Status}
	}

	if err := e.Store.RegisterToken(args.Nep141, address); err != nil {
		return types.Address{}, &DeployError{Kind: DeployErrorRegister, Err: err}
	}

	return address, nil
}
