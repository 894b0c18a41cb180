package engine

import (
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/olonho/aurora-engine/types"
)

// NormalizedTransaction is the parsed, sender-recovered shape the submit
// pipeline validates and executes.
type NormalizedTransaction struct {
	Nonce                 uint64
	GasLimit              uint64
	MaxFeePerGas          *types.U256
	MaxPriorityFeePerGas  *types.U256
	To                    *types.Address
	Value                 *types.U256
	Data                  []byte
	ChainID               *types.U256
	HasChainID            bool
	AccessList            gethtypes.AccessList
	Sender                types.Address
}

// ParseTransaction decodes raw RLP-encoded transaction bytes and recovers
// the sender address. Both RLP decoding and signature recovery are
// performed by the bundled executor library's own types/crypto packages
// rather than reimplemented here.
func ParseTransaction(raw []byte) (NormalizedTransaction, error) {
	tx := new(gethtypes.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return NormalizedTransaction{}, types.ErrFailedTransactionParse
	}

	signer := gethtypes.LatestSignerForChainID(tx.ChainId())
	sender, err := gethtypes.Sender(signer, tx)
	if err != nil {
		return NormalizedTransaction{}, types.ErrFailedTransactionParse
	}

	var to *types.Address
	if dst := tx.To(); dst != nil {
		t := types.Address(*dst)
		to = &t
	}

	out := NormalizedTransaction{
		Nonce:                tx.Nonce(),
		GasLimit:             tx.Gas(),
		MaxFeePerGas:         u256FromBigInt(tx.GasFeeCap()),
		MaxPriorityFeePerGas: u256FromBigInt(tx.GasTipCap()),
		To:                   to,
		Value:                u256FromBigInt(tx.Value()),
		Data:                 tx.Data(),
		AccessList:           tx.AccessList(),
		Sender:               types.Address(sender),
	}
	if tx.ChainId() != nil && tx.ChainId().Sign() != 0 {
		out.HasChainID = true
		out.ChainID = u256FromBigInt(tx.ChainId())
	}
	return out, nil
}

func (tx NormalizedTransaction) toAddress() common.Address {
	if tx.To == nil {
		return common.Address{}
	}
	return common.Address(*tx.To)
}
