package rpc

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Receipt holds the fields of an eth_getTransactionReceipt result that we
// report. Addresses are kept exactly as the node encoded them.
type Receipt struct {
	BlockNumber *hexutil.Uint64 `json:"blockNumber"`
	From        string          `json:"from"`
	To          *string         `json:"to"`
	Status      *hexutil.Uint64 `json:"status"`
}

// Mined reports whether the receipt belongs to a block. Some nodes return
// receipts of pending transactions with a null block number.
func (r *Receipt) Mined() bool {
	return r.BlockNumber != nil
}

// Block returns the block number, or 0 for a pending receipt.
func (r *Receipt) Block() uint64 {
	if r.BlockNumber == nil {
		return 0
	}
	return uint64(*r.BlockNumber)
}

// Succeeded reports whether the node marked the transaction as successful.
// Receipts without a status field count as failed.
func (r *Receipt) Succeeded() bool {
	return r.Status != nil && uint64(*r.Status) == types.ReceiptStatusSuccessful
}

// Recipient returns the "to" address, or "null" for contract creations.
func (r *Receipt) Recipient() string {
	if r.To == nil {
		return "null"
	}
	return *r.To
}
