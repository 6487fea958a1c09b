package orn

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// HeaderRecord mirrors one canonical block header.
type HeaderRecord struct {
	Hash       common.Hash `json:"hash"`
	ParentHash common.Hash `json:"parentHash"`
	Number     uint64      `json:"number"`
	Timestamp  uint64      `json:"timestamp"`
}

func newHeaderRecord(h *types.Header) HeaderRecord {
	return HeaderRecord{
		Hash:       h.Hash(),
		ParentHash: h.ParentHash,
		Number:     h.Number.Uint64(),
		Timestamp:  h.Time,
	}
}

// EventRecord mirrors one registry log, keyed by txHash+logIndex so that
// re-persisting the same event overwrites rather than duplicates.
type EventRecord struct {
	BlockHeight uint64         `json:"blockHeight"`
	Address     common.Address `json:"contractAddress"`
	TxHash      common.Hash    `json:"txHash"`
	LogIndex    uint           `json:"logIndex"`
	EventSig    common.Hash    `json:"eventSignature"`
	Topics      []common.Hash  `json:"topics"`
	Payload     hexutil.Bytes  `json:"payload"`
	Timestamp   uint64         `json:"timestamp"`
}

func newEventRecord(lg types.Log, timestamp uint64) EventRecord {
	var sig common.Hash
	if len(lg.Topics) > 0 {
		sig = lg.Topics[0]
	}
	return EventRecord{
		BlockHeight: lg.BlockNumber,
		Address:     lg.Address,
		TxHash:      lg.TxHash,
		LogIndex:    lg.Index,
		EventSig:    sig,
		Topics:      lg.Topics,
		Payload:     lg.Data,
		Timestamp:   timestamp,
	}
}

// RosterEntry is the locally mirrored view of one operator, maintained by
// the event processor.
type RosterEntry struct {
	Address    common.Address `json:"address"`
	PubkeyG1   hexutil.Bytes  `json:"pubkeyG1"`
	PubkeyG2   hexutil.Bytes  `json:"pubkeyG2"`
	PubkeyHash common.Hash    `json:"pubkeyHash"`
	HasKey     bool           `json:"hasKey"`
	IsActive   bool           `json:"isActive"`
	UpdatedAt  uint64         `json:"updatedAt"`
}
