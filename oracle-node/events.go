package orn

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Registry event signatures. Topics carry [signature, operator address] plus
// the pubkey hash for key registrations; the registration payload is the
// serialized G1 (64 bytes) and G2 (128 bytes) key halves.
var (
	KeyRegisteredEventSig = crypto.Keccak256Hash([]byte("OperatorKeyRegistered(address,bytes32)"))
	MemberAddedEventSig   = crypto.Keccak256Hash([]byte("OperatorAdded(address)"))
	MemberRemovedEventSig = crypto.Keccak256Hash([]byte("OperatorRemoved(address)"))
)

const keyRegisteredPayloadLen = 64 + 128

func operatorFromTopics(topics []common.Hash) (common.Address, error) {
	if len(topics) < 2 {
		return common.Address{}, ErrMalformedEvent
	}
	return common.BytesToAddress(topics[1].Bytes()), nil
}
