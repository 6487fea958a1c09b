package registry

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/ethereum/go-ethereum/common"
)

// Operator is the registry's record of one signer identity. Key possession
// (HasKey) and voting membership (IsActive) are deliberately decoupled:
// membership churn never repeats the expensive proof-of-possession check.
type Operator struct {
	Address    common.Address
	PubkeyG1   *bn254.G1Affine
	PubkeyG2   *bn254.G2Affine
	PubkeyHash [32]byte
	HasKey     bool
	IsActive   bool
}

type RecordKind string

const (
	RecordKeyRegistered RecordKind = "key-registered"
	RecordMemberAdded   RecordKind = "member-added"
	RecordMemberRemoved RecordKind = "member-removed"
)

// Record is an emitted registry event, the in-process mirror of the log a
// contract would emit. The chain synchronizer consumes the on-chain form;
// this feed exists for audit tooling and tests.
type Record struct {
	Kind       RecordKind
	Operator   common.Address
	PubkeyHash [32]byte
	Block      uint64
}
