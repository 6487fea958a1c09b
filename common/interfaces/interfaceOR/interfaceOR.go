// Package interfaceOR holds the shared error variables and the narrow
// capability interfaces exchanged between the oracle registry components.
// It has no project-internal dependencies so that the registry, the
// committee manager and the verifier can all import it without cycles.
package interfaceOR

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/ethereum/go-ethereum/common"
)

var ErrCallerNotOperator = errors.New("caller must be the operator being registered")
var ErrNotWhitelisted = errors.New("operator is not on the registration allow-list")
var ErrNotWhitelistManager = errors.New("caller is not the whitelist manager")
var ErrNotCommitteeManager = errors.New("caller is not the committee manager")
var ErrZeroPubkey = errors.New("public key must not be the identity point")
var ErrDuplicatePubkey = errors.New("public key hash is already registered")
var ErrKeyAlreadyRegistered = errors.New("operator already registered a key")
var ErrKeyNotRegistered = errors.New("operator has no registered key")
var ErrOperatorAlreadyActive = errors.New("operator is already an active member")
var ErrOperatorNotActive = errors.New("operator is not an active member")
var ErrProofMessageMismatch = errors.New("proof message hash does not bind the operator identity")
var ErrInvalidProofOfPossession = errors.New("proof of possession pairing check failed")
var ErrInvalidReferenceBlock = errors.New("reference block must precede the current block")
var ErrEmptyCommittee = errors.New("committee has no active members")
var ErrEmptySignerSet = errors.New("signer set reduces to the identity point")
var ErrDuplicateNonSigner = errors.New("non-signer listed more than once")
var ErrQuorumNotMet = errors.New("signer count below two-thirds quorum")
var ErrSignatureCheckFailed = errors.New("aggregate signature pairing check failed")

// BlockSource supplies the current block height to the on-chain model,
// the way block.number is ambient inside a contract call.
type BlockSource interface {
	CurrentBlock() uint64
}

// CommitteeMutator is the committee-mutation capability the public key
// registry exposes. Only the committee manager is authorized to reach it;
// the manager enforces that by caller identity before invoking.
type CommitteeMutator interface {
	// ActivateOperator flips a registered, inactive operator to active and
	// returns its G1 key for aggregation. No state changes on error.
	ActivateOperator(operator common.Address) (*bn254.G1Affine, error)

	// DeactivateOperator flips an active operator to inactive and returns
	// its G1 key for subtraction. No state changes on error.
	DeactivateOperator(operator common.Address) (*bn254.G1Affine, error)
}

// OperatorReader is the read-only view the signature verifier needs.
type OperatorReader interface {
	// ActiveOperatorKey resolves an active member to its G1 key and pubkey
	// hash. Errors if the operator is unknown or inactive.
	ActiveOperatorKey(operator common.Address) (*bn254.G1Affine, [32]byte, error)

	TotalActiveMembers() uint64
}
