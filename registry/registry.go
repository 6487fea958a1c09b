package registry

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Layr-Labs/bls-oracle/common/crypto/bls"
	interfaceOR "github.com/Layr-Labs/bls-oracle/common/interfaces/interfaceOR"
	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// PublicKeyRegistry binds operator identities to BLS key pairs. It is an
// injectable, explicitly-owned service object: the committee manager reaches
// it through the interfaceOR.CommitteeMutator capability and the signature
// verifier through interfaceOR.OperatorReader. All calls are serialized by
// the surrounding ledger model, so there is no internal locking.
type PublicKeyRegistry struct {
	blocks           interfaceOR.BlockSource
	whitelistManager common.Address

	operators   map[common.Address]*Operator
	byHash      map[[32]byte]common.Address
	whitelist   map[common.Address]bool
	totalActive uint64

	records []Record
	logger  *logging.Logger
}

func NewPublicKeyRegistry(whitelistManager common.Address, blocks interfaceOR.BlockSource, logger *logging.Logger) *PublicKeyRegistry {
	return &PublicKeyRegistry{
		blocks:           blocks,
		whitelistManager: whitelistManager,
		operators:        make(map[common.Address]*Operator),
		byHash:           make(map[[32]byte]common.Address),
		whitelist:        make(map[common.Address]bool),
		logger:           logger.Sublogger("Registry"),
	}
}

// SetWhitelisted toggles an operator on the self-registration allow-list.
// Restricted to the whitelist manager identity.
func (r *PublicKeyRegistry) SetWhitelisted(caller, operator common.Address, allowed bool) error {
	if caller != r.whitelistManager {
		return interfaceOR.ErrNotWhitelistManager
	}
	r.whitelist[operator] = allowed
	r.logger.Info().Str("operator", operator.Hex()).Bool("allowed", allowed).Msg("Whitelist updated")
	return nil
}

// RegisterPublicKey binds a BLS key pair to the calling operator after
// checking its proof of possession. Registration grants key possession only,
// never committee membership. The whole call reverts on any precondition
// failure; no partial state is observable.
func (r *PublicKeyRegistry) RegisterPublicKey(
	caller common.Address,
	operator common.Address,
	pubG1 *bn254.G1Affine,
	pubG2 *bn254.G2Affine,
	proof *bn254.G1Affine,
	proofMsgHash [32]byte,
) ([32]byte, error) {
	var zero [32]byte

	if caller != operator {
		return zero, interfaceOR.ErrCallerNotOperator
	}
	if !r.whitelist[operator] {
		return zero, interfaceOR.ErrNotWhitelisted
	}
	if op, ok := r.operators[operator]; ok && op.HasKey {
		return zero, interfaceOR.ErrKeyAlreadyRegistered
	}
	if pubG1.IsInfinity() || pubG2.IsInfinity() {
		return zero, interfaceOR.ErrZeroPubkey
	}

	// The proof message must be the canonical domain-separated encoding of
	// the operator identity, otherwise the key is not bound to the caller.
	if proofMsgHash != bls.RegistrationMessageHash(operator) {
		return zero, interfaceOR.ErrProofMessageMismatch
	}

	pubkeyHash := bls.PubkeyHash(pubG1, pubG2)
	if pubkeyHash == zero {
		return zero, interfaceOR.ErrZeroPubkey
	}
	if _, taken := r.byHash[pubkeyHash]; taken {
		return zero, interfaceOR.ErrDuplicatePubkey
	}

	// One folded pairing proves both that the proof signature is valid and
	// that pubG2 shares the discrete log of pubG1.
	ok, err := bls.VerifyFoldedSig(proofMsgHash, pubG1, pubG2, proof)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, interfaceOR.ErrInvalidProofOfPossession
	}

	r.operators[operator] = &Operator{
		Address:    operator,
		PubkeyG1:   pubG1,
		PubkeyG2:   pubG2,
		PubkeyHash: pubkeyHash,
		HasKey:     true,
	}
	r.byHash[pubkeyHash] = operator
	r.emit(RecordKeyRegistered, operator, pubkeyHash)

	r.logger.Info().
		Str("operator", operator.Hex()).
		Str("pubkeyHash", hexutil.Encode(pubkeyHash[:])).
		Msg("Public key registered")

	return pubkeyHash, nil
}

// OperatorInfo returns a copy of the operator record.
func (r *PublicKeyRegistry) OperatorInfo(operator common.Address) (Operator, bool) {
	op, ok := r.operators[operator]
	if !ok {
		return Operator{}, false
	}
	return *op, true
}

// ActivateOperator implements interfaceOR.CommitteeMutator. It requires a
// registered, inactive operator and flips it active.
func (r *PublicKeyRegistry) ActivateOperator(operator common.Address) (*bn254.G1Affine, error) {
	op, ok := r.operators[operator]
	if !ok || !op.HasKey {
		return nil, interfaceOR.ErrKeyNotRegistered
	}
	if op.IsActive {
		return nil, interfaceOR.ErrOperatorAlreadyActive
	}
	op.IsActive = true
	r.totalActive++
	r.emit(RecordMemberAdded, operator, op.PubkeyHash)
	return op.PubkeyG1, nil
}

// DeactivateOperator implements interfaceOR.CommitteeMutator. It requires an
// active operator and flips it inactive.
func (r *PublicKeyRegistry) DeactivateOperator(operator common.Address) (*bn254.G1Affine, error) {
	op, ok := r.operators[operator]
	if !ok || !op.IsActive {
		return nil, interfaceOR.ErrOperatorNotActive
	}
	op.IsActive = false
	r.totalActive--
	r.emit(RecordMemberRemoved, operator, op.PubkeyHash)
	return op.PubkeyG1, nil
}

// ActiveOperatorKey implements interfaceOR.OperatorReader.
func (r *PublicKeyRegistry) ActiveOperatorKey(operator common.Address) (*bn254.G1Affine, [32]byte, error) {
	op, ok := r.operators[operator]
	if !ok || !op.IsActive {
		return nil, [32]byte{}, interfaceOR.ErrOperatorNotActive
	}
	return op.PubkeyG1, op.PubkeyHash, nil
}

// TotalActiveMembers implements interfaceOR.OperatorReader.
func (r *PublicKeyRegistry) TotalActiveMembers() uint64 {
	return r.totalActive
}

// Records returns the emitted record feed in order.
func (r *PublicKeyRegistry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

func (r *PublicKeyRegistry) emit(kind RecordKind, operator common.Address, pubkeyHash [32]byte) {
	r.records = append(r.records, Record{
		Kind:       kind,
		Operator:   operator,
		PubkeyHash: pubkeyHash,
		Block:      r.blocks.CurrentBlock(),
	})
}
