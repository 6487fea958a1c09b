package registry

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Layr-Labs/bls-oracle/common/crypto/bls"
	interfaceOR "github.com/Layr-Labs/bls-oracle/common/interfaces/interfaceOR"
	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// SignatureVerifier validates threshold-aggregated BLS signatures against
// the live aggregate public key. Verification never consults the checkpoint
// history; referenceBlock is a sanity bound only.
type SignatureVerifier struct {
	ledger    *AggregateKeyLedger
	operators interfaceOR.OperatorReader
	blocks    interfaceOR.BlockSource
	logger    *logging.Logger
}

func NewSignatureVerifier(
	ledger *AggregateKeyLedger,
	operators interfaceOR.OperatorReader,
	blocks interfaceOR.BlockSource,
	logger *logging.Logger,
) *SignatureVerifier {
	return &SignatureVerifier{
		ledger:    ledger,
		operators: operators,
		blocks:    blocks,
		logger:    logger.Sublogger("Verifier"),
	}
}

type nonSigner struct {
	pubkey *bn254.G1Affine
	hash   [32]byte
}

// CheckSignatures verifies an aggregate signature over msgHash from the
// active committee minus the declared non-signers. It returns the signer
// count as the vote weight (one node, one vote) and a digest of
// (referenceBlock, sorted non-signer hashes) for audit logging.
//
// The signature and the claimed G2 aggregate are checked together with a
// single folded pairing; a forged signature and a mismatched G2 key are both
// caught by it.
func (v *SignatureVerifier) CheckSignatures(
	msgHash [32]byte,
	referenceBlock uint64,
	nonSigners []common.Address,
	aggPubKeyG2 *bn254.G2Affine,
	aggSig *bn254.G1Affine,
) (uint64, [32]byte, error) {
	var zero [32]byte

	if referenceBlock >= v.blocks.CurrentBlock() {
		return 0, zero, interfaceOR.ErrInvalidReferenceBlock
	}

	total := v.operators.TotalActiveMembers()
	if total == 0 {
		return 0, zero, interfaceOR.ErrEmptyCommittee
	}
	if uint64(len(nonSigners)) > total {
		return 0, zero, interfaceOR.ErrQuorumNotMet
	}

	signers := total - uint64(len(nonSigners))
	threshold := total * 2 / 3
	if signers < threshold {
		return 0, zero, interfaceOR.ErrQuorumNotMet
	}

	excluded, err := v.resolveNonSigners(nonSigners)
	if err != nil {
		return 0, zero, err
	}

	signerApk := v.ledger.CurrentApk()
	for _, ns := range excluded {
		var neg bn254.G1Affine
		neg.Neg(ns.pubkey)
		signerApk.Add(signerApk, &neg)
	}

	// An identity signer key would verify any message trivially.
	if signerApk.IsInfinity() {
		return 0, zero, interfaceOR.ErrEmptySignerSet
	}

	ok, err := bls.VerifyFoldedSig(msgHash, signerApk, aggPubKeyG2, aggSig)
	if err != nil {
		return 0, zero, err
	}
	if !ok {
		return 0, zero, interfaceOR.ErrSignatureCheckFailed
	}

	return signers, nonSignerDigest(referenceBlock, excluded), nil
}

// resolveNonSigners maps declared non-signers to active operator keys,
// sorted by pubkey hash with duplicates rejected.
func (v *SignatureVerifier) resolveNonSigners(nonSigners []common.Address) ([]nonSigner, error) {
	excluded := make([]nonSigner, 0, len(nonSigners))
	for _, addr := range nonSigners {
		pubkey, hash, err := v.operators.ActiveOperatorKey(addr)
		if err != nil {
			return nil, err
		}
		excluded = append(excluded, nonSigner{pubkey: pubkey, hash: hash})
	}

	sort.Slice(excluded, func(i, j int) bool {
		return bytes.Compare(excluded[i].hash[:], excluded[j].hash[:]) < 0
	})
	for i := 1; i < len(excluded); i++ {
		if excluded[i].hash == excluded[i-1].hash {
			return nil, interfaceOR.ErrDuplicateNonSigner
		}
	}
	return excluded, nil
}

func nonSignerDigest(referenceBlock uint64, excluded []nonSigner) [32]byte {
	buf := make([]byte, 8, 8+32*len(excluded))
	binary.BigEndian.PutUint64(buf, referenceBlock)
	for _, ns := range excluded {
		buf = append(buf, ns.hash[:]...)
	}
	var d [32]byte
	copy(d[:], crypto.Keccak256(buf))
	return d
}
