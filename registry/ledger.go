package registry

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Layr-Labs/bls-oracle/common/crypto/bls"
	"github.com/Layr-Labs/bls-oracle/common/logging"
)

// Checkpoint is one entry of the aggregate key's audit history. A zero
// NextUpdateBlock marks the currently open checkpoint.
type Checkpoint struct {
	Digest          [32]byte
	UpdateBlock     uint64
	NextUpdateBlock uint64
}

// AggregateKeyLedger owns the live aggregate public key (the point sum of
// all active members' G1 keys) and its block-indexed checkpoint history.
// The history is an audit trail only; verification always reads CurrentApk.
type AggregateKeyLedger struct {
	currentApk  bn254.G1Affine
	checkpoints []Checkpoint
	logger      *logging.Logger
}

// NewAggregateKeyLedger seeds the ledger with the identity point and a
// single open checkpoint at the genesis block.
func NewAggregateKeyLedger(genesisBlock uint64, logger *logging.Logger) *AggregateKeyLedger {
	l := &AggregateKeyLedger{
		logger: logger.Sublogger("Ledger"),
	}
	l.checkpoints = append(l.checkpoints, Checkpoint{
		Digest:      apkDigest(&l.currentApk),
		UpdateBlock: genesisBlock,
	})
	return l
}

// CurrentApk returns a copy of the live aggregate public key.
func (l *AggregateKeyLedger) CurrentApk() *bn254.G1Affine {
	apk := l.currentApk
	return &apk
}

// AddKey folds a member's G1 key into the aggregate.
func (l *AggregateKeyLedger) AddKey(pubkey *bn254.G1Affine, block uint64) {
	var next bn254.G1Affine
	next.Add(&l.currentApk, pubkey)
	l.update(next, block)
}

// SubtractKey removes a member's G1 key by adding its inverse.
func (l *AggregateKeyLedger) SubtractKey(pubkey *bn254.G1Affine, block uint64) {
	var neg, next bn254.G1Affine
	neg.Neg(pubkey)
	next.Add(&l.currentApk, &neg)
	l.update(next, block)
}

// update installs the new aggregate key and maintains the checkpoint list.
// Multiple updates within one block coalesce into a single entry.
func (l *AggregateKeyLedger) update(next bn254.G1Affine, block uint64) {
	l.currentApk = next
	digest := apkDigest(&next)

	latest := &l.checkpoints[len(l.checkpoints)-1]
	if latest.UpdateBlock == block {
		latest.Digest = digest
		return
	}

	latest.NextUpdateBlock = block
	l.checkpoints = append(l.checkpoints, Checkpoint{
		Digest:      digest,
		UpdateBlock: block,
	})
	l.logger.Debug().Uint64("block", block).Int("checkpoints", len(l.checkpoints)).Msg("Aggregate key checkpoint appended")
}

func (l *AggregateKeyLedger) CheckpointCount() int {
	return len(l.checkpoints)
}

func (l *AggregateKeyLedger) CheckpointAt(i int) Checkpoint {
	return l.checkpoints[i]
}

func (l *AggregateKeyLedger) LatestCheckpoint() Checkpoint {
	return l.checkpoints[len(l.checkpoints)-1]
}

func apkDigest(apk *bn254.G1Affine) [32]byte {
	var d [32]byte
	copy(d[:], crypto.Keccak256(bls.SerializeG1(apk)))
	return d
}
