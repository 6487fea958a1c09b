package bls

import (
	"crypto/rand"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/ethereum/go-ethereum/crypto"
)

type KeyPair struct {
	secretKey *fr.Element
	PubKeyG1  *bn254.G1Affine // G1 public key = secretKey * g1
}

func KeyPairFromSecret(sk *fr.Element) (*KeyPair, error) {
	pk := MulByGeneratorG1(sk)
	return &KeyPair{sk, pk}, nil
}

func KeyPairFromString(sk string) (*KeyPair, error) {
	ele, err := new(fr.Element).SetString(sk)
	if err != nil {
		return nil, err
	}
	return KeyPairFromSecret(ele)
}

func GenRandomKeyPair() (*KeyPair, error) {
	n, err := rand.Int(rand.Reader, fr.Modulus())
	if err != nil {
		return nil, err
	}
	sk := new(fr.Element).SetBigInt(n)
	return KeyPairFromSecret(sk)
}

// SignMessage produces a BLS signature sk*H(m) over a 32 byte message hash.
func (k *KeyPair) SignMessage(msgHash [32]byte) *bn254.G1Affine {
	H := MapToCurve(msgHash)
	return new(bn254.G1Affine).ScalarMultiplication(H, k.secretKey.BigInt(new(big.Int)))
}

// GetPubKeyG2 derives the G2 counterpart of the keypair's G1 public key.
func (k *KeyPair) GetPubKeyG2() *bn254.G2Affine {
	return MulByGeneratorG2(k.secretKey)
}

func (k *KeyPair) GetPubKeyG1Bytes() [64]byte {
	var b [64]byte
	copy(b[:], SerializeG1(k.PubKeyG1))
	return b
}

// VerifySig checks a plain BLS signature over msgHash against a G2 public key
// with two pairings. Most callers want VerifyFoldedSig, which also binds the
// claimed G1 key.
func VerifySig(sig *bn254.G1Affine, pubkey *bn254.G2Affine, msgHash [32]byte) (bool, error) {
	msgPoint := MapToCurve(msgHash)

	var negSig bn254.G1Affine
	negSig.Neg(sig)

	P := [2]bn254.G1Affine{*msgPoint, negSig}
	Q := [2]bn254.G2Affine{*pubkey, *GetG2Generator()}

	return bn254.PairingCheck(P[:], Q[:])
}

// VerifyFoldedSig checks, with a single pairing evaluation, that sig is a
// valid BLS signature over msgHash under pubG1 and that pubG2 is the true G2
// counterpart of pubG1. It folds the two statements with a pseudo-random
// scalar gamma derived from all the inputs:
//
//	e(sig + gamma*pubG1, -g2) * e(H(m) + gamma*g1, pubG2) == 1
//
// A forged signature and a mismatched G2 key are each caught by the fold.
func VerifyFoldedSig(msgHash [32]byte, pubG1 *bn254.G1Affine, pubG2 *bn254.G2Affine, sig *bn254.G1Affine) (bool, error) {
	gamma := foldChallenge(msgHash, pubG1, pubG2, sig)
	gammaInt := gamma.BigInt(new(big.Int))

	var gammaPk, lhs bn254.G1Affine
	gammaPk.ScalarMultiplication(pubG1, gammaInt)
	lhs.Add(sig, &gammaPk)

	var gammaGen, rhs bn254.G1Affine
	gammaGen.ScalarMultiplication(GetG1Generator(), gammaInt)
	rhs.Add(MapToCurve(msgHash), &gammaGen)

	var negG2 bn254.G2Affine
	negG2.Neg(GetG2Generator())

	P := [2]bn254.G1Affine{lhs, rhs}
	Q := [2]bn254.G2Affine{negG2, *pubG2}

	return bn254.PairingCheck(P[:], Q[:])
}

func foldChallenge(msgHash [32]byte, pubG1 *bn254.G1Affine, pubG2 *bn254.G2Affine, sig *bn254.G1Affine) *fr.Element {
	digest := crypto.Keccak256(
		msgHash[:],
		SerializeG1(pubG1),
		SerializeG2(pubG2),
		SerializeG1(sig),
	)
	return new(fr.Element).SetBytes(digest)
}

// PubkeyHash binds the G1 and G2 halves of a public key into one identifier.
func PubkeyHash(pubG1 *bn254.G1Affine, pubG2 *bn254.G2Affine) [32]byte {
	var h [32]byte
	copy(h[:], crypto.Keccak256(SerializeG1(pubG1), SerializeG2(pubG2)))
	return h
}

func HashToCurve(data []byte) *bn254.G1Affine {
	var digest [32]byte
	copy(digest[:], crypto.Keccak256(data))
	return MapToCurve(digest)
}

// MapToCurve maps a 32 byte digest onto G1 by incrementing x until x^3 + 3
// is a quadratic residue.
func MapToCurve(digest [32]byte) *bn254.G1Affine {
	one := new(big.Int).SetUint64(1)
	three := new(big.Int).SetUint64(3)
	x := new(big.Int).SetBytes(digest[:])
	x.Mod(x, fp.Modulus())
	for {
		// y = x^3 + 3
		xP3 := new(big.Int).Exp(x, three, fp.Modulus())
		y := new(big.Int).Add(xP3, three)
		y.Mod(y, fp.Modulus())

		if y.ModSqrt(y, fp.Modulus()) == nil {
			x.Add(x, one).Mod(x, fp.Modulus())
		} else {
			var fpX, fpY fp.Element
			fpX.SetBigInt(x)
			fpY.SetBigInt(y)
			return &bn254.G1Affine{
				X: fpX,
				Y: fpY,
			}
		}
	}
}
