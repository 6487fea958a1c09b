package bls

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// registrationDomain separates proof-of-possession messages from oracle
// payload messages, so a registration proof can never be replayed as a vote.
var registrationDomain = []byte("BLS_ORACLE_KEY_REGISTRATION")

// RegistrationMessageHash is the canonical message an operator must sign to
// prove possession of its secret key. Binding the operator address into the
// hash defeats rogue-key aggregation attacks.
func RegistrationMessageHash(operator common.Address) [32]byte {
	var h [32]byte
	copy(h[:], crypto.Keccak256(registrationDomain, operator.Bytes()))
	return h
}

// MakeRegistrationProof produces the proof-of-possession signature and the
// message hash it covers, for registering the keypair to operator.
func (k *KeyPair) MakeRegistrationProof(operator common.Address) (*bn254.G1Affine, [32]byte) {
	msgHash := RegistrationMessageHash(operator)
	return k.SignMessage(msgHash), msgHash
}
