package bls_test

import (
	"math/big"
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/ethereum/go-ethereum/common"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Layr-Labs/bls-oracle/common/crypto/bls"
)

var _ = Describe("Bls", func() {
	_, _, g1Aff, g2Aff := bn254.Generators()
	var randomG1 bn254.G1Affine
	var randomG2 bn254.G2Affine

	BeforeEach(func() {
		//randomG1 and randomG2 are random scalar multiples of the generator, with the multiple known
		//not the same at hashing to curve
		randInt := new(big.Int)
		randInt.Rand(rand.New(rand.NewSource(1)), fp.Modulus())
		randomG1.ScalarMultiplication(&g1Aff, randInt)
		randInt.Rand(rand.New(rand.NewSource(1)), fp.Modulus())
		randomG2.ScalarMultiplication(&g2Aff, randInt)
	})

	Describe("Serializing points", func() {
		Context("in G1", func() {
			It("should work", func() {
				randomG1Bytes := bls.SerializeG1(&randomG1)
				resRandomG1 := bls.DeserializeG1(randomG1Bytes)
				Expect(randomG1.Equal(resRandomG1)).To(Equal(true))
			})
		})

		Context("in G2", func() {
			It("should work", func() {
				randomG2Bytes := bls.SerializeG2(&randomG2)
				resRandomG2 := bls.DeserializeG2(randomG2Bytes)
				Expect(randomG2.Equal(resRandomG2)).To(Equal(true))
			})
		})
	})

	Describe("Signing and verifying", func() {
		var keyPair *bls.KeyPair
		var msgHash [32]byte

		BeforeEach(func() {
			var err error
			keyPair, err = bls.GenRandomKeyPair()
			Expect(err).NotTo(HaveOccurred())
			copy(msgHash[:], []byte("oracle report digest 0123456789a"))
		})

		It("accepts a genuine signature", func() {
			sig := keyPair.SignMessage(msgHash)
			ok, err := bls.VerifySig(sig, keyPair.GetPubKeyG2(), msgHash)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(true))
		})

		It("rejects a signature over a different message", func() {
			sig := keyPair.SignMessage(msgHash)
			var other [32]byte
			copy(other[:], []byte("another report digest 0123456789"))
			ok, err := bls.VerifySig(sig, keyPair.GetPubKeyG2(), other)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(false))
		})
	})

	Describe("Folded verification", func() {
		var keyPair *bls.KeyPair
		var msgHash [32]byte
		var sig *bn254.G1Affine

		BeforeEach(func() {
			var err error
			keyPair, err = bls.GenRandomKeyPair()
			Expect(err).NotTo(HaveOccurred())
			copy(msgHash[:], []byte("oracle report digest 0123456789a"))
			sig = keyPair.SignMessage(msgHash)
		})

		It("accepts a valid signature with its true G2 counterpart", func() {
			ok, err := bls.VerifyFoldedSig(msgHash, keyPair.PubKeyG1, keyPair.GetPubKeyG2(), sig)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(true))
		})

		It("rejects a tampered signature", func() {
			var tampered bn254.G1Affine
			tampered.Add(sig, bls.GetG1Generator())
			ok, err := bls.VerifyFoldedSig(msgHash, keyPair.PubKeyG1, keyPair.GetPubKeyG2(), &tampered)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(false))
		})

		It("rejects a mismatched G2 key even with a valid signature", func() {
			otherKeyPair, err := bls.GenRandomKeyPair()
			Expect(err).NotTo(HaveOccurred())
			ok, err := bls.VerifyFoldedSig(msgHash, keyPair.PubKeyG1, otherKeyPair.GetPubKeyG2(), sig)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(false))
		})
	})

	Describe("Registration proofs", func() {
		operator := common.HexToAddress("0x00000000000000000000000000000000000000aa")

		It("binds the keypair to the operator address", func() {
			keyPair, err := bls.GenRandomKeyPair()
			Expect(err).NotTo(HaveOccurred())

			proof, msgHash := keyPair.MakeRegistrationProof(operator)
			Expect(msgHash).To(Equal(bls.RegistrationMessageHash(operator)))

			ok, err := bls.VerifyFoldedSig(msgHash, keyPair.PubKeyG1, keyPair.GetPubKeyG2(), proof)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(true))
		})

		It("is not valid for a different operator address", func() {
			keyPair, err := bls.GenRandomKeyPair()
			Expect(err).NotTo(HaveOccurred())

			proof, _ := keyPair.MakeRegistrationProof(operator)
			other := common.HexToAddress("0x00000000000000000000000000000000000000bb")
			ok, err := bls.VerifyFoldedSig(bls.RegistrationMessageHash(other), keyPair.PubKeyG1, keyPair.GetPubKeyG2(), proof)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(false))
		})
	})
})
