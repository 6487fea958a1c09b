package bls

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	g1Gen bn254.G1Affine
	g2Gen bn254.G2Affine
)

func init() {
	_, _, g1Gen, g2Gen = bn254.Generators()
}

func GetG1Generator() *bn254.G1Affine {
	gen := g1Gen
	return &gen
}

func GetG2Generator() *bn254.G2Affine {
	gen := g2Gen
	return &gen
}

func MulByGeneratorG1(a *fr.Element) *bn254.G1Affine {
	return new(bn254.G1Affine).ScalarMultiplication(&g1Gen, a.BigInt(new(big.Int)))
}

func MulByGeneratorG2(a *fr.Element) *bn254.G2Affine {
	return new(bn254.G2Affine).ScalarMultiplication(&g2Gen, a.BigInt(new(big.Int)))
}

func SerializeG1(p *bn254.G1Affine) []byte {
	b := make([]byte, 0, 64)
	tmpX := p.X.Bytes()
	b = append(b, tmpX[:]...)
	tmpY := p.Y.Bytes()
	b = append(b, tmpY[:]...)
	return b
}

func DeserializeG1(b []byte) *bn254.G1Affine {
	p := new(bn254.G1Affine)
	p.X.SetBytes(b[0:32])
	p.Y.SetBytes(b[32:64])
	return p
}

func SerializeG2(p *bn254.G2Affine) []byte {
	b := make([]byte, 0, 128)
	tmp := p.X.A0.Bytes()
	b = append(b, tmp[:]...)
	tmp = p.X.A1.Bytes()
	b = append(b, tmp[:]...)
	tmp = p.Y.A0.Bytes()
	b = append(b, tmp[:]...)
	tmp = p.Y.A1.Bytes()
	b = append(b, tmp[:]...)
	return b
}

func DeserializeG2(b []byte) *bn254.G2Affine {
	p := new(bn254.G2Affine)
	p.X.A0.SetBytes(b[0:32])
	p.X.A1.SetBytes(b[32:64])
	p.Y.A0.SetBytes(b[64:96])
	p.Y.A1.SetBytes(b[96:128])
	return p
}
