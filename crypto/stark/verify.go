// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.
//
// ECDSA verification over the STARK curve (y^2 = x^3 + x + beta) from
// gnark-crypto, against x-only public keys as persisted by account
// contracts. Signing support is provided for key holders and tests.

package stark

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"
)

var (
	// gen is the STARK curve generator point.
	gen starkcurve.G1Affine

	// curveB is the constant term beta of the curve equation; the
	// linear coefficient alpha is 1.
	curveB fp.Element

	// ErrInvalidPrivateKey is returned when signing with a key that
	// is zero or not a valid curve scalar.
	ErrInvalidPrivateKey = errors.New("invalid stark private key")
)

func init() {
	gen.X.SetBigInt(mustBig("874739451078007766457464989774322083649278607533249481151382481072868806602"))
	gen.Y.SetBigInt(mustBig("152666792071518830868575557812948353041420400780739481342941381225525861407"))
	curveB.SetBigInt(mustBig("3141592653589793238462643383279502884197169399375105820974944592307816406665"))
}

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("stark: bad curve constant " + s)
	}
	return n
}

// ECDSAVerifier is a stateless adapter exposing VerifySignature under
// the account core's Verifier contract.
type ECDSAVerifier struct{}

// Verify implements the curve-primitive interface expected by the
// account core.
func (ECDSAVerifier) Verify(publicKey, digest, r, s *felt.Felt) bool {
	return VerifySignature(publicKey, digest, r, s)
}

// VerifySignature reports whether (r, s) is a valid ECDSA signature
// over digest for the account public key. The public key is the
// x-coordinate of the signer's point; both candidate points sharing
// that abscissa are accepted, matching the x-only storage contract.
func VerifySignature(publicKey, digest, r, s *felt.Felt) bool {
	if publicKey == nil || digest == nil || r == nil || s == nil {
		return false
	}

	rBytes, sBytes := r.Bytes(), s.Bytes()
	order := fr.Modulus()
	rBig := new(big.Int).SetBytes(rBytes[:])
	sBig := new(big.Int).SetBytes(sBytes[:])
	if rBig.Sign() == 0 || rBig.Cmp(order) >= 0 || sBig.Sign() == 0 || sBig.Cmp(order) >= 0 {
		return false
	}

	var rScalar, sScalar, e fr.Element
	rScalar.SetBigInt(rBig)
	sScalar.SetBigInt(sBig)
	digestBytes := digest.Bytes()
	e.SetBytes(digestBytes[:])

	var x fp.Element
	keyBytes := publicKey.Bytes()
	x.SetBytes(keyBytes[:])
	y, ok := liftX(&x)
	if !ok {
		return false
	}

	pub := starkcurve.G1Affine{X: x, Y: y}
	if verifyWithPoint(&pub, &e, &rScalar, &sScalar) {
		return true
	}
	pub.Y.Neg(&y)
	return verifyWithPoint(&pub, &e, &rScalar, &sScalar)
}

// liftX solves the curve equation for x, returning one of the two
// candidate ordinates. ok is false when x is not on the curve.
func liftX(x *fp.Element) (y fp.Element, ok bool) {
	var rhs fp.Element
	rhs.Square(x)
	rhs.Mul(&rhs, x)
	rhs.Add(&rhs, x) // alpha = 1
	rhs.Add(&rhs, &curveB)
	if y.Sqrt(&rhs) == nil {
		return y, false
	}
	return y, true
}

// verifyWithPoint checks the ECDSA equation r == x(u1*G + u2*P) mod n
// with u1 = e/s and u2 = r/s.
func verifyWithPoint(pub *starkcurve.G1Affine, e, r, s *fr.Element) bool {
	var w, u1, u2 fr.Element
	w.Inverse(s)
	u1.Mul(e, &w)
	u2.Mul(r, &w)

	var p1, p2, sum starkcurve.G1Affine
	p1.ScalarMultiplication(&gen, u1.BigInt(new(big.Int)))
	p2.ScalarMultiplication(pub, u2.BigInt(new(big.Int)))
	sum.Add(&p1, &p2)
	if sum.IsInfinity() {
		return false
	}

	var xr fr.Element
	xBytes := sum.X.Bytes()
	xr.SetBytes(xBytes[:])
	return xr.Equal(r)
}

// PublicKey derives the x-only account public key for a private
// scalar.
func PublicKey(privateKey *big.Int) (*felt.Felt, error) {
	if privateKey == nil || privateKey.Sign() <= 0 || privateKey.Cmp(fr.Modulus()) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	var p starkcurve.G1Affine
	p.ScalarMultiplication(&gen, privateKey)
	xBytes := p.X.Bytes()
	return new(felt.Felt).SetBytes(xBytes[:]), nil
}

// Sign produces an ECDSA signature (r, s) over digest with the given
// private scalar. Nonces are drawn fresh from crypto/rand; degenerate
// draws are retried.
func Sign(privateKey *big.Int, digest *felt.Felt) (r, s *felt.Felt, err error) {
	if privateKey == nil || privateKey.Sign() <= 0 || privateKey.Cmp(fr.Modulus()) >= 0 {
		return nil, nil, ErrInvalidPrivateKey
	}

	var d, e fr.Element
	d.SetBigInt(privateKey)
	digestBytes := digest.Bytes()
	e.SetBytes(digestBytes[:])

	orderMinusOne := new(big.Int).Sub(fr.Modulus(), big.NewInt(1))
	for {
		k, err := rand.Int(rand.Reader, orderMinusOne)
		if err != nil {
			return nil, nil, err
		}
		k.Add(k, big.NewInt(1)) // k in [1, n-1]

		var kPoint starkcurve.G1Affine
		kPoint.ScalarMultiplication(&gen, k)

		var rScalar fr.Element
		xBytes := kPoint.X.Bytes()
		rScalar.SetBytes(xBytes[:])
		if rScalar.IsZero() {
			continue
		}

		var kScalar, kInv, sScalar fr.Element
		kScalar.SetBigInt(k)
		kInv.Inverse(&kScalar)
		sScalar.Mul(&rScalar, &d)
		sScalar.Add(&sScalar, &e)
		sScalar.Mul(&sScalar, &kInv)
		if sScalar.IsZero() {
			continue
		}

		rOut, sOut := rScalar.Bytes(), sScalar.Bytes()
		return new(felt.Felt).SetBytes(rOut[:]), new(felt.Felt).SetBytes(sOut[:]), nil
	}
}
