// Package primesss implements classic Shamir's Secret Sharing over a
// large prime field: a single-level polynomial split/combine, with an
// optional key-derivation pre-step for passphrase-like secrets.
package primesss

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"math/big"

	"golang.org/x/crypto/pbkdf2"

	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

// DefaultPrime is 2^2203 - 1, a Mersenne prime with enough headroom for a
// 24-word BIP-39 mnemonic's worth of entropy (~146 bytes).
var DefaultPrime = mersenne2203()

func mersenne2203() *big.Int {
	one := big.NewInt(1)
	p := new(big.Int).Lsh(one, 2203)
	return p.Sub(p, one)
}

// KDFSpec describes an optional key-derivation pre-step applied to the
// secret bytes before they are reduced into the field.
type KDFSpec struct {
	// Algorithm is "", "sha256", or "pbkdf2".
	Algorithm string

	// Iterations is used only when Algorithm is "pbkdf2"; it defaults to
	// 100000 when zero.
	Iterations int

	// Salt is used only when Algorithm is "pbkdf2"; Split generates one
	// at random if empty and returns it in SplitResult.KDF. Combine takes
	// no KDF parameters: it returns the derived value that was shared.
	Salt []byte
}

const defaultPBKDF2Iterations = 100000

func applyKDF(rnd io.Reader, spec KDFSpec, secret []byte) ([]byte, KDFSpec, error) {
	switch spec.Algorithm {
	case "":
		return secret, spec, nil
	case "sha256":
		sum := sha256.Sum256(secret)
		return sum[:], spec, nil
	case "pbkdf2":
		iterations := spec.Iterations
		if iterations == 0 {
			iterations = defaultPBKDF2Iterations
		}
		salt := spec.Salt
		if len(salt) == 0 {
			salt = make([]byte, 16)
			if _, err := io.ReadFull(rnd, salt); err != nil {
				return nil, spec, secreonerrors.Wrap(secreonerrors.KindArithmeticError, "generating KDF salt", err)
			}
		}
		dk := pbkdf2.Key(secret, salt, iterations, 32, sha256.New)
		return dk, KDFSpec{Algorithm: "pbkdf2", Iterations: iterations, Salt: salt}, nil
	default:
		return nil, spec, secreonerrors.New(secreonerrors.KindInvalidArgument, "unsupported kdf: "+spec.Algorithm)
	}
}

// Share is one point (x, y) on the sharing polynomial.
type Share struct {
	X int64
	Y *big.Int
}

// SplitResult carries the shares plus the metadata Combine needs.
type SplitResult struct {
	Shares           []Share
	Prime            *big.Int
	Threshold        int
	ShareCount       int
	SecretByteLength int
	KDF              KDFSpec
}

// Split divides secret into shareCount points on a random polynomial of
// degree threshold-1 over prime (DefaultPrime if nil), such that any
// threshold of them reconstruct it via Lagrange interpolation at x=0.
// rnd supplies the polynomial coefficients and any KDF salt; it is a
// capability, not a global, so callers needing reproducible shares (tests,
// golden vectors) can pass a deterministic reader instead of
// crypto/rand.Reader.
func Split(rnd io.Reader, secret []byte, threshold, shareCount int, prime *big.Int, kdf KDFSpec) (*SplitResult, error) {
	if threshold < 1 || threshold > shareCount {
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "require 1 <= threshold <= shareCount")
	}
	if prime == nil {
		prime = DefaultPrime
	}

	processed, resolvedKDF, err := applyKDF(rnd, kdf, secret)
	if err != nil {
		return nil, err
	}

	secretInt := new(big.Int).SetBytes(processed)
	if secretInt.Cmp(prime) >= 0 {
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "secret exceeds prime; use a larger prime or shorter secret")
	}
	secretInt.Mod(secretInt, prime)

	coefficients := make([]*big.Int, threshold)
	coefficients[0] = secretInt
	for i := 1; i < threshold; i++ {
		c, err := rand.Int(rnd, new(big.Int).Sub(prime, big.NewInt(1)))
		if err != nil {
			return nil, secreonerrors.Wrap(secreonerrors.KindArithmeticError, "generating polynomial coefficient", err)
		}
		coefficients[i] = c
	}

	shares := make([]Share, shareCount)
	for i := 0; i < shareCount; i++ {
		x := int64(i + 1)
		shares[i] = Share{X: x, Y: evalAt(coefficients, big.NewInt(x), prime)}
	}

	return &SplitResult{
		Shares:           shares,
		Prime:            prime,
		Threshold:        threshold,
		ShareCount:       shareCount,
		SecretByteLength: len(secret),
		KDF:              resolvedKDF,
	}, nil
}

func evalAt(coefficients []*big.Int, x, prime *big.Int) *big.Int {
	accum := big.NewInt(0)
	for i := len(coefficients) - 1; i >= 0; i-- {
		accum.Mul(accum, x)
		accum.Add(accum, coefficients[i])
		accum.Mod(accum, prime)
	}
	return accum
}

// extendedGCD returns (g, x, y) such that a*x + b*y == g == gcd(a, b).
func extendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	lastX, curX := big.NewInt(1), big.NewInt(0)
	lastY, curY := big.NewInt(0), big.NewInt(1)
	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)

	for b.Sign() != 0 {
		quot := new(big.Int)
		rem := new(big.Int)
		quot.DivMod(a, b, rem)
		a, b = b, rem

		newX := new(big.Int).Sub(lastX, new(big.Int).Mul(quot, curX))
		lastX, curX = curX, newX

		newY := new(big.Int).Sub(lastY, new(big.Int).Mul(quot, curY))
		lastY, curY = curY, newY
	}
	return a, lastX, lastY
}

func divMod(num, den, p *big.Int) (*big.Int, error) {
	g, inv, _ := extendedGCD(den, p)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, secreonerrors.New(secreonerrors.KindArithmeticError, "denominator has no inverse modulo prime")
	}
	result := new(big.Int).Mul(num, inv)
	result.Mod(result, p)
	return result, nil
}

// Combine reconstructs the secret integer from threshold-or-more distinct
// (x, y) shares via Lagrange interpolation at x=0.
func Combine(shares []Share, prime *big.Int) (*big.Int, error) {
	if len(shares) < 1 {
		return nil, secreonerrors.New(secreonerrors.KindInsufficientShares, "need at least one share")
	}
	if prime == nil {
		prime = DefaultPrime
	}

	seen := make(map[int64]struct{}, len(shares))
	for _, s := range shares {
		if _, dup := seen[s.X]; dup {
			return nil, secreonerrors.New(secreonerrors.KindArithmeticError, "duplicate x-value among shares")
		}
		seen[s.X] = struct{}{}
	}

	return lagrangeInterpolateAtZero(shares, prime)
}

func lagrangeInterpolateAtZero(shares []Share, prime *big.Int) (*big.Int, error) {
	k := len(shares)
	num := big.NewInt(0)

	nums := make([]*big.Int, k)
	dens := make([]*big.Int, k)

	for i := 0; i < k; i++ {
		n := big.NewInt(1)
		d := big.NewInt(1)
		xi := big.NewInt(shares[i].X)
		for j := 0; j < k; j++ {
			if j == i {
				continue
			}
			xj := big.NewInt(shares[j].X)
			negXj := new(big.Int).Neg(xj)
			n.Mul(n, negXj)
			n.Mod(n, prime)

			diff := new(big.Int).Sub(xi, xj)
			d.Mul(d, diff)
			d.Mod(d, prime)
		}
		nums[i] = n
		dens[i] = d
	}

	denProduct := big.NewInt(1)
	for _, d := range dens {
		denProduct.Mul(denProduct, d)
		denProduct.Mod(denProduct, prime)
	}

	for i := 0; i < k; i++ {
		term := new(big.Int).Mul(nums[i], denProduct)
		term.Mod(term, prime)
		term.Mul(term, shares[i].Y)
		term.Mod(term, prime)

		div, err := divMod(term, dens[i], prime)
		if err != nil {
			return nil, err
		}
		num.Add(num, div)
	}

	result, err := divMod(num, denProduct, prime)
	if err != nil {
		return nil, err
	}
	result.Mod(result, prime)
	result.Add(result, prime)
	result.Mod(result, prime)
	return result, nil
}
