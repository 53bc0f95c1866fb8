// Package secreon is the public facade over the threshold secret sharing
// core: classic prime-field Shamir's Secret Sharing and SLIP-39-compatible
// two-tier mnemonic sharing. It wires together field arithmetic, the
// Feistel cipher, the mnemonic splitting engine, the share codec, and the
// wordlist into the handful of operations external callers need.
package secreon

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"
	"strings"

	"github.com/cuedego/secreon/internal/feistel"
	"github.com/cuedego/secreon/internal/mnemonicsss"
	"github.com/cuedego/secreon/internal/primesss"
	"github.com/cuedego/secreon/internal/share"
	"github.com/cuedego/secreon/internal/sharecodec"
	"github.com/cuedego/secreon/internal/wordlist"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

// GroupSpec describes one group's (member_threshold, member_count) pair
// for GenerateMnemonics.
type GroupSpec struct {
	MemberThreshold int
	MemberCount     int
}

func validateMasterSecret(masterSecret []byte) error {
	if len(masterSecret)%2 != 0 {
		return secreonerrors.New(secreonerrors.KindInvalidArgument, "master secret length must be even")
	}
	if len(masterSecret) < 16 {
		return secreonerrors.New(secreonerrors.KindInvalidArgument, "master secret must be at least 16 bytes")
	}
	return nil
}

func validateIterationExponent(iterationExponent int) error {
	if iterationExponent < 0 || iterationExponent > 15 {
		return secreonerrors.New(secreonerrors.KindInvalidArgument, "iteration exponent must be in 0..15")
	}
	return nil
}

// GenerateMnemonics splits masterSecret into group_count groups of
// mnemonic word sequences, group_threshold of which are required to
// recover it; each group internally requires its own member_threshold of
// member_count shares. rnd supplies the randomness used for the share
// identifier and the random polynomial points; passing nil defaults to
// crypto/rand.Reader, but callers that need reproducible output (tests,
// golden vectors) can inject a deterministic reader instead.
func GenerateMnemonics(rnd io.Reader, groupThreshold int, groups []GroupSpec, masterSecret, passphrase []byte, extendable bool, iterationExponent int) ([][]string, error) {
	if rnd == nil {
		rnd = cryptorand.Reader
	}
	if err := validateMasterSecret(masterSecret); err != nil {
		return nil, err
	}
	if err := validateIterationExponent(iterationExponent); err != nil {
		return nil, err
	}

	internalGroups := make([]mnemonicsss.GroupSpec, len(groups))
	for i, g := range groups {
		internalGroups[i] = mnemonicsss.GroupSpec{MemberThreshold: g.MemberThreshold, MemberCount: g.MemberCount}
	}

	grouped, err := mnemonicsss.GenerateMnemonicShares(rnd, groupThreshold, internalGroups, masterSecret, passphrase, extendable, iterationExponent)
	if err != nil {
		return nil, err
	}

	result := make([][]string, len(grouped))
	for i, shares := range grouped {
		words := make([]string, len(shares))
		for j, s := range shares {
			encoded, err := sharecodec.Encode(s)
			if err != nil {
				return nil, err
			}
			words[j] = strings.Join(encoded, " ")
		}
		result[i] = words
	}

	return result, nil
}

// CombineMnemonics recovers the master secret from a flat set of mnemonic
// strings (drawn from one or more groups, as needed to satisfy the common
// group threshold) and the passphrase they were encrypted under.
func CombineMnemonics(mnemonics []string, passphrase []byte) ([]byte, error) {
	if len(mnemonics) == 0 {
		return nil, secreonerrors.New(secreonerrors.KindInvalidMnemonic, "the list of mnemonics is empty")
	}

	shares := make([]share.Share, len(mnemonics))
	for i, m := range mnemonics {
		words := strings.Fields(m)
		s, err := sharecodec.Decode(words)
		if err != nil {
			return nil, err
		}
		shares[i] = s
	}

	return mnemonicsss.CombineMnemonicShares(shares, passphrase)
}

// EncryptMasterSecret wraps masterSecret with the Feistel cipher under
// passphrase and the given parameters, returning the ciphertext (the
// encrypted master secret).
func EncryptMasterSecret(masterSecret, passphrase []byte, identifier int, extendable bool, iterationExponent int) ([]byte, error) {
	if err := validateMasterSecret(masterSecret); err != nil {
		return nil, err
	}
	if err := validateIterationExponent(iterationExponent); err != nil {
		return nil, err
	}
	return feistel.Encrypt(masterSecret, passphrase, identifier, extendable, iterationExponent), nil
}

// DecryptMasterSecret reverses EncryptMasterSecret.
func DecryptMasterSecret(ciphertext, passphrase []byte, identifier int, extendable bool, iterationExponent int) ([]byte, error) {
	if err := validateIterationExponent(iterationExponent); err != nil {
		return nil, err
	}
	return feistel.Decrypt(ciphertext, passphrase, identifier, extendable, iterationExponent), nil
}

// SplitPrime divides secret into shareCount points on a random
// degree-(threshold-1) polynomial over prime (primesss.DefaultPrime if
// nil), with an optional key-derivation pre-step. rnd supplies the
// polynomial coefficients and any KDF salt; passing nil defaults to
// crypto/rand.Reader, but callers that need reproducible shares (tests,
// golden vectors) can inject a deterministic reader instead.
func SplitPrime(rnd io.Reader, secret []byte, threshold, shareCount int, prime *big.Int, kdf KDFSpec) (*PrimeSplitResult, error) {
	if rnd == nil {
		rnd = cryptorand.Reader
	}
	result, err := primesss.Split(rnd, secret, threshold, shareCount, prime, primesss.KDFSpec(kdf))
	if err != nil {
		return nil, err
	}
	shares := make([]PrimeShare, len(result.Shares))
	for i, s := range result.Shares {
		shares[i] = PrimeShare{X: s.X, Y: s.Y}
	}
	return &PrimeSplitResult{
		Shares:           shares,
		Prime:            result.Prime,
		Threshold:        result.Threshold,
		ShareCount:       result.ShareCount,
		SecretByteLength: result.SecretByteLength,
		KDF:              KDFSpec(result.KDF),
	}, nil
}

// CombinePrime reconstructs the secret integer from threshold-or-more
// distinct (x, y) shares via Lagrange interpolation at x = 0.
func CombinePrime(shares []PrimeShare, prime *big.Int) (*big.Int, error) {
	internalShares := make([]primesss.Share, len(shares))
	for i, s := range shares {
		internalShares[i] = primesss.Share{X: s.X, Y: s.Y}
	}
	return primesss.Combine(internalShares, prime)
}

// PrimeShare is one (x, y) point of a classic prime-field share.
type PrimeShare struct {
	X int64
	Y *big.Int
}

// KDFSpec mirrors primesss.KDFSpec for the facade's public surface.
type KDFSpec struct {
	Algorithm  string
	Iterations int
	Salt       []byte
}

// PrimeSplitResult carries the shares plus the metadata CombinePrime
// needs, as returned by SplitPrime.
type PrimeSplitResult struct {
	Shares           []PrimeShare
	Prime            *big.Int
	Threshold        int
	ShareCount       int
	SecretByteLength int
	KDF              KDFSpec
}

// DefaultPrime is the Mersenne prime (2^2203 - 1) used when SplitPrime is
// given a nil prime.
var DefaultPrime = primesss.DefaultPrime

// WordToIndex returns the index of word in the canonical 1024-word list.
func WordToIndex(word string) (int, error) {
	return wordlist.WordToIndex(word)
}

// IndexToWord returns the canonical word at idx.
func IndexToWord(idx int) (string, error) {
	return wordlist.IndexToWord(idx)
}
