// Package feistel implements the 4-round Feistel cipher that wraps a
// master secret into an encrypted master secret (and back) ahead of
// splitting it with the mnemonic engine, using a passphrase as key
// material.
package feistel

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// rounds is the fixed Feistel round count.
	rounds = 4

	// baseIterationCount is the PBKDF2 iteration count at iteration
	// exponent 0, divided across the four rounds.
	baseIterationCount = 10000

	saltCustomization = "shamir"
)

// iterationCount returns the total PBKDF2 iterations for one round at the
// given iteration exponent.
func iterationCount(iterationExponent int) int {
	return (baseIterationCount << uint(iterationExponent)) / rounds
}

// salt returns the per-round KDF salt: empty for extendable secrets (so
// shares aren't bound to one generation's identifier), or the
// customization string concatenated with the big-endian identifier
// otherwise.
func salt(identifier int, extendable bool) []byte {
	if extendable {
		return nil
	}
	out := make([]byte, 0, len(saltCustomization)+2)
	out = append(out, saltCustomization...)
	out = append(out, byte(identifier>>8), byte(identifier))
	return out
}

// roundFunction derives a pseudorandom mask the same length as half from
// the round index, passphrase, salt and the opposite half.
func roundFunction(round, iterationExponent int, passphrase, saltValue, half []byte) []byte {
	key := make([]byte, 0, 1+len(passphrase))
	key = append(key, byte(round))
	key = append(key, passphrase...)

	data := make([]byte, 0, len(saltValue)+len(half))
	data = append(data, saltValue...)
	data = append(data, half...)

	return pbkdf2.Key(key, data, iterationCount(iterationExponent), len(half), sha256.New)
}

func split(secret []byte) (left, right []byte) {
	half := len(secret) / 2
	left = append([]byte(nil), secret[:half]...)
	right = append([]byte(nil), secret[half:]...)
	return left, right
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Encrypt transforms a master secret into its encrypted form using the
// given passphrase, identifier and iteration exponent. masterSecret must
// have even length; passphrase may be empty (the empty passphrase).
func Encrypt(masterSecret, passphrase []byte, identifier int, extendable bool, iterationExponent int) []byte {
	return feistelTransform(masterSecret, passphrase, identifier, extendable, iterationExponent, false)
}

// Decrypt reverses Encrypt.
func Decrypt(encryptedMasterSecret, passphrase []byte, identifier int, extendable bool, iterationExponent int) []byte {
	return feistelTransform(encryptedMasterSecret, passphrase, identifier, extendable, iterationExponent, true)
}

func feistelTransform(secret, passphrase []byte, identifier int, extendable bool, iterationExponent int, decrypting bool) []byte {
	l, r := split(secret)
	saltValue := salt(identifier, extendable)

	roundOrder := [rounds]int{0, 1, 2, 3}
	if decrypting {
		roundOrder = [rounds]int{3, 2, 1, 0}
	}

	for _, round := range roundOrder {
		f := roundFunction(round, iterationExponent, passphrase, saltValue, r)
		l, r = r, xorBytes(l, f)
	}

	out := make([]byte, 0, len(l)+len(r))
	out = append(out, r...)
	out = append(out, l...)
	return out
}
