// Package classicio provides the JSON on-disk envelope for classic
// prime-field shares: the external collaborator layer the core's §6
// contract leaves to the CLI, grounded on the reference implementation's
// JSON share format.
package classicio

import (
	"encoding/base64"
	"encoding/json"
	"math/big"

	"github.com/cuedego/secreon/pkg/secreon"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

// KDFMetadata mirrors the reference implementation's per-share metadata
// describing an optional KDF pre-step.
type KDFMetadata struct {
	Algorithm  string `json:"kdf"`
	Iterations int    `json:"iterations,omitempty"`
	Salt       string `json:"salt,omitempty"`
}

// Envelope is the on-disk JSON document carrying one or more classic
// shares plus the metadata Combine needs to reassemble them.
type Envelope struct {
	Meta   Meta         `json:"meta"`
	Shares []shareEntry `json:"shares"`
}

// Meta carries the parameters a classic share set was generated under.
type Meta struct {
	Threshold        int          `json:"minimum"`
	ShareCount       int          `json:"shares"`
	Prime            string       `json:"prime"`
	SecretByteLength int          `json:"secret_byte_length"`
	KDF              *KDFMetadata `json:"kdf,omitempty"`
}

type shareEntry struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Marshal builds the JSON envelope for a SplitPrime result.
func Marshal(result *secreon.PrimeSplitResult) ([]byte, error) {
	meta := Meta{
		Threshold:        result.Threshold,
		ShareCount:       result.ShareCount,
		Prime:            result.Prime.String(),
		SecretByteLength: result.SecretByteLength,
	}
	if result.KDF.Algorithm != "" {
		meta.KDF = &KDFMetadata{Algorithm: result.KDF.Algorithm, Iterations: result.KDF.Iterations}
		if len(result.KDF.Salt) > 0 {
			meta.KDF.Salt = base64.StdEncoding.EncodeToString(result.KDF.Salt)
		}
	}

	entries := make([]shareEntry, len(result.Shares))
	for i, s := range result.Shares {
		entries[i] = shareEntry{X: big.NewInt(s.X).String(), Y: s.Y.String()}
	}

	envelope := Envelope{Meta: meta, Shares: entries}
	return json.MarshalIndent(envelope, "", "  ")
}

// Unmarshal parses a JSON envelope back into shares and the prime they
// were generated under.
func Unmarshal(data []byte) ([]secreon.PrimeShare, *big.Int, Meta, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, nil, Meta{}, secreonerrors.Wrap(secreonerrors.KindIoInputError, "parsing classic share envelope", err)
	}
	if len(envelope.Shares) == 0 {
		return nil, nil, Meta{}, secreonerrors.New(secreonerrors.KindIoInputError, "envelope contains no shares")
	}

	prime, ok := new(big.Int).SetString(envelope.Meta.Prime, 10)
	if !ok {
		prime = secreon.DefaultPrime
	}

	shares := make([]secreon.PrimeShare, len(envelope.Shares))
	for i, e := range envelope.Shares {
		x, ok := new(big.Int).SetString(e.X, 10)
		if !ok {
			return nil, nil, Meta{}, secreonerrors.New(secreonerrors.KindIoInputError, "invalid share x-coordinate")
		}
		y, ok := new(big.Int).SetString(e.Y, 10)
		if !ok {
			return nil, nil, Meta{}, secreonerrors.New(secreonerrors.KindIoInputError, "invalid share y-coordinate")
		}
		shares[i] = secreon.PrimeShare{X: x.Int64(), Y: y}
	}

	return shares, prime, envelope.Meta, nil
}
