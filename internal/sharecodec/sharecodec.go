// Package sharecodec converts between a Share record and the sequence of
// words that represent it on paper: big-endian base-1024 packing of the
// identifier/extendable/iteration-exponent header, the group/member
// parameter nibbles, the share value, and a trailing RS1024 checksum.
package sharecodec

import (
	"math/big"

	"github.com/cuedego/secreon/internal/rs1024"
	"github.com/cuedego/secreon/internal/share"
	"github.com/cuedego/secreon/internal/wordlist"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

const (
	radixBits              = 10
	idLengthBits           = 15
	extendableFlagBits     = 1
	iterationExpBits       = 4
	idExpLengthWords       = 2
	checksumLengthWords    = 3
	groupParamsLengthWords = 2
	metadataLengthWords    = idExpLengthWords + groupParamsLengthWords + checksumLengthWords

	minStrengthBits        = 128
	minMnemonicLengthWords = metadataLengthWords + ((minStrengthBits + radixBits - 1) / radixBits)
)

func roundUpDiv(n, d int) int { return (n + d - 1) / d }

func bitsToWords(n int) int { return roundUpDiv(n, radixBits) }

// intToIndices converts value into length big-endian radixBits-wide
// digits.
func intToIndices(value *big.Int, length int) []int {
	mask := new(big.Int).Lsh(big.NewInt(1), radixBits)
	mask.Sub(mask, big.NewInt(1))

	indices := make([]int, length)
	tmp := new(big.Int).Set(value)
	digit := new(big.Int)
	for i := length - 1; i >= 0; i-- {
		digit.And(tmp, mask)
		indices[i] = int(digit.Int64())
		tmp.Rsh(tmp, radixBits)
	}
	return indices
}

func indicesToInt(indices []int) *big.Int {
	value := new(big.Int)
	radix := big.NewInt(1 << radixBits)
	for _, idx := range indices {
		value.Mul(value, radix)
		value.Add(value, big.NewInt(int64(idx)))
	}
	return value
}

func smallIntToIndices(value uint32, length int) []int {
	return intToIndices(new(big.Int).SetUint64(uint64(value)), length)
}

func indicesToSmallInt(indices []int) uint32 {
	return uint32(indicesToInt(indices).Uint64())
}

func toUint16Slice(indices []int) []uint16 {
	out := make([]uint16, len(indices))
	for i, v := range indices {
		out[i] = uint16(v)
	}
	return out
}

func fromUint16Slice(values []uint16) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

// Encode converts s into its canonical word sequence.
func Encode(s share.Share) ([]string, error) {
	idExpInt := uint32(s.Identifier)<<(iterationExpBits+extendableFlagBits) | boolBit(s.Extendable)<<iterationExpBits | uint32(s.IterationExponent)
	idExpIndices := smallIntToIndices(idExpInt, idExpLengthWords)

	paramsVal := uint32(s.GroupIndex)
	paramsVal = paramsVal<<4 | uint32(s.GroupThreshold-1)
	paramsVal = paramsVal<<4 | uint32(s.GroupCount-1)
	paramsVal = paramsVal<<4 | uint32(s.MemberIndex)
	paramsVal = paramsVal<<4 | uint32(s.MemberThreshold-1)
	paramsIndices := smallIntToIndices(paramsVal, groupParamsLengthWords)

	valueWordCount := bitsToWords(len(s.Value) * 8)
	valueInt := new(big.Int).SetBytes(s.Value)
	valueIndices := intToIndices(valueInt, valueWordCount)

	data := make([]int, 0, idExpLengthWords+groupParamsLengthWords+valueWordCount)
	data = append(data, idExpIndices...)
	data = append(data, paramsIndices...)
	data = append(data, valueIndices...)

	checksum := rs1024.CreateChecksum(toUint16Slice(data), s.Extendable)

	words := make([]string, 0, len(data)+checksumLengthWords)
	for _, idx := range data {
		w, err := wordlist.IndexToWord(idx)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	for _, idx := range checksum {
		w, err := wordlist.IndexToWord(int(idx))
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, nil
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Decode parses words back into a Share.
func Decode(words []string) (share.Share, error) {
	if len(words) < minMnemonicLengthWords {
		return share.Share{}, secreonerrors.New(secreonerrors.KindInvalidMnemonic,
			"mnemonic is too short")
	}

	indices := make([]int, len(words))
	for i, w := range words {
		idx, err := wordlist.WordToIndex(w)
		if err != nil {
			return share.Share{}, err
		}
		indices[i] = idx
	}

	paddingLen := (radixBits * (len(indices) - metadataLengthWords)) % 16
	if paddingLen > 8 {
		return share.Share{}, secreonerrors.New(secreonerrors.KindInvalidMnemonic, "invalid mnemonic length")
	}

	idExpIndices := indices[:idExpLengthWords]
	idExpInt := indicesToSmallInt(idExpIndices)
	identifier := int(idExpInt >> (extendableFlagBits + iterationExpBits))
	extendable := (idExpInt>>iterationExpBits)&1 == 1
	iterationExponent := int(idExpInt & ((1 << iterationExpBits) - 1))

	if !rs1024.VerifyChecksum(toUint16Slice(indices), extendable) {
		return share.Share{}, secreonerrors.New(secreonerrors.KindChecksumFailure, "invalid mnemonic checksum")
	}

	paramsIndices := indices[idExpLengthWords : idExpLengthWords+groupParamsLengthWords]
	paramsInt := indicesToSmallInt(paramsIndices)
	memberThreshold := int(paramsInt&0xF) + 1
	paramsInt >>= 4
	memberIndex := int(paramsInt & 0xF)
	paramsInt >>= 4
	groupCount := int(paramsInt&0xF) + 1
	paramsInt >>= 4
	groupThreshold := int(paramsInt&0xF) + 1
	paramsInt >>= 4
	groupIndex := int(paramsInt & 0xF)

	if groupCount < groupThreshold {
		return share.Share{}, secreonerrors.New(secreonerrors.KindInvalidMnemonic,
			"group threshold cannot be greater than group count")
	}

	valueIndices := indices[idExpLengthWords+groupParamsLengthWords : len(indices)-checksumLengthWords]
	valueByteCount := roundUpDiv(radixBits*len(valueIndices)-paddingLen, 8)
	valueInt := indicesToInt(valueIndices)

	if valueInt.BitLen() > valueByteCount*8 {
		return share.Share{}, secreonerrors.New(secreonerrors.KindInvalidMnemonic, "invalid mnemonic padding")
	}
	value := make([]byte, valueByteCount)
	valueInt.FillBytes(value)

	return share.Share{
		Identifier:        identifier,
		Extendable:        extendable,
		IterationExponent: iterationExponent,
		GroupIndex:        groupIndex,
		GroupThreshold:    groupThreshold,
		GroupCount:        groupCount,
		MemberIndex:       memberIndex,
		MemberThreshold:   memberThreshold,
		Value:             value,
	}, nil
}
