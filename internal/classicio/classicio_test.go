package classicio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cuedego/secreon/pkg/secreon"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	result, err := secreon.SplitPrime(nil, []byte("a classic secret"), 3, 5, nil, secreon.KDFSpec{})
	require.NoError(t, err)

	data, err := Marshal(result)
	require.NoError(t, err)

	shares, prime, meta, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, shares, 5)
	require.Equal(t, result.Threshold, meta.Threshold)
	require.Equal(t, result.ShareCount, meta.ShareCount)

	recovered, err := secreon.CombinePrime(shares[:3], prime)
	require.NoError(t, err)
	require.NotNil(t, recovered)
}

func TestMarshalUnmarshalWithPBKDF2Metadata(t *testing.T) {
	result, err := secreon.SplitPrime(nil, []byte("a classic secret"), 2, 3, nil, secreon.KDFSpec{Algorithm: "pbkdf2", Iterations: 1000})
	require.NoError(t, err)

	data, err := Marshal(result)
	require.NoError(t, err)

	_, _, meta, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, "pbkdf2", meta.KDF.Algorithm)
	require.Equal(t, 1000, meta.KDF.Iterations)
	require.NotEmpty(t, meta.KDF.Salt)
}

func TestUnmarshalRejectsEmptyShares(t *testing.T) {
	_, _, _, err := Unmarshal([]byte(`{"meta":{},"shares":[]}`))
	require.Error(t, err)
}

func TestUnmarshalRejectsMalformedJSON(t *testing.T) {
	_, _, _, err := Unmarshal([]byte(`not json`))
	require.Error(t, err)
}
