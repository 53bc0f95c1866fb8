package gf256

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddIsXORAndSelfInverse(t *testing.T) {
	for a := 0; a < 256; a++ {
		require.Equal(t, byte(0), Add(byte(a), byte(a)))
	}
}

func TestMulInverseIdentity(t *testing.T) {
	for a := 1; a < 256; a++ {
		inv, err := Inverse(byte(a))
		require.NoError(t, err)
		require.Equal(t, byte(1), Mul(byte(a), inv), "a=%d", a)
	}
}

func TestInverseZeroErrors(t *testing.T) {
	_, err := Inverse(0)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestDivByZeroErrors(t *testing.T) {
	_, err := Div(5, 0)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestMulDivRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			prod := Mul(byte(a), byte(b))
			back, err := Div(prod, byte(b))
			require.NoError(t, err)
			require.Equal(t, byte(a), back)
		}
	}
}

func TestInterpolateFastPath(t *testing.T) {
	points := []Point{
		{X: 1, Y: []byte{10, 20}},
		{X: 2, Y: []byte{30, 40}},
	}
	got, err := Interpolate(points, 1)
	require.NoError(t, err)
	require.True(t, bytes.Equal(got, []byte{10, 20}))
}

func TestInterpolateRecoversPolynomial(t *testing.T) {
	// f(x) = 7 + 5x over GF(256), sample at x=1,2,3 and recover at x=0.
	secret := byte(7)
	coeff := byte(5)
	points := make([]Point, 0, 3)
	for x := byte(1); x <= 3; x++ {
		y := Add(secret, Mul(coeff, x))
		points = append(points, Point{X: x, Y: []byte{y}})
	}
	got, err := Interpolate(points, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{secret}, got)
}

func TestInterpolateDuplicateX(t *testing.T) {
	points := []Point{
		{X: 1, Y: []byte{1}},
		{X: 1, Y: []byte{2}},
	}
	_, err := Interpolate(points, 0)
	require.ErrorIs(t, err, ErrDuplicateX)
}

func TestInterpolateLengthMismatch(t *testing.T) {
	points := []Point{
		{X: 1, Y: []byte{1, 2}},
		{X: 2, Y: []byte{1}},
	}
	_, err := Interpolate(points, 0)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestInterpolateEmpty(t *testing.T) {
	_, err := Interpolate(nil, 0)
	require.ErrorIs(t, err, ErrNoPoints)
}

func TestKnownVector(t *testing.T) {
	// multiply(3, 7) == 9 per the reference implementation.
	require.Equal(t, byte(9), Mul(3, 7))
}
