package mnemonicsss

import (
	"crypto/rand"
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cuedego/secreon/internal/share"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

func TestSplitSecretThresholdOneReplicates(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	shares, err := SplitSecret(rand.Reader, 1, 3, secret)
	require.NoError(t, err)
	require.Len(t, shares, 3)
	for _, s := range shares {
		require.Equal(t, secret, s.Data)
	}
}

func TestSplitRecoverRoundTrip(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	shares, err := SplitSecret(rand.Reader, 3, 5, secret)
	require.NoError(t, err)

	recovered, err := RecoverSecret(3, shares[:3])
	require.NoError(t, err)
	require.Equal(t, secret, recovered)
}

func TestRecoverDetectsTamperedShare(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	shares, err := SplitSecret(rand.Reader, 3, 5, secret)
	require.NoError(t, err)

	tampered := append([]RawShare(nil), shares[:3]...)
	corrupted := append([]byte(nil), tampered[0].Data...)
	corrupted[0] ^= 0xFF
	tampered[0] = RawShare{X: tampered[0].X, Data: corrupted}

	_, err = RecoverSecret(3, tampered)
	require.Error(t, err)
	require.True(t, secreonerrors.Is(err, secreonerrors.KindDigestMismatch))
}

func TestSplitSecretRejectsOversizedShareCount(t *testing.T) {
	_, err := SplitSecret(rand.Reader, 2, MaxShareCount+1, []byte("0123456789ABCDEF"))
	require.Error(t, err)
}

func TestEncryptedMasterSecretRoundTrip(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	ems := NewEncryptedMasterSecret(secret, []byte("pw"), 99, true, 0)
	require.Equal(t, secret, ems.Decrypt([]byte("pw")))
}

func TestSplitSecretWithDeterministicSourceIsReproducible(t *testing.T) {
	secret := []byte("0123456789ABCDEF")

	sharesA, err := SplitSecret(mathrand.New(mathrand.NewSource(1)), 3, 5, secret)
	require.NoError(t, err)
	sharesB, err := SplitSecret(mathrand.New(mathrand.NewSource(1)), 3, 5, secret)
	require.NoError(t, err)
	require.Equal(t, sharesA, sharesB, "the same seeded source must produce identical shares")

	sharesC, err := SplitSecret(mathrand.New(mathrand.NewSource(2)), 3, 5, secret)
	require.NoError(t, err)
	require.NotEqual(t, sharesA, sharesC, "a different seed must produce different shares")
}

func TestGenerateAndCombineSingleGroup(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{{MemberThreshold: 3, MemberCount: 5}}

	grouped, err := GenerateMnemonicShares(rand.Reader, 1, groups, secret, nil, true, 0)
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	require.Len(t, grouped[0], 5)

	recovered, err := CombineMnemonicShares(grouped[0][:3], nil)
	require.NoError(t, err)
	require.Equal(t, secret, recovered)
}

func TestGenerateAndCombineMultiGroup(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{
		{MemberThreshold: 2, MemberCount: 3},
		{MemberThreshold: 3, MemberCount: 5},
		{MemberThreshold: 1, MemberCount: 1},
	}

	grouped, err := GenerateMnemonicShares(rand.Reader, 2, groups, secret, []byte("pw"), false, 2)
	require.NoError(t, err)

	var combined []share.Share
	combined = append(combined, grouped[0][:2]...)
	combined = append(combined, grouped[2]...)

	recovered, err := CombineMnemonicShares(combined, []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, secret, recovered)
}

func TestMemberThresholdOneWithMultipleMembersRejected(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{{MemberThreshold: 1, MemberCount: 2}}
	_, err := GenerateMnemonicShares(rand.Reader, 1, groups, secret, nil, true, 0)
	require.Error(t, err)
	require.True(t, secreonerrors.Is(err, secreonerrors.KindInvalidArgument))
}

func TestNonASCIIPassphraseRejected(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{{MemberThreshold: 1, MemberCount: 1}}
	_, err := GenerateMnemonicShares(rand.Reader, 1, groups, secret, []byte{0x01}, true, 0)
	require.Error(t, err)
}

func TestTooFewGroupsRejected(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{
		{MemberThreshold: 2, MemberCount: 3},
		{MemberThreshold: 2, MemberCount: 3},
		{MemberThreshold: 1, MemberCount: 1},
	}
	grouped, err := GenerateMnemonicShares(rand.Reader, 3, groups, secret, nil, true, 0)
	require.NoError(t, err)

	var combined []share.Share
	combined = append(combined, grouped[0][:2]...)
	combined = append(combined, grouped[2]...)

	_, err = CombineMnemonicShares(combined, nil)
	require.Error(t, err)
	require.True(t, secreonerrors.Is(err, secreonerrors.KindInsufficientShares))
}

func TestTooManyGroupsRejected(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{
		{MemberThreshold: 2, MemberCount: 3},
		{MemberThreshold: 2, MemberCount: 3},
		{MemberThreshold: 1, MemberCount: 1},
	}
	grouped, err := GenerateMnemonicShares(rand.Reader, 2, groups, secret, nil, true, 0)
	require.NoError(t, err)

	var combined []share.Share
	combined = append(combined, grouped[0][:2]...)
	combined = append(combined, grouped[1][:2]...)
	combined = append(combined, grouped[2]...)

	_, err = CombineMnemonicShares(combined, nil)
	require.Error(t, err)
	require.True(t, secreonerrors.Is(err, secreonerrors.KindInsufficientShares))
}

func TestSurplusMembersWithinGroupAreToleratedAndDeterministic(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{{MemberThreshold: 2, MemberCount: 4}}
	grouped, err := GenerateMnemonicShares(rand.Reader, 1, groups, secret, nil, true, 0)
	require.NoError(t, err)

	recoveredA, err := CombineMnemonicShares(grouped[0], nil)
	require.NoError(t, err)
	require.Equal(t, secret, recoveredA)

	shuffled := []share.Share{grouped[0][3], grouped[0][0], grouped[0][2], grouped[0][1]}
	recoveredB, err := CombineMnemonicShares(shuffled, nil)
	require.NoError(t, err)
	require.Equal(t, secret, recoveredB)
}

func TestDuplicateMemberIndexDeduplicated(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{{MemberThreshold: 2, MemberCount: 3}}
	grouped, err := GenerateMnemonicShares(rand.Reader, 1, groups, secret, nil, true, 0)
	require.NoError(t, err)

	duplicated := []share.Share{grouped[0][0], grouped[0][0], grouped[0][1]}
	recovered, err := CombineMnemonicShares(duplicated, nil)
	require.NoError(t, err)
	require.Equal(t, secret, recovered)
}

func TestInconsistentGroupParametersRejected(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	groups := []GroupSpec{{MemberThreshold: 2, MemberCount: 3}}
	grouped, err := GenerateMnemonicShares(rand.Reader, 1, groups, secret, nil, true, 0)
	require.NoError(t, err)

	tampered := grouped[0][1]
	tampered.GroupIndex = 5

	_, err = CombineMnemonicShares([]share.Share{grouped[0][0], tampered}, nil)
	require.Error(t, err)
}
