// Package mnemonicsss implements the two-tier Shamir's Secret Sharing
// engine used by SLIP-39-compatible mnemonic backups: an encrypted
// master secret is split into group secrets, and each group secret is
// split again into member shares. Both levels share the same GF(256)
// polynomial splitting primitive with a digest-based integrity scheme.
package mnemonicsss

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"
	"sort"

	"github.com/cuedego/secreon/internal/feistel"
	"github.com/cuedego/secreon/internal/gf256"
	"github.com/cuedego/secreon/internal/share"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

const (
	// DigestLengthBytes is the length of the HMAC digest guarding the
	// shared secret, in bytes.
	DigestLengthBytes = 4

	// SecretIndex is the reserved raw-share x-coordinate carrying the
	// secret itself.
	SecretIndex = 255

	// DigestIndex is the reserved raw-share x-coordinate carrying the
	// digest share (digest || random padding).
	DigestIndex = 254

	// MaxShareCount is the largest number of shares a single split may
	// produce, at either tier.
	MaxShareCount = 16

	// MinStrengthBits is the minimum entropy a master secret must carry.
	MinStrengthBits = 128

	// IDLengthBits is the width of the random identifier field.
	IDLengthBits = 15
)

// RawShare is a single (x, data) point on a splitting polynomial, used
// internally by both tiers of the split.
type RawShare struct {
	X    byte
	Data []byte
}

func toPoints(shares []RawShare) []gf256.Point {
	points := make([]gf256.Point, len(shares))
	for i, s := range shares {
		points[i] = gf256.Point{X: s.X, Y: s.Data}
	}
	return points
}

func interpolate(shares []RawShare, x byte) ([]byte, error) {
	return gf256.Interpolate(toPoints(shares), x)
}

func createDigest(randomData, sharedSecret []byte) []byte {
	mac := hmac.New(sha256.New, randomData)
	mac.Write(sharedSecret)
	return mac.Sum(nil)[:DigestLengthBytes]
}

func randomBytes(rnd io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return nil, secreonerrors.Wrap(secreonerrors.KindArithmeticError, "reading random bytes", err)
	}
	return buf, nil
}

// SplitSecret divides sharedSecret into shareCount RawShares such that
// any threshold of them reconstruct it. threshold == 1 replicates the
// secret with no polynomial; threshold >= 2 uses threshold-2 random
// points plus a reserved digest share and a reserved secret share. rnd
// is the source of randomness for the random shares and digest padding;
// callers needing reproducible output pass a deterministic reader.
func SplitSecret(rnd io.Reader, threshold, shareCount int, sharedSecret []byte) ([]RawShare, error) {
	if threshold < 1 {
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "threshold must be a positive integer")
	}
	if threshold > shareCount {
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "threshold must not exceed share count")
	}
	if shareCount > MaxShareCount {
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "share count must not exceed 16")
	}

	if threshold == 1 {
		shares := make([]RawShare, shareCount)
		for i := 0; i < shareCount; i++ {
			shares[i] = RawShare{X: byte(i), Data: sharedSecret}
		}
		return shares, nil
	}

	randomShareCount := threshold - 2
	shares := make([]RawShare, randomShareCount, shareCount)
	for i := 0; i < randomShareCount; i++ {
		data, err := randomBytes(rnd, len(sharedSecret))
		if err != nil {
			return nil, err
		}
		shares[i] = RawShare{X: byte(i), Data: data}
	}

	randomPart, err := randomBytes(rnd, len(sharedSecret)-DigestLengthBytes)
	if err != nil {
		return nil, err
	}
	digest := createDigest(randomPart, sharedSecret)

	digestValue := make([]byte, 0, len(digest)+len(randomPart))
	digestValue = append(digestValue, digest...)
	digestValue = append(digestValue, randomPart...)

	baseShares := make([]RawShare, 0, len(shares)+2)
	baseShares = append(baseShares, shares...)
	baseShares = append(baseShares, RawShare{X: DigestIndex, Data: digestValue})
	baseShares = append(baseShares, RawShare{X: SecretIndex, Data: sharedSecret})

	for i := randomShareCount; i < shareCount; i++ {
		value, err := interpolate(baseShares, byte(i))
		if err != nil {
			return nil, err
		}
		shares = append(shares, RawShare{X: byte(i), Data: value})
	}

	return shares, nil
}

// RecoverSecret reconstructs the shared secret from threshold or more
// RawShares produced by SplitSecret, verifying the digest when present.
func RecoverSecret(threshold int, shares []RawShare) ([]byte, error) {
	if threshold == 1 {
		if len(shares) == 0 {
			return nil, secreonerrors.New(secreonerrors.KindInsufficientShares, "need at least one share")
		}
		return shares[0].Data, nil
	}

	sharedSecret, err := interpolate(shares, SecretIndex)
	if err != nil {
		return nil, err
	}
	digestShare, err := interpolate(shares, DigestIndex)
	if err != nil {
		return nil, err
	}
	if len(digestShare) < DigestLengthBytes {
		return nil, secreonerrors.New(secreonerrors.KindDigestMismatch, "digest share too short")
	}
	digest := digestShare[:DigestLengthBytes]
	randomPart := digestShare[DigestLengthBytes:]

	expected := createDigest(randomPart, sharedSecret)
	if !hmac.Equal(digest, expected) {
		return nil, secreonerrors.New(secreonerrors.KindDigestMismatch, "invalid digest of the shared secret")
	}

	return sharedSecret, nil
}

// EncryptedMasterSecret is a master secret wrapped by the Feistel
// cipher, along with the parameters it was wrapped under.
type EncryptedMasterSecret struct {
	Identifier        int
	Extendable        bool
	IterationExponent int
	Ciphertext        []byte
}

// NewEncryptedMasterSecret encrypts masterSecret under passphrase and
// the given parameters.
func NewEncryptedMasterSecret(masterSecret, passphrase []byte, identifier int, extendable bool, iterationExponent int) EncryptedMasterSecret {
	ciphertext := feistel.Encrypt(masterSecret, passphrase, identifier, extendable, iterationExponent)
	return EncryptedMasterSecret{
		Identifier:        identifier,
		Extendable:        extendable,
		IterationExponent: iterationExponent,
		Ciphertext:        ciphertext,
	}
}

// Decrypt recovers the master secret from the encrypted master secret
// using passphrase.
func (ems EncryptedMasterSecret) Decrypt(passphrase []byte) []byte {
	return feistel.Decrypt(ems.Ciphertext, passphrase, ems.Identifier, ems.Extendable, ems.IterationExponent)
}

// GroupSpec is one group's (member_threshold, member_count) pair, as
// given to SplitEMS/GenerateMnemonicShares.
type GroupSpec struct {
	MemberThreshold int
	MemberCount     int
}

// RandomIdentifier draws a fresh random identifier within IDLengthBits
// from rnd.
func RandomIdentifier(rnd io.Reader) (int, error) {
	buf, err := randomBytes(rnd, (IDLengthBits+7)/8)
	if err != nil {
		return 0, err
	}
	value := 0
	for _, b := range buf {
		value = (value << 8) | int(b)
	}
	return value & ((1 << IDLengthBits) - 1), nil
}

// SplitEMS splits an encrypted master secret into member shares
// organized by group: groupThreshold groups are needed to recover the
// encrypted master secret, and each group requires its own member_threshold member
// shares to recover its group secret.
func SplitEMS(rnd io.Reader, groupThreshold int, groups []GroupSpec, ems EncryptedMasterSecret) ([][]share.Share, error) {
	if len(ems.Ciphertext)*8 < MinStrengthBits {
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "master secret is shorter than the minimum required entropy")
	}
	if groupThreshold > len(groups) {
		return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "group threshold must not exceed the number of groups")
	}
	for _, g := range groups {
		if g.MemberThreshold == 1 && g.MemberCount > 1 {
			return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "creating multiple member shares with member threshold 1 is not allowed; use 1-of-1 instead")
		}
	}

	groupShares, err := SplitSecret(rnd, groupThreshold, len(groups), ems.Ciphertext)
	if err != nil {
		return nil, err
	}

	result := make([][]share.Share, len(groups))
	for groupIndex, spec := range groups {
		memberShares, err := SplitSecret(rnd, spec.MemberThreshold, spec.MemberCount, groupShares[groupIndex].Data)
		if err != nil {
			return nil, err
		}
		shares := make([]share.Share, len(memberShares))
		for i, ms := range memberShares {
			shares[i] = share.Share{
				Identifier:        ems.Identifier,
				Extendable:        ems.Extendable,
				IterationExponent: ems.IterationExponent,
				GroupIndex:        groupIndex,
				GroupThreshold:    groupThreshold,
				GroupCount:        len(groups),
				MemberIndex:       int(ms.X),
				MemberThreshold:   spec.MemberThreshold,
				Value:             ms.Data,
			}
		}
		result[groupIndex] = shares
	}

	return result, nil
}

// GenerateMnemonicShares draws a fresh random identifier from rnd,
// encrypts masterSecret under passphrase, and splits the result into the
// requested group/member structure. rnd is a capability, not a global:
// callers that need deterministic, reproducible share generation (tests,
// golden-vector derivation) pass a seeded or fixed reader instead of
// crypto/rand.Reader.
func GenerateMnemonicShares(rnd io.Reader, groupThreshold int, groups []GroupSpec, masterSecret, passphrase []byte, extendable bool, iterationExponent int) ([][]share.Share, error) {
	for _, c := range passphrase {
		if c < 32 || c > 126 {
			return nil, secreonerrors.New(secreonerrors.KindInvalidArgument, "passphrase must contain only printable ASCII characters (32-126)")
		}
	}

	identifier, err := RandomIdentifier(rnd)
	if err != nil {
		return nil, err
	}

	ems := NewEncryptedMasterSecret(masterSecret, passphrase, identifier, extendable, iterationExponent)
	return SplitEMS(rnd, groupThreshold, groups, ems)
}

// ShareGroup is a deduplicated set of shares belonging to the same
// group, keyed by member_index so that repeated mnemonics for the same
// member slot collapse rather than double-count.
type ShareGroup struct {
	members map[int]share.Share
	order   []int
}

// NewShareGroup returns an empty ShareGroup.
func NewShareGroup() *ShareGroup {
	return &ShareGroup{members: make(map[int]share.Share)}
}

// Add inserts s into the group, rejecting it if its group parameters
// conflict with shares already present.
func (g *ShareGroup) Add(s share.Share) error {
	if len(g.members) > 0 {
		existing := g.members[g.order[0]]
		if existing.Group() != s.Group() {
			return secreonerrors.New(secreonerrors.KindInconsistentShares, "shares in the same group must share identical group parameters")
		}
	}
	if _, exists := g.members[s.MemberIndex]; !exists {
		g.order = append(g.order, s.MemberIndex)
	}
	g.members[s.MemberIndex] = s
	return nil
}

// Len reports the number of distinct member_index shares held.
func (g *ShareGroup) Len() int { return len(g.members) }

// MemberThreshold returns the member threshold shared by this group's
// shares; the group must be non-empty.
func (g *ShareGroup) MemberThreshold() int {
	return g.members[g.order[0]].MemberThreshold
}

// GroupParameters returns the group parameters shared by this group's
// shares; the group must be non-empty.
func (g *ShareGroup) GroupParameters() share.GroupParameters {
	return g.members[g.order[0]].Group()
}

// IsComplete reports whether the group holds at least member_threshold
// distinct member shares.
func (g *ShareGroup) IsComplete() bool {
	return len(g.members) > 0 && len(g.members) >= g.MemberThreshold()
}

// SelectThreshold returns exactly member_threshold shares from the
// group, chosen by ascending member_index when the group holds a
// surplus beyond the threshold.
func (g *ShareGroup) SelectThreshold() []share.Share {
	ordered := make([]int, len(g.order))
	copy(ordered, g.order)
	sort.Ints(ordered)

	threshold := g.MemberThreshold()
	if threshold > len(ordered) {
		threshold = len(ordered)
	}
	out := make([]share.Share, threshold)
	for i := 0; i < threshold; i++ {
		out[i] = g.members[ordered[i]]
	}
	return out
}

func (g *ShareGroup) toRawShares(shares []share.Share) []RawShare {
	raw := make([]RawShare, len(shares))
	for i, s := range shares {
		raw[i] = RawShare{X: byte(s.MemberIndex), Data: s.Value}
	}
	return raw
}

// ErrGroupCountMismatch marks a recovery attempt with a number of
// complete groups other than the common group_threshold, whether too
// few or too many.
var ErrGroupCountMismatch = secreonerrors.New(secreonerrors.KindInsufficientShares, "wrong number of mnemonic groups")

// DecodeToGroups partitions a flat list of shares into per-group
// ShareGroups, validating that every share shares one common parameter
// set.
func DecodeToGroups(shares []share.Share) (map[int]*ShareGroup, error) {
	if len(shares) == 0 {
		return nil, secreonerrors.New(secreonerrors.KindInvalidMnemonic, "the set of shares is empty")
	}

	groups := make(map[int]*ShareGroup)
	common := shares[0].Common()

	for _, s := range shares {
		if s.Common() != common {
			return nil, secreonerrors.New(secreonerrors.KindInconsistentShares,
				"all shares must share the same identifier, extendable flag, iteration exponent, group threshold and group count")
		}
		group, ok := groups[s.GroupIndex]
		if !ok {
			group = NewShareGroup()
			groups[s.GroupIndex] = group
		}
		if err := group.Add(s); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// RecoverEMS reconstructs the EncryptedMasterSecret from a complete set
// of share groups: exactly group_threshold groups must be present, each
// complete, and surplus members within a complete group are resolved by
// SelectThreshold.
func RecoverEMS(groups map[int]*ShareGroup) (EncryptedMasterSecret, error) {
	if len(groups) == 0 {
		return EncryptedMasterSecret{}, secreonerrors.New(secreonerrors.KindInvalidMnemonic, "the set of shares is empty")
	}

	var params share.GroupParameters
	for _, g := range groups {
		params = g.GroupParameters()
		break
	}

	if len(groups) != params.GroupThreshold {
		return EncryptedMasterSecret{}, ErrGroupCountMismatch
	}

	groupIndices := make([]int, 0, len(groups))
	for idx := range groups {
		groupIndices = append(groupIndices, idx)
	}
	sort.Ints(groupIndices)

	groupRawShares := make([]RawShare, 0, len(groups))
	for _, groupIndex := range groupIndices {
		group := groups[groupIndex]
		if !group.IsComplete() {
			return EncryptedMasterSecret{}, secreonerrors.New(secreonerrors.KindInsufficientShares, "insufficient member shares in one group")
		}
		selected := group.SelectThreshold()
		secret, err := RecoverSecret(group.MemberThreshold(), group.toRawShares(selected))
		if err != nil {
			return EncryptedMasterSecret{}, err
		}
		groupRawShares = append(groupRawShares, RawShare{X: byte(groupIndex), Data: secret})
	}

	ciphertext, err := RecoverSecret(params.GroupThreshold, groupRawShares)
	if err != nil {
		return EncryptedMasterSecret{}, err
	}

	return EncryptedMasterSecret{
		Identifier:        params.Identifier,
		Extendable:        params.Extendable,
		IterationExponent: params.IterationExponent,
		Ciphertext:        ciphertext,
	}, nil
}

// CombineMnemonicShares recovers the master secret from a flat list of
// shares (drawn from one or more groups) and the passphrase they were
// encrypted under.
func CombineMnemonicShares(shares []share.Share, passphrase []byte) ([]byte, error) {
	groups, err := DecodeToGroups(shares)
	if err != nil {
		return nil, err
	}
	ems, err := RecoverEMS(groups)
	if err != nil {
		return nil, err
	}
	return ems.Decrypt(passphrase), nil
}
