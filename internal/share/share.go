// Package share defines the Share data model shared by the mnemonic SSS
// engine (internal/mnemonicsss) and the share codec (internal/sharecodec).
package share

// CommonParameters uniquely identifies a related set of shares produced by
// a single generate call: every Share sharing these five fields is
// eligible to combine together.
type CommonParameters struct {
	Identifier        int
	Extendable        bool
	IterationExponent int
	GroupThreshold    int
	GroupCount        int
}

// GroupParameters extends CommonParameters with the fields that must match
// across every Share within one group.
type GroupParameters struct {
	CommonParameters
	GroupIndex      int
	MemberThreshold int
}

// Share is one fragment of a two-tier SLIP-39 split: a member share within
// a group, which in turn is a share of the outer group-secret split.
type Share struct {
	Identifier        int
	Extendable        bool
	IterationExponent int
	GroupIndex        int
	GroupThreshold    int
	GroupCount        int
	MemberIndex       int
	MemberThreshold   int
	Value             []byte
}

// Common returns the parameters that must match across an entire share set.
func (s Share) Common() CommonParameters {
	return CommonParameters{
		Identifier:        s.Identifier,
		Extendable:        s.Extendable,
		IterationExponent: s.IterationExponent,
		GroupThreshold:    s.GroupThreshold,
		GroupCount:        s.GroupCount,
	}
}

// Group returns the parameters that must match across one group's shares.
func (s Share) Group() GroupParameters {
	return GroupParameters{
		CommonParameters: s.Common(),
		GroupIndex:       s.GroupIndex,
		MemberThreshold:  s.MemberThreshold,
	}
}
