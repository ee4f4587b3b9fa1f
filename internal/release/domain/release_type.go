package domain

// ReleaseType classifies the magnitude of a version change.
type ReleaseType int

const (
	ReleaseNone  ReleaseType = iota // versions are identical
	ReleasePatch                    // only the patch component moved
	ReleaseMinor                    // the minor component moved
	ReleaseMajor                    // the major component moved
)

var releaseTypeNames = [...]string{
	ReleaseNone:  "none",
	ReleasePatch: "patch",
	ReleaseMinor: "minor",
	ReleaseMajor: "major",
}

// String returns the lowercase name of the release type.
// Implements the Stringer interface.
func (t ReleaseType) String() string {
	if t < 0 || int(t) >= len(releaseTypeNames) {
		return "unknown"
	}
	return releaseTypeNames[t]
}

// BumpPolicy selects how the release type for a chart update is resolved:
// inferred from the chart's recorded appVersion, or forced to a
// caller-supplied type. The forced form cascades a parent chart in
// lockstep with the primary chart's resolved type.
type BumpPolicy struct {
	auto  bool
	fixed ReleaseType
}

// Auto returns a policy that classifies against the chart's previous appVersion.
func Auto() BumpPolicy { return BumpPolicy{auto: true} }

// Fixed returns a policy that applies t without re-classifying.
func Fixed(t ReleaseType) BumpPolicy { return BumpPolicy{fixed: t} }

// Resolve produces the effective classification for moving the chart whose
// recorded appVersion is previous (may be empty) to next.
func (p BumpPolicy) Resolve(previous string, next Version) (Classification, error) {
	if !p.auto {
		return Classification{Type: p.fixed, Basis: BasisForced}, nil
	}
	return Classify(previous, next)
}
