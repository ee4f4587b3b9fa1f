package domain

// Basis records how a classification was arrived at, keeping the
// fallback-to-patch paths distinguishable from a real comparison.
type Basis int

const (
	BasisCompared            Basis = iota // compared against a parsable previous version
	BasisNoPrevious                       // no previous version recorded
	BasisUnparsablePrevious               // previous version carried no semver
	BasisForced                           // caller supplied the type directly
)

var basisNames = [...]string{
	BasisCompared:           "compared",
	BasisNoPrevious:         "no-previous",
	BasisUnparsablePrevious: "unparsable-previous",
	BasisForced:             "forced",
}

// String returns the name of the basis.
// Implements the Stringer interface.
func (b Basis) String() string {
	if b < 0 || int(b) >= len(basisNames) {
		return "unknown"
	}
	return basisNames[b]
}

// Classification pairs a resolved release type with its basis.
type Classification struct {
	Type  ReleaseType
	Basis Basis
}

// Classify decides the release type for moving from previous to next.
// A missing or unparsable previous version is treated as a fresh baseline
// and classifies as a patch. Moving a version backward is refused. When
// both versions are parsable the type is the highest-order component that
// differs, or ReleaseNone when they are equal.
func Classify(previous string, next Version) (Classification, error) {
	if previous == "" {
		return Classification{Type: ReleasePatch, Basis: BasisNoPrevious}, nil
	}

	old, err := ExtractVersion(previous)
	if err != nil {
		return Classification{Type: ReleasePatch, Basis: BasisUnparsablePrevious}, nil
	}

	switch {
	case next.Compare(old) < 0:
		return Classification{}, NewDowngradeError(old, next)
	case next.Major != old.Major:
		return Classification{Type: ReleaseMajor, Basis: BasisCompared}, nil
	case next.Minor != old.Minor:
		return Classification{Type: ReleaseMinor, Basis: BasisCompared}, nil
	case next.Patch != old.Patch:
		return Classification{Type: ReleasePatch, Basis: BasisCompared}, nil
	}
	return Classification{Type: ReleaseNone, Basis: BasisCompared}, nil
}
