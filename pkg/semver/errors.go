package semver

import "fmt"

// NoSatisfyingVersion reports that no candidate matched a constraint
// (spec §4.H edge case: "constraint matches nothing").
type NoSatisfyingVersion struct {
	Name       string
	Constraint string
	Available  []TaggedVersion
}

func (e NoSatisfyingVersion) Error() string {
	return fmt.Sprintf("semver: no version of %q satisfies %q (%d candidates available)", e.Name, e.Constraint, len(e.Available))
}

// AmbiguousResolution reports that more than one candidate tied for best
// under a constraint with no way to break the tie (spec §4.H edge case:
// "two versions tie under the same tag").
type AmbiguousResolution struct {
	Name       string
	Candidates []TaggedVersion
}

func (e AmbiguousResolution) Error() string {
	return fmt.Sprintf("semver: resolution of %q is ambiguous among %d tied candidates", e.Name, len(e.Candidates))
}
