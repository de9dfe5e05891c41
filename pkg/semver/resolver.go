// Package semver implements the Version Resolver (spec §4.H): picking the
// best tagged content hash satisfying a constraint string.
package semver

import (
	"sort"
	"time"

	"github.com/blang/semver"
	"github.com/pkg/errors"

	"github.com/xlg-lang/xlg/pkg/hash"
)

// TaggedVersion is one candidate the resolver chooses among: a semver tag
// attached to a content hash, carrying the timestamp of the Version it
// labels so timestamp-tiebreaking (spec §4.H: "among equals, newest
// timestamp wins") has something to compare.
type TaggedVersion struct {
	Tag       semver.Version
	Hash      hash.Hash
	Timestamp time.Time
}

// Resolve picks the highest TaggedVersion satisfying constraint among
// candidates (spec §4.H's grammar: `=X.Y.Z`, `^X.Y.Z` compatible-within-major,
// `~X.Y.Z` compatible-within-minor, `>=X.Y.Z`, or the literal `latest`).
// `^` and `~` are translated here into a half-open range [X.Y.Z, next
// major) and [X.Y.Z, next minor) respectively; `=` and `>=` are delegated
// to blang/semver's ParseRange.
func Resolve(name, constraint string, candidates []TaggedVersion) (TaggedVersion, error) {
	if len(candidates) == 0 {
		return TaggedVersion{}, NoSatisfyingVersion{Name: name, Constraint: constraint}
	}

	if constraint == "latest" {
		return highest(name, candidates)
	}

	var rng semver.Range
	if len(constraint) > 0 && (constraint[0] == '^' || constraint[0] == '~') {
		base, err := semver.Parse(constraint[1:])
		if err != nil {
			return TaggedVersion{}, errors.Wrapf(err, "semver: invalid constraint %q", constraint)
		}
		upper := semver.Version{Major: base.Major + 1}
		if constraint[0] == '~' {
			upper = semver.Version{Major: base.Major, Minor: base.Minor + 1}
		}
		rng = func(v semver.Version) bool { return v.GTE(base) && v.LT(upper) }
	} else {
		var err error
		rng, err = semver.ParseRange(constraint)
		if err != nil {
			return TaggedVersion{}, errors.Wrapf(err, "semver: invalid constraint %q", constraint)
		}
	}

	satisfying := make([]TaggedVersion, 0, len(candidates))
	for _, c := range candidates {
		if rng(c.Tag) {
			satisfying = append(satisfying, c)
		}
	}
	if len(satisfying) == 0 {
		return TaggedVersion{}, NoSatisfyingVersion{Name: name, Constraint: constraint, Available: candidates}
	}
	return highest(name, satisfying)
}

// highest returns the candidate with the greatest SemVer, breaking ties on
// newest Timestamp; if a tie survives that too (identical tag and
// timestamp on more than one hash), the resolution is genuinely
// ambiguous.
func highest(name string, candidates []TaggedVersion) (TaggedVersion, error) {
	best := candidates[:1]
	for _, c := range candidates[1:] {
		switch c.Tag.Compare(best[0].Tag) {
		case 1:
			best = []TaggedVersion{c}
		case 0:
			best = append(best, c)
		}
	}
	if len(best) == 1 {
		return best[0], nil
	}

	sort.Slice(best, func(i, j int) bool { return best[i].Timestamp.After(best[j].Timestamp) })
	if best[0].Timestamp.After(best[1].Timestamp) {
		return best[0], nil
	}
	return TaggedVersion{}, AmbiguousResolution{Name: name, Candidates: best}
}
