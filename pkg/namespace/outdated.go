package namespace

import (
	blangsemver "github.com/blang/semver"

	"github.com/xlg-lang/xlg/pkg/hash"
	xsemver "github.com/xlg-lang/xlg/pkg/semver"
)

// VersionedRef is one `name@constraint` reference the outdated report
// evaluates. spec.md's Non-goals put surface syntax out of scope for the
// core, so this is the shape a caller (the bridge or the CLI) extracts
// from wherever the surface syntax stashes a constraint — an Import
// node's non-volatile "version" annotation, in this codebase.
type VersionedRef struct {
	Path       string
	Constraint string
}

// OutdatedEntry pairs a reference's currently pinned hash against the
// best version satisfying its constraint (spec §4.G "Outdated report":
// "report pairs that could be upgraded ... or that require migration").
type OutdatedEntry struct {
	Path          string
	Constraint    string
	Current       hash.Hash
	Latest        hash.Hash
	LatestTag     string
	Compatibility Compatibility
}

// OutdatedReport evaluates refs against this Store's tagged history.
func (s *Store) OutdatedReport(refs []VersionedRef) ([]OutdatedEntry, error) {
	var out []OutdatedEntry
	for _, ref := range refs {
		def, err := s.Resolve(ref.Path)
		if err != nil {
			return nil, err
		}
		candidates := taggedVersions(def)
		if len(candidates) == 0 {
			continue
		}
		best, err := xsemver.Resolve(ref.Path, ref.Constraint, candidates)
		if err != nil {
			return nil, err
		}
		head := def.Head()
		if best.Hash == head.Hash {
			continue
		}
		out = append(out, OutdatedEntry{
			Path:          ref.Path,
			Constraint:    ref.Constraint,
			Current:       head.Hash,
			Latest:        best.Hash,
			LatestTag:     best.Tag.String(),
			Compatibility: Compare(findVersion(def, head.Hash), findVersion(def, best.Hash)),
		})
	}
	return out, nil
}

func taggedVersions(def *Definition) []xsemver.TaggedVersion {
	out := make([]xsemver.TaggedVersion, 0, len(def.Tags))
	for tag, h := range def.Tags {
		v, err := blangsemver.Parse(tag)
		if err != nil {
			continue
		}
		ver := findVersion(def, h)
		if ver == nil {
			continue
		}
		out = append(out, xsemver.TaggedVersion{Tag: v, Hash: h, Timestamp: ver.Timestamp})
	}
	return out
}

func findVersion(def *Definition, h hash.Hash) *Version {
	for _, v := range def.History {
		if v.Hash == h {
			return v
		}
	}
	return nil
}
