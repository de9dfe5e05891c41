package diag

import (
	"github.com/xlg-lang/xlg/pkg/namespace"
	"github.com/xlg-lang/xlg/pkg/semver"
	"github.com/xlg-lang/xlg/pkg/symbol"
	"github.com/xlg-lang/xlg/pkg/types"
)

// FromFailure adapts a pkg/types.Failure — the checker's own closed
// taxonomy (spec.md §4.E) — into the shared Diagnostic shape, so
// `cmd/xlg` can render every component's errors through one path.
func FromFailure(f types.Failure) Diagnostic {
	kind := KindTypeMismatch
	switch f.(type) {
	case types.UnhandledEffect:
		kind = KindUnhandledEffect
	case types.TypeMismatch:
		kind = KindTypeMismatch
	case types.UnresolvedName:
		kind = KindUnresolvedName
	case types.OccursCheck:
		kind = KindOccursCheck
	case types.PatternNonExhaustive:
		kind = KindPatternNonExhaustive
	case types.PatternUnreachable:
		kind = KindPatternUnreachable
	case types.EffectConstraintUnsatisfied:
		kind = KindEffectConstraintUnsatisfied
	case types.EffectEscape:
		kind = KindEffectEscape
	}
	return New(f.Site(), kind, f.Error())
}

// FromFailures adapts a whole Collector's worth of Failures at once.
func FromFailures(fs []types.Failure) []Diagnostic {
	out := make([]Diagnostic, len(fs))
	for i, f := range fs {
		out[i] = FromFailure(f)
	}
	return out
}

// FromNamespaceError adapts a pkg/namespace error into a span-less
// Diagnostic (namespace paths have no source span of their own — spec.md
// §7's Version category).
func FromNamespaceError(err error) Diagnostic {
	switch e := err.(type) {
	case namespace.PathNotFound:
		return New(symbol.Span{}, KindUnresolvedName, e.Error())
	case namespace.TagImmutable:
		return New(symbol.Span{}, KindTagImmutable, e.Error())
	default:
		return New(symbol.Span{}, KindCorruptStore, err.Error())
	}
}

// FromSemverError adapts a pkg/semver resolution error.
func FromSemverError(err error) Diagnostic {
	switch err.(type) {
	case semver.NoSatisfyingVersion, semver.AmbiguousResolution:
		return New(symbol.Span{}, KindNoSatisfyingVersion, err.Error())
	default:
		return New(symbol.Span{}, KindNoSatisfyingVersion, err.Error())
	}
}
