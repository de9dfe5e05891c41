package semver_test

import (
	"testing"
	"time"

	"github.com/blang/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/hash"
	xsemver "github.com/xlg-lang/xlg/pkg/semver"
)

func tagged(t *testing.T, version string, h byte, ts time.Time) xsemver.TaggedVersion {
	t.Helper()
	v, err := semver.Parse(version)
	require.NoError(t, err)
	var hh hash.Hash
	hh[0] = h
	return xsemver.TaggedVersion{Tag: v, Hash: hh, Timestamp: ts}
}

func TestResolveCaretPicksHighestWithinMajor(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []xsemver.TaggedVersion{
		tagged(t, "1.0.0", 1, base),
		tagged(t, "1.4.0", 2, base.Add(time.Hour)),
		tagged(t, "2.0.0", 3, base.Add(2*time.Hour)),
	}

	got, err := xsemver.Resolve("P", "^1.0.0", candidates)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", got.Tag.String())
}

func TestResolveTildeRestrictsToMinor(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []xsemver.TaggedVersion{
		tagged(t, "1.2.0", 1, base),
		tagged(t, "1.2.9", 2, base.Add(time.Hour)),
		tagged(t, "1.3.0", 3, base.Add(2*time.Hour)),
	}

	got, err := xsemver.Resolve("P", "~1.2.0", candidates)
	require.NoError(t, err)
	assert.Equal(t, "1.2.9", got.Tag.String())
}

func TestResolveExactMatch(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []xsemver.TaggedVersion{
		tagged(t, "1.0.0", 1, base),
		tagged(t, "1.1.0", 2, base),
	}

	got, err := xsemver.Resolve("P", "=1.0.0", candidates)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got.Tag.String())
}

func TestResolveLatestIgnoresConstraintGrammar(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []xsemver.TaggedVersion{
		tagged(t, "0.9.0", 1, base),
		tagged(t, "3.2.1", 2, base.Add(time.Hour)),
		tagged(t, "1.9.9", 3, base.Add(2*time.Hour)),
	}

	got, err := xsemver.Resolve("P", "latest", candidates)
	require.NoError(t, err)
	assert.Equal(t, "3.2.1", got.Tag.String())
}

func TestResolveNoSatisfyingVersion(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []xsemver.TaggedVersion{tagged(t, "1.0.0", 1, base)}

	_, err := xsemver.Resolve("P", "^2.0.0", candidates)
	require.Error(t, err)
	var nsv xsemver.NoSatisfyingVersion
	require.ErrorAs(t, err, &nsv)
	assert.Equal(t, "P", nsv.Name)
}

func TestResolveNoCandidatesAtAll(t *testing.T) {
	_, err := xsemver.Resolve("P", "^1.0.0", nil)
	require.Error(t, err)
	var nsv xsemver.NoSatisfyingVersion
	require.ErrorAs(t, err, &nsv)
}

func TestResolveTiesBreakOnNewestTimestamp(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := tagged(t, "1.0.0", 1, base)
	newer := tagged(t, "1.0.0", 2, base.Add(time.Hour))

	got, err := xsemver.Resolve("P", "=1.0.0", []xsemver.TaggedVersion{older, newer})
	require.NoError(t, err)
	assert.Equal(t, newer.Hash, got.Hash)
}

func TestResolveAmbiguousWhenTimestampsAlsoTie(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := tagged(t, "1.0.0", 1, base)
	b := tagged(t, "1.0.0", 2, base)

	_, err := xsemver.Resolve("P", "=1.0.0", []xsemver.TaggedVersion{a, b})
	require.Error(t, err)
	var amb xsemver.AmbiguousResolution
	require.ErrorAs(t, err, &amb)
	assert.Len(t, amb.Candidates, 2)
}

func TestResolveInvalidConstraintSyntax(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []xsemver.TaggedVersion{tagged(t, "1.0.0", 1, base)}

	_, err := xsemver.Resolve("P", "not-a-constraint", candidates)
	require.Error(t, err)
}
