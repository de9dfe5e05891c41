package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xlg-lang/xlg/pkg/diag"
	"github.com/xlg-lang/xlg/pkg/namespace"
	"github.com/xlg-lang/xlg/pkg/symbol"
	"github.com/xlg-lang/xlg/pkg/types"
)

func TestStructuralKindsRollBack(t *testing.T) {
	assert.True(t, diag.KindInvalidParent.Rollback())
	assert.True(t, diag.KindTreeInvariantViolated.Rollback())
	assert.False(t, diag.KindUnresolvedName.Rollback())
	assert.False(t, diag.KindTagImmutable.Rollback())
}

func TestNameShadowedDefaultsToWarningSeverity(t *testing.T) {
	d := diag.New(symbol.Span{}, diag.KindNameShadowed, "x shadows an outer binding")
	assert.Equal(t, diag.SeverityWarning, d.Severity)
}

func TestOtherKindsDefaultToErrorSeverity(t *testing.T) {
	d := diag.New(symbol.Span{}, diag.KindUnresolvedName, "unresolved")
	assert.Equal(t, diag.SeverityError, d.Severity)
}

func TestFromFailureMapsUnresolvedName(t *testing.T) {
	f := types.UnresolvedName{Symbol: "foo", ScopeID: 1, At: symbol.Span{ByteStart: 3}}
	d := diag.FromFailure(f)
	assert.Equal(t, diag.KindUnresolvedName, d.Kind)
	assert.Equal(t, f.At, d.Span)
}

func TestFromFailureMapsUnhandledEffect(t *testing.T) {
	f := types.UnhandledEffect{Required: "IO"}
	d := diag.FromFailure(f)
	assert.Equal(t, diag.KindUnhandledEffect, d.Kind)
}

func TestFromNamespaceErrorMapsPathNotFound(t *testing.T) {
	d := diag.FromNamespaceError(namespace.PathNotFound{Path: "Main.missing"})
	assert.Equal(t, diag.KindUnresolvedName, d.Kind)
}

func TestFromNamespaceErrorMapsTagImmutable(t *testing.T) {
	d := diag.FromNamespaceError(namespace.TagImmutable{Path: "Main.one", Tag: "1.0.0"})
	assert.Equal(t, diag.KindTagImmutable, d.Kind)
}

func TestKindCategoryGroupsVersionStorageAndConcurrencyKinds(t *testing.T) {
	assert.Equal(t, diag.CategoryVersion, diag.KindNoSatisfyingVersion.Category())
	assert.Equal(t, diag.CategoryStorage, diag.KindIOFailure.Category())
	assert.Equal(t, diag.CategoryConcurrency, diag.KindWriteConflict.Category())
}
