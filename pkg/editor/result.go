package editor

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/types"
)

// OperationResult is returned by every Editor operation (spec §4.F step 6).
// Diagnostics may be non-empty even on success: the Editor commits
// type-incorrect intermediate states rather than rejecting them (spec
// §4.F step 4).
type OperationResult struct {
	NewRoot       *ast.Node
	AffectedNodes []*ast.Node
	Diagnostics   []types.Failure
}
