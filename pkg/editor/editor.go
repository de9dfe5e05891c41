// Package editor implements the transactional Editor Engine: the only
// component permitted to produce a new AST root from an old one outside of
// a fresh parse. Every operation goes through apply, which enforces the
// same five-step contract regardless of what kind of edit it wraps.
package editor

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/index"
	"github.com/xlg-lang/xlg/pkg/types"
)

// Editor is single-writer (spec §5): apply holds mu for the duration of one
// operation or batch, and Root and Collection take the same mutex, so a
// read waits for any edit in progress and readers do not run concurrently
// with each other either.
type Editor struct {
	mu sync.Mutex

	tree    *ast.Tree
	root    *ast.Node
	col     *index.Collection
	checker *types.Checker
	scope   *types.Scope

	undo []*ast.Node
	redo []*ast.Node
}

// New returns an Editor positioned at root, with col already reflecting it
// (callers typically pass the Collection produced by col.Rebuild(root)).
func New(tree *ast.Tree, root *ast.Node, col *index.Collection, checker *types.Checker) *Editor {
	return &Editor{
		tree:    tree,
		root:    root,
		col:     col,
		checker: checker,
		scope:   checker.NewRootScope(),
	}
}

// Root returns the current AST root.
func (e *Editor) Root() *ast.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Collection returns the index collection current as of Root().
func (e *Editor) Collection() *index.Collection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.col
}

// apply runs op under the Editor's exclusive lock, enforcing the full
// five-step contract (spec §4.F): validate happens inside op itself (each
// op is responsible for only producing well-formed trees), then D and E are
// refreshed, an undo record is pushed, and redo is cleared.
func (e *Editor) apply(op Step) (*OperationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	newRoot, affected, err := op(e.root)
	if err != nil {
		return nil, err
	}

	e.undo = append(e.undo, e.root)
	e.redo = nil

	col := &types.Collector{}
	typed := make(map[ast.NodeID]*ast.Node, len(affected))
	for _, n := range affected {
		e.checker.Invalidate([]*ast.Node{n})
		t := e.checker.TypeOf(e.scope, n, col)
		eff := e.checker.EffectsOf(e.scope, n, col)
		typed[n.ID()] = n.WithTypeInfo(&ast.TypeInfo{Mono: t, Effects: eff})
	}
	newRoot, _ = e.rebuildTree(newRoot, typed)
	e.root = newRoot
	e.col.Rebuild(newRoot)

	return &OperationResult{
		NewRoot:       newRoot,
		AffectedNodes: affected,
		Diagnostics:   col.Failures(),
	}, nil
}

// Undo restores the previous root, if any (spec §4.F: "history is a stack
// of inverse operations"; since Nodes are persistent and structurally
// shared, the cheapest correct inverse of any operation is simply the root
// it replaced).
func (e *Editor) Undo() (*ast.Node, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undo) == 0 {
		return nil, errors.New("editor: nothing to undo")
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.root)
	e.root = prev
	e.col.Rebuild(prev)
	return prev, nil
}

// Redo reapplies the most recently undone root.
func (e *Editor) Redo() (*ast.Node, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.redo) == 0 {
		return nil, errors.New("editor: nothing to redo")
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.root)
	e.root = next
	e.col.Rebuild(next)
	return next, nil
}
