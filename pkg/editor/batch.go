package editor

import "github.com/xlg-lang/xlg/pkg/ast"

// Step is one operation in a Batch or Transaction: it receives the root as
// of the previous step and returns the operation's (newRoot, affected)
// pair, exactly like the internal operation type — letting Batch/Transaction
// chain the same primitives Insert/Delete/Replace/Move/Rename/… close over.
type Step func(root *ast.Node) (*ast.Node, []*ast.Node, error)

// Batch applies steps in order as a single operation, atomically (spec
// §4.F: "an ordered list of operations applied atomically"): since apply
// never commits a new root when op returns an error, a failing step
// discards every earlier step's output along with it — "atomically" here
// already means all-or-nothing, so Batch and Transaction share one
// implementation below.
func (e *Editor) Batch(steps ...Step) (*OperationResult, error) {
	return e.apply(runSteps(steps))
}

// Transaction is Batch under another name, kept as a separate entry point
// because spec §4.F calls it out explicitly ("a batch with full rollback
// on first failure") even though that is Batch's behavior too. Since
// Nodes are persistent, rollback is simply discarding every intermediate
// root and returning the error — nothing needs to be undone, because
// nothing was ever committed.
func (e *Editor) Transaction(steps ...Step) (*OperationResult, error) {
	return e.apply(runSteps(steps))
}

func runSteps(steps []Step) Step {
	return func(root *ast.Node) (*ast.Node, []*ast.Node, error) {
		cur := root
		var affected []*ast.Node
		for _, step := range steps {
			newRoot, aff, err := step(cur)
			if err != nil {
				return nil, nil, err
			}
			cur = newRoot
			affected = append(affected, aff...)
		}
		return cur, affected, nil
	}
}
