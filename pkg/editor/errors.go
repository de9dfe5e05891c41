package editor

import "github.com/pkg/errors"

// IllFormedTree is returned when an operation would produce a
// kind-incorrect parenthood (spec §4.F step 1: "the operation must produce
// a well-formed tree").
type IllFormedTree struct {
	Reason string
}

func (e IllFormedTree) Error() string { return "editor: ill-formed tree: " + e.Reason }

// NodeNotFound is returned when a referenced node is not reachable from the
// Editor's current root.
type NodeNotFound struct {
	NodeID uint64
}

func (e NodeNotFound) Error() string {
	return errors.Errorf("editor: node %d not found in current tree", e.NodeID).Error()
}

// SymbolNotFound is returned by Rename/InlineDefinition when the target
// symbol has no defining occurrence in scope.
type SymbolNotFound struct {
	Symbol string
}

func (e SymbolNotFound) Error() string { return "editor: symbol " + e.Symbol + " not found" }

// AmbiguousCallSite is returned by ChangeSignature when a call site cannot
// be adapted unambiguously to the new signature.
type AmbiguousCallSite struct {
	Reason string
}

func (e AmbiguousCallSite) Error() string {
	return "editor: ambiguous call-site adaptation: " + e.Reason
}
