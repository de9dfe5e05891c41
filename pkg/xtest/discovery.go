// Package xtest discovers and exercises the value definitions a
// codebase names as tests, caching results by content hash so an
// unchanged definition is never rechecked twice
// (original_source/x-testing/src/{test_discovery,test_cache,test_runner,test_report}.rs,
// dropped by the distillation spec.md was built from). Since "runtime
// evaluation" is an explicit spec.md Non-goal, a test here is exercised
// by type-checking it rather than executing it — the one thing this
// toolchain can actually do to a definition — with the pass/cache
// semantics ported unchanged from the original's content-hash-keyed
// design.
package xtest

import (
	"strings"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/namespace"
)

// Attributes are the naming-convention-derived properties of a test
// (test_discovery.rs's TestAttributes; the original extracts these from
// the function name only, with a comment noting doc-comment parsing was
// never implemented, so this keeps the same naive heuristic rather than
// inventing a richer annotation syntax the source never had).
type Attributes struct {
	Skip       bool
	SkipReason string
	ShouldFail bool
}

// Case is one discovered test: a value definition whose name marks it
// as a test (test_discovery.rs's TestCase, trimmed to what this
// toolchain can act on — a path and content hash, not a full compiled
// AnnotatedValueDef).
type Case struct {
	Path       string
	Hash       hash.Hash
	Root       *ast.Node
	Def        ast.ValueDef
	Attributes Attributes
}

// IsTestName reports whether name marks its definition as a test,
// test_discovery.rs's is_test_function_by_name: a "test_" prefix, or a
// bare "test" prefix longer than the word "test" itself.
func IsTestName(name string) bool {
	return strings.HasPrefix(name, "test_") || (strings.HasPrefix(name, "test") && len(name) > 4)
}

func extractAttributes(name string) Attributes {
	var a Attributes
	if strings.Contains(name, "skip") {
		a.Skip = true
		a.SkipReason = "name contains \"skip\""
	}
	if strings.Contains(name, "should_fail") {
		a.ShouldFail = true
	}
	return a
}

// Discover walks every definition reachable from root and returns the
// ones IsTestName selects (test_discovery.rs's discover_in_namespace,
// flattened: this toolchain has no separate namespace/binding split to
// mirror discover_recursive's NameBinding::Namespace recursion, since
// namespace.Namespace already recurses through Children()).
func Discover(root *namespace.Namespace) []Case {
	var out []Case
	var walk func(ns *namespace.Namespace)
	walk = func(ns *namespace.Namespace) {
		for _, def := range ns.Definitions() {
			head := def.Head()
			if head == nil {
				continue
			}
			vd, ok := head.Root.Data().(ast.ValueDef)
			if !ok || !IsTestName(vd.Name) {
				continue
			}
			out = append(out, Case{
				Path:       def.Path,
				Hash:       head.Hash,
				Root:       head.Root,
				Def:        vd,
				Attributes: extractAttributes(vd.Name),
			})
		}
		for _, child := range ns.Children() {
			walk(child)
		}
	}
	walk(root)
	return out
}
