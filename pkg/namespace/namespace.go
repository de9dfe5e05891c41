// Package namespace implements the Namespace Store (spec §4.G): a
// Git-like tree of path-addressed definitions where every edit
// auto-commits a new content-addressed Version and history is never
// discarded.
package namespace

import (
	"strings"
	"time"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
)

// Version is one commit in a Definition's history: the content hash of
// its root at that point, who committed it and why, and the dependency
// set resolved as of that commit (spec §4.G step 3).
type Version struct {
	Hash      hash.Hash
	Root      *ast.Node
	Timestamp time.Time
	Author    string
	Message   string
	Deps      []hash.Hash
}

// Definition is one leaf of the namespace tree: a path plus its full
// commit history, head-first is not assumed — History is append-only in
// commit order, so the head is always History[len(History)-1].
type Definition struct {
	Path    string
	History []*Version
	Tags    map[string]hash.Hash // semver tag string -> tagged hash
}

// Head returns the current version, or nil if the definition has never
// been committed.
func (d *Definition) Head() *Version {
	if len(d.History) == 0 {
		return nil
	}
	return d.History[len(d.History)-1]
}

// Namespace is one directory-like node in the store's tree (spec §4.G:
// "definitions are leaves, namespaces are directories").
type Namespace struct {
	Name        string
	parent      *Namespace
	children    map[string]*Namespace
	definitions map[string]*Definition
}

// NewRoot returns an empty, unnamed root Namespace.
func NewRoot() *Namespace {
	return newNamespace("", nil)
}

func newNamespace(name string, parent *Namespace) *Namespace {
	return &Namespace{
		Name:        name,
		parent:      parent,
		children:    make(map[string]*Namespace),
		definitions: make(map[string]*Definition),
	}
}

// Parent returns the enclosing Namespace, or nil at the root.
func (ns *Namespace) Parent() *Namespace { return ns.parent }

// Children returns the immediate sub-namespaces, sorted by name.
func (ns *Namespace) Children() []*Namespace {
	out := make([]*Namespace, 0, len(ns.children))
	for _, c := range ns.children {
		out = append(out, c)
	}
	sortNamespaces(out)
	return out
}

// Definitions returns the definitions directly in this namespace, sorted
// by path.
func (ns *Namespace) Definitions() []*Definition {
	out := make([]*Definition, 0, len(ns.definitions))
	for _, d := range ns.definitions {
		out = append(out, d)
	}
	sortDefinitions(out)
	return out
}

// splitPath parses `Segment (. Segment)*` (spec §4.G) into its segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func joinPath(segs []string) string { return strings.Join(segs, ".") }

// childNamespace returns (creating if necessary) the direct sub-namespace
// named seg.
func (ns *Namespace) childNamespace(seg string) *Namespace {
	c, ok := ns.children[seg]
	if !ok {
		c = newNamespace(seg, ns)
		ns.children[seg] = c
	}
	return c
}

// walkTo walks segs from ns, creating intermediate namespaces
// as needed, and returns the namespace the last segment lives in.
func (ns *Namespace) walkTo(segs []string) *Namespace {
	cur := ns
	for _, s := range segs {
		cur = cur.childNamespace(s)
	}
	return cur
}

// lookupDefinition finds the Definition at path without creating
// anything; it returns nil if no segment of the path exists.
func (ns *Namespace) lookupDefinition(path string) *Definition {
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil
	}
	cur := ns
	for _, s := range segs[:len(segs)-1] {
		c, ok := cur.children[s]
		if !ok {
			return nil
		}
		cur = c
	}
	return cur.definitions[segs[len(segs)-1]]
}

// definitionSlot returns (creating namespaces as needed) the Definition
// at path, creating an empty one on first access.
func (ns *Namespace) definitionSlot(path string) *Definition {
	segs := splitPath(path)
	parent := ns.walkTo(segs[:len(segs)-1])
	name := segs[len(segs)-1]
	def, ok := parent.definitions[name]
	if !ok {
		def = &Definition{Path: path, Tags: make(map[string]hash.Hash)}
		parent.definitions[name] = def
	}
	return def
}

func sortNamespaces(ns []*Namespace) {
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && ns[j-1].Name > ns[j].Name; j-- {
			ns[j-1], ns[j] = ns[j], ns[j-1]
		}
	}
}

func sortDefinitions(ds []*Definition) {
	for i := 1; i < len(ds); i++ {
		for j := i; j > 0 && ds[j-1].Path > ds[j].Path; j-- {
			ds[j-1], ds[j] = ds[j], ds[j-1]
		}
	}
}
