package namespace

import (
	"fmt"
	"time"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/hm"
	"github.com/xlg-lang/xlg/pkg/index"
)

// Session carries the identity an editing session commits under (spec
// §4.G step 3: "the editing session's author"); Message, if empty, is
// synthesized per path at commit time.
type Session struct {
	Author  string
	Message string
}

// PendingEdit is one changed top-level definition awaiting commit,
// keyed by its namespace path.
type PendingEdit struct {
	Path string
	Root *ast.Node
}

// Store is the Namespace Store: one tree of Definitions plus the
// Dependency index derived from their commits (spec §4.D: "updated on
// Definition commit").
type Store struct {
	root *Namespace
	deps *index.DependencyIndex
	now  func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{root: NewRoot(), deps: index.New().Dependency, now: time.Now}
}

// Root returns the store's root Namespace for read-only traversal.
func (s *Store) Root() *Namespace { return s.root }

// Resolve returns the Definition at path, or PathNotFound.
func (s *Store) Resolve(path string) (*Definition, error) {
	def := s.root.lookupDefinition(path)
	if def == nil || def.Head() == nil {
		return nil, PathNotFound{Path: path}
	}
	return def, nil
}

// HashResolver adapts this Store into the pkg/types.HashResolver shape
// (`func(hash.Hash) (*hm.Scheme, bool)`), so a Checker can type a RefHash
// node against whatever this Store already committed, without pkg/types
// importing pkg/namespace (see Checker.ResolveHash's doc comment).
func (s *Store) HashResolver() func(hash.Hash) (*hm.Scheme, bool) {
	byHash := make(map[hash.Hash]*ast.Node)
	return func(h hash.Hash) (*hm.Scheme, bool) {
		n, ok := byHash[h]
		if !ok {
			n, ok = s.findByHash(h)
			if !ok {
				return nil, false
			}
			byHash[h] = n
		}
		ti := n.TypeInfo()
		if ti == nil {
			return nil, false
		}
		return ti.Scheme(), true
	}
}

func (s *Store) findByHash(h hash.Hash) (*ast.Node, bool) {
	var found *ast.Node
	var walk func(ns *Namespace)
	walk = func(ns *Namespace) {
		if found != nil {
			return
		}
		for _, def := range ns.definitions {
			if v := def.Head(); v != nil && v.Hash == h {
				found = v.Root
				return
			}
		}
		for _, c := range ns.children {
			walk(c)
			if found != nil {
				return
			}
		}
	}
	walk(s.root)
	return found, found != nil
}

// Commit performs the auto-commit contract for one changed definition
// (spec §4.G steps 1-4): hash the new root, skip if it matches the
// current head, otherwise append a Version with resolved dependencies
// and update the Dependency index. Returns the new Version, or nil if
// nothing changed.
func (s *Store) Commit(session Session, edit PendingEdit) (*Version, error) {
	versions, err := s.CommitBatch(session, []PendingEdit{edit})
	if err != nil {
		return nil, err
	}
	return versions[0], nil
}

// CommitBatch commits every edit as one logical operation (SPEC_FULL.md
// §3 "dependency-ordered batch commits"), grounded on the teacher's
// orderByDependencies/topologicalSort (pkg/dang/block.go): edits are
// ordered so a dependency commits before its dependent wherever the
// batch's internal reference graph is acyclic. A cycle (mutual
// recursion) does not error the way the teacher's topologicalSort does;
// its members become one fixed-point group committed together — see
// resolveGroup for why that never needs more than one hashing pass here.
// Skipped (unchanged) definitions occupy a nil slot in the result.
func (s *Store) CommitBatch(session Session, edits []PendingEdit) ([]*Version, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	declaredName := make(map[string]int, len(edits))
	for i, e := range edits {
		declaredName[lastSegment(e.Path)] = i
	}

	groups := topoGroups(edits, declaredName)

	known := make(map[int]hash.Hash, len(edits))
	out := make([]*Version, len(edits))
	for _, group := range groups {
		resolved, err := s.resolveGroup(group, declaredName, edits, known)
		if err != nil {
			return nil, err
		}
		for _, r := range resolved {
			known[r.index] = r.hash
			v, err := s.commitOne(session, edits[r.index], r.hash, r.deps)
			if err != nil {
				return nil, err
			}
			out[r.index] = v
		}
	}
	return out, nil
}

func (s *Store) commitOne(session Session, edit PendingEdit, h hash.Hash, deps []hash.Hash) (*Version, error) {
	def := s.root.definitionSlot(edit.Path)
	if head := def.Head(); head != nil && head.Hash == h {
		return nil, nil
	}

	msg := session.Message
	if msg == "" {
		msg = fmt.Sprintf("Edit %s", edit.Path)
	}
	v := &Version{
		Hash:      h,
		Root:      edit.Root,
		Timestamp: s.now(),
		Author:    session.Author,
		Message:   msg,
		Deps:      deps,
	}
	def.History = append(def.History, v)
	s.deps.Set(h, deps)
	return v, nil
}

func lastSegment(path string) string {
	segs := splitPath(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// TransitiveDependents returns every committed definition hash that
// depends, directly or transitively, on def's current head (spec §4.G:
// "reverse-dependents of P can be queried").
func (s *Store) TransitiveDependents(def hash.Hash) []hash.Hash {
	return s.deps.TransitiveDependents(def)
}

// Tag attaches a semver label to path's current head (spec §4.G
// "tagging"): idempotent if tag already points at that hash, rejected
// with TagImmutable if it would move to a different one.
func (s *Store) Tag(path, tag string) error {
	def := s.root.lookupDefinition(path)
	if def == nil || def.Head() == nil {
		return PathNotFound{Path: path}
	}
	head := def.Head().Hash
	if existing, ok := def.Tags[tag]; ok {
		if existing == head {
			return nil
		}
		return TagImmutable{Path: path, Tag: tag, Was: existing.Short(), Got: head.Short()}
	}
	def.Tags[tag] = head
	return nil
}
