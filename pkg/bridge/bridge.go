// Package bridge implements the Import/Export Bridge (spec.md §4.I): the
// only component of this module that touches a filesystem. It materializes
// a namespace subtree to a directory of ".x" files, one per definition,
// and re-ingests such a tree back into the Namespace Store.
package bridge

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/namespace"
)

const fileExt = ".x"

// Export writes every definition under path (spec.md §6 layout: one file
// per definition named "<definition>.x", one subdirectory per
// sub-namespace) into dir, creating dir if necessary.
func Export(store *namespace.Store, path, dir string) error {
	ns, ok := findNamespace(store.Root(), path)
	if !ok {
		return namespace.PathNotFound{Path: path}
	}
	return exportNamespace(ns, dir)
}

func exportNamespace(ns *namespace.Namespace, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return IOFailure{Path: dir, Op: "mkdir", Err: err}
	}
	for _, def := range ns.Definitions() {
		head := def.Head()
		if head == nil {
			continue
		}
		name := lastSegment(def.Path)
		file := filepath.Join(dir, filenameFor(name))
		if err := os.WriteFile(file, []byte(Render(head.Root)), 0o644); err != nil {
			return IOFailure{Path: file, Op: "write", Err: err}
		}
	}
	for _, child := range ns.Children() {
		if err := exportNamespace(child, filepath.Join(dir, dirnameFor(child.Name))); err != nil {
			return err
		}
	}
	return nil
}

// Import parses every ".x" file under dir, recursing into subdirectories
// as sub-namespaces, and commits the results under path as one batch
// (spec.md §4.I: "imported definitions are committed as new versions
// under the target path").
func Import(store *namespace.Store, dir, path string, session namespace.Session) ([]*namespace.Version, error) {
	tree := ast.NewTree()
	var edits []namespace.PendingEdit
	if err := importWalk(tree, dir, path, &edits); err != nil {
		return nil, err
	}
	return store.CommitBatch(session, edits)
}

func importWalk(tree *ast.Tree, dir, nsPath string, edits *[]namespace.PendingEdit) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IOFailure{Path: dir, Op: "readdir", Err: err}
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := importWalk(tree, full, joinPath(nsPath, entry.Name()), edits); err != nil {
				return err
			}
			continue
		}
		if filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		src, err := os.ReadFile(full)
		if err != nil {
			return IOFailure{Path: full, Op: "read", Err: err}
		}
		node, err := ParseDefinition(tree, string(src))
		if err != nil {
			return errors.Wrapf(err, "bridge: parsing %s", full)
		}
		name, ok := definitionName(node)
		if !ok {
			return errors.Errorf("bridge: %s does not contain a recognized definition", full)
		}
		*edits = append(*edits, namespace.PendingEdit{Path: joinPath(nsPath, name), Root: node})
	}
	return nil
}

func findNamespace(root *namespace.Namespace, path string) (*namespace.Namespace, bool) {
	cur := root
	for _, seg := range splitPath(path) {
		next, ok := findChild(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func findChild(ns *namespace.Namespace, name string) (*namespace.Namespace, bool) {
	for _, c := range ns.Children() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func lastSegment(path string) string {
	segs := strings.Split(path, ".")
	return segs[len(segs)-1]
}

// filenameFor derives a definition's on-disk filename from its declared name
// via strcase. Import never inverts it: the definition's real name comes from
// the parsed content itself, not the filename. dirnameFor keeps a
// namespace's name unchanged, because Import reads namespace path segments
// back from the directory names.
func filenameFor(name string) string {
	return strcase.ToSnake(name) + fileExt
}

func dirnameFor(name string) string {
	return name
}

// definitionName extracts the declared name a Definition node commits
// under. HandlerDef has no name of its own distinct from the effect it
// handles, so its EffectName stands in (spec.md's Node kinds list HandlerDef
// as "name, effect reference..." but this AST's HandlerDef carries only the
// effect reference — see DESIGN.md's Open Question note on this).
func definitionName(n *ast.Node) (string, bool) {
	switch d := n.Data().(type) {
	case ast.ValueDef:
		return d.Name, true
	case ast.TypeDef:
		return d.Name, true
	case ast.EffectDef:
		return d.Name, true
	case ast.HandlerDef:
		return d.EffectName, true
	case ast.Interface:
		return d.Name, true
	default:
		return "", false
	}
}
