package main

import (
	"sort"

	"github.com/xlg-lang/xlg/pkg/namespace"
)

// sortedKeys returns a map's string keys in lexical order, for stable CLI
// output over otherwise unordered map iteration.
func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// walkDefinitions visits every Definition reachable from ns, in
// Namespace/Definitions' own sorted order, recursing into children depth
// first.
func walkDefinitions(ns *namespace.Namespace, fn func(def *namespace.Definition)) {
	for _, def := range ns.Definitions() {
		fn(def)
	}
	for _, child := range ns.Children() {
		walkDefinitions(child, fn)
	}
}

func allDefinitions(ns *namespace.Namespace) []*namespace.Definition {
	var out []*namespace.Definition
	walkDefinitions(ns, func(def *namespace.Definition) { out = append(out, def) })
	return out
}
