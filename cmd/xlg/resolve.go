package main

import "github.com/xlg-lang/xlg/pkg/namespace"

// findNamespace walks path's segments from root, the same linear-search
// idiom pkg/bridge uses for its own export/import tree walk (Namespace
// exposes Children() but no indexed path lookup of its own).
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
	var out []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			out = append(out, path[start:i])
			start = i + 1
		}
	}
	return append(out, path[start:])
}
