package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/xlg-lang/xlg/pkg/bridge"
	"github.com/xlg-lang/xlg/pkg/diag"
	"github.com/xlg-lang/xlg/pkg/namespace"
)

// App bundles the opened Namespace Store and the identity/config an
// xlg.toml codebase root supplies (SPEC_FULL.md's ambient-stack note),
// loaded fresh from disk once per invocation the way a git-like porcelain
// command does.
type App struct {
	Store     *namespace.Store
	Session   namespace.Session
	StoreRoot string
}

// newApp discovers the codebase root's xlg.toml (unless storeRoot is
// given explicitly), materializes the Namespace Store by importing every
// ".x" file beneath it, and returns ready-to-query state.
func newApp(storeRoot string) (*App, error) {
	author := os.Getenv("USER")
	if storeRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, internalError(err)
		}
		_, cfg, err := namespace.FindConfig(cwd)
		if err != nil {
			return nil, integrityError(errors.Wrap(err, "xlg: reading xlg.toml"))
		}
		switch {
		case cfg != nil && cfg.StoreRoot != "":
			storeRoot = cfg.StoreRoot
			if !filepath.IsAbs(storeRoot) {
				storeRoot = filepath.Join(cwd, storeRoot)
			}
			if cfg.Author != "" {
				author = cfg.Author
			}
		default:
			storeRoot = filepath.Join(cwd, ".xlg")
		}
	}

	store := namespace.New()
	if _, err := os.Stat(storeRoot); err == nil {
		if _, err := bridge.Import(store, storeRoot, "", namespace.Session{Author: "xlg load"}); err != nil {
			return nil, integrityError(errors.Wrap(err, "xlg: loading namespace store"))
		}
	} else if !os.IsNotExist(err) {
		return nil, internalError(err)
	}

	return &App{
		Store:     store,
		Session:   namespace.Session{Author: author},
		StoreRoot: storeRoot,
	}, nil
}

// save re-exports the in-memory store back to StoreRoot, the single write
// path every mutating subcommand funnels through (spec.md §6's on-disk
// layout is "one possible realization of the bridge").
func (a *App) save() error {
	if err := bridge.Export(a.Store, "", a.StoreRoot); err != nil {
		return integrityError(errors.Wrap(err, "xlg: writing namespace store"))
	}
	return nil
}

// renderDiagnostics renders one line per Diagnostic, in the order given,
// and returns them as a single string (spec.md §7: "the core never prints — it returns structured
// diagnostics"; only this CLI layer renders them).
func renderDiagnostics(ds []diag.Diagnostic) string {
	var out string
	for _, d := range ds {
		out += diagnosticLine(d) + "\n"
	}
	return out
}
