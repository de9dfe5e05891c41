package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xlg-lang/xlg/pkg/ioctx"
)

// docCmd implements `doc [path]`, grounded on
// original_source/x-cli/src/commands/doc.rs's "AI-friendly semantic
// summaries of code structure" — scoped down to what this toolchain
// already tracks: every definition's doc annotation (spec.md says
// nothing about a doc-comment convention; `doc` is the bridge's "doc"
// annotation key, already rendered as a leading comment by
// pkg/bridge.Render).
func docCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc [path]",
		Short: "list definitions under path with their doc annotation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			out := ioctx.StdoutFromContext(cmd.Context())
			found := false
			for _, def := range allDefinitions(app.Store.Root()) {
				if prefix != "" && !strings.HasPrefix(def.Path, prefix) {
					continue
				}
				head := def.Head()
				if head == nil {
					continue
				}
				found = true
				doc, _ := head.Root.Annotations().Get("doc")
				text, _ := doc.(string)
				if text == "" {
					fmt.Fprintf(out, "%s\n", def.Path)
					continue
				}
				fmt.Fprintf(out, "%s\n    %s\n", def.Path, strings.ReplaceAll(text, "\n", "\n    "))
			}
			if !found {
				fmt.Fprintln(out, "no definitions found")
			}
			return nil
		},
	}
}
