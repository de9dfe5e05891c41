package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xlg-lang/xlg/pkg/ast"
)

// Render produces the canonical textual form of a Definition node (spec.md
// §4.I: "canonical textual form"). Surface syntax is explicitly out of
// scope for the core (spec.md's Non-goals) — this is the Bridge's own,
// internal, fully-parenthesized notation, unambiguous enough that Parse is
// its exact inverse up to node_id/span/type_info, which are not part of a
// definition's content anyway (spec.md §4.C).
//
// A leading "doc" annotation, if present, is rendered as a comment block
// immediately above the expression; every other annotation key is dropped,
// since nothing else in this spec's closed annotation set is given textual
// meaning.
func Render(n *ast.Node) string {
	var sb strings.Builder
	renderDoc(&sb, n, "")
	renderNode(&sb, n)
	sb.WriteByte('\n')
	return sb.String()
}

func renderDoc(sb *strings.Builder, n *ast.Node, indent string) {
	doc, ok := n.Annotations().Get("doc")
	if !ok {
		return
	}
	text, ok := doc.(string)
	if !ok {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(indent)
		sb.WriteString(";; ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}

func renderNode(sb *strings.Builder, n *ast.Node) {
	if n == nil {
		sb.WriteString("#nil")
		return
	}

	switch d := n.Data().(type) {
	case ast.CompilationUnit:
		open(sb, "CompilationUnit")
		renderNodeList(sb, d.Modules)
		close_(sb)

	case ast.Module:
		open(sb, "Module")
		renderSym(sb, d.Name)
		renderNodeList(sb, d.Imports)
		renderNodeList(sb, d.Definitions)
		close_(sb)

	case ast.Import:
		open(sb, "Import")
		renderStrList(sb, d.Path)
		renderStr(sb, d.Alias)
		close_(sb)

	case ast.ValueDef:
		open(sb, "ValueDef")
		renderSym(sb, d.Name)
		renderOptNode(sb, d.Signature)
		renderNode(sb, d.Body)
		close_(sb)

	case ast.TypeDef:
		open(sb, "TypeDef")
		renderSym(sb, d.Name)
		renderSymList(sb, d.Params)
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(int(d.Variant)))
		switch d.Variant {
		case ast.TypeDefAlias:
			renderNode(sb, d.Alias)
		case ast.TypeDefRecord:
			open(sb, "fields")
			for _, f := range d.Fields {
				open(sb, "field")
				renderSym(sb, f.Name)
				renderNode(sb, f.Type)
				close_(sb)
			}
			close_(sb)
		case ast.TypeDefSum:
			open(sb, "variants")
			for _, v := range d.Sum {
				open(sb, "variant")
				renderSym(sb, v.Name)
				renderNodeList(sb, v.Args)
				close_(sb)
			}
			close_(sb)
		}
		close_(sb)

	case ast.EffectDef:
		open(sb, "EffectDef")
		renderSym(sb, d.Name)
		open(sb, "ops")
		for _, op := range d.Operations {
			open(sb, "op")
			renderSym(sb, op.Name)
			renderNodeList(sb, op.ParamTypes)
			renderNode(sb, op.ReturnType)
			close_(sb)
		}
		close_(sb)
		close_(sb)

	case ast.HandlerDef:
		open(sb, "HandlerDef")
		renderSym(sb, d.EffectName)
		open(sb, "clauses")
		for _, c := range d.Clauses {
			open(sb, "clause")
			renderSym(sb, c.OpName)
			renderSymList(sb, c.Params)
			renderNode(sb, c.Body)
			close_(sb)
		}
		close_(sb)
		renderOptNode(sb, d.Return)
		close_(sb)

	case ast.Interface:
		open(sb, "Interface")
		renderSym(sb, d.Name)
		open(sb, "members")
		for _, m := range d.Members {
			open(sb, "member")
			renderSym(sb, m.Name)
			renderNode(sb, m.Type)
			close_(sb)
		}
		close_(sb)
		close_(sb)

	case ast.Lambda:
		open(sb, "Lambda")
		open(sb, "params")
		for _, p := range d.Params {
			open(sb, "param")
			renderSym(sb, p.Name)
			renderOptNode(sb, p.Type)
			close_(sb)
		}
		close_(sb)
		renderNode(sb, d.Body)
		close_(sb)

	case ast.Application:
		open(sb, "Application")
		renderNode(sb, d.Func)
		renderNodeList(sb, d.Args)
		close_(sb)

	case ast.Let:
		open(sb, "Let")
		renderSym(sb, d.Name)
		renderNode(sb, d.Value)
		renderNode(sb, d.Body)
		close_(sb)

	case ast.LetRec:
		open(sb, "LetRec")
		open(sb, "bindings")
		for _, b := range d.Bindings {
			open(sb, "binding")
			renderSym(sb, b.Name)
			renderNode(sb, b.Value)
			close_(sb)
		}
		close_(sb)
		renderNode(sb, d.Body)
		close_(sb)

	case ast.If:
		open(sb, "If")
		renderNode(sb, d.Cond)
		renderNode(sb, d.Then)
		renderNode(sb, d.Else)
		close_(sb)

	case ast.Match:
		open(sb, "Match")
		renderNode(sb, d.Scrutinee)
		open(sb, "cases")
		for _, c := range d.Cases {
			open(sb, "case")
			renderNode(sb, c.Pattern)
			renderOptNode(sb, c.Guard)
			renderNode(sb, c.Body)
			close_(sb)
		}
		close_(sb)
		close_(sb)

	case ast.Do:
		open(sb, "Do")
		renderNodeList(sb, d.Statements)
		renderNode(sb, d.Result)
		close_(sb)

	case ast.With:
		open(sb, "With")
		renderNode(sb, d.Handler)
		renderNode(sb, d.Body)
		close_(sb)

	case ast.Perform:
		open(sb, "Perform")
		renderSym(sb, d.EffectName)
		renderSym(sb, d.OpName)
		renderNodeList(sb, d.Args)
		close_(sb)

	case ast.Pipe:
		open(sb, "Pipe")
		renderNode(sb, d.Left)
		renderNode(sb, d.Right)
		close_(sb)

	case ast.Record:
		open(sb, "Record")
		renderFieldInits(sb, d.Fields)
		close_(sb)

	case ast.RecordAccess:
		open(sb, "RecordAccess")
		renderNode(sb, d.Target)
		renderSym(sb, d.Field)
		close_(sb)

	case ast.RecordUpdate:
		open(sb, "RecordUpdate")
		renderNode(sb, d.Target)
		renderFieldInits(sb, d.Fields)
		close_(sb)

	case ast.PatWildcard:
		sb.WriteString("(PatWildcard)")

	case ast.PatLiteral:
		open(sb, "PatLiteral")
		renderNode(sb, d.Literal)
		close_(sb)

	case ast.PatVariable:
		open(sb, "PatVariable")
		renderSym(sb, d.Name)
		close_(sb)

	case ast.PatConstructor:
		open(sb, "PatConstructor")
		renderSym(sb, d.Name)
		renderNodeList(sb, d.Args)
		close_(sb)

	case ast.PatRecord:
		open(sb, "PatRecord")
		open(sb, "fields")
		for _, f := range d.Fields {
			open(sb, "field")
			renderSym(sb, f.Name)
			renderNode(sb, f.Pattern)
			close_(sb)
		}
		close_(sb)
		sb.WriteByte(' ')
		sb.WriteString(boolLit(d.Rest))
		close_(sb)

	case ast.PatCons:
		open(sb, "PatCons")
		renderNode(sb, d.Head)
		renderNode(sb, d.Tail)
		close_(sb)

	case ast.PatTuple:
		open(sb, "PatTuple")
		renderNodeList(sb, d.Elements)
		close_(sb)

	case ast.LitInt:
		fmt.Fprintf(sb, "(LitInt %d)", d.Value)

	case ast.LitFloat:
		fmt.Fprintf(sb, "(LitFloat %s)", formatFloat(d.Value))

	case ast.LitText:
		open(sb, "LitText")
		renderStr(sb, d.Value)
		close_(sb)

	case ast.LitBool:
		fmt.Fprintf(sb, "(LitBool %s)", boolLit(d.Value))

	case ast.LitUnit:
		sb.WriteString("(LitUnit)")

	case ast.LitList:
		open(sb, "LitList")
		renderNodeList(sb, d.Elements)
		close_(sb)

	case ast.LitTuple:
		open(sb, "LitTuple")
		renderNodeList(sb, d.Elements)
		close_(sb)

	case ast.RefSymbolic:
		open(sb, "RefSymbolic")
		renderStr(sb, d.Name)
		renderStrList(sb, d.Path)
		close_(sb)

	case ast.RefHash:
		open(sb, "RefHash")
		renderStr(sb, fmt.Sprintf("%x", d.Hash[:]))
		close_(sb)

	default:
		panic(fmt.Sprintf("bridge: no canonical rendering for kind %s", n.Kind()))
	}
}

func renderFieldInits(sb *strings.Builder, fields []ast.RecordFieldInit) {
	open(sb, "fields")
	for _, f := range fields {
		open(sb, "field")
		renderSym(sb, f.Name)
		renderNode(sb, f.Value)
		close_(sb)
	}
	close_(sb)
}

func renderNodeList(sb *strings.Builder, nodes []*ast.Node) {
	sb.WriteByte(' ')
	sb.WriteByte('(')
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		renderNode(sb, n)
	}
	sb.WriteByte(')')
}

func renderOptNode(sb *strings.Builder, n *ast.Node) {
	sb.WriteByte(' ')
	if n == nil {
		sb.WriteString("#nil")
		return
	}
	renderNode(sb, n)
}

func renderSymList(sb *strings.Builder, names []string) {
	sb.WriteByte(' ')
	sb.WriteByte('(')
	for i, s := range names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
	}
	sb.WriteByte(')')
}

func renderStrList(sb *strings.Builder, strs []string) {
	sb.WriteByte(' ')
	sb.WriteByte('(')
	for i, s := range strs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		renderStr(sb, s)
	}
	sb.WriteByte(')')
}

func renderSym(sb *strings.Builder, name string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
}

func renderStr(sb *strings.Builder, s string) {
	sb.WriteByte(' ')
	sb.WriteString(strconv.Quote(s))
}

func open(sb *strings.Builder, tag string) {
	sb.WriteByte('(')
	sb.WriteString(tag)
}

func close_(sb *strings.Builder) {
	sb.WriteByte(')')
}

func boolLit(b bool) string {
	if b {
		return "#t"
	}
	return "#f"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
