package bridge

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

// span is the zero Span every Bridge-parsed node carries: source position
// is informational only (spec.md §3) and is not part of what Render
// serializes, so Parse has none to reconstruct.
func span() symbol.Span { return symbol.Span{} }

// ParseDefinition parses the canonical textual form of one Definition
// (Render's exact inverse, spec.md §4.I round-trip guarantee), allocating
// its nodes from tree. Leading ";; " comment lines are collected as the
// returned node's "doc" annotation; every other annotation is left empty,
// since Render never emits one.
func ParseDefinition(tree *ast.Tree, src string) (*ast.Node, error) {
	p := newParser(src)
	doc := p.takeLeadingComments()
	n, err := p.parseNode(tree)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return nil, ParseError{Pos: p.pos, Message: "trailing content after definition"}
	}
	if doc != "" {
		n = n.WithAnnotations(n.Annotations().Set("doc", doc))
	}
	return n, nil
}

type parser struct {
	src []byte
	pos int
}

func newParser(src string) *parser {
	return &parser{src: []byte(src)}
}

func (p *parser) atEnd() bool { return p.pos >= len(p.src) }

func (p *parser) takeLeadingComments() string {
	var lines []string
	for {
		save := p.pos
		p.skipBlankLines()
		if !p.hasPrefix(";;") {
			p.pos = save
			break
		}
		p.pos += 2
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != '\n' {
			p.pos++
		}
		line := strings.TrimPrefix(string(p.src[start:p.pos]), " ")
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *parser) skipBlankLines() {
	for p.pos < len(p.src) && (p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(string(p.src[p.pos:]), s)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		break
	}
}

func (p *parser) peekByte() (byte, bool) {
	p.skipSpace()
	if p.atEnd() {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) expectByte(c byte) error {
	b, ok := p.peekByte()
	if !ok || b != c {
		return ParseError{Pos: p.pos, Message: fmt.Sprintf("expected %q", c)}
	}
	p.pos++
	return nil
}

// nextAtom reads a bare atom: anything up to whitespace or a parenthesis.
func (p *parser) nextAtom() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '(' || c == ')' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", ParseError{Pos: p.pos, Message: "expected an atom"}
	}
	return string(p.src[start:p.pos]), nil
}

func (p *parser) nextString() (string, error) {
	p.skipSpace()
	if err := p.expectByte('"'); err != nil {
		return "", err
	}
	start := p.pos - 1
	for p.pos < len(p.src) {
		if p.src[p.pos] == '\\' {
			p.pos += 2
			continue
		}
		if p.src[p.pos] == '"' {
			p.pos++
			raw := string(p.src[start:p.pos])
			s, err := strconv.Unquote(raw)
			if err != nil {
				return "", ParseError{Pos: start, Message: "invalid string literal: " + err.Error()}
			}
			return s, nil
		}
		p.pos++
	}
	return "", ParseError{Pos: start, Message: "unterminated string literal"}
}

func (p *parser) openTag(want string) error {
	if err := p.expectByte('('); err != nil {
		return err
	}
	tag, err := p.peekTag()
	if err != nil {
		return err
	}
	if tag != want {
		return ParseError{Pos: p.pos, Message: fmt.Sprintf("expected tag %q, got %q", want, tag)}
	}
	p.pos += len(tag)
	return nil
}

func (p *parser) peekTag() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ')' || c == '(' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", ParseError{Pos: p.pos, Message: "expected a tag"}
	}
	tag := string(p.src[start:p.pos])
	p.pos = start
	return tag, nil
}

func (p *parser) closeParen() error { return p.expectByte(')') }

// parseNode parses one node form: "(Tag ...)" or the #nil sentinel.
func (p *parser) parseNode(tree *ast.Tree) (*ast.Node, error) {
	b, ok := p.peekByte()
	if !ok {
		return nil, ParseError{Pos: p.pos, Message: "unexpected end of input"}
	}
	if b != '(' {
		atom, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		if atom == "#nil" {
			return nil, nil
		}
		return nil, ParseError{Pos: p.pos, Message: "expected a node, got " + atom}
	}

	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	tag, err := p.peekTag()
	if err != nil {
		return nil, err
	}
	p.pos += len(tag)

	data, err := p.parseBody(tree, tag)
	if err != nil {
		return nil, err
	}
	if err := p.closeParen(); err != nil {
		return nil, err
	}
	return tree.Build(span(), data), nil
}

func (p *parser) parseOptNode(tree *ast.Tree) (*ast.Node, error) {
	return p.parseNode(tree)
}

func (p *parser) parseNodeList(tree *ast.Tree) ([]*ast.Node, error) {
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	var out []*ast.Node
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in node list"}
		}
		if b == ')' {
			p.pos++
			return out, nil
		}
		n, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func (p *parser) parseSymList() ([]string, error) {
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	var out []string
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in symbol list"}
		}
		if b == ')' {
			p.pos++
			return out, nil
		}
		s, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}

func (p *parser) parseStrList() ([]string, error) {
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	var out []string
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in string list"}
		}
		if b == ')' {
			p.pos++
			return out, nil
		}
		s, err := p.nextString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}

func (p *parser) parseBool() (bool, error) {
	atom, err := p.nextAtom()
	if err != nil {
		return false, err
	}
	switch atom {
	case "#t":
		return true, nil
	case "#f":
		return false, nil
	default:
		return false, ParseError{Pos: p.pos, Message: "expected #t or #f, got " + atom}
	}
}

func (p *parser) parseInt() (int64, error) {
	atom, err := p.nextAtom()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(atom, 10, 64)
	if err != nil {
		return 0, ParseError{Pos: p.pos, Message: "invalid integer literal: " + atom}
	}
	return v, nil
}

func (p *parser) parseFloat() (float64, error) {
	atom, err := p.nextAtom()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(atom, 64)
	if err != nil {
		return 0, ParseError{Pos: p.pos, Message: "invalid float literal: " + atom}
	}
	return v, nil
}

// parseBody parses everything between the tag and the closing paren for
// the node form named tag, dispatching field-by-field in the exact order
// Render writes them.
func (p *parser) parseBody(tree *ast.Tree, tag string) (ast.Data, error) {
	switch tag {
	case "CompilationUnit":
		modules, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.CompilationUnit{Modules: modules}, nil

	case "Module":
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		imports, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		defs, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.Module{Name: name, Imports: imports, Definitions: defs}, nil

	case "Import":
		path, err := p.parseStrList()
		if err != nil {
			return nil, err
		}
		alias, err := p.nextString()
		if err != nil {
			return nil, err
		}
		return ast.Import{Path: path, Alias: alias}, nil

	case "ValueDef":
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		sig, err := p.parseOptNode(tree)
		if err != nil {
			return nil, err
		}
		body, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.ValueDef{Name: name, Signature: sig, Body: body}, nil

	case "TypeDef":
		return p.parseTypeDef(tree)

	case "EffectDef":
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		if err := p.openTag("ops"); err != nil {
			return nil, err
		}
		var ops []ast.EffectOperationDef
		for {
			b, ok := p.peekByte()
			if !ok {
				return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in ops"}
			}
			if b == ')' {
				p.pos++
				break
			}
			if err := p.openTag("op"); err != nil {
				return nil, err
			}
			opName, err := p.nextAtom()
			if err != nil {
				return nil, err
			}
			params, err := p.parseNodeList(tree)
			if err != nil {
				return nil, err
			}
			ret, err := p.parseNode(tree)
			if err != nil {
				return nil, err
			}
			if err := p.closeParen(); err != nil {
				return nil, err
			}
			ops = append(ops, ast.EffectOperationDef{Name: opName, ParamTypes: params, ReturnType: ret})
		}
		return ast.EffectDef{Name: name, Operations: ops}, nil

	case "HandlerDef":
		return p.parseHandlerDef(tree)

	case "Interface":
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		if err := p.openTag("members"); err != nil {
			return nil, err
		}
		var members []ast.InterfaceMember
		for {
			b, ok := p.peekByte()
			if !ok {
				return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in members"}
			}
			if b == ')' {
				p.pos++
				break
			}
			if err := p.openTag("member"); err != nil {
				return nil, err
			}
			mName, err := p.nextAtom()
			if err != nil {
				return nil, err
			}
			typ, err := p.parseNode(tree)
			if err != nil {
				return nil, err
			}
			if err := p.closeParen(); err != nil {
				return nil, err
			}
			members = append(members, ast.InterfaceMember{Name: mName, Type: typ})
		}
		return ast.Interface{Name: name, Members: members}, nil

	case "Lambda":
		return p.parseLambda(tree)

	case "Application":
		fn, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		args, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.Application{Func: fn, Args: args}, nil

	case "Let":
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		value, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		body, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.Let{Name: name, Value: value, Body: body}, nil

	case "LetRec":
		return p.parseLetRec(tree)

	case "If":
		cond, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		then, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		els, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.If{Cond: cond, Then: then, Else: els}, nil

	case "Match":
		return p.parseMatch(tree)

	case "Do":
		stmts, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		result, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.Do{Statements: stmts, Result: result}, nil

	case "With":
		handler, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		body, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.With{Handler: handler, Body: body}, nil

	case "Perform":
		effName, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		opName, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		args, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.Perform{EffectName: effName, OpName: opName, Args: args}, nil

	case "Pipe":
		left, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		right, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.Pipe{Left: left, Right: right}, nil

	case "Record":
		fields, err := p.parseFieldInits(tree)
		if err != nil {
			return nil, err
		}
		return ast.Record{Fields: fields}, nil

	case "RecordAccess":
		target, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		field, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		return ast.RecordAccess{Target: target, Field: field}, nil

	case "RecordUpdate":
		target, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		fields, err := p.parseFieldInits(tree)
		if err != nil {
			return nil, err
		}
		return ast.RecordUpdate{Target: target, Fields: fields}, nil

	case "PatWildcard":
		return ast.PatWildcard{}, nil

	case "PatLiteral":
		lit, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.PatLiteral{Literal: lit}, nil

	case "PatVariable":
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		return ast.PatVariable{Name: name}, nil

	case "PatConstructor":
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		args, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.PatConstructor{Name: name, Args: args}, nil

	case "PatRecord":
		return p.parsePatRecord(tree)

	case "PatCons":
		head, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		tail, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.PatCons{Head: head, Tail: tail}, nil

	case "PatTuple":
		elems, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.PatTuple{Elements: elems}, nil

	case "LitInt":
		v, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		return ast.LitInt{Value: v}, nil

	case "LitFloat":
		v, err := p.parseFloat()
		if err != nil {
			return nil, err
		}
		return ast.LitFloat{Value: v}, nil

	case "LitText":
		v, err := p.nextString()
		if err != nil {
			return nil, err
		}
		return ast.LitText{Value: v}, nil

	case "LitBool":
		v, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		return ast.LitBool{Value: v}, nil

	case "LitUnit":
		return ast.LitUnit{}, nil

	case "LitList":
		elems, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.LitList{Elements: elems}, nil

	case "LitTuple":
		elems, err := p.parseNodeList(tree)
		if err != nil {
			return nil, err
		}
		return ast.LitTuple{Elements: elems}, nil

	case "RefSymbolic":
		name, err := p.nextString()
		if err != nil {
			return nil, err
		}
		path, err := p.parseStrList()
		if err != nil {
			return nil, err
		}
		return ast.RefSymbolic{Name: name, Path: path}, nil

	case "RefHash":
		hexStr, err := p.nextString()
		if err != nil {
			return nil, err
		}
		raw, err := hex.DecodeString(hexStr)
		if err != nil || len(raw) != 32 {
			return nil, ParseError{Pos: p.pos, Message: "invalid RefHash hex payload"}
		}
		var h [32]byte
		copy(h[:], raw)
		return ast.RefHash{Hash: h}, nil

	default:
		return nil, ParseError{Pos: p.pos, Message: "unknown tag " + tag}
	}
}

func (p *parser) parseTypeDef(tree *ast.Tree) (ast.Data, error) {
	name, err := p.nextAtom()
	if err != nil {
		return nil, err
	}
	params, err := p.parseSymList()
	if err != nil {
		return nil, err
	}
	variant, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	v := ast.TypeDefVariant(variant)
	switch v {
	case ast.TypeDefAlias:
		alias, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		return ast.TypeDef{Name: name, Params: params, Variant: v, Alias: alias}, nil
	case ast.TypeDefRecord:
		if err := p.openTag("fields"); err != nil {
			return nil, err
		}
		var fields []ast.TypeRecordField
		for {
			b, ok := p.peekByte()
			if !ok {
				return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in fields"}
			}
			if b == ')' {
				p.pos++
				break
			}
			if err := p.openTag("field"); err != nil {
				return nil, err
			}
			fName, err := p.nextAtom()
			if err != nil {
				return nil, err
			}
			fType, err := p.parseNode(tree)
			if err != nil {
				return nil, err
			}
			if err := p.closeParen(); err != nil {
				return nil, err
			}
			fields = append(fields, ast.TypeRecordField{Name: fName, Type: fType})
		}
		return ast.TypeDef{Name: name, Params: params, Variant: v, Fields: fields}, nil
	case ast.TypeDefSum:
		if err := p.openTag("variants"); err != nil {
			return nil, err
		}
		var variants []ast.TypeSumVariant
		for {
			b, ok := p.peekByte()
			if !ok {
				return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in variants"}
			}
			if b == ')' {
				p.pos++
				break
			}
			if err := p.openTag("variant"); err != nil {
				return nil, err
			}
			vName, err := p.nextAtom()
			if err != nil {
				return nil, err
			}
			args, err := p.parseNodeList(tree)
			if err != nil {
				return nil, err
			}
			if err := p.closeParen(); err != nil {
				return nil, err
			}
			variants = append(variants, ast.TypeSumVariant{Name: vName, Args: args})
		}
		return ast.TypeDef{Name: name, Params: params, Variant: v, Sum: variants}, nil
	default:
		return nil, ParseError{Pos: p.pos, Message: "invalid TypeDef variant tag"}
	}
}

func (p *parser) parseHandlerDef(tree *ast.Tree) (ast.Data, error) {
	effName, err := p.nextAtom()
	if err != nil {
		return nil, err
	}
	if err := p.openTag("clauses"); err != nil {
		return nil, err
	}
	var clauses []ast.HandlerClause
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in clauses"}
		}
		if b == ')' {
			p.pos++
			break
		}
		if err := p.openTag("clause"); err != nil {
			return nil, err
		}
		opName, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		params, err := p.parseSymList()
		if err != nil {
			return nil, err
		}
		body, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(); err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.HandlerClause{OpName: opName, Params: params, Body: body})
	}
	ret, err := p.parseOptNode(tree)
	if err != nil {
		return nil, err
	}
	return ast.HandlerDef{EffectName: effName, Clauses: clauses, Return: ret}, nil
}

func (p *parser) parseLambda(tree *ast.Tree) (ast.Data, error) {
	if err := p.openTag("params"); err != nil {
		return nil, err
	}
	var params []ast.LambdaParam
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in params"}
		}
		if b == ')' {
			p.pos++
			break
		}
		if err := p.openTag("param"); err != nil {
			return nil, err
		}
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseOptNode(tree)
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(); err != nil {
			return nil, err
		}
		params = append(params, ast.LambdaParam{Name: name, Type: typ})
	}
	body, err := p.parseNode(tree)
	if err != nil {
		return nil, err
	}
	return ast.Lambda{Params: params, Body: body}, nil
}

func (p *parser) parseLetRec(tree *ast.Tree) (ast.Data, error) {
	if err := p.openTag("bindings"); err != nil {
		return nil, err
	}
	var bindings []ast.LetRecBinding
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in bindings"}
		}
		if b == ')' {
			p.pos++
			break
		}
		if err := p.openTag("binding"); err != nil {
			return nil, err
		}
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		value, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(); err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.LetRecBinding{Name: name, Value: value})
	}
	body, err := p.parseNode(tree)
	if err != nil {
		return nil, err
	}
	return ast.LetRec{Bindings: bindings, Body: body}, nil
}

func (p *parser) parseMatch(tree *ast.Tree) (ast.Data, error) {
	scrutinee, err := p.parseNode(tree)
	if err != nil {
		return nil, err
	}
	if err := p.openTag("cases"); err != nil {
		return nil, err
	}
	var cases []ast.MatchCase
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in cases"}
		}
		if b == ')' {
			p.pos++
			break
		}
		if err := p.openTag("case"); err != nil {
			return nil, err
		}
		pat, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		guard, err := p.parseOptNode(tree)
		if err != nil {
			return nil, err
		}
		body, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(); err != nil {
			return nil, err
		}
		cases = append(cases, ast.MatchCase{Pattern: pat, Guard: guard, Body: body})
	}
	return ast.Match{Scrutinee: scrutinee, Cases: cases}, nil
}

func (p *parser) parsePatRecord(tree *ast.Tree) (ast.Data, error) {
	if err := p.openTag("fields"); err != nil {
		return nil, err
	}
	var fields []ast.PatRecordField
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in fields"}
		}
		if b == ')' {
			p.pos++
			break
		}
		if err := p.openTag("field"); err != nil {
			return nil, err
		}
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		pat, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(); err != nil {
			return nil, err
		}
		fields = append(fields, ast.PatRecordField{Name: name, Pattern: pat})
	}
	rest, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	return ast.PatRecord{Fields: fields, Rest: rest}, nil
}

func (p *parser) parseFieldInits(tree *ast.Tree) ([]ast.RecordFieldInit, error) {
	if err := p.openTag("fields"); err != nil {
		return nil, err
	}
	var fields []ast.RecordFieldInit
	for {
		b, ok := p.peekByte()
		if !ok {
			return nil, ParseError{Pos: p.pos, Message: "unexpected end of input in fields"}
		}
		if b == ')' {
			p.pos++
			break
		}
		if err := p.openTag("field"); err != nil {
			return nil, err
		}
		name, err := p.nextAtom()
		if err != nil {
			return nil, err
		}
		value, err := p.parseNode(tree)
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(); err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordFieldInit{Name: name, Value: value})
	}
	return fields, nil
}
