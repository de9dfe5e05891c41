package types

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hm"
)

// ConstructorSig is the signature of one sum-type constructor, recorded
// by RegisterTypeDef so PatConstructor patterns and constructor
// applications can be typed.
type ConstructorSig struct {
	VariantName string
	ArgTypes    []hm.Type
}

// EffectOpSig is the signature of one operation of an algebraic effect,
// recorded by RegisterEffectDef so Perform nodes can be typed.
type EffectOpSig struct {
	Params []hm.Type
	Return hm.Type
}

// registry holds the module-scoped declarations the Checker needs beyond
// ordinary lexical bindings: constructor signatures (for pattern and
// construction typing) and effect operation signatures (for Perform).
// It is populated by a first pass over a Module's TypeDefs/EffectDefs
// before value definitions are checked, mirroring how the teacher's own
// inferer expects declarations hoisted ahead of use.
type registry struct {
	constructors        map[string]ConstructorSig
	variantConstructors map[string][]string
	effectOps           map[string]map[string]EffectOpSig
}

func newRegistry() *registry {
	return &registry{
		constructors:        make(map[string]ConstructorSig),
		variantConstructors: make(map[string][]string),
		effectOps:           make(map[string]map[string]EffectOpSig),
	}
}

// RegisterTypeDef records def's constructors, if it is a sum type
// (alias and record TypeDefs introduce no constructors of their own).
func (c *Checker) RegisterTypeDef(def ast.TypeDef) {
	if def.Variant != ast.TypeDefSum {
		return
	}
	var ctors []string
	for _, v := range def.Sum {
		argTypes := make([]hm.Type, len(v.Args))
		for i, a := range v.Args {
			argTypes[i] = c.resolveTypeExpr(a)
		}
		c.reg.constructors[v.Name] = ConstructorSig{VariantName: def.Name, ArgTypes: argTypes}
		ctors = append(ctors, v.Name)
	}
	c.reg.variantConstructors[def.Name] = ctors
}

// RegisterEffectDef records def's operation signatures.
func (c *Checker) RegisterEffectDef(def ast.EffectDef) {
	ops := make(map[string]EffectOpSig, len(def.Operations))
	for _, op := range def.Operations {
		params := make([]hm.Type, len(op.ParamTypes))
		for i, p := range op.ParamTypes {
			params[i] = c.resolveTypeExpr(p)
		}
		ops[op.Name] = EffectOpSig{Params: params, Return: c.resolveTypeExpr(op.ReturnType)}
	}
	c.reg.effectOps[def.Name] = ops
}

// resolveTypeExpr interprets a type-expression node (References to base
// or user-defined types) as an hm.Type. Unrecognized shapes fall back to
// a fresh type variable rather than failing registration outright — the
// Checker will surface any real mismatch at the use site instead.
func (c *Checker) resolveTypeExpr(n *ast.Node) hm.Type {
	if n == nil {
		return c.fresher.Fresh()
	}
	ref, ok := n.Data().(ast.RefSymbolic)
	if !ok {
		return c.fresher.Fresh()
	}
	switch ref.Name {
	case "Int":
		return hm.Int
	case "Float":
		return hm.Float
	case "Text":
		return hm.Text
	case "Bool":
		return hm.Bool
	case "Unit":
		return hm.Unit
	default:
		return hm.VariantType{Name_: ref.Name}
	}
}
