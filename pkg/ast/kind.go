package ast

// Kind tags the closed set of AST node variants (spec §3). Adding a new
// kind means updating every exhaustive switch over Kind: the hash
// serialization table (pkg/hash), the five indices (pkg/index), and the
// checker's dispatch (pkg/types) all switch on it.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindCompilationUnit
	KindModule
	KindImport
	KindValueDef
	KindTypeDef
	KindEffectDef
	KindHandlerDef
	KindInterface

	KindLambda
	KindApplication
	KindLet
	KindLetRec
	KindIf
	KindMatch
	KindDo
	KindWith
	KindPerform
	KindPipe

	KindRecord
	KindRecordAccess
	KindRecordUpdate

	KindPatWildcard
	KindPatLiteral
	KindPatVariable
	KindPatConstructor
	KindPatRecord
	KindPatCons
	KindPatTuple

	KindLitInt
	KindLitFloat
	KindLitText
	KindLitBool
	KindLitUnit
	KindLitList
	KindLitTuple

	KindReferenceSymbolic
	KindReferenceHash

	// KindHole is not part of the original closed set; it is a pattern
	// template sentinel (SPEC_FULL.md §3) used only inside query
	// predicates, never inside a real AST produced by the Editor, and is
	// excluded from hashing (pkg/hash.Hasher rejects it).
	KindHole

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid:           "Invalid",
	KindCompilationUnit:   "CompilationUnit",
	KindModule:            "Module",
	KindImport:            "Import",
	KindValueDef:          "ValueDef",
	KindTypeDef:           "TypeDef",
	KindEffectDef:         "EffectDef",
	KindHandlerDef:        "HandlerDef",
	KindInterface:         "Interface",
	KindLambda:            "Lambda",
	KindApplication:       "Application",
	KindLet:               "Let",
	KindLetRec:            "LetRec",
	KindIf:                "If",
	KindMatch:             "Match",
	KindDo:                "Do",
	KindWith:              "With",
	KindPerform:           "Perform",
	KindPipe:              "Pipe",
	KindRecord:            "Record",
	KindRecordAccess:      "RecordAccess",
	KindRecordUpdate:      "RecordUpdate",
	KindPatWildcard:       "PatWildcard",
	KindPatLiteral:        "PatLiteral",
	KindPatVariable:       "PatVariable",
	KindPatConstructor:    "PatConstructor",
	KindPatRecord:         "PatRecord",
	KindPatCons:           "PatCons",
	KindPatTuple:          "PatTuple",
	KindLitInt:            "LitInt",
	KindLitFloat:          "LitFloat",
	KindLitText:           "LitText",
	KindLitBool:           "LitBool",
	KindLitUnit:           "LitUnit",
	KindLitList:           "LitList",
	KindLitTuple:          "LitTuple",
	KindReferenceSymbolic: "ReferenceSymbolic",
	KindReferenceHash:     "ReferenceHash",
	KindHole:              "Hole",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsDefinition reports whether a node of this kind can be a top-level
// Definition stored in the Namespace Store (spec §3's Definition triple).
func (k Kind) IsDefinition() bool {
	switch k {
	case KindValueDef, KindTypeDef, KindEffectDef, KindHandlerDef, KindInterface:
		return true
	default:
		return false
	}
}

// IsPattern reports whether this kind is one of the Pattern variants.
func (k Kind) IsPattern() bool {
	switch k {
	case KindPatWildcard, KindPatLiteral, KindPatVariable, KindPatConstructor, KindPatRecord, KindPatCons, KindPatTuple:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether this kind is one of the Literal variants.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindLitInt, KindLitFloat, KindLitText, KindLitBool, KindLitUnit, KindLitList, KindLitTuple:
		return true
	default:
		return false
	}
}
