// Package languages registers the built-in rule tables, one file per
// language. Importing it for side effects makes every table available
// through rules.Builtin.
package languages

import (
	"maps"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

// Element vocabulary shared by every code language.
const (
	elUnit        = "unit"
	elImport      = "import"
	elPackage     = "package"
	elNamespace   = "namespace"
	elModule      = "module"
	elClass       = "class"
	elInterface   = "interface"
	elStruct      = "struct"
	elEnum        = "enum"
	elRecord      = "record"
	elTrait       = "trait"
	elImpl        = "impl"
	elObject      = "object"
	elFunction    = "function"
	elMethod      = "method"
	elConstructor = "constructor"
	elLambda      = "lambda"
	elProperty    = "property"
	elField       = "field"
	elVariable    = "variable"
	elDeclarator  = "declarator"
	elConst       = "const"
	elParameters  = "parameters"
	elParameter   = "parameter"
	elTypeParams  = "typeparameters"
	elTypeParam   = "typeparameter"
	elArgs        = "args"
	elArg         = "arg"
	elCall        = "call"
	elMember      = "member"
	elIndex       = "index"
	elNew         = "new"
	elAssign      = "assign"
	elBinary      = "binary"
	elUnary       = "unary"
	elTernary     = "ternary"
	elCast        = "cast"
	elAwait       = "await"
	elBlock       = "block"
	elIf          = "if"
	elElse        = "else"
	elElif        = "elif"
	elFor         = "for"
	elForeach     = "foreach"
	elWhile       = "while"
	elDo          = "do"
	elSwitch      = "switch"
	elCase        = "case"
	elDefault     = "default"
	elMatch       = "match"
	elReturn      = "return"
	elBreak       = "break"
	elContinue    = "continue"
	elThrow       = "throw"
	elTry         = "try"
	elCatch       = "catch"
	elFinally     = "finally"
	elYield       = "yield"
	elString      = "string"
	elChar        = "char"
	elNumber      = "number"
	elBool        = "bool"
	elNull        = "null"
	elComment     = "comment"
	elAttribute   = "attribute"
	elAnnotation  = "annotation"
	elDecorator   = "decorator"
	elEnumMember  = "enummember"
	elTypeAlias   = "typealias"
	elThis        = "this"
)

// Vocabulary of the structural branch of configuration formats. Mappings
// of every format are objects holding property elements with one key and
// one value; sectioned formats (TOML tables, INI sections) add section.
const (
	elArray   = "array"
	elPair    = "property"
	elKey     = "key"
	elValue   = rules.ElementValue
	elSection = "section"
	elTable   = "table"
)

func set(items ...string) rules.Set {
	return rules.NewSet(items...)
}

func merge(parts ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, p := range parts {
		maps.Copy(out, p)
	}

	return out
}

// Operator tokens shared by C-like grammars.
var cOperators = []string{ //nolint:gochecknoglobals // table data.
	"+", "-", "*", "/", "%",
	"==", "!=", "<", ">", "<=", ">=",
	"&&", "||", "!",
	"&", "|", "^", "~", "<<", ">>",
	"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=",
	"++", "--",
}

func withOperators(extra ...string) rules.Set {
	s := set(cOperators...)
	for _, e := range extra {
		s[e] = struct{}{}
	}

	return s
}

// Literal kinds most grammars name the same way.
var commonLiterals = map[string]string{ //nolint:gochecknoglobals // table data.
	"comment":       elComment,
	"line_comment":  elComment,
	"block_comment": elComment,
	"true":          elBool,
	"false":         elBool,
}
