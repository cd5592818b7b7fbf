package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

var pythonTypes = set("type", "generic_type") //nolint:gochecknoglobals // table data.

func init() {
	rules.Register(&rules.Table{
		Language:   "python",
		Grammar:    "python",
		Extensions: []string{".py", ".pyi", ".pyw"},
		Aliases:    []string{"Python", "py", "python3"},
		Rename: merge(commonLiterals, map[string]string{
			"module":                   elUnit,
			"import_statement":         elImport,
			"import_from_statement":    elImport,
			"class_definition":         elClass,
			"function_definition":      elFunction,
			"decorator":                elDecorator,
			"parameters":               elParameters,
			"lambda_parameters":        elParameters,
			"typed_parameter":          elParameter,
			"default_parameter":        elParameter,
			"typed_default_parameter":  elParameter,
			"list_splat_pattern":       elParameter,
			"dictionary_splat_pattern": elParameter,
			"argument_list":            elArgs,
			"keyword_argument":         elArg,
			"call":                     elCall,
			"attribute":                elMember,
			"subscript":                elIndex,
			"assignment":               elAssign,
			"augmented_assignment":     elAssign,
			"binary_operator":          elBinary,
			"boolean_operator":         elBinary,
			"comparison_operator":      "compare",
			"unary_operator":           elUnary,
			"not_operator":             elUnary,
			"conditional_expression":   elTernary,
			"lambda":                   elLambda,
			"await":                    elAwait,
			"block":                    elBlock,
			"if_statement":             elIf,
			"elif_clause":              elElif,
			"else_clause":              elElse,
			"for_statement":            elFor,
			"while_statement":          elWhile,
			"try_statement":            elTry,
			"except_clause":            elCatch,
			"finally_clause":           elFinally,
			"with_statement":           "with",
			"match_statement":          elMatch,
			"case_clause":              elCase,
			"return_statement":         elReturn,
			"raise_statement":          elThrow,
			"pass_statement":           "pass",
			"break_statement":          elBreak,
			"continue_statement":       elContinue,
			"yield":                    elYield,
			"global_statement":         "global",
			"string":                   elString,
			"concatenated_string":      elString,
			"integer":                  elNumber,
			"float":                    elNumber,
			"none":                     elNull,
			"list":                     "list",
			"dictionary":               "dict",
			"pair":                     "pair",
			"tuple":                    "tuple",
			"set":                      "set",
			"list_comprehension":       "comprehension",
			"dictionary_comprehension": "comprehension",
			"set_comprehension":        "comprehension",
			"generator_expression":     "comprehension",
			"type_parameter":           rules.ElementArguments,
		}),
		Flatten:   set("decorated_definition", "expression_statement", "parenthesized_expression"),
		Operators: withOperators("//", "**", "@", "//=", "**=", "@=", "<>", "and", "or", "not", "in", "is", ":="),
		OperatorParents: set(
			"binary_operator", "boolean_operator", "comparison_operator",
			"unary_operator", "not_operator", "assignment", "augmented_assignment",
			"named_expression",
		),
		Modifiers:   set("async"),
		Identifiers: set("identifier"),
		TypeFields:  set("type", "return_type"),
		ExtractName: set("dotted_name"),
		Atomic:      set("string", "concatenated_string", "comment"),
		Types: map[string]rules.Shape{
			"type":         rules.ShapeSimple,
			"generic_type": rules.ShapeGeneric,
		},
		IdentifierContext: func(chain rules.Chain) bool {
			// Dotted names are module paths everywhere except annotations.
			return !chain.Within(pythonTypes)
		},
	})
}
