package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

var kotlinNamespaces = set("package_header", "import_header") //nolint:gochecknoglobals // table data.

// Declarations whose type_identifier child, unfielded in the grammar, is
// the declared name.
var kotlinDeclarations = set( //nolint:gochecknoglobals // table data.
	"class_declaration", "object_declaration", "type_alias", "type_parameter",
)

func init() {
	t := &rules.Table{
		Language:   "kotlin",
		Grammar:    "kotlin",
		Extensions: []string{".kt", ".kts"},
		Aliases:    []string{"Kotlin", "kt"},
		Rename: merge(commonLiterals, map[string]string{
			"source_file":               elUnit,
			"package_header":            elPackage,
			"import_header":             elImport,
			"class_declaration":         elClass,
			"object_declaration":        elObject,
			"companion_object":          elObject,
			"enum_entry":                elEnumMember,
			"function_declaration":      elFunction,
			"property_declaration":      elProperty,
			"primary_constructor":       elConstructor,
			"secondary_constructor":     elConstructor,
			"function_value_parameters": elParameters,
			"class_parameter":           elParameter,
			"parameter":                 elParameter,
			"type_parameters":           elTypeParams,
			"type_parameter":            elTypeParam,
			"type_arguments":            rules.ElementArguments,
			"delegation_specifier":      "extends",
			"annotation":                elAnnotation,
			"call_expression":           elCall,
			"value_arguments":           elArgs,
			"value_argument":            elArg,
			"navigation_expression":     elMember,
			"indexing_expression":       elIndex,
			"assignment":                elAssign,
			"additive_expression":       elBinary,
			"multiplicative_expression": elBinary,
			"comparison_expression":     elBinary,
			"equality_expression":       elBinary,
			"conjunction_expression":    elBinary,
			"disjunction_expression":    elBinary,
			"elvis_expression":          elBinary,
			"range_expression":          elBinary,
			"infix_expression":          elBinary,
			"prefix_expression":         elUnary,
			"postfix_expression":        elUnary,
			"as_expression":             elCast,
			"lambda_literal":            elLambda,
			"anonymous_function":        elLambda,
			"function_body":             elBlock,
			"control_structure_body":    elBlock,
			"if_expression":             elIf,
			"when_expression":           elSwitch,
			"when_entry":                elCase,
			"for_statement":             elFor,
			"while_statement":           elWhile,
			"do_while_statement":        elDo,
			"jump_expression":           "jump",
			"try_expression":            elTry,
			"catch_block":               elCatch,
			"finally_block":             elFinally,
			"string_literal":            elString,
			"character_literal":         elChar,
			"integer_literal":           elNumber,
			"long_literal":              elNumber,
			"hex_literal":               elNumber,
			"real_literal":              elNumber,
			"boolean_literal":           elBool,
			"this_expression":           elThis,
			"multiline_comment":         elComment,
		}),
		Flatten: set(
			"class_body", "enum_class_body", "statements", "parenthesized_expression",
			"type_constraints", "type_projection",
		),
		Operators: withOperators("===", "!==", "?:", "..", "..<", "!!", "in", "!in", "is", "!is"),
		OperatorParents: set(
			"additive_expression", "multiplicative_expression", "comparison_expression",
			"equality_expression", "conjunction_expression", "disjunction_expression",
			"elvis_expression", "range_expression", "prefix_expression",
			"postfix_expression", "assignment",
		),
		ModifierWrappers: set("modifiers"),
		ModifierKinds: set(
			"visibility_modifier", "function_modifier", "class_modifier",
			"member_modifier", "inheritance_modifier", "property_modifier",
			"parameter_modifier", "platform_modifier",
		),
		Identifiers:     set("simple_identifier"),
		TypeIdentifiers: set("type_identifier"),
		ExtractName:     set("identifier"),
		Atomic:          set("string_literal", "character_literal", "comment", "line_comment", "multiline_comment"),
		Types: map[string]rules.Shape{
			"user_type":     rules.ShapeSimple,
			"nullable_type": rules.ShapeNullable,
		},
		IdentifierContext: func(chain rules.Chain) bool {
			return chain.Within(kotlinNamespaces)
		},
	}

	t.ClassifyIdentifier = func(id rules.Identifier, chain rules.Chain) rules.Role {
		if id.Kind == "type_identifier" && id.Field == "" && kotlinDeclarations.Has(chain.Parent().Kind) {
			return rules.RoleName
		}

		return t.DefaultRole(id, chain)
	}

	rules.Register(t)
}
