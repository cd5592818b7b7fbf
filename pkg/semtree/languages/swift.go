package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "swift",
		Grammar:    "swift",
		Extensions: []string{".swift"},
		Aliases:    []string{"Swift"},
		Rename: merge(commonLiterals, map[string]string{
			"source_file":                   elUnit,
			"import_declaration":            elImport,
			"class_declaration":             elClass,
			"protocol_declaration":          elInterface,
			"enum_entry":                    elEnumMember,
			"function_declaration":          elFunction,
			"protocol_function_declaration": elFunction,
			"init_declaration":              elConstructor,
			"deinit_declaration":            "destructor",
			"property_declaration":          elProperty,
			"typealias_declaration":         elTypeAlias,
			"parameter":                     elParameter,
			"type_parameters":               elTypeParams,
			"type_parameter":                elTypeParam,
			"type_arguments":                rules.ElementArguments,
			"inheritance_specifier":         "extends",
			"attribute":                     elAttribute,
			"call_expression":               elCall,
			"value_arguments":               elArgs,
			"value_argument":                elArg,
			"navigation_expression":         elMember,
			"assignment":                    elAssign,
			"additive_expression":           elBinary,
			"multiplicative_expression":     elBinary,
			"comparison_expression":         elBinary,
			"equality_expression":           elBinary,
			"conjunction_expression":        elBinary,
			"disjunction_expression":        elBinary,
			"nil_coalescing_expression":     elBinary,
			"range_expression":              elBinary,
			"prefix_expression":             elUnary,
			"postfix_expression":            elUnary,
			"ternary_expression":            elTernary,
			"as_expression":                 elCast,
			"await_expression":              elAwait,
			"lambda_literal":                elLambda,
			"function_body":                 elBlock,
			"statements":                    elBlock,
			"if_statement":                  elIf,
			"guard_statement":               "guard",
			"for_statement":                 elFor,
			"while_statement":               elWhile,
			"repeat_while_statement":        elDo,
			"switch_statement":              elSwitch,
			"switch_entry":                  elCase,
			"control_transfer_statement":    "jump",
			"do_statement":                  elTry,
			"catch_block":                   elCatch,
			"line_string_literal":           elString,
			"multi_line_string_literal":     elString,
			"integer_literal":               elNumber,
			"real_literal":                  elNumber,
			"hex_literal":                   elNumber,
			"boolean_literal":               elBool,
			"self_expression":               elThis,
			"multiline_comment":             elComment,
		}),
		Flatten:   set("class_body", "enum_class_body", "protocol_body", "call_suffix", "tuple_expression"),
		Operators: withOperators("===", "!==", "??", "...", "..<"),
		OperatorParents: set(
			"additive_expression", "multiplicative_expression", "comparison_expression",
			"equality_expression", "conjunction_expression", "disjunction_expression",
			"nil_coalescing_expression", "range_expression", "prefix_expression",
			"postfix_expression", "assignment",
		),
		ModifierWrappers: set("modifiers"),
		ModifierKinds: set(
			"visibility_modifier", "member_modifier", "function_modifier",
			"property_modifier", "mutation_modifier", "inheritance_modifier",
			"ownership_modifier", "parameter_modifier",
		),
		Identifiers:     set("simple_identifier"),
		TypeIdentifiers: set("type_identifier"),
		TypeFields:      set("return_type"),
		Atomic:          set("line_string_literal", "multi_line_string_literal", "comment", "multiline_comment"),
		Types: map[string]rules.Shape{
			"user_type":       rules.ShapeSimple,
			"optional_type":   rules.ShapeNullable,
			"array_type":      rules.ShapeArray,
			"dictionary_type": rules.ShapeGeneric,
		},
	})
}
