package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "rust",
		Grammar:    "rust",
		Extensions: []string{".rs"},
		Aliases:    []string{"Rust", "rs"},
		Rename: merge(commonLiterals, map[string]string{
			"source_file":              elUnit,
			"use_declaration":          elImport,
			"mod_item":                 elModule,
			"struct_item":              elStruct,
			"union_item":               "union",
			"enum_item":                elEnum,
			"enum_variant":             elEnumMember,
			"trait_item":               elTrait,
			"impl_item":                elImpl,
			"function_item":            elFunction,
			"function_signature_item":  elFunction,
			"field_declaration":        elField,
			"parameters":               elParameters,
			"parameter":                elParameter,
			"self_parameter":           elParameter,
			"closure_parameters":       elParameters,
			"type_parameters":          elTypeParams,
			"type_arguments":           rules.ElementArguments,
			"let_declaration":          elVariable,
			"const_item":               elConst,
			"static_item":              "staticitem",
			"type_item":                elTypeAlias,
			"attribute_item":           elAttribute,
			"macro_invocation":         "macro",
			"macro_definition":         "macro",
			"closure_expression":       elLambda,
			"call_expression":          elCall,
			"arguments":                elArgs,
			"field_expression":         elMember,
			"index_expression":         elIndex,
			"struct_expression":        elNew,
			"field_initializer":        "pair",
			"assignment_expression":    elAssign,
			"compound_assignment_expr": elAssign,
			"binary_expression":        elBinary,
			"unary_expression":         elUnary,
			"reference_expression":     "borrow",
			"type_cast_expression":     elCast,
			"try_expression":           elTry,
			"await_expression":         elAwait,
			"block":                    elBlock,
			"if_expression":            elIf,
			"else_clause":              elElse,
			"match_expression":         elMatch,
			"match_arm":                elCase,
			"for_expression":           elFor,
			"while_expression":         elWhile,
			"loop_expression":          "loop",
			"return_expression":        elReturn,
			"break_expression":         elBreak,
			"continue_expression":      elContinue,
			"string_literal":           elString,
			"raw_string_literal":       elString,
			"char_literal":             elChar,
			"integer_literal":          elNumber,
			"float_literal":            elNumber,
			"boolean_literal":          elBool,
			"self":                     elThis,
		}),
		Flatten: set(
			"declaration_list", "field_declaration_list", "enum_variant_list",
			"expression_statement", "parenthesized_expression", "match_block",
		),
		Operators: withOperators(),
		OperatorParents: set(
			"binary_expression", "unary_expression",
			"assignment_expression", "compound_assignment_expr",
		),
		ModifierKinds:    set("visibility_modifier", "mutable_specifier"),
		ModifierWrappers: set("function_modifiers"),
		Identifiers:      set("identifier", "field_identifier", "shorthand_field_identifier"),
		TypeIdentifiers:  set("type_identifier", "scoped_type_identifier"),
		TypeFields:       set("type", "return_type", "trait"),
		ExtractName:      set("scoped_identifier", "scoped_type_identifier"),
		Atomic:           set("string_literal", "raw_string_literal", "char_literal", "line_comment", "block_comment", "token_tree"),
		Types: map[string]rules.Shape{
			"primitive_type": rules.ShapeSimple,
			"generic_type":   rules.ShapeGeneric,
			"reference_type": rules.ShapeReference,
			"pointer_type":   rules.ShapePointer,
			"array_type":     rules.ShapeArray,
			"tuple_type":     rules.ShapeSimple,
		},
	})
}
