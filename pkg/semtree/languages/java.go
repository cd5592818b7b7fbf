package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

var javaNamespaces = set("package_declaration", "import_declaration") //nolint:gochecknoglobals // table data.

func init() {
	rules.Register(&rules.Table{
		Language:   "java",
		Grammar:    "java",
		Extensions: []string{".java"},
		Aliases:    []string{"Java"},
		Rename: merge(commonLiterals, map[string]string{
			"program":                         elUnit,
			"package_declaration":             elPackage,
			"import_declaration":              elImport,
			"class_declaration":               elClass,
			"interface_declaration":           elInterface,
			"enum_declaration":                elEnum,
			"record_declaration":              elRecord,
			"annotation_type_declaration":     "annotationtype",
			"enum_constant":                   elEnumMember,
			"method_declaration":              elMethod,
			"constructor_declaration":         elConstructor,
			"field_declaration":               elField,
			"local_variable_declaration":      elVariable,
			"variable_declarator":             elDeclarator,
			"formal_parameters":               elParameters,
			"formal_parameter":                elParameter,
			"spread_parameter":                elParameter,
			"type_parameters":                 elTypeParams,
			"type_parameter":                  elTypeParam,
			"type_arguments":                  rules.ElementArguments,
			"superclass":                      "extends",
			"super_interfaces":                "implements",
			"marker_annotation":               elAnnotation,
			"annotation":                      elAnnotation,
			"method_invocation":               elCall,
			"argument_list":                   elArgs,
			"object_creation_expression":      elNew,
			"field_access":                    elMember,
			"array_access":                    elIndex,
			"assignment_expression":           elAssign,
			"binary_expression":               elBinary,
			"unary_expression":                elUnary,
			"update_expression":               elUnary,
			"ternary_expression":              elTernary,
			"cast_expression":                 elCast,
			"lambda_expression":               elLambda,
			"this":                            elThis,
			"block":                           elBlock,
			"constructor_body":                elBlock,
			"if_statement":                    elIf,
			"for_statement":                   elFor,
			"enhanced_for_statement":          elForeach,
			"while_statement":                 elWhile,
			"do_statement":                    elDo,
			"switch_expression":               elSwitch,
			"switch_block_statement_group":    elCase,
			"switch_rule":                     elCase,
			"return_statement":                elReturn,
			"break_statement":                 elBreak,
			"continue_statement":              elContinue,
			"throw_statement":                 elThrow,
			"try_statement":                   elTry,
			"try_with_resources_statement":    elTry,
			"catch_clause":                    elCatch,
			"finally_clause":                  elFinally,
			"yield_statement":                 elYield,
			"string_literal":                  elString,
			"text_block":                      elString,
			"character_literal":               elChar,
			"decimal_integer_literal":         elNumber,
			"hex_integer_literal":             elNumber,
			"octal_integer_literal":           elNumber,
			"binary_integer_literal":          elNumber,
			"decimal_floating_point_literal":  elNumber,
			"hex_floating_point_literal":      elNumber,
			"null_literal":                    elNull,
			"explicit_constructor_invocation": elCall,
			"class_literal":                   "classliteral",
			"instanceof_expression":           "instanceof",
			"method_reference":                "reference",
			"array_creation_expression":       elNew,
			"array_initializer":               "initializer",
			"labeled_statement":               "labeled",
			"synchronized_statement":          "synchronized",
			"assert_statement":                "assert",
			"static_initializer":              "initializer",
			"annotation_argument_list":        elArgs,
			"element_value_pair":              "pair",
			"record_pattern":                  "pattern",
			"type_pattern":                    "pattern",
			"resource_specification":          "resources",
			"catch_formal_parameter":          elParameter,
			"inferred_parameters":             elParameters,
			"receiver_parameter":              elParameter,
		}),
		Flatten: set(
			"class_body", "interface_body", "enum_body", "enum_body_declarations",
			"annotation_type_body", "parenthesized_expression",
			"dimensions", "switch_block", "expression_statement",
		),
		Operators: withOperators(">>>", ">>>="),
		OperatorParents: set(
			"binary_expression", "assignment_expression",
			"unary_expression", "update_expression",
		),
		ModifierWrappers: set("modifiers"),
		Identifiers:      set("identifier"),
		TypeIdentifiers:  set("type_identifier", "scoped_type_identifier"),
		TypeFields:       set("type", "superclass"),
		ExtractName:      set("scoped_identifier", "scoped_type_identifier"),
		Atomic:           set("string_literal", "text_block", "character_literal", "line_comment", "block_comment"),
		Types: map[string]rules.Shape{
			"integral_type":       rules.ShapeSimple,
			"floating_point_type": rules.ShapeSimple,
			"boolean_type":        rules.ShapeSimple,
			"void_type":           rules.ShapeSimple,
			"generic_type":        rules.ShapeGeneric,
			"array_type":          rules.ShapeArray,
		},
		IdentifierContext: func(chain rules.Chain) bool {
			return chain.Within(javaNamespaces)
		},
	})
}
