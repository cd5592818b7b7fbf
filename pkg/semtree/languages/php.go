package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

var phpNamespaces = set("namespace_definition", "namespace_use_declaration", "namespace_use_clause") //nolint:gochecknoglobals // table data.

func init() {
	rules.Register(&rules.Table{
		Language:   "php",
		Grammar:    "php",
		Extensions: []string{".php", ".phtml"},
		Aliases:    []string{"PHP"},
		Rename: merge(commonLiterals, map[string]string{
			"program":                                elUnit,
			"namespace_definition":                   elNamespace,
			"namespace_use_declaration":              elImport,
			"class_declaration":                      elClass,
			"interface_declaration":                  elInterface,
			"trait_declaration":                      elTrait,
			"enum_declaration":                       elEnum,
			"enum_case":                              elEnumMember,
			"method_declaration":                     elMethod,
			"function_definition":                    elFunction,
			"property_declaration":                   elProperty,
			"property_element":                       elDeclarator,
			"const_declaration":                      elConst,
			"formal_parameters":                      elParameters,
			"simple_parameter":                       elParameter,
			"variadic_parameter":                     elParameter,
			"property_promotion_parameter":           elParameter,
			"attribute_list":                         "attributes",
			"attribute":                              elAttribute,
			"base_clause":                            "extends",
			"class_interface_clause":                 "implements",
			"function_call_expression":               elCall,
			"member_call_expression":                 elCall,
			"scoped_call_expression":                 elCall,
			"nullsafe_member_call_expression":        elCall,
			"arguments":                              elArgs,
			"argument":                               elArg,
			"member_access_expression":               elMember,
			"scoped_property_access_expression":      elMember,
			"subscript_expression":                   elIndex,
			"object_creation_expression":             elNew,
			"assignment_expression":                  elAssign,
			"augmented_assignment_expression":        elAssign,
			"binary_expression":                      elBinary,
			"unary_op_expression":                    elUnary,
			"update_expression":                      elUnary,
			"conditional_expression":                 elTernary,
			"cast_expression":                        elCast,
			"anonymous_function":                     elLambda,
			"anonymous_function_creation_expression": elLambda,
			"arrow_function":                         elLambda,
			"compound_statement":                     elBlock,
			"if_statement":                           elIf,
			"else_if_clause":                         elElif,
			"else_clause":                            elElse,
			"for_statement":                          elFor,
			"foreach_statement":                      elForeach,
			"while_statement":                        elWhile,
			"do_statement":                           elDo,
			"switch_statement":                       elSwitch,
			"case_statement":                         elCase,
			"default_statement":                      elDefault,
			"match_expression":                       elMatch,
			"return_statement":                       elReturn,
			"break_statement":                        elBreak,
			"continue_statement":                     elContinue,
			"throw_expression":                       elThrow,
			"try_statement":                          elTry,
			"catch_clause":                           elCatch,
			"finally_clause":                         elFinally,
			"echo_statement":                         "echo",
			"string":                                 elString,
			"encapsed_string":                        elString,
			"heredoc":                                elString,
			"integer":                                elNumber,
			"float":                                  elNumber,
			"boolean":                                elBool,
			"null":                                   elNull,
			"array_creation_expression":              elArray,
		}),
		Skip:    set("php_tag", "text_interpolation"),
		Flatten: set("declaration_list", "expression_statement", "parenthesized_expression", "switch_block", "enum_declaration_list"),
		Operators: withOperators(
			"===", "!==", "<>", "<=>", "**", "**=", ".", ".=", "??", "??=",
			"and", "or", "xor", "instanceof",
		),
		OperatorParents: set(
			"binary_expression", "unary_op_expression", "assignment_expression",
			"augmented_assignment_expression", "update_expression",
		),
		ModifierKinds: set(
			"visibility_modifier", "static_modifier", "abstract_modifier",
			"final_modifier", "readonly_modifier", "var_modifier",
		),
		Identifiers: set("name", "variable_name"),
		TypeFields:  set("type", "return_type"),
		ExtractName: set("qualified_name", "namespace_name"),
		Atomic:      set("string", "encapsed_string", "heredoc", "comment"),
		Types: map[string]rules.Shape{
			"primitive_type": rules.ShapeSimple,
			"named_type":     rules.ShapeSimple,
			"union_type":     rules.ShapeSimple,
			"optional_type":  rules.ShapeNullable,
		},
		IdentifierContext: func(chain rules.Chain) bool {
			return chain.Within(phpNamespaces)
		},
	})
}
