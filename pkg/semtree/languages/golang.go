package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "go",
		Grammar:    "go",
		Extensions: []string{".go"},
		Aliases:    []string{"Go", "golang"},
		Rename: merge(commonLiterals, map[string]string{
			"source_file":                    elUnit,
			"package_clause":                 elPackage,
			"import_declaration":             elImport,
			"import_spec":                    "importspec",
			"function_declaration":           elFunction,
			"method_declaration":             elMethod,
			"method_elem":                    elMethod,
			"method_spec":                    elMethod,
			"type_spec":                      "typespec",
			"type_alias":                     elTypeAlias,
			"struct_type":                    elStruct,
			"interface_type":                 elInterface,
			"field_declaration":              elField,
			"parameter_list":                 elParameters,
			"parameter_declaration":          elParameter,
			"variadic_parameter_declaration": elParameter,
			"type_parameter_list":            elTypeParams,
			"type_parameter_declaration":     elTypeParam,
			"type_arguments":                 rules.ElementArguments,
			"var_declaration":                elVariable,
			"var_spec":                       elDeclarator,
			"const_declaration":              elConst,
			"const_spec":                     elDeclarator,
			"short_var_declaration":          elAssign,
			"assignment_statement":           elAssign,
			"call_expression":                elCall,
			"argument_list":                  elArgs,
			"selector_expression":            elMember,
			"index_expression":               elIndex,
			"slice_expression":               elIndex,
			"composite_literal":              "composite",
			"literal_value":                  "elements",
			"keyed_element":                  "pair",
			"func_literal":                   elLambda,
			"binary_expression":              elBinary,
			"unary_expression":               elUnary,
			"inc_statement":                  elUnary,
			"dec_statement":                  elUnary,
			"type_assertion_expression":      elCast,
			"type_conversion_expression":     elCast,
			"block":                          elBlock,
			"if_statement":                   elIf,
			"for_statement":                  elFor,
			"range_clause":                   "range",
			"expression_switch_statement":    elSwitch,
			"type_switch_statement":          elSwitch,
			"select_statement":               "select",
			"expression_case":                elCase,
			"type_case":                      elCase,
			"communication_case":             elCase,
			"default_case":                   elDefault,
			"return_statement":               elReturn,
			"break_statement":                elBreak,
			"continue_statement":             elContinue,
			"go_statement":                   "go",
			"defer_statement":                "defer",
			"send_statement":                 "send",
			"labeled_statement":              "labeled",
			"interpreted_string_literal":     elString,
			"raw_string_literal":             elString,
			"rune_literal":                   elChar,
			"int_literal":                    elNumber,
			"float_literal":                  elNumber,
			"imaginary_literal":              elNumber,
			"nil":                            elNull,
			"iota":                           "iota",
		}),
		Flatten: set(
			"type_declaration", "field_declaration_list", "expression_statement",
			"parenthesized_expression", "expression_list", "import_spec_list",
			"var_spec_list", "type_elem",
		),
		Operators: withOperators("&^", "&^=", ":=", "<-"),
		OperatorParents: set(
			"binary_expression", "unary_expression", "assignment_statement",
			"short_var_declaration", "inc_statement", "dec_statement",
		),
		Identifiers:     set("identifier", "field_identifier", "package_identifier", "label_name"),
		TypeIdentifiers: set("type_identifier", "qualified_type"),
		TypeFields:      set("type", "result", "receiver_type"),
		ExtractName:     set("qualified_type"),
		Atomic:          set("interpreted_string_literal", "raw_string_literal", "rune_literal", "comment"),
		Types: map[string]rules.Shape{
			"pointer_type": rules.ShapePointer,
			"slice_type":   rules.ShapeArray,
			"array_type":   rules.ShapeArray,
			"generic_type": rules.ShapeGeneric,
			"map_type":     rules.ShapeGeneric,
		},
	})
}
