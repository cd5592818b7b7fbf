package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

var scalaNamespaces = set("package_clause", "import_declaration") //nolint:gochecknoglobals // table data.

func init() {
	rules.Register(&rules.Table{
		Language:   "scala",
		Grammar:    "scala",
		Extensions: []string{".scala", ".sc"},
		Aliases:    []string{"Scala"},
		Rename: merge(commonLiterals, map[string]string{
			"compilation_unit":               elUnit,
			"package_clause":                 elPackage,
			"import_declaration":             elImport,
			"class_definition":               elClass,
			"object_definition":              elObject,
			"trait_definition":               elTrait,
			"enum_definition":                elEnum,
			"function_definition":            elFunction,
			"function_declaration":           elFunction,
			"val_definition":                 elVariable,
			"var_definition":                 elVariable,
			"val_declaration":                elVariable,
			"type_definition":                elTypeAlias,
			"parameters":                     elParameters,
			"parameter":                      elParameter,
			"class_parameters":               elParameters,
			"class_parameter":                elParameter,
			"type_parameters":                elTypeParams,
			"type_arguments":                 rules.ElementArguments,
			"extends_clause":                 "extends",
			"annotation":                     elAnnotation,
			"call_expression":                elCall,
			"arguments":                      elArgs,
			"field_expression":               elMember,
			"assignment_expression":          elAssign,
			"infix_expression":               elBinary,
			"prefix_expression":              elUnary,
			"operator_identifier":            "operator",
			"lambda_expression":              elLambda,
			"instance_expression":            elNew,
			"block":                          elBlock,
			"if_expression":                  elIf,
			"match_expression":               elMatch,
			"case_clause":                    elCase,
			"for_expression":                 elFor,
			"while_expression":               elWhile,
			"do_while_expression":            elDo,
			"return_expression":              elReturn,
			"throw_expression":               elThrow,
			"try_expression":                 elTry,
			"catch_clause":                   elCatch,
			"finally_clause":                 elFinally,
			"string":                         elString,
			"interpolated_string_expression": elString,
			"character_literal":              elChar,
			"integer_literal":                elNumber,
			"floating_point_literal":         elNumber,
			"boolean_literal":                elBool,
			"null_literal":                   elNull,
		}),
		Flatten:          set("template_body", "case_block", "parenthesized_expression", "enum_body"),
		Operators:        set("="),
		OperatorParents:  set("assignment_expression"),
		Modifiers:        set("abstract", "final", "sealed", "implicit", "lazy", "override", "private", "protected"),
		ModifierWrappers: set("modifiers"),
		ModifierKinds:    set("access_modifier"),
		Identifiers:      set("identifier"),
		TypeIdentifiers:  set("type_identifier"),
		TypeFields:       set("type", "return_type"),
		ExtractName:      set("stable_identifier", "stable_type_identifier"),
		Atomic:           set("string", "interpolated_string_expression", "character_literal", "comment", "block_comment", "operator_identifier"),
		Types: map[string]rules.Shape{
			"generic_type":  rules.ShapeGeneric,
			"compound_type": rules.ShapeSimple,
			"function_type": rules.ShapeSimple,
		},
		IdentifierContext: func(chain rules.Chain) bool {
			return chain.Within(scalaNamespaces)
		},
	})
}
