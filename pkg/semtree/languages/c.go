package languages

import (
	"maps"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

var cRename = merge(commonLiterals, map[string]string{ //nolint:gochecknoglobals // table data.
	"translation_unit":       elUnit,
	"preproc_include":        elImport,
	"preproc_def":            "define",
	"preproc_function_def":   "define",
	"preproc_ifdef":          "ifdef",
	"preproc_if":             "ifdef",
	"function_definition":    elFunction,
	"declaration":            elVariable,
	"init_declarator":        elDeclarator,
	"parameter_list":         elParameters,
	"parameter_declaration":  elParameter,
	"struct_specifier":       elStruct,
	"union_specifier":        "union",
	"enum_specifier":         elEnum,
	"enumerator":             elEnumMember,
	"field_declaration":      elField,
	"type_definition":        "typedef",
	"call_expression":        elCall,
	"argument_list":          elArgs,
	"field_expression":       elMember,
	"subscript_expression":   elIndex,
	"assignment_expression":  elAssign,
	"binary_expression":      elBinary,
	"unary_expression":       elUnary,
	"update_expression":      elUnary,
	"pointer_expression":     elUnary,
	"conditional_expression": elTernary,
	"cast_expression":        elCast,
	"sizeof_expression":      "sizeof",
	"initializer_list":       "initializer",
	"compound_statement":     elBlock,
	"if_statement":           elIf,
	"else_clause":            elElse,
	"for_statement":          elFor,
	"while_statement":        elWhile,
	"do_statement":           elDo,
	"switch_statement":       elSwitch,
	"case_statement":         elCase,
	"return_statement":       elReturn,
	"break_statement":        elBreak,
	"continue_statement":     elContinue,
	"goto_statement":         "goto",
	"labeled_statement":      "labeled",
	"string_literal":         elString,
	"system_lib_string":      elString,
	"char_literal":           elChar,
	"number_literal":         elNumber,
	"null":                   elNull,
})

var cFlatten = set( //nolint:gochecknoglobals // table data.
	"function_declarator", "pointer_declarator", "array_declarator",
	"field_declaration_list", "enumerator_list", "expression_statement",
	"parenthesized_expression", "abstract_pointer_declarator",
)

func cTable(language, grammar string, exts, aliases []string) *rules.Table {
	return &rules.Table{
		Language:        language,
		Grammar:         grammar,
		Extensions:      exts,
		Aliases:         aliases,
		Rename:          cRename,
		Flatten:         cFlatten,
		Operators:       withOperators(),
		OperatorParents: set("binary_expression", "unary_expression", "update_expression", "assignment_expression", "pointer_expression"),
		ModifierKinds:   set("storage_class_specifier", "type_qualifier"),
		Identifiers:     set("identifier", "field_identifier", "statement_identifier"),
		TypeIdentifiers: set("type_identifier"),
		Atomic:          set("string_literal", "system_lib_string", "char_literal", "comment", "preproc_arg"),
		Types: map[string]rules.Shape{
			"primitive_type":       rules.ShapeSimple,
			"sized_type_specifier": rules.ShapeSimple,
			"type_descriptor":      rules.ShapeSimple,
		},
	}
}

func init() {
	rules.Register(cTable("c", "c", []string{".c", ".h"}, []string{"C"}))

	cpp := cTable("cpp", "cpp", []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}, []string{"C++", "c++"})
	cpp.Rename = merge(cRename, map[string]string{
		"class_specifier":                elClass,
		"namespace_definition":           elNamespace,
		"using_declaration":              elImport,
		"alias_declaration":              elTypeAlias,
		"template_declaration":           "template",
		"template_parameter_list":        elTypeParams,
		"type_parameter_declaration":     elTypeParam,
		"template_argument_list":         rules.ElementArguments,
		"base_class_clause":              "extends",
		"new_expression":                 elNew,
		"delete_expression":              "delete",
		"lambda_expression":              elLambda,
		"this":                           elThis,
		"nullptr":                        elNull,
		"throw_statement":                elThrow,
		"try_statement":                  elTry,
		"catch_clause":                   elCatch,
		"for_range_loop":                 elForeach,
		"optional_parameter_declaration": elParameter,
		"raw_string_literal":             elString,
		"field_initializer_list":         "initializers",
	})
	cpp.Flatten = maps.Clone(cFlatten)
	cpp.Flatten["declaration_list"] = struct{}{}
	cpp.Flatten["reference_declarator"] = struct{}{}
	cpp.Operators = withOperators("<=>", "->*", ".*", "and", "or", "not")
	cpp.ModifierKinds = set("storage_class_specifier", "type_qualifier", "access_specifier", "virtual", "virtual_specifier", "explicit_function_specifier")
	cpp.Modifiers = set("virtual", "inline", "friend")
	cpp.Identifiers = set("identifier", "field_identifier", "statement_identifier", "namespace_identifier")
	cpp.ExtractName = set("qualified_identifier", "nested_namespace_specifier")
	cpp.Atomic = set("string_literal", "raw_string_literal", "system_lib_string", "char_literal", "comment", "preproc_arg")
	cpp.Types = map[string]rules.Shape{
		"primitive_type":       rules.ShapeSimple,
		"sized_type_specifier": rules.ShapeSimple,
		"type_descriptor":      rules.ShapeSimple,
		"template_type":        rules.ShapeGeneric,
		"auto":                 rules.ShapeSimple,
	}
	cpp.ClassifyIdentifier = func(id rules.Identifier, chain rules.Chain) rules.Role {
		// A qualified name is a type when the declaration's type slot holds
		// it; function and namespace names stay names.
		if id.Kind == "qualified_identifier" && id.Field != "type" {
			return rules.RoleName
		}

		return cpp.DefaultRole(id, chain)
	}

	rules.Register(cpp)
}
