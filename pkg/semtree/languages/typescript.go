package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

// ecmaRename is shared by JavaScript, TypeScript and TSX.
var ecmaRename = merge(commonLiterals, map[string]string{ //nolint:gochecknoglobals // table data.
	"program":                         elUnit,
	"import_statement":                elImport,
	"export_statement":                "export",
	"class_declaration":               elClass,
	"class":                           elClass,
	"abstract_class_declaration":      elClass,
	"interface_declaration":           elInterface,
	"enum_declaration":                elEnum,
	"type_alias_declaration":          elTypeAlias,
	"method_definition":               elMethod,
	"abstract_method_signature":       elMethod,
	"method_signature":                elMethod,
	"public_field_definition":         elField,
	"field_definition":                elField,
	"property_signature":              elProperty,
	"function_declaration":            elFunction,
	"generator_function_declaration":  elFunction,
	"function_expression":             elFunction,
	"arrow_function":                  elLambda,
	"formal_parameters":               elParameters,
	"required_parameter":              elParameter,
	"optional_parameter":              elParameter,
	"type_parameters":                 elTypeParams,
	"type_parameter":                  elTypeParam,
	"type_arguments":                  rules.ElementArguments,
	"lexical_declaration":             elVariable,
	"variable_declaration":            elVariable,
	"variable_declarator":             elDeclarator,
	"decorator":                       elDecorator,
	"class_heritage":                  "extends",
	"call_expression":                 elCall,
	"arguments":                       elArgs,
	"member_expression":               elMember,
	"subscript_expression":            elIndex,
	"new_expression":                  elNew,
	"assignment_expression":           elAssign,
	"augmented_assignment_expression": elAssign,
	"binary_expression":               elBinary,
	"unary_expression":                elUnary,
	"update_expression":               elUnary,
	"ternary_expression":              elTernary,
	"await_expression":                elAwait,
	"as_expression":                   elCast,
	"this":                            elThis,
	"statement_block":                 elBlock,
	"if_statement":                    elIf,
	"else_clause":                     elElse,
	"for_statement":                   elFor,
	"for_in_statement":                elForeach,
	"while_statement":                 elWhile,
	"do_statement":                    elDo,
	"switch_statement":                elSwitch,
	"switch_case":                     elCase,
	"switch_default":                  elDefault,
	"return_statement":                elReturn,
	"break_statement":                 elBreak,
	"continue_statement":              elContinue,
	"throw_statement":                 elThrow,
	"try_statement":                   elTry,
	"catch_clause":                    elCatch,
	"finally_clause":                  elFinally,
	"yield_expression":                elYield,
	"string":                          elString,
	"template_string":                 elString,
	"number":                          elNumber,
	"null":                            elNull,
	"object":                          elObject,
	"pair":                            "pair",
	"array":                           elArray,
	"regex":                           "regex",
	"jsx_element":                     "jsx",
	"jsx_self_closing_element":        "jsx",
	"jsx_attribute":                   elAttribute,
	"jsx_expression":                  "jsxexpression",
})

var ecmaFlatten = set( //nolint:gochecknoglobals // table data.
	"class_body", "interface_body", "object_type", "enum_body",
	"expression_statement", "parenthesized_expression",
	"switch_body", "type_annotation",
)

var ecmaTypes = map[string]rules.Shape{ //nolint:gochecknoglobals // table data.
	"predefined_type": rules.ShapeSimple,
	"literal_type":    rules.ShapeSimple,
	"union_type":      rules.ShapeSimple,
	"generic_type":    rules.ShapeGeneric,
	"array_type":      rules.ShapeArray,
}

func ecmaTable(language, grammar string, exts, aliases []string, typed bool) *rules.Table {
	t := &rules.Table{
		Language:   language,
		Grammar:    grammar,
		Extensions: exts,
		Aliases:    aliases,
		Rename:     ecmaRename,
		Flatten:    ecmaFlatten,
		Operators:  withOperators("===", "!==", "**", "**=", "??", "??=", "&&=", "||=", ">>>", ">>>=", "instanceof", "in", "typeof", "void", "delete"),
		OperatorParents: set(
			"binary_expression", "assignment_expression",
			"augmented_assignment_expression", "unary_expression",
			"update_expression",
		),
		Modifiers:   set("static", "async", "get", "set", "readonly", "abstract", "declare", "override"),
		Identifiers: set("identifier", "property_identifier", "shorthand_property_identifier", "private_property_identifier", "statement_identifier"),
		Atomic:      set("string", "template_string", "regex", "comment"),
	}

	if typed {
		t.ModifierKinds = set("accessibility_modifier", "override_modifier")
		t.TypeIdentifiers = set("type_identifier")
		t.Types = ecmaTypes
	}

	return t
}

func init() {
	rules.Register(ecmaTable("javascript", "javascript",
		[]string{".js", ".mjs", ".cjs", ".jsx"}, []string{"JavaScript", "js", "node"}, false))
	rules.Register(ecmaTable("typescript", "typescript",
		[]string{".ts", ".mts", ".cts"}, []string{"TypeScript", "ts"}, true))
	rules.Register(ecmaTable("tsx", "tsx",
		[]string{".tsx"}, []string{"TSX"}, true))
}
