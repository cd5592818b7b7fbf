package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

// csharpTypeContexts are raw parents whose identifiers name types even
// without a type field.
var csharpTypeContexts = set( //nolint:gochecknoglobals // table data.
	"base_list", "type_argument_list", "type_parameter_constraint", "type_constraint",
)

var csharpNamespaces = set("using_directive", "namespace_declaration", "file_scoped_namespace_declaration") //nolint:gochecknoglobals // table data.

func init() {
	t := &rules.Table{
		Language:   "csharp",
		Grammar:    "c_sharp",
		Extensions: []string{".cs", ".csx"},
		Aliases:    []string{"C#", "cs", "c_sharp"},
		Rename: merge(commonLiterals, map[string]string{
			"compilation_unit":                  elUnit,
			"using_directive":                   elImport,
			"namespace_declaration":             elNamespace,
			"file_scoped_namespace_declaration": elNamespace,
			"class_declaration":                 elClass,
			"interface_declaration":             elInterface,
			"struct_declaration":                elStruct,
			"enum_declaration":                  elEnum,
			"record_declaration":                elRecord,
			"enum_member_declaration":           elEnumMember,
			"delegate_declaration":              "delegate",
			"method_declaration":                elMethod,
			"constructor_declaration":           elConstructor,
			"destructor_declaration":            "destructor",
			"operator_declaration":              "operator",
			"indexer_declaration":               "indexer",
			"local_function_statement":          elFunction,
			"property_declaration":              elProperty,
			"field_declaration":                 elField,
			"event_field_declaration":           "event",
			"accessor_list":                     "accessors",
			"accessor_declaration":              "accessor",
			"variable_declaration":              elVariable,
			"variable_declarator":               elDeclarator,
			"parameter_list":                    elParameters,
			"parameter":                         elParameter,
			"type_parameter_list":               elTypeParams,
			"type_parameter":                    elTypeParam,
			"type_argument_list":                rules.ElementArguments,
			"attribute_list":                    "attributes",
			"attribute":                         elAttribute,
			"base_list":                         "extends",
			"invocation_expression":             elCall,
			"argument_list":                     elArgs,
			"argument":                          elArg,
			"member_access_expression":          elMember,
			"element_access_expression":         elIndex,
			"object_creation_expression":        elNew,
			"assignment_expression":             elAssign,
			"binary_expression":                 elBinary,
			"prefix_unary_expression":           elUnary,
			"postfix_unary_expression":          elUnary,
			"conditional_expression":            elTernary,
			"cast_expression":                   elCast,
			"lambda_expression":                 elLambda,
			"await_expression":                  elAwait,
			"this_expression":                   elThis,
			"block":                             elBlock,
			"if_statement":                      elIf,
			"for_statement":                     elFor,
			"foreach_statement":                 elForeach,
			"while_statement":                   elWhile,
			"do_statement":                      elDo,
			"switch_statement":                  elSwitch,
			"switch_section":                    elCase,
			"return_statement":                  elReturn,
			"break_statement":                   elBreak,
			"continue_statement":                elContinue,
			"throw_statement":                   elThrow,
			"try_statement":                     elTry,
			"catch_clause":                      elCatch,
			"finally_clause":                    elFinally,
			"yield_statement":                   elYield,
			"using_statement":                   "using",
			"lock_statement":                    "lock",
			"string_literal":                    elString,
			"verbatim_string_literal":           elString,
			"raw_string_literal":                elString,
			"interpolated_string_expression":    elString,
			"character_literal":                 elChar,
			"integer_literal":                   elNumber,
			"real_literal":                      elNumber,
			"boolean_literal":                   elBool,
			"null_literal":                      elNull,
		}),
		Flatten: set(
			"declaration_list", "enum_member_declaration_list",
			"local_declaration_statement", "expression_statement",
			"parenthesized_expression", "array_rank_specifier",
			"switch_body",
		),
		Operators: withOperators("??", "??="),
		OperatorParents: set(
			"binary_expression", "assignment_expression",
			"prefix_unary_expression", "postfix_unary_expression",
		),
		ModifierKinds: set("modifier", "parameter_modifier"),
		Identifiers:   set("identifier"),
		TypeFields:    set("type", "returns"),
		ExtractName:   set("qualified_name"),
		Atomic: set(
			"string_literal", "verbatim_string_literal", "raw_string_literal",
			"interpolated_string_expression", "character_literal", "comment",
		),
		Types: map[string]rules.Shape{
			"predefined_type": rules.ShapeSimple,
			"tuple_type":      rules.ShapeSimple,
			"nullable_type":   rules.ShapeNullable,
			"array_type":      rules.ShapeArray,
			"generic_name":    rules.ShapeGeneric,
			"pointer_type":    rules.ShapePointer,
			"ref_type":        rules.ShapeReference,
		},
		IdentifierContext: func(chain rules.Chain) bool {
			return chain.Within(csharpNamespaces)
		},
	}

	t.ClassifyIdentifier = func(id rules.Identifier, chain rules.Chain) rules.Role {
		if t.ExtractName.Has(id.Kind) {
			return t.DefaultRole(id, chain)
		}

		if csharpTypeContexts.Has(chain.Parent().Kind) {
			return rules.RoleType
		}

		return t.DefaultRole(id, chain)
	}

	rules.Register(t)
}
