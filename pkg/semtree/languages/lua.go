package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "lua",
		Grammar:    "lua",
		Extensions: []string{".lua"},
		Aliases:    []string{"Lua"},
		Rename: merge(commonLiterals, map[string]string{
			"chunk":                    elUnit,
			"function_declaration":     elFunction,
			"function_definition":      elLambda,
			"parameters":               elParameters,
			"variable_declaration":     elVariable,
			"assignment_statement":     elAssign,
			"function_call":            elCall,
			"arguments":                elArgs,
			"dot_index_expression":     elMember,
			"method_index_expression":  elMember,
			"bracket_index_expression": elIndex,
			"binary_expression":        elBinary,
			"unary_expression":         elUnary,
			"block":                    elBlock,
			"if_statement":             elIf,
			"elseif_statement":         elElif,
			"else_statement":           elElse,
			"for_statement":            elFor,
			"while_statement":          elWhile,
			"repeat_statement":         elDo,
			"do_statement":             elBlock,
			"return_statement":         elReturn,
			"break_statement":          elBreak,
			"goto_statement":           "goto",
			"table_constructor":        elTable,
			"field":                    elField,
			"string":                   elString,
			"number":                   elNumber,
			"nil":                      elNull,
		}),
		Flatten:         set("expression_list", "variable_list", "parenthesized_expression"),
		Operators:       withOperators("..", "//", "~=", "and", "or", "not", "#"),
		OperatorParents: set("binary_expression", "unary_expression", "assignment_statement"),
		Modifiers:       set("local"),
		Identifiers:     set("identifier"),
		Atomic:          set("string", "comment"),
	})
}
