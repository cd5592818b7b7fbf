package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "bash",
		Grammar:    "bash",
		Extensions: []string{".sh", ".bash"},
		Aliases:    []string{"Shell", "sh", "zsh"},
		Rename: map[string]string{
			"program":               elUnit,
			"function_definition":   elFunction,
			"command":               "command",
			"declaration_command":   elVariable,
			"variable_assignment":   elAssign,
			"if_statement":          elIf,
			"elif_clause":           elElif,
			"else_clause":           elElse,
			"for_statement":         elFor,
			"c_style_for_statement": elFor,
			"while_statement":       elWhile,
			"case_statement":        elSwitch,
			"case_item":             elCase,
			"compound_statement":    elBlock,
			"do_group":              elBlock,
			"subshell":              "subshell",
			"pipeline":              "pipeline",
			"list":                  "list",
			"redirected_statement":  "redirect",
			"file_redirect":         "redirect",
			"heredoc_redirect":      "redirect",
			"command_substitution":  "substitution",
			"expansion":             "expansion",
			"simple_expansion":      "expansion",
			"string":                elString,
			"raw_string":            elString,
			"ansi_c_string":         elString,
			"heredoc_body":          elString,
			"number":                elNumber,
			"comment":               elComment,
			"test_command":          "test",
			"binary_expression":     elBinary,
			"unary_expression":      elUnary,
		},
		Operators:       set("&&", "||", "|", "|&", "==", "!=", "=~", "<", ">", "-eq", "-ne", "-lt", "-gt", "-le", "-ge", "-z", "-n", "-f", "-d", "-e", "!"),
		OperatorParents: set("list", "pipeline", "binary_expression", "unary_expression"),
		Modifiers:       set("local", "export", "readonly", "declare", "typeset"),
		Identifiers:     set("command_name", "variable_name"),
		Atomic:          set("string", "raw_string", "ansi_c_string", "heredoc_body", "comment"),
	})
}
