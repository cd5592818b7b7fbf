package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "ruby",
		Grammar:    "ruby",
		Extensions: []string{".rb", ".rake", ".gemspec"},
		Aliases:    []string{"Ruby", "rb"},
		Rename: merge(commonLiterals, map[string]string{
			"program":             elUnit,
			"class":               elClass,
			"singleton_class":     elClass,
			"module":              elModule,
			"method":              elMethod,
			"singleton_method":    elMethod,
			"method_parameters":   elParameters,
			"lambda_parameters":   elParameters,
			"block_parameters":    elParameters,
			"optional_parameter":  elParameter,
			"keyword_parameter":   elParameter,
			"splat_parameter":     elParameter,
			"block_parameter":     elParameter,
			"superclass":          "extends",
			"call":                elCall,
			"argument_list":       elArgs,
			"element_reference":   elIndex,
			"assignment":          elAssign,
			"operator_assignment": elAssign,
			"binary":              elBinary,
			"unary":               elUnary,
			"conditional":         elTernary,
			"lambda":              elLambda,
			"do_block":            elBlock,
			"block":               elBlock,
			"if":                  elIf,
			"unless":              "unless",
			"if_modifier":         elIf,
			"unless_modifier":     "unless",
			"elsif":               elElif,
			"else":                elElse,
			"while":               elWhile,
			"until":               "until",
			"while_modifier":      elWhile,
			"for":                 elFor,
			"case":                elSwitch,
			"when":                elCase,
			"return":              elReturn,
			"break":               elBreak,
			"next":                elContinue,
			"yield":               elYield,
			"begin":               elTry,
			"rescue":              elCatch,
			"ensure":              elFinally,
			"string":              elString,
			"heredoc_body":        elString,
			"symbol":              "symbol",
			"simple_symbol":       "symbol",
			"integer":             elNumber,
			"float":               elNumber,
			"nil":                 elNull,
			"self":                elThis,
			"array":               elArray,
			"hash":                "hash",
			"pair":                "pair",
			"regex":               "regex",
		}),
		Flatten:   set("body_statement", "parenthesized_statements", "then"),
		Operators: withOperators("**", "===", "<=>", "=~", "!~", "and", "or", "not", "||=", "&&=", "**="),
		OperatorParents: set(
			"binary", "unary", "assignment", "operator_assignment",
		),
		Identifiers:     set("identifier", "instance_variable", "class_variable", "global_variable"),
		TypeIdentifiers: set("constant"),
		ExtractName:     set("scope_resolution"),
		Atomic:          set("string", "heredoc_body", "simple_symbol", "regex", "comment"),
		ClassifyIdentifier: func(id rules.Identifier, chain rules.Chain) rules.Role {
			// Constants name the class or module they define and refer to
			// types everywhere else.
			if id.Field == "name" {
				return rules.RoleName
			}

			if id.Kind == "constant" || id.Kind == "scope_resolution" {
				return rules.RoleType
			}

			return rules.RoleName
		},
	})
}
