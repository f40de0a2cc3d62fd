package qcir

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes the QCIR-subset source: an optional "#QCIR-G..." header
// (elided like a comment), bare identifiers (which also cover the
// "forall"/"exists"/"and"/"or"/"output" keywords, matched by value the way
// grammar.go's kanso counterpart matches "module"/"struct" against Ident),
// and the punctuation the grammar needs.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Header", `#QCIR-G[0-9]*[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Punctuation", `[(),=-]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
