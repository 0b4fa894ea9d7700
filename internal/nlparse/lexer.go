// Package nlparse is the upstream tokenizer/parser that spec §1 names an
// external collaborator of the core: it turns a raw command sentence into
// one or more parsetree.Parse trees. It is grounded on the ictiobus-based
// lexer the generated TunaScript frontend builds in
// tunascript/fe/lexer.ict.go (RegisterClass/AddPattern/LexAs shape), and on
// internal/game/parser.go's token-dispatch recursive-descent style for the
// grammar layered on top.
package nlparse

import (
	"strings"

	"github.com/dekarrin/ictiobus"
	"github.com/dekarrin/ictiobus/lex"
)

// Token classes recognized by the blocks-world command grammar. Unlike the
// generated TunaScript lexer, this grammar is small and fixed, so the
// classes are declared directly rather than code-generated from a .md
// grammar file.
var (
	classWord = lex.NewTokenClass("word", "word")
)

const lexState = ""

// New builds the ictiobus lexer for blocks-world commands: one token class
// ("word", any run of letters) plus whitespace/punctuation discarded.
// Keyword recognition (verbs, quantifiers, relations, forms, sizes) happens
// in the parser by comparing lowercased word lexemes, the same division of
// labor tunascript.go draws between its lexer and hook-driven parser.
func New() lex.Lexer {
	lx := ictiobus.NewLexer()

	lx.RegisterClass(classWord, lexState)
	lx.AddPattern(`[A-Za-z]+`, lex.LexAs(classWord.ID()), lexState, 0)
	lx.AddPattern(`[\s,.!?]+`, lex.Discard(), lexState, 0)

	return lx
}

// Tokenize lexes sentence into a flat slice of lowercased words, discarding
// punctuation and whitespace. The parser in this package operates on this
// slice rather than pulling tokens one at a time from the lex.TokenStream,
// since the blocks-world grammar needs unbounded lookahead to try more than
// one attachment of a trailing relative clause.
func Tokenize(sentence string) ([]string, error) {
	lx := New()
	stream, err := lx.Lex(strings.NewReader(sentence))
	if err != nil {
		return nil, err
	}

	var words []string
	for stream.HasNext() {
		tok := stream.Next()
		words = append(words, strings.ToLower(tok.Lexeme()))
	}
	return words, nil
}
