package sdb

import (
	"regexp"
)

// TokenKind is the lexical category of a matched substring.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TK_NOTYPE = TokenKind(0)  // space
	TK_NUM    = TokenKind(1)  // num
	TK_HEX    = TokenKind(2)  // hex
	TK_REG    = TokenKind(3)  // reg
	TK_NEG    = TokenKind(4)  // neg
	TK_PLUS   = TokenKind(5)  // +
	TK_MINUS  = TokenKind(6)  // -
	TK_STAR   = TokenKind(7)  // *
	TK_SLASH  = TokenKind(8)  // /
	TK_LPAREN = TokenKind(9)  // (
	TK_RPAREN = TokenKind(10) // )
)

// Token is a single lexed element of an expression.
type Token struct {
	Kind TokenKind
	Text string // Literal text for num and hex tokens, register name for reg tokens.
}

func (token Token) String() string {
	if len(token.Text) != 0 {
		return token.Text
	}
	return token.Kind.String()
}

// The lexer tries the rules in declaration order at the current scan
// position, and the first rule that matches a prefix wins. Order is
// load-bearing: the hex rule must come before the decimal rule, or
// "0x1A" lexes as "0" "x1A".
var rules = []struct {
	re   *regexp.Regexp
	kind TokenKind
}{
	{regexp.MustCompile(`^[ \t]+`), TK_NOTYPE},
	{regexp.MustCompile(`^0x[0-9a-fA-F]+`), TK_HEX},
	{regexp.MustCompile(`^[0-9]+`), TK_NUM},
	{regexp.MustCompile(`^\+`), TK_PLUS},
	{regexp.MustCompile(`^-`), TK_MINUS},
	{regexp.MustCompile(`^\*`), TK_STAR},
	{regexp.MustCompile(`^/`), TK_SLASH},
	{regexp.MustCompile(`^\(`), TK_LPAREN},
	{regexp.MustCompile(`^\)`), TK_RPAREN},
	{regexp.MustCompile(`^\$[a-zA-Z][0-9a-zA-Z]*`), TK_REG},
}

// Tokenize splits an expression into a token sequence. Whitespace is
// skipped, every other byte must be claimed by a rule. On failure the
// partial token sequence is discarded and the returned error carries
// the offending position.
func Tokenize(expr string) (tokens []Token, err error) {
	position := 0
	for position < len(expr) {
		matched := false
		for _, rule := range rules {
			loc := rule.re.FindStringIndex(expr[position:])
			if loc == nil {
				continue
			}
			text := expr[position : position+loc[1]]
			position += loc[1]
			matched = true

			if rule.kind == TK_NOTYPE {
				break
			}

			token := Token{Kind: rule.kind}
			switch rule.kind {
			case TK_NUM, TK_HEX:
				token.Text = text
			case TK_REG:
				// Drop the '$' sigil, keep the register name.
				token.Text = text[1:]
			}
			tokens = append(tokens, token)
			break
		}

		if !matched {
			err = ErrNoMatch{Position: position, Expr: expr}
			tokens = nil
			return
		}
	}

	markNegations(tokens)

	return
}

// markNegations reclassifies a binary minus as unary negation when it is
// the first token, or directly follows an operator or an open
// parenthesis. Runs in place, once, before evaluation.
func markNegations(tokens []Token) {
	for n := range tokens {
		if tokens[n].Kind != TK_MINUS {
			continue
		}
		if n == 0 {
			tokens[n].Kind = TK_NEG
			continue
		}
		switch tokens[n-1].Kind {
		case TK_PLUS, TK_MINUS, TK_STAR, TK_SLASH, TK_LPAREN:
			tokens[n].Kind = TK_NEG
		}
	}
}
