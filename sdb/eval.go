package sdb

import (
	"errors"
	"strconv"
)

// Registers resolves register names to values for expression evaluation.
type Registers interface {
	Resolve(name string) (value uint32, err error)
}

// Evaluator evaluates debugger expressions against a register file.
type Evaluator struct {
	Registers Registers // Register resolver, may be nil.
}

// Evaluate tokenizes and evaluates a whole expression, returning its
// value as a 32-bit machine word.
func (ev *Evaluator) Evaluate(expr string) (value uint32, err error) {
	tokens, err := Tokenize(expr)
	if err != nil {
		return
	}

	value, err = ev.eval(tokens, 0, len(tokens)-1)

	return
}

// checkParens reports whether [p,q] is a single balanced parenthesis
// pair spanning the whole range. The depth may return to zero only at q,
// so "(1)+(2)" does not qualify.
func checkParens(tokens []Token, p, q int) bool {
	if tokens[p].Kind != TK_LPAREN || tokens[q].Kind != TK_RPAREN {
		return false
	}

	depth := 0
	for i := p; i <= q; i++ {
		switch tokens[i].Kind {
		case TK_LPAREN:
			depth++
		case TK_RPAREN:
			depth--
		}
		if depth == 0 && i < q {
			return false
		}
	}

	return depth == 0
}

// findMajor locates the operator the range splits at: the rightmost
// top-level operator of the loosest precedence class. Unary negation
// binds tightest, then multiplicative, then additive operators. Returns
// -1 when the parentheses do not balance or no top-level operator
// exists.
func findMajor(tokens []Token, p, q int) (major int) {
	major = -1
	par := 0
	class := -1

	for i := p; i <= q; i++ {
		switch tokens[i].Kind {
		case TK_LPAREN:
			par++
			continue
		case TK_RPAREN:
			if par == 0 {
				return -1
			}
			par--
			continue
		}

		if par > 0 {
			continue
		}

		var tmp int
		switch tokens[i].Kind {
		case TK_NEG:
			tmp = 0
		case TK_STAR, TK_SLASH:
			tmp = 1
		case TK_PLUS, TK_MINUS:
			tmp = 2
		default:
			continue
		}

		if tmp >= class {
			class = tmp
			major = i
		}
	}

	if par != 0 {
		return -1
	}

	return
}

// eval recursively evaluates the inclusive token range [p,q].
func (ev *Evaluator) eval(tokens []Token, p, q int) (value uint32, err error) {
	if p > q {
		err = ErrMalformed
		return
	}

	if p == q {
		token := tokens[p]
		switch token.Kind {
		case TK_NUM:
			var v64 uint64
			v64, err = strconv.ParseUint(token.Text, 10, 32)
			if err != nil {
				err = errors.Join(ErrMalformed, err)
				return
			}
			value = uint32(v64)
		case TK_HEX:
			var v64 uint64
			v64, err = strconv.ParseUint(token.Text[2:], 16, 32)
			if err != nil {
				err = errors.Join(ErrMalformed, err)
				return
			}
			value = uint32(v64)
		case TK_REG:
			if ev.Registers == nil {
				err = ErrRegisterUnknown(token.Text)
				return
			}
			value, err = ev.Registers.Resolve(token.Text)
			if err != nil {
				err = errors.Join(ErrRegisterUnknown(token.Text), err)
			}
		default:
			err = ErrMalformed
		}
		return
	}

	if checkParens(tokens, p, q) {
		value, err = ev.eval(tokens, p+1, q-1)
		return
	}

	major := findMajor(tokens, p, q)
	if major < 0 {
		err = ErrMalformed
		return
	}

	if tokens[major].Kind == TK_NEG {
		value, err = ev.eval(tokens, major+1, q)
		if err != nil {
			return
		}
		value = -value
		return
	}

	lhs, err := ev.eval(tokens, p, major-1)
	if err != nil {
		return
	}
	rhs, err := ev.eval(tokens, major+1, q)
	if err != nil {
		return
	}

	switch tokens[major].Kind {
	case TK_PLUS:
		value = lhs + rhs
	case TK_MINUS:
		value = lhs - rhs
	case TK_STAR:
		value = lhs * rhs
	case TK_SLASH:
		if rhs == 0 {
			err = ErrDivideByZero
			return
		}
		if rhs == 0xffffffff {
			// int32 division traps on INT32_MIN / -1
			value = -lhs
			return
		}
		value = uint32(int32(lhs) / int32(rhs))
	}

	return
}
