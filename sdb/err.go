package sdb

import (
	"errors"

	"github.com/ezrec/usdb/translate"
)

var f = translate.From

var (
	// Evaluator errors
	ErrMalformed    = errors.New(f("malformed expression"))
	ErrDivideByZero = errors.New(f("division by zero"))

	// Watchpoint errors
	ErrPoolExhausted = errors.New(f("no free watchpoints"))
	ErrExprTooLong   = errors.New(f("expression too long"))
)

// ErrNoMatch reports the position where no lexer rule matched.
type ErrNoMatch struct {
	Position int
	Expr     string
}

func (err ErrNoMatch) Error() string {
	return f("no match at position %d in '%v'", err.Position, err.Expr)
}

func (err ErrNoMatch) Is(target error) (ok bool) {
	_, ok = target.(ErrNoMatch)
	return
}

type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("unknown register $%v", string(err))
}

func (err ErrRegisterUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrRegisterUnknown)
	return
}

type ErrWatchpointMissing int

func (err ErrWatchpointMissing) Error() string {
	return f("no watchpoint %d", int(err))
}

func (err ErrWatchpointMissing) Is(target error) (ok bool) {
	_, ok = target.(ErrWatchpointMissing)
	return
}
