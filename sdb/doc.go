// Package sdb implements the expression subsystem of the usdb monitor.
//
// Expressions are the small arithmetic language typed at the debugger
// prompt: decimal and hexadecimal literals, register references such as
// $r0 or $ip, the four arithmetic operators, unary negation, and
// parentheses. A hand-rolled lexer driven by an ordered rule table splits
// the input into tokens, and a precedence-aware recursive evaluator
// reduces a token range to a 32-bit machine word.
//
// Watchpoints bind an expression to its last known value. The registry
// holds a fixed pool of slots; Check re-evaluates every active watchpoint
// and reports the ones whose value changed, requesting an execution halt.
package sdb
