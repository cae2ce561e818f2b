package sdb

import (
	"log"
)

const (
	WATCH_LIMIT = 32 // Maximum simultaneous watchpoints.
	EXPR_LIMIT  = 32 // Maximum stored expression length, in bytes.
)

// Watchpoint binds an expression to its last known value. The Id is the
// pool slot index and is stable for the watchpoint's lifetime.
type Watchpoint struct {
	Id        int
	Expr      string
	LastValue uint32

	active bool
	valid  bool // LastValue holds a real evaluation result.
	next   int  // Next active slot, -1 terminates the list.
}

// Known reports whether LastValue holds a real evaluation result. A
// watchpoint whose seed evaluation failed stays active with an unknown
// last value until a Check succeeds.
func (wp Watchpoint) Known() bool {
	return wp.valid
}

// Trigger is the change report for a single tripped watchpoint.
type Trigger struct {
	Id       int
	Expr     string
	OldValue uint32
	NewValue uint32
}

// Watchpoints is a fixed pool of watchpoint slots plus the list of
// active slots, most recently added first.
type Watchpoints struct {
	Evaluator Evaluator

	pool [WATCH_LIMIT]Watchpoint
	head int
}

// NewWatchpoints creates an empty watchpoint pool evaluating against
// the given register file.
func NewWatchpoints(regs Registers) (ws *Watchpoints) {
	ws = &Watchpoints{head: -1}
	ws.Evaluator.Registers = regs

	for n := range ws.pool {
		ws.pool[n].Id = n
		ws.pool[n].next = -1
	}

	return
}

// Add registers a watchpoint on an expression, seeding its last value
// by evaluating the expression once. A failed seed evaluation is
// returned alongside a valid id: the watchpoint stays active with an
// unknown last value. The id is negative only when no slot was
// allocated.
func (ws *Watchpoints) Add(expr string) (id int, err error) {
	id = -1

	if len(expr) > EXPR_LIMIT {
		err = ErrExprTooLong
		return
	}

	for n := range ws.pool {
		if ws.pool[n].active {
			continue
		}
		id = n
		break
	}
	if id < 0 {
		err = ErrPoolExhausted
		return
	}

	wp := &ws.pool[id]
	wp.active = true
	wp.valid = false
	wp.Expr = expr
	wp.LastValue = 0
	wp.next = ws.head
	ws.head = id

	value, err := ws.Evaluator.Evaluate(expr)
	if err == nil {
		wp.LastValue = value
		wp.valid = true
	}

	return
}

// Delete returns a watchpoint's slot to the free pool, unlinking it
// from the active list.
func (ws *Watchpoints) Delete(id int) (err error) {
	if id < 0 || id >= WATCH_LIMIT || !ws.pool[id].active {
		err = ErrWatchpointMissing(id)
		return
	}

	if ws.head == id {
		ws.head = ws.pool[id].next
	} else {
		for n := ws.head; n >= 0; n = ws.pool[n].next {
			if ws.pool[n].next == id {
				ws.pool[n].next = ws.pool[id].next
				break
			}
		}
	}

	ws.pool[id].active = false
	ws.pool[id].next = -1

	return
}

// List yields the active watchpoints, most recently added first.
func (ws *Watchpoints) List(yield func(wp Watchpoint) bool) {
	for n := ws.head; n >= 0; n = ws.pool[n].next {
		if !yield(ws.pool[n]) {
			return
		}
	}
}

// Check re-evaluates every active watchpoint in pool slot order. A
// changed value produces a Trigger and requests a halt; an evaluation
// failure is logged and does not disturb the other watchpoints.
func (ws *Watchpoints) Check() (triggers []Trigger, halt bool) {
	for n := range ws.pool {
		wp := &ws.pool[n]
		if !wp.active {
			continue
		}

		value, err := ws.Evaluator.Evaluate(wp.Expr)
		if err != nil {
			log.Printf("watchpoint %d: %v: %v", wp.Id, wp.Expr, err)
			continue
		}

		if !wp.valid {
			// First successful evaluation arms the watchpoint.
			wp.LastValue = value
			wp.valid = true
			continue
		}

		if value != wp.LastValue {
			triggers = append(triggers, Trigger{
				Id:       wp.Id,
				Expr:     wp.Expr,
				OldValue: wp.LastValue,
				NewValue: value,
			})
			wp.LastValue = value
			halt = true
		}
	}

	return
}
