package sdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// counterRegs is a mutable single-register file for watchpoint tests.
type counterRegs struct {
	value uint32
}

func (cr *counterRegs) Resolve(name string) (value uint32, err error) {
	if name != "r0" {
		err = ErrRegisterUnknown(name)
		return
	}
	value = cr.value
	return
}

func listIds(ws *Watchpoints) (ids []int) {
	ws.List(func(wp Watchpoint) bool {
		ids = append(ids, wp.Id)
		return true
	})
	return
}

func TestWatchpoints_Add_Seeds(t *testing.T) {
	assert := assert.New(t)

	ws := NewWatchpoints(&counterRegs{})

	id, err := ws.Add("1+1")
	assert.NoError(err)
	assert.Equal(0, id)

	ws.List(func(wp Watchpoint) bool {
		assert.Equal("1+1", wp.Expr)
		assert.Equal(uint32(2), wp.LastValue)
		assert.True(wp.Known())
		return true
	})
}

func TestWatchpoints_Add_SeedFailure(t *testing.T) {
	assert := assert.New(t)

	regs := &counterRegs{}
	ws := NewWatchpoints(regs)

	// Division by zero while r0 is zero; the watchpoint is still set.
	id, err := ws.Add("4/$r0")
	assert.ErrorIs(err, ErrDivideByZero)
	assert.Equal(0, id)
	assert.Equal([]int{0}, listIds(ws))

	// The first successful evaluation arms without triggering.
	regs.value = 2
	triggers, halt := ws.Check()
	assert.Empty(triggers)
	assert.False(halt)

	regs.value = 1
	triggers, halt = ws.Check()
	assert.Len(triggers, 1)
	assert.True(halt)
	assert.Equal(uint32(2), triggers[0].OldValue)
	assert.Equal(uint32(4), triggers[0].NewValue)
}

func TestWatchpoints_Add_TooLong(t *testing.T) {
	assert := assert.New(t)

	ws := NewWatchpoints(&counterRegs{})

	id, err := ws.Add(strings.Repeat("1", EXPR_LIMIT+1))
	assert.ErrorIs(err, ErrExprTooLong)
	assert.Equal(-1, id)
	assert.Empty(listIds(ws))
}

func TestWatchpoints_Check_NoChange(t *testing.T) {
	assert := assert.New(t)

	regs := &counterRegs{value: 7}
	ws := NewWatchpoints(regs)

	_, err := ws.Add("$r0")
	assert.NoError(err)

	triggers, halt := ws.Check()
	assert.Empty(triggers)
	assert.False(halt)
}

func TestWatchpoints_Check_Trigger(t *testing.T) {
	assert := assert.New(t)

	regs := &counterRegs{value: 2}
	ws := NewWatchpoints(regs)

	id, err := ws.Add("$r0+1")
	assert.NoError(err)

	regs.value = 3
	triggers, halt := ws.Check()
	assert.True(halt)
	assert.Len(triggers, 1)
	assert.Equal(Trigger{Id: id, Expr: "$r0+1", OldValue: 3, NewValue: 4}, triggers[0])

	// The trigger updated the last value; no re-trigger without change.
	triggers, halt = ws.Check()
	assert.Empty(triggers)
	assert.False(halt)
}

func TestWatchpoints_Check_ErrorIsolated(t *testing.T) {
	assert := assert.New(t)

	regs := &counterRegs{value: 1}
	ws := NewWatchpoints(regs)

	_, err := ws.Add("$bogus")
	assert.Error(err)
	_, err = ws.Add("$r0")
	assert.NoError(err)

	// The failing watchpoint does not stop the healthy one.
	regs.value = 2
	triggers, halt := ws.Check()
	assert.True(halt)
	assert.Len(triggers, 1)
	assert.Equal(1, triggers[0].Id)
}

func TestWatchpoints_PoolExhausted(t *testing.T) {
	assert := assert.New(t)

	ws := NewWatchpoints(&counterRegs{})

	for n := 0; n < WATCH_LIMIT; n++ {
		id, err := ws.Add("1")
		assert.NoError(err)
		assert.Equal(n, id)
	}

	id, err := ws.Add("1")
	assert.ErrorIs(err, ErrPoolExhausted)
	assert.Equal(-1, id)
	assert.Len(listIds(ws), WATCH_LIMIT)
}

func TestWatchpoints_Delete_Middle(t *testing.T) {
	assert := assert.New(t)

	ws := NewWatchpoints(&counterRegs{})

	for range 3 {
		_, err := ws.Add("1")
		assert.NoError(err)
	}
	assert.Equal([]int{2, 1, 0}, listIds(ws))

	err := ws.Delete(1)
	assert.NoError(err)
	assert.Equal([]int{2, 0}, listIds(ws))

	err = ws.Delete(1)
	assert.ErrorIs(err, ErrWatchpointMissing(0))
}

func TestWatchpoints_Delete_Head(t *testing.T) {
	assert := assert.New(t)

	ws := NewWatchpoints(&counterRegs{})

	for range 2 {
		_, err := ws.Add("1")
		assert.NoError(err)
	}

	err := ws.Delete(1)
	assert.NoError(err)
	assert.Equal([]int{0}, listIds(ws))
}

func TestWatchpoints_Delete_Unknown(t *testing.T) {
	assert := assert.New(t)

	ws := NewWatchpoints(&counterRegs{})

	assert.ErrorIs(ws.Delete(0), ErrWatchpointMissing(0))
	assert.ErrorIs(ws.Delete(-1), ErrWatchpointMissing(0))
	assert.ErrorIs(ws.Delete(WATCH_LIMIT), ErrWatchpointMissing(0))
}

func TestWatchpoints_SlotReuse(t *testing.T) {
	assert := assert.New(t)

	ws := NewWatchpoints(&counterRegs{})

	for range 3 {
		_, err := ws.Add("1")
		assert.NoError(err)
	}

	// First-fit allocation hands back the lowest freed slot.
	assert.NoError(ws.Delete(0))
	assert.NoError(ws.Delete(2))

	id, err := ws.Add("2")
	assert.NoError(err)
	assert.Equal(0, id)
	assert.Equal([]int{0, 1}, listIds(ws))
}
