package lua

import (
	"time"

	glua "github.com/yuin/gopher-lua"
)

// registerTimerFuncs registers typewriter._timer.* primitives.
func (e *Engine) registerTimerFuncs() {
	timerTable := e.L.NewTable()
	e.L.SetField(e.twTable, "_timer", timerTable)

	// typewriter._timer.after(seconds, fn): one-shot timer, returns ID
	e.L.SetField(timerTable, "after", e.L.NewFunction(func(L *glua.LState) int {
		d := toDuration(L.CheckNumber(1))
		fn := L.CheckFunction(2)

		id := e.host.TimerAfter(d)
		e.callbacks[id] = fn
		L.Push(glua.LNumber(id))
		return 1
	}))

	// typewriter._timer.every(seconds, fn): repeating timer, returns ID
	e.L.SetField(timerTable, "every", e.L.NewFunction(func(L *glua.LState) int {
		d := toDuration(L.CheckNumber(1))
		fn := L.CheckFunction(2)
		if d <= 0 {
			L.ArgError(1, "interval must be positive")
			return 0
		}

		id := e.host.TimerEvery(d)
		e.callbacks[id] = fn
		L.Push(glua.LNumber(id))
		return 1
	}))

	// typewriter._timer.cancel(id)
	e.L.SetField(timerTable, "cancel", e.L.NewFunction(func(L *glua.LState) int {
		id := L.CheckInt(1)
		if _, ok := e.callbacks[id]; ok {
			delete(e.callbacks, id)
			e.host.TimerCancel(id)
		}
		return 0
	}))

	// typewriter._timer.cancel_all()
	e.L.SetField(timerTable, "cancel_all", e.L.NewFunction(func(L *glua.LState) int {
		e.callbacks = make(map[int]*glua.LFunction)
		e.host.TimerCancelAll()
		return 0
	}))
}

func toDuration(seconds glua.LNumber) time.Duration {
	return time.Duration(float64(seconds) * float64(time.Second))
}
