package lua

import glua "github.com/yuin/gopher-lua"

func (e *Engine) registerUIFuncs() {
	// typewriter._print(text): write a line below the animation
	e.L.SetField(e.twTable, "_print", e.L.NewFunction(func(L *glua.LState) int {
		e.host.Print(L.CheckString(1))
		return 0
	}))

	// typewriter._status(text): replace the status line
	e.L.SetField(e.twTable, "_status", e.L.NewFunction(func(L *glua.LState) int {
		e.host.SetStatus(L.CheckString(1))
		return 0
	}))
}
