package lua

import glua "github.com/yuin/gopher-lua"

// registerCoreFuncs registers lifecycle primitives (wrapped by core Lua).
func (e *Engine) registerCoreFuncs() {
	// typewriter._quit(): exit the program
	e.L.SetField(e.twTable, "_quit", e.L.NewFunction(func(L *glua.LState) int {
		e.host.Quit()
		return 0
	}))

	// typewriter._reload(): rebuild the animation and rerun the script
	e.L.SetField(e.twTable, "_reload", e.L.NewFunction(func(L *glua.LState) int {
		e.host.Reload()
		return 0
	}))

	// typewriter._load(path): run another script now
	e.L.SetField(e.twTable, "_load", e.L.NewFunction(func(L *glua.LState) int {
		path := L.CheckString(1)
		if err := e.DoFile(path); err != nil {
			L.Push(glua.LString(err.Error()))
			return 1
		}
		e.CallHook("loaded", path)
		return 0
	}))
}
