package lua

import (
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/drake/typewriter/dom"
	"github.com/drake/typewriter/typewriter"
)

// registerTypewriterFuncs registers the builder primitives. Core Lua wraps
// them so every builder returns the typewriter table for chaining.
func (e *Engine) registerTypewriterFuncs() {
	fns := map[string]glua.LGFunction{
		"_type_string": func(L *glua.LState) int {
			e.checkTypewriter(L).TypeString(L.CheckString(1))
			return 0
		},
		"_paste_string": func(L *glua.LState) int {
			e.checkTypewriter(L).PasteString(L.CheckString(1))
			return 0
		},
		"_type_characters": func(L *glua.LState) int {
			tw := e.checkTypewriter(L)
			_, err := tw.TypeCharacters(checkStrings(L, 1), nil)
			raiseIf(L, err)
			return 0
		},
		"_remove_characters": func(L *glua.LState) int {
			tw := e.checkTypewriter(L)
			_, err := tw.RemoveCharacters(checkStrings(L, 1))
			raiseIf(L, err)
			return 0
		},
		"_delete_all": func(L *glua.LState) int {
			tw := e.checkTypewriter(L)
			if L.Get(1) == glua.LNil {
				tw.DeleteAll()
				return 0
			}
			tw.DeleteAllWithSpeed(checkSpeed(L, 1))
			return 0
		},
		"_clear": func(L *glua.LState) int {
			tw := e.checkTypewriter(L)
			tw.Clear(L.OptInt(1, 0), L.OptBool(2, false))
			return 0
		},
		"_delete_chars": func(L *glua.LState) int {
			_, err := e.checkTypewriter(L).DeleteChars(L.CheckInt(1))
			raiseIf(L, err)
			return 0
		},
		"_pause_for": func(L *glua.LState) int {
			ms := L.CheckNumber(1)
			e.checkTypewriter(L).PauseFor(time.Duration(float64(ms) * float64(time.Millisecond)))
			return 0
		},
		"_change_delay": func(L *glua.LState) int {
			_, err := e.checkTypewriter(L).ChangeDelay(checkSpeed(L, 1))
			raiseIf(L, err)
			return 0
		},
		"_change_delete_speed": func(L *glua.LState) int {
			_, err := e.checkTypewriter(L).ChangeDeleteSpeed(checkSpeed(L, 1))
			raiseIf(L, err)
			return 0
		},
		"_change_cursor": func(L *glua.LState) int {
			_, err := e.checkTypewriter(L).ChangeCursor(L.CheckString(1))
			raiseIf(L, err)
			return 0
		},
		"_call": func(L *glua.LState) int {
			tw := e.checkTypewriter(L)
			fn := L.CheckFunction(1)
			this := L.Get(2)
			_, err := tw.CallFunction(e.luaCallback(fn, this), this)
			raiseIf(L, err)
			return 0
		},
		"_type_out_all": func(L *glua.LState) int {
			e.checkTypewriter(L).TypeOutAllStrings()
			return 0
		},
		"_start": func(L *glua.LState) int {
			e.checkTypewriter(L).Start()
			return 0
		},
		"_stop": func(L *glua.LState) int {
			e.checkTypewriter(L).Stop()
			return 0
		},
		"_pause": func(L *glua.LState) int {
			e.checkTypewriter(L).Pause()
			return 0
		},
		// typewriter._state(): snapshot of the animation for scripts
		"_state": func(L *glua.LState) int {
			tw := e.checkTypewriter(L)
			st := tw.Stats()
			els := tw.Elements()

			tbl := L.NewTable()
			L.SetField(tbl, "queued", glua.LNumber(st.Queued))
			L.SetField(tbl, "visible", glua.LNumber(st.Visible))
			L.SetField(tbl, "replay", glua.LNumber(st.Replay))
			L.SetField(tbl, "processed", glua.LNumber(st.Processed))
			L.SetField(tbl, "wraps", glua.LNumber(st.Wraps))
			L.SetField(tbl, "paused", glua.LBool(st.Paused))
			L.SetField(tbl, "running", glua.LBool(st.Running))
			L.SetField(tbl, "text", glua.LString(dom.Text(els.Wrapper)))
			L.SetField(tbl, "cursor", glua.LString(dom.Text(els.Cursor)))
			L.Push(tbl)
			return 1
		},
	}

	for name, fn := range fns {
		e.L.SetField(e.twTable, name, e.L.NewFunction(fn))
	}
}

func (e *Engine) checkTypewriter(L *glua.LState) *typewriter.Typewriter {
	tw := e.host.Typewriter()
	if tw == nil {
		L.RaiseError("typewriter is not ready")
	}
	return tw
}

// luaCallback adapts a Lua function to a CallFunction callback. It runs
// on the loop, long after the builder returned, so errors go to the error
// hook. Callbacks left over from a previous VM are dropped.
func (e *Engine) luaCallback(fn *glua.LFunction, this glua.LValue) typewriter.Callback {
	state := e.L
	return func(ctx typewriter.CallContext) {
		if e.L == nil || e.L != state {
			return
		}
		arg := e.L.NewTable()
		e.L.SetField(arg, "text", glua.LString(dom.Text(ctx.Elements.Wrapper)))
		e.L.SetField(arg, "cursor", glua.LString(dom.Text(ctx.Elements.Cursor)))

		if err := e.L.CallByParam(glua.P{Fn: fn, NRet: 0, Protect: true}, arg, this); err != nil {
			e.reportError("call", err)
		}
	}
}

// checkSpeed accepts a number of milliseconds or a speed string such as
// "natural" or "80ms".
func checkSpeed(L *glua.LState, n int) typewriter.Speed {
	var raw string
	switch v := L.CheckAny(n).(type) {
	case glua.LNumber:
		raw = v.String()
	case glua.LString:
		raw = string(v)
	default:
		L.ArgError(n, "speed must be milliseconds or a string")
		return 0
	}

	s, err := typewriter.ParseSpeed(raw)
	if err != nil {
		L.ArgError(n, err.Error())
		return 0
	}
	return s
}

// checkStrings reads an array of strings. A non-table argument yields nil,
// which the builders reject.
func checkStrings(L *glua.LState, n int) []string {
	tbl, ok := L.Get(n).(*glua.LTable)
	if !ok {
		return nil
	}
	out := make([]string, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		out = append(out, tbl.RawGetInt(i).String())
	}
	return out
}

func raiseIf(L *glua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}
