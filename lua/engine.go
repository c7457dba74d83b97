// Package lua runs typewriter scripts on gopher-lua.
package lua

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	glua "github.com/yuin/gopher-lua"
)

// CoreScripts holds the Lua side of the API. The caller loads them after
// Init, in name order.
//
//go:embed core/*.lua
var CoreScripts embed.FS

// Engine wraps gopher-lua and manages the VM lifecycle.
// It knows how to run Lua code and expose APIs; boot order and script
// locations belong to the caller.
type Engine struct {
	L    *glua.LState
	host Host
	log  zerolog.Logger

	twTable *glua.LTable

	// Timer callbacks. The timer service owns IDs and scheduling.
	callbacks map[int]*glua.LFunction
}

// NewEngine creates an Engine with the given Host.
func NewEngine(host Host, log zerolog.Logger) *Engine {
	return &Engine{
		host:      host,
		log:       log,
		callbacks: make(map[int]*glua.LFunction),
	}
}

// Init initializes (or re-initializes) the Lua VM with fresh state.
// It registers the API but does not load any scripts.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}
	e.L = glua.NewState()

	e.host.TimerCancelAll()
	e.callbacks = make(map[int]*glua.LFunction)

	e.registerAPIs()
	return nil
}

// LoadCore runs the embedded core scripts in name order.
func (e *Engine) LoadCore() error {
	entries, err := CoreScripts.ReadDir("core")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := "core/" + entry.Name()
		content, err := CoreScripts.ReadFile(name)
		if err != nil {
			return err
		}
		if err := e.DoString(name, string(content)); err != nil {
			return err
		}
	}
	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	e.host.TimerCancelAll()
	e.callbacks = nil
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// OnTimer runs the callback registered for a timer. Unknown IDs were
// cancelled or belong to an earlier VM.
func (e *Engine) OnTimer(id int, repeating bool) {
	if e.L == nil {
		return
	}
	fn, ok := e.callbacks[id]
	if !ok {
		return
	}

	e.L.Push(fn)
	if err := e.L.PCall(0, 0, nil); err != nil {
		e.reportError("timer", err)
	}

	if !repeating {
		delete(e.callbacks, id)
	}
}

// DoString executes a string of Lua code. name is used in stack traces.
func (e *Engine) DoString(name, code string) error {
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file, with its directory prepended to package.path
// for the duration of the call.
func (e *Engine) DoFile(path string) error {
	absPath, err := filepath.Abs(expandTilde(path))
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	err = e.L.DoFile(absPath)

	e.L.SetField(pkg, "path", glua.LString(oldPath))
	return err
}

// CallHook calls typewriter.hooks.call(event, args...). It is a no-op
// until the core scripts define the hooks table.
func (e *Engine) CallHook(event string, args ...string) {
	fn := e.hooksCall()
	if fn == glua.LNil {
		return
	}

	luaArgs := make([]glua.LValue, len(args)+1)
	luaArgs[0] = glua.LString(event)
	for i, arg := range args {
		luaArgs[i+1] = glua.LString(arg)
	}

	if err := e.L.CallByParam(glua.P{Fn: fn, NRet: 0, Protect: true}, luaArgs...); err != nil {
		e.log.Error().Err(err).Str("event", event).Msg("hook failed")
	}
}

func (e *Engine) registerAPIs() {
	e.twTable = e.L.NewTable()
	e.L.SetGlobal("typewriter", e.twTable)

	e.registerCoreFuncs()
	e.registerTypewriterFuncs()
	e.registerTimerFuncs()
	e.registerUIFuncs()
}

func (e *Engine) hooksCall() glua.LValue {
	hooks, ok := e.L.GetField(e.twTable, "hooks").(*glua.LTable)
	if !ok {
		return glua.LNil
	}
	return e.L.GetField(hooks, "call")
}

// reportError logs err and forwards it to the "error" hook so scripts and
// the UI can show it.
func (e *Engine) reportError(where string, err error) {
	e.log.Warn().Err(err).Str("where", where).Msg("lua error")
	e.CallHook("error", where+": "+err.Error())
}

func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
