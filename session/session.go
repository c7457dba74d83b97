// Package session runs a typewriter animation behind a UI.
//
// A single owner goroutine drains one job queue. Frame callbacks, Lua
// timers, file-watch reloads and UI actions are all jobs, so the Lua VM
// and the typewriter are only ever touched from that goroutine.
package session

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/drake/typewriter/dom"
	"github.com/drake/typewriter/internal/buffer"
	"github.com/drake/typewriter/internal/logging"
	"github.com/drake/typewriter/lua"
	"github.com/drake/typewriter/render"
	"github.com/drake/typewriter/timer"
	"github.com/drake/typewriter/typewriter"
	"github.com/drake/typewriter/ui"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 150 * time.Millisecond

// Config holds session configuration
type Config struct {
	Options       typewriter.Options // animation options; Strings may be empty when a script drives it
	Script        string             // Lua script run after boot, optional
	Watch         bool               // reload when Script changes on disk
	FrameInterval time.Duration      // 0 = timer.DefaultFrameInterval
	Logger        zerolog.Logger
}

// Session orchestrates the animation, the Lua engine and the UI.
type Session struct {
	ui     ui.UI
	config Config
	log    zerolog.Logger

	// Owner loop queue
	jobsIn chan<- func()
	jobs   <-chan func()

	frames   *timer.Frames
	timer    *timer.Service // Lua timers
	internal *timer.Service // session timers, untouched by Lua cancel_all
	engine   *lua.Engine
	renderer *render.Renderer

	// Owned by the loop goroutine
	tw          *typewriter.Typewriter
	lastFrame   string
	lastStatus  ui.Status
	message     string
	reloadTimer int

	watcher *fsnotify.Watcher

	// Read by Stats from other goroutines
	jobsRun atomic.Uint64
	dropped atomic.Uint64
	reloads atomic.Uint64
	twStats atomic.Pointer[typewriter.Stats]

	// Shutdown coordination
	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
}

// New creates a new Session. It is passive - no work starts until Run.
func New(u ui.UI, cfg Config) *Session {
	s := &Session{
		ui:       u,
		config:   cfg,
		log:      logging.Component(cfg.Logger, "session"),
		renderer: render.NewRenderer(nil, render.DefaultTheme()),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}

	s.jobsIn, s.jobs = buffer.Unbounded[func()](256, 100000, func(dropped int) {
		s.dropped.Store(uint64(dropped))
		if dropped == 1 || dropped%1000 == 0 {
			s.log.Warn().Int("dropped", dropped).Msg("job queue full, dropping oldest")
		}
	})

	s.frames = timer.NewFrames(s.jobsIn, cfg.FrameInterval)
	s.timer = timer.NewService(s.jobsIn)
	s.internal = timer.NewService(s.jobsIn)
	s.engine = lua.NewEngine(s, logging.Component(cfg.Logger, "lua"))

	return s
}

// Run boots the animation and blocks on the UI until it exits.
func (s *Session) Run() error {
	defer s.engine.Close()

	if err := s.boot(); err != nil {
		s.reportError("boot", err)
	}

	if err := s.watch(); err != nil {
		s.reportError("watch", err)
	}

	go s.processEvents()

	err := s.ui.Run()
	s.shutdown()
	// The VM is closed by the deferred Close; wait until the loop is off it.
	<-s.loopDone
	return err
}

// processEvents is the owner loop.
func (s *Session) processEvents() {
	defer close(s.loopDone)
	for {
		select {
		case <-s.done:
			return
		case job, ok := <-s.jobs:
			if !ok {
				return
			}
			s.jobsRun.Add(1)
			job()
		case act := <-s.ui.Actions():
			s.handleAction(act)
		}
		s.refresh()
	}
}

// post queues fn for the owner loop. Safe from any goroutine.
func (s *Session) post(fn func()) {
	select {
	case <-s.done:
	case s.jobsIn <- fn:
	}
}

// boot builds a fresh VM and animation and runs the script.
func (s *Session) boot() error {
	if s.tw != nil {
		s.tw.Stop()
		s.tw = nil
	}

	if err := s.engine.Init(); err != nil {
		return err
	}
	if err := s.engine.LoadCore(); err != nil {
		return fmt.Errorf("core scripts: %w", err)
	}

	_, root := dom.NewDocument()
	opts := s.config.Options
	if opts.Logger == nil {
		l := logging.Component(s.config.Logger, "typewriter")
		opts.Logger = &l
	}

	tw, err := typewriter.New(root, opts, frameHost{frames: s.frames, clock: timer.SystemClock{}})
	if err != nil {
		return err
	}
	s.tw = tw
	s.message = ""

	if path := s.config.Script; path != "" {
		if err := s.engine.DoFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		s.log.Info().Str("script", path).Msg("script loaded")
	}

	s.engine.CallHook("ready")
	s.refresh()
	return nil
}

// reload rebuilds everything from scratch. Runs on the owner loop.
func (s *Session) reload() {
	s.engine.CallHook("reloading")
	s.reloads.Add(1)
	if err := s.boot(); err != nil {
		s.reportError("reload", err)
		return
	}
	s.engine.CallHook("reloaded")
}

// handleAction applies a UI request. Runs on the owner loop.
func (s *Session) handleAction(act ui.Action) {
	switch act.Kind {
	case ui.ActionQuit:
		s.shutdown()
		return
	case ui.ActionRestart:
		s.reload()
		return
	case ui.ActionLua:
		if err := s.engine.DoString("input", act.Text); err != nil {
			s.engine.CallHook("error", err.Error())
		}
		return
	}

	if s.tw == nil {
		s.ui.Print("no animation loaded")
		return
	}

	switch act.Kind {
	case ui.ActionTogglePause:
		if s.tw.Running() && !s.tw.Paused() {
			s.tw.Pause()
		} else {
			s.tw.Start()
		}
	case ui.ActionType:
		s.tw.TypeString(act.Text)
		s.ensureRunning()
	case ui.ActionPaste:
		s.tw.PasteString(act.Text)
		s.ensureRunning()
	case ui.ActionDelete:
		s.tw.DeleteAll()
		s.ensureRunning()
	}
}

// ensureRunning starts an idle animation. A paused one stays paused.
func (s *Session) ensureRunning() {
	if !s.tw.Running() && !s.tw.Paused() {
		s.tw.Start()
	}
}

// refresh pushes the frame and status to the UI when they changed.
func (s *Session) refresh() {
	if s.tw == nil {
		return
	}

	frame := s.renderer.Render(s.tw.Elements().Container)
	if frame != s.lastFrame {
		s.lastFrame = frame
		s.ui.Render(frame)
	}

	st := s.tw.Stats()
	s.twStats.Store(&st)

	status := ui.Status{
		State:   stateOf(st),
		Queued:  st.Queued,
		Visible: st.Visible,
		Wraps:   st.Wraps,
		Message: s.message,
	}
	if status != s.lastStatus {
		s.lastStatus = status
		s.ui.SetStatus(status)
	}
}

func stateOf(st typewriter.Stats) ui.State {
	switch {
	case st.Paused:
		return ui.StatePaused
	case st.Running:
		return ui.StateRunning
	default:
		return ui.StateIdle
	}
}

// reportError shows a failure to the user and the log.
func (s *Session) reportError(where string, err error) {
	s.log.Error().Err(err).Str("where", where).Msg("session error")
	s.ui.Print(fmt.Sprintf("%s error: %v", where, err))
}

// watch reloads the script when it changes on disk. The directory is
// watched rather than the file so editors that replace the file on save
// keep triggering reloads.
func (s *Session) watch() error {
	if !s.config.Watch || s.config.Script == "" {
		return nil
	}

	path, err := filepath.Abs(s.config.Script)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	s.watcher = w
	go s.watchLoop(w, path)
	s.log.Info().Str("script", path).Msg("watching script")
	return nil
}

func (s *Session) watchLoop(w *fsnotify.Watcher, path string) {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.post(s.scheduleReload)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("watch error")
		}
	}
}

// scheduleReload debounces file events into one reload. Runs on the owner
// loop.
func (s *Session) scheduleReload() {
	if s.reloadTimer != 0 {
		s.internal.Cancel(s.reloadTimer)
	}
	s.reloadTimer = s.internal.After(reloadDebounce, func() {
		s.reloadTimer = 0
		s.log.Info().Str("script", s.config.Script).Msg("script changed, reloading")
		s.reload()
	})
}

// shutdown stops timers, the watcher and the UI. Safe to call more than once.
func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.timer.CancelAll()
		s.internal.CancelAll()
		if s.watcher != nil {
			s.watcher.Close()
		}
		s.ui.Quit()
	})
}

// Done is closed once the session shuts down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stats is a snapshot for the debug monitor.
type Stats struct {
	JobsRun     uint64
	JobsDropped uint64
	Reloads     uint64
	Timers      int
	Goroutines  int
	Typewriter  typewriter.Stats
}

// Stats returns counters that are safe to read from any goroutine.
func (s *Session) Stats() Stats {
	st := Stats{
		JobsRun:     s.jobsRun.Load(),
		JobsDropped: s.dropped.Load(),
		Reloads:     s.reloads.Load(),
		Timers:      s.timer.Len(),
		Goroutines:  runtime.NumGoroutine(),
	}
	if tw := s.twStats.Load(); tw != nil {
		st.Typewriter = *tw
	}
	return st
}
