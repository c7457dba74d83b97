// Package typewriter animates typing and deleting text into a markup tree.
//
// Builders append operations to a queue; every frame the loop pops at most
// one operation once its delay has elapsed and applies it to the render
// surface. A Typewriter is not safe for concurrent use: builders, Start,
// Stop and the frame callbacks delivered by the Host must all run on one
// goroutine.
package typewriter

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/drake/typewriter/dom"
	"github.com/drake/typewriter/internal/deque"
	"github.com/drake/typewriter/internal/logging"
	"github.com/drake/typewriter/markup"
)

// Typewriter owns one animation: its queue, replay log, visible node stack
// and the wrapper and cursor elements inside the container.
type Typewriter struct {
	host Host
	log  zerolog.Logger

	options        Options
	initialOptions Options

	queue   deque.Deque[Op]
	replay  []Op
	visible []VisibleNode

	elements Elements

	lastFrame   time.Time
	pauseUntil  time.Time
	paused      bool
	inTick      bool
	cancelFrame func()

	stats Stats
}

// New builds a typewriter inside container. The container is emptied.
func New(container *html.Node, opts Options, host Host) (*Typewriter, error) {
	if container == nil {
		return nil, ErrNoContainer
	}
	if host == nil {
		return nil, ErrNoHost
	}

	opts = opts.withDefaults()
	t := &Typewriter{
		host:           host,
		log:            loggerFor(opts),
		options:        opts,
		initialOptions: opts.clone(),
	}
	t.elements.Container = container

	t.setup()
	return t, nil
}

// NewFromSelector resolves selector under doc and builds a typewriter in
// the first match.
func NewFromSelector(doc *html.Node, selector string, opts Options, host Host) (*Typewriter, error) {
	if doc == nil || selector == "" {
		return nil, ErrNoContainer
	}
	container := dom.QuerySelector(doc, selector)
	if container == nil {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, selector)
	}
	return New(container, opts, host)
}

func loggerFor(opts Options) zerolog.Logger {
	var l zerolog.Logger
	switch {
	case opts.Logger != nil:
		l = *opts.Logger
	case opts.DevMode:
		l = logging.New(logging.Config{Level: "debug"})
	default:
		l = logging.Nop()
	}
	return logging.Component(l, "typewriter")
}

func (t *Typewriter) setup() {
	t.setupWrapperElement()

	t.addOp(Op{Kind: ChangeCursor, Args: Args{Cursor: t.options.Cursor}}, true)
	t.addOp(Op{Kind: RemoveAll}, true)

	if !t.options.SkipAddStyles {
		injectStyles()
	}

	if t.options.AutoStart && !t.options.Strings.Empty() {
		t.TypeOutAllStrings().Start()
	}
}

func (t *Typewriter) setupWrapperElement() {
	t.elements.Wrapper = dom.NewElement("span", "class", t.options.WrapperClassName)
	t.elements.Cursor = dom.NewElement("span", "class", t.options.CursorClassName)
	dom.SetText(t.elements.Cursor, t.options.Cursor)

	dom.Clear(t.elements.Container)
	dom.Append(t.elements.Container, t.elements.Wrapper)
	dom.Append(t.elements.Container, t.elements.Cursor)
}

func (t *Typewriter) addOp(op Op, prepend bool) {
	if prepend {
		t.queue.PushFront(op)
		return
	}
	t.queue.PushBack(op)
}

func (t *Typewriter) parser() *markup.Parser {
	if t.options.Parser != nil {
		return t.options.Parser
	}
	return markup.Default
}

func (t *Typewriter) split(s string) []string {
	if t.options.StringSplitter != nil {
		return t.options.StringSplitter(s)
	}
	return splitCodePoints(s)
}

// Start resumes a paused typewriter and runs the loop. A frame already
// pending is cancelled first so only one frame chain exists. Called from a
// callback during a tick it only resumes: the tick has already requested
// the next frame, or requests one if the callback stopped the chain.
func (t *Typewriter) Start() *Typewriter {
	t.paused = false
	if t.inTick {
		if t.cancelFrame == nil {
			t.cancelFrame = t.host.RequestFrame(t.runEventLoop)
		}
		return t
	}
	t.cancelPending()
	t.runEventLoop()
	return t
}

// Stop cancels the pending frame. The queue is kept; Start resumes it.
func (t *Typewriter) Stop() *Typewriter {
	t.cancelPending()
	return t
}

// Pause keeps frames coming but executes nothing until Start.
func (t *Typewriter) Pause() *Typewriter {
	t.paused = true
	return t
}

func (t *Typewriter) cancelPending() {
	if t.cancelFrame != nil {
		t.cancelFrame()
		t.cancelFrame = nil
	}
}

// Queue returns a copy of the pending operations, head first.
func (t *Typewriter) Queue() []Op { return t.queue.Items() }

// ReplayLog returns a copy of the operations recorded for the next loop.
func (t *Typewriter) ReplayLog() []Op { return append([]Op(nil), t.replay...) }

// Visible returns a copy of the visible node stack, oldest first.
func (t *Typewriter) Visible() []VisibleNode { return append([]VisibleNode(nil), t.visible...) }

// Options returns the live options, including runtime speed and cursor
// changes.
func (t *Typewriter) Options() Options { return t.options.clone() }

// Elements returns the container, wrapper and cursor.
func (t *Typewriter) Elements() Elements { return t.elements }

// Paused reports whether Pause is in effect.
func (t *Typewriter) Paused() bool { return t.paused }

// Running reports whether a frame is pending.
func (t *Typewriter) Running() bool { return t.cancelFrame != nil }

// Stats is a point-in-time summary of the loop.
type Stats struct {
	Ticks     uint64 // frames handled
	Processed uint64 // operations executed
	Wraps     uint64 // loop restarts from the replay log
	Queued    int
	Replay    int
	Visible   int
	Paused    bool
	Running   bool
}

// Stats returns counters and sizes for monitoring.
func (t *Typewriter) Stats() Stats {
	s := t.stats
	s.Queued = t.queue.Len()
	s.Replay = len(t.replay)
	s.Visible = len(t.visible)
	s.Paused = t.paused
	s.Running = t.Running()
	return s
}
