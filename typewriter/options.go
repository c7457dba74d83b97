package typewriter

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/drake/typewriter/markup"
	"github.com/drake/typewriter/render"
)

// Source is the set of strings TypeOutAllStrings types: either a single
// string or an ordered list.
type Source struct {
	list   []string
	single bool
}

// One is a Source holding a single string.
func One(s string) Source {
	return Source{list: []string{s}, single: true}
}

// List is a Source holding an ordered list of strings.
func List(ss ...string) Source {
	return Source{list: append([]string(nil), ss...)}
}

// Single reports whether the source was built with One.
func (s Source) Single() bool { return s.single }

// Empty reports whether there is nothing to type.
func (s Source) Empty() bool {
	if s.single {
		return s.list[0] == ""
	}
	return len(s.list) == 0
}

// Strings returns a copy of the strings in order.
func (s Source) Strings() []string {
	return append([]string(nil), s.list...)
}

func (s Source) clone() Source {
	return Source{list: s.Strings(), single: s.single}
}

// Options configure a Typewriter. Start from DefaultOptions; a zero Options
// gets default class names but keeps every other zero value as given.
type Options struct {
	Strings     Source
	Cursor      string
	Delay       Speed
	PauseFor    time.Duration // pause after each string of TypeOutAllStrings
	DeleteSpeed Speed

	Loop          bool
	AutoStart     bool
	DevMode       bool
	SkipAddStyles bool

	WrapperClassName string
	CursorClassName  string

	// StringSplitter breaks a string into text units. Nil splits by code
	// point.
	StringSplitter func(string) []string
	// OnCreateTextNode may replace the text node about to be appended.
	// Returning nil appends nothing.
	OnCreateTextNode func(character string, node *html.Node) *html.Node
	OnRemoveNode     func(RemovedNode)

	// Parser turns markup strings into items. Nil uses markup.Default.
	Parser *markup.Parser
	Logger *zerolog.Logger
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Cursor:           "|",
		Delay:            Natural,
		PauseFor:         1500 * time.Millisecond,
		DeleteSpeed:      Natural,
		WrapperClassName: render.WrapperClass,
		CursorClassName:  render.CursorClass,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.WrapperClassName == "" {
		o.WrapperClassName = def.WrapperClassName
	}
	if o.CursorClassName == "" {
		o.CursorClassName = def.CursorClassName
	}
	return o
}

// clone returns a snapshot that shares no mutable state with o. Hooks,
// the parser and the logger are collaborators and are shared.
func (o Options) clone() Options {
	c := o
	c.Strings = o.Strings.clone()
	return c
}
