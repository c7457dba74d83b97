package typewriter

import (
	"time"

	"golang.org/x/net/html"
)

// Kind identifies what an operation does when the loop executes it.
type Kind int

const (
	TypeCharacter         Kind = iota // Append one text unit
	PasteString                       // Append a whole string as one unit
	RemoveCharacter                   // Expands into RemoveLastVisibleNode
	RemoveAll                         // Expands into one RemoveLastVisibleNode per visible node
	RemoveLastVisibleNode             // Pop and detach the newest visible node
	PauseFor                          // Hold the loop until a resume time
	CallFunction                      // Run a caller callback
	AddMarkupNode                     // Append a markup element
	ChangeDeleteSpeed
	ChangeDelay
	ChangeCursor
	Clear // Remove up to Amount visible text units in one step
)

var kindNames = [...]string{
	TypeCharacter:         "TypeCharacter",
	PasteString:           "PasteString",
	RemoveCharacter:       "RemoveCharacter",
	RemoveAll:             "RemoveAll",
	RemoveLastVisibleNode: "RemoveLastVisibleNode",
	PauseFor:              "PauseFor",
	CallFunction:          "CallFunction",
	AddMarkupNode:         "AddMarkupNode",
	ChangeDeleteSpeed:     "ChangeDeleteSpeed",
	ChangeDelay:           "ChangeDelay",
	ChangeCursor:          "ChangeCursor",
	Clear:                 "Clear",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// deletes reports whether k is paced by the delete speed.
func (k Kind) deletes() bool {
	return k == RemoveCharacter || k == RemoveLastVisibleNode
}

// Op is one scheduled unit of work. Ops are values: once queued they are
// only consumed or requeued, never changed.
type Op struct {
	Kind Kind
	Args Args
}

// Args carries the payload of an Op. Each kind reads only its own fields.
type Args struct {
	Character string     // TypeCharacter, PasteString
	Node      *html.Node // target container for text; the element for AddMarkupNode
	Parent    *html.Node // AddMarkupNode parent; nil means the wrapper

	Duration time.Duration // PauseFor
	Speed    Speed         // ChangeDelay, ChangeDeleteSpeed, RemoveAll override
	HasSpeed bool          // RemoveAll carries an override
	Cursor   string

	Callback Callback
	This     any

	Amount       int  // Clear; 0 removes everything
	CallOnRemove bool // Clear reports removals to OnRemoveNode

	RemovingCharacterNode bool // RemoveLastVisibleNode issued by RemoveCharacter
	Temporary             bool // brackets another op; never replayed
}

// Elements are the render surface handles of a typewriter.
type Elements struct {
	Container *html.Node
	Wrapper   *html.Node
	Cursor    *html.Node
}

// CallContext is passed to CallFunction callbacks.
type CallContext struct {
	Elements Elements
	This     any
}

// Callback is the function run by a CallFunction op.
type Callback func(CallContext)

// NodeKind tells text units and markup wrappers apart on the visible stack.
type NodeKind int

const (
	TextNode NodeKind = iota
	MarkupNode
)

func (k NodeKind) String() string {
	if k == MarkupNode {
		return "MarkupNode"
	}
	return "TextNode"
}

// VisibleNode is an entry of the visible node stack. Node is nil when the
// text node hook declined to render anything.
type VisibleNode struct {
	Kind      NodeKind
	Node      *html.Node
	Character string
	Parent    *html.Node
}

// RemovedNode is passed to the OnRemoveNode hook.
type RemovedNode struct {
	Node      *html.Node
	Character string
}
