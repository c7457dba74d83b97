package typewriter

import (
	"time"

	"golang.org/x/net/html"

	"github.com/drake/typewriter/markup"
)

// PauseFor holds the loop for d once reached.
func (t *Typewriter) PauseFor(d time.Duration) *Typewriter {
	t.addOp(Op{Kind: PauseFor, Args: Args{Duration: d}}, false)
	return t
}

// TypeString types s one text unit at a time. Markup in s is expanded into
// nested elements whose text is typed inside them.
func (t *Typewriter) TypeString(s string) *Typewriter {
	return t.typeString(s, nil)
}

// PasteString appends s in a single step.
func (t *Typewriter) PasteString(s string) *Typewriter {
	return t.pasteString(s, nil)
}

func (t *Typewriter) typeString(s string, node *html.Node) *Typewriter {
	if markup.ContainsTag(s) {
		return t.typeOutMarkup(s, node, false)
	}
	t.enqueueText(s, node, false)
	return t
}

func (t *Typewriter) pasteString(s string, node *html.Node) *Typewriter {
	if markup.ContainsTag(s) {
		return t.typeOutMarkup(s, node, true)
	}
	t.enqueueText(s, node, true)
	return t
}

func (t *Typewriter) enqueueText(s string, node *html.Node, paste bool) {
	if s == "" {
		return
	}
	if paste {
		t.addOp(Op{Kind: PasteString, Args: Args{Character: s, Node: node}}, false)
		return
	}
	for _, ch := range t.split(s) {
		t.addOp(Op{Kind: TypeCharacter, Args: Args{Character: ch, Node: node}}, false)
	}
}

func (t *Typewriter) typeOutMarkup(s string, parent *html.Node, paste bool) *Typewriter {
	items, err := t.parser().Parse(s)
	if err != nil {
		t.log.Warn().Err(err).Msg("markup parse failed, typing literally")
		t.enqueueText(s, parent, paste)
		return t
	}
	t.expand(items, parent, paste)
	return t
}

// expand walks items depth first. Each element becomes an AddMarkupNode
// followed by the ops for its children, targeted at the new element.
func (t *Typewriter) expand(items []markup.Item, parent *html.Node, paste bool) {
	for _, it := range items {
		if !it.IsElement() {
			t.enqueueText(it.Text, parent, paste)
			continue
		}
		node := it.NewNode()
		t.addOp(Op{Kind: AddMarkupNode, Args: Args{Node: node, Parent: parent}}, false)
		t.expand(it.Children, node, paste)
	}
}

// DeleteAll removes everything visible at the current delete speed.
func (t *Typewriter) DeleteAll() *Typewriter {
	return t.DeleteAllWithSpeed(0)
}

// DeleteAllWithSpeed removes everything visible at speed, restoring the
// current delete speed afterwards. A zero speed means no override.
func (t *Typewriter) DeleteAllWithSpeed(speed Speed) *Typewriter {
	t.addOp(Op{Kind: RemoveAll, Args: Args{Speed: speed, HasSpeed: speed != 0}}, false)
	return t
}

// Clear removes the last amount visible text units in a single step, or
// everything when amount is not positive. Markup wrappers emptied on the
// way are removed without counting. OnRemoveNode is only called when
// callOnRemove is set.
func (t *Typewriter) Clear(amount int, callOnRemove bool) *Typewriter {
	t.addOp(Op{Kind: Clear, Args: Args{Amount: max(amount, 0), CallOnRemove: callOnRemove}}, false)
	return t
}

// DeleteChars removes the last n visible text units.
func (t *Typewriter) DeleteChars(n int) (*Typewriter, error) {
	if n <= 0 {
		return t, ErrNoAmount
	}
	for range n {
		t.addOp(Op{Kind: RemoveCharacter}, false)
	}
	return t, nil
}

// ChangeDeleteSpeed sets the delete speed from this point on.
func (t *Typewriter) ChangeDeleteSpeed(speed Speed) (*Typewriter, error) {
	if speed == 0 {
		return t, ErrNoDeleteSpeed
	}
	t.addOp(Op{Kind: ChangeDeleteSpeed, Args: Args{Speed: speed}}, false)
	return t, nil
}

// ChangeDelay sets the typing delay from this point on.
func (t *Typewriter) ChangeDelay(delay Speed) (*Typewriter, error) {
	if delay == 0 {
		return t, ErrNoDelay
	}
	t.addOp(Op{Kind: ChangeDelay, Args: Args{Speed: delay}}, false)
	return t, nil
}

// ChangeCursor swaps the cursor glyph.
func (t *Typewriter) ChangeCursor(cursor string) (*Typewriter, error) {
	if cursor == "" {
		return t, ErrNoCursor
	}
	t.addOp(Op{Kind: ChangeCursor, Args: Args{Cursor: cursor}}, false)
	return t, nil
}

// CallFunction runs cb when reached, passing the elements and this.
func (t *Typewriter) CallFunction(cb Callback, this any) (*Typewriter, error) {
	if cb == nil {
		return t, ErrNotCallable
	}
	t.addOp(Op{Kind: CallFunction, Args: Args{Callback: cb, This: this}}, false)
	return t, nil
}

// TypeCharacters types pre-split units into node, or the wrapper when node
// is nil.
func (t *Typewriter) TypeCharacters(chars []string, node *html.Node) (*Typewriter, error) {
	if chars == nil {
		return t, ErrNotCharacters
	}
	for _, ch := range chars {
		t.addOp(Op{Kind: TypeCharacter, Args: Args{Character: ch, Node: node}}, false)
	}
	return t, nil
}

// RemoveCharacters queues one removal per entry of chars.
func (t *Typewriter) RemoveCharacters(chars []string) (*Typewriter, error) {
	if chars == nil {
		return t, ErrNotCharacters
	}
	for range chars {
		t.addOp(Op{Kind: RemoveCharacter}, false)
	}
	return t, nil
}

// TypeOutAllStrings queues Options.Strings: each string is typed and
// followed by a pause. In a list every string but the last is deleted
// again; with Loop the last one is deleted too.
func (t *Typewriter) TypeOutAllStrings() *Typewriter {
	src := t.options.Strings
	if src.Empty() {
		return t
	}
	if src.Single() {
		return t.TypeString(src.list[0]).PauseFor(t.options.PauseFor)
	}

	for i, s := range src.list {
		t.TypeString(s).PauseFor(t.options.PauseFor)
		if i < len(src.list)-1 || t.options.Loop {
			t.DeleteAllWithSpeed(t.options.DeleteSpeed)
		}
	}
	return t
}
