package typewriter

import (
	"time"

	"golang.org/x/net/html"

	"github.com/drake/typewriter/dom"
)

// runEventLoop is one frame of the scheduler. It always requests the next
// frame before doing work, and executes at most one operation.
func (t *Typewriter) runEventLoop() {
	t.inTick = true
	defer func() { t.inTick = false }()

	t.cancelFrame = nil
	t.stats.Ticks++

	now := t.host.Now()
	if t.lastFrame.IsZero() {
		t.lastFrame = now
	}
	elapsed := now.Sub(t.lastFrame)

	if t.queue.Len() == 0 {
		if !t.options.Loop {
			return
		}
		t.wrap()
	}

	t.cancelFrame = t.host.RequestFrame(t.runEventLoop)

	if t.paused {
		return
	}

	if !t.pauseUntil.IsZero() {
		if now.Before(t.pauseUntil) {
			return
		}
		t.pauseUntil = time.Time{}
	}

	head, ok := t.queue.Front()
	if !ok {
		return
	}

	delay := t.delayFor(head.Kind)
	if elapsed <= delay {
		return
	}

	op, _ := t.queue.PopFront()
	t.execute(op, now)
	t.stats.Processed++

	if t.options.DevMode {
		t.log.Debug().
			Stringer("op", op.Kind).
			Dur("delay", delay).
			Int("queued", t.queue.Len()).
			Int("visible", len(t.visible)).
			Int("replay", len(t.replay)).
			Msg("processed operation")
	}

	if t.options.Loop && op.Kind != RemoveLastVisibleNode && !op.Args.Temporary {
		t.replay = append(t.replay, op)
	}

	t.lastFrame = now
}

// wrap refills the queue from the replay log and restores the options
// captured at construction.
func (t *Typewriter) wrap() {
	t.queue.Reset(t.replay)
	t.replay = nil
	t.options = t.initialOptions.clone()
	t.stats.Wraps++
}

func (t *Typewriter) delayFor(k Kind) time.Duration {
	if k.deletes() {
		return t.resolve(t.options.DeleteSpeed, naturalDeleteMin, naturalDeleteMax)
	}
	return t.resolve(t.options.Delay, naturalDelayMin, naturalDelayMax)
}

func (t *Typewriter) resolve(s Speed, min, max int) time.Duration {
	if s.IsNatural() {
		return time.Duration(t.host.RandomInt(min, max)) * time.Millisecond
	}
	return s.Duration()
}

func (t *Typewriter) execute(op Op, now time.Time) {
	switch op.Kind {
	case TypeCharacter, PasteString:
		t.appendText(op.Args.Character, op.Args.Node)

	case RemoveCharacter:
		t.queue.PushFront(Op{Kind: RemoveLastVisibleNode, Args: Args{RemovingCharacterNode: true}})

	case RemoveAll:
		t.expandRemoveAll(op.Args)

	case RemoveLastVisibleNode:
		t.removeLastVisibleNode(op.Args.RemovingCharacterNode)

	case PauseFor:
		t.pauseUntil = now.Add(op.Args.Duration)

	case CallFunction:
		cb := op.Args.Callback
		ctx := CallContext{Elements: t.elements, This: op.Args.This}
		t.safely("callFunction", func() { cb(ctx) })

	case AddMarkupNode:
		parent := op.Args.Parent
		if parent == nil {
			parent = t.elements.Wrapper
		}
		dom.Append(parent, op.Args.Node)
		t.visible = append(t.visible, VisibleNode{Kind: MarkupNode, Node: op.Args.Node, Parent: parent})

	case ChangeDeleteSpeed:
		t.options.DeleteSpeed = op.Args.Speed

	case ChangeDelay:
		t.options.Delay = op.Args.Speed

	case ChangeCursor:
		t.options.Cursor = op.Args.Cursor
		dom.SetText(t.elements.Cursor, op.Args.Cursor)

	case Clear:
		t.clear(op.Args.Amount, op.Args.CallOnRemove)
	}
}

func (t *Typewriter) appendText(char string, target *html.Node) {
	node := dom.NewText(char)
	if hook := t.options.OnCreateTextNode; hook != nil {
		created := node
		t.safely("onCreateTextNode", func() { created = hook(char, node) })
		node = created
	}

	parent := target
	if parent == nil {
		parent = t.elements.Wrapper
	}
	if node != nil {
		dom.Append(parent, node)
	}
	t.visible = append(t.visible, VisibleNode{Kind: TextNode, Node: node, Character: char, Parent: parent})
}

func (t *Typewriter) expandRemoveAll(args Args) {
	n := len(t.visible)
	ops := make([]Op, 0, n+2)
	if args.HasSpeed {
		ops = append(ops, Op{Kind: ChangeDeleteSpeed, Args: Args{Speed: args.Speed, Temporary: true}})
	}
	for range n {
		ops = append(ops, Op{Kind: RemoveLastVisibleNode})
	}
	if args.HasSpeed {
		ops = append(ops, Op{Kind: ChangeDeleteSpeed, Args: Args{Speed: t.options.DeleteSpeed, Temporary: true}})
	}
	t.queue.PushFrontAll(ops...)
}

func (t *Typewriter) removeLastVisibleNode(removingCharacter bool) {
	if len(t.visible) == 0 {
		return
	}
	top := t.popVisible(true)

	// A markup wrapper holds no character of its own; take one more.
	if top.Kind == MarkupNode && removingCharacter {
		t.queue.PushFront(Op{Kind: RemoveLastVisibleNode})
	}
}

// clear pops visible nodes until amount text units are gone, or all of
// them when amount is zero.
func (t *Typewriter) clear(amount int, notify bool) {
	removed := 0
	for len(t.visible) > 0 && (amount == 0 || removed < amount) {
		if t.popVisible(notify).Kind == TextNode {
			removed++
		}
	}
}

// popVisible takes the newest visible node off the stack and the surface.
// The stack must not be empty.
func (t *Typewriter) popVisible(notify bool) VisibleNode {
	n := len(t.visible)
	top := t.visible[n-1]
	t.visible = t.visible[:n-1]

	if hook := t.options.OnRemoveNode; notify && hook != nil {
		removed := RemovedNode{Node: top.Node, Character: top.Character}
		t.safely("onRemoveNode", func() { hook(removed) })
	}

	if top.Node != nil {
		dom.Detach(top.Node)
	}
	return top
}

func (t *Typewriter) safely(hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error().Str("hook", hook).Interface("panic", r).Msg("hook panicked")
		}
	}()
	fn()
}
