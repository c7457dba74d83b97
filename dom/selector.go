package dom

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// QuerySelector returns the first element under root, in document order,
// matching sel, or nil. root itself may match.
//
// Supported: tag, #id, .class (repeatable), [attr], [attr=val] in any
// combination, and the descendant combinator (whitespace).
func QuerySelector(root *html.Node, sel string) *html.Node {
	s, ok := parseSelector(sel)
	if root == nil || !ok {
		return nil
	}
	for n := range elements(root) {
		if s.match(n, root) {
			return n
		}
	}
	return nil
}

// QuerySelectorAll returns every element under root matching sel, in
// document order.
func QuerySelectorAll(root *html.Node, sel string) []*html.Node {
	s, ok := parseSelector(sel)
	if root == nil || !ok {
		return nil
	}
	var out []*html.Node
	for n := range elements(root) {
		if s.match(n, root) {
			out = append(out, n)
		}
	}
	return out
}

// selector is a descendant chain, outermost step first.
type selector []compound

// compound is one step of a selector. Every test in it must hold.
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrTest
}

type attrTest struct {
	key    string
	val    string
	hasVal bool
}

func parseSelector(sel string) (selector, bool) {
	fields := strings.Fields(sel)
	if len(fields) == 0 {
		return nil, false
	}
	s := make(selector, 0, len(fields))
	for _, f := range fields {
		c, ok := parseCompound(f)
		if !ok {
			return nil, false
		}
		s = append(s, c)
	}
	return s, true
}

// parseCompound reads "tag#id.a.b[attr=val]". Parts after the tag may
// come in any order.
func parseCompound(f string) (compound, bool) {
	var c compound

	end := strings.IndexAny(f, "#.[")
	if end < 0 {
		end = len(f)
	}
	c.tag = strings.ToLower(f[:end])
	rest := f[end:]

	for rest != "" {
		switch rest[0] {
		case '[':
			closing := strings.IndexByte(rest, ']')
			if closing < 0 {
				return c, false
			}
			body := rest[1:closing]
			rest = rest[closing+1:]

			key, val, hasVal := strings.Cut(body, "=")
			if key == "" {
				return c, false
			}
			c.attrs = append(c.attrs, attrTest{key: key, val: strings.Trim(val, `"'`), hasVal: hasVal})

		case '#', '.':
			next := strings.IndexAny(rest[1:], "#.[")
			if next < 0 {
				next = len(rest) - 1
			}
			name := rest[1 : next+1]
			if name == "" {
				return c, false
			}
			if rest[0] == '#' {
				c.id = name
			} else {
				c.classes = append(c.classes, name)
			}
			rest = rest[next+1:]

		default:
			return c, false
		}
	}
	return c, true
}

// match reports whether n matches the whole chain. Ancestor steps are
// looked up from n's parent up to and including scope.
func (s selector) match(n, scope *html.Node) bool {
	last := len(s) - 1
	if !s[last].match(n) {
		return false
	}

	anc := n
	for i := last - 1; i >= 0; i-- {
		for {
			if anc == scope {
				return false
			}
			anc = anc.Parent
			if anc == nil {
				return false
			}
			if s[i].match(anc) {
				break
			}
		}
	}
	return true
}

func (c compound) match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && n.Data != c.tag {
		return false
	}
	if c.id != "" && Attr(n, "id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := Classes(n)
		for _, want := range c.classes {
			if !slices.Contains(have, want) {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		if !HasAttr(n, a.key) {
			return false
		}
		if a.hasVal && Attr(n, a.key) != a.val {
			return false
		}
	}
	return true
}

// elements yields root and every element below it in document order.
func elements(root *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(n *html.Node) bool {
			if n.Type == html.ElementNode && !yield(n) {
				return false
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(root)
	}
}
