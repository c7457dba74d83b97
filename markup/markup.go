// Package markup turns markup strings into ordered item trees the
// typewriter can expand into operations.
package markup

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/drake/typewriter/dom"
)

var tagPattern = regexp.MustCompile(`(?i)<[a-z][\s\S]*>`)

// ContainsTag reports whether s looks like it carries markup.
func ContainsTag(s string) bool {
	return tagPattern.MatchString(s)
}

// Item is one entry of a parsed markup string: either plain text or an
// element with its own children. Items are shared through the parse cache
// and must not be modified.
type Item struct {
	Text     string
	Tag      string
	Attrs    []html.Attribute
	Children []Item
}

// IsElement reports whether the item is a tag rather than text.
func (it Item) IsElement() bool {
	return it.Tag != ""
}

// NewNode creates a fresh, empty element for the item.
func (it Item) NewNode() *html.Node {
	n := dom.NewElement(it.Tag)
	if len(it.Attrs) > 0 {
		n.Attr = make([]html.Attribute, len(it.Attrs))
		copy(n.Attr, it.Attrs)
	}
	return n
}

// Parser parses markup fragments, caching results by input string.
type Parser struct {
	cache  *lru.Cache[string, []Item]
	policy *bluemonday.Policy
}

// Option configures a Parser.
type Option func(*Parser)

// WithCacheSize sets the number of parsed strings kept. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(p *Parser) {
		if n <= 0 {
			p.cache = nil
			return
		}
		p.cache, _ = lru.New[string, []Item](n)
	}
}

// WithPolicy sanitizes input with policy before parsing.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(p *Parser) {
		p.policy = policy
	}
}

// Sanitized keeps user-generated-content safe tags only.
func Sanitized() Option {
	return WithPolicy(bluemonday.UGCPolicy())
}

// NewParser creates a Parser. By default it caches 256 entries and does not
// sanitize.
func NewParser(opts ...Option) *Parser {
	cache, _ := lru.New[string, []Item](256)
	p := &Parser{cache: cache}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Default is the parser used by Parse.
var Default = NewParser()

// Parse parses s with the Default parser.
func Parse(s string) ([]Item, error) {
	return Default.Parse(s)
}

// Parse splits s into an ordered item tree. Comments and doctype nodes are
// dropped; whitespace text is kept.
func (p *Parser) Parse(s string) ([]Item, error) {
	if p.cache != nil {
		if items, ok := p.cache.Get(s); ok {
			return items, nil
		}
	}

	src := s
	if p.policy != nil {
		src = p.policy.Sanitize(s)
	}

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	items := convert(nodes)
	if p.cache != nil {
		p.cache.Add(s, items)
	}
	return items, nil
}

// Len returns the number of cached entries.
func (p *Parser) Len() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

func convert(nodes []*html.Node) []Item {
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			if n.Data != "" {
				items = append(items, Item{Text: n.Data})
			}
		case html.ElementNode:
			it := Item{Tag: n.Data}
			if len(n.Attr) > 0 {
				it.Attrs = make([]html.Attribute, len(n.Attr))
				copy(it.Attrs, n.Attr)
			}
			it.Children = convert(dom.Children(n))
			items = append(items, it)
		}
	}
	return items
}
