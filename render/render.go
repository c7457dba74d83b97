// Package render draws a dom tree as styled terminal text.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"github.com/drake/typewriter/dom"
)

// Renderer turns a markup tree into a string with ANSI styling.
// Tag styles come from the theme, class styles from the sheet; both are
// inherited by descendants.
type Renderer struct {
	sheet *Sheet
	theme Theme
}

// NewRenderer creates a renderer. A nil sheet uses DefaultSheet.
func NewRenderer(sheet *Sheet, theme Theme) *Renderer {
	if sheet == nil {
		sheet = DefaultSheet
	}
	return &Renderer{sheet: sheet, theme: theme}
}

// Render draws root and everything under it.
func (r *Renderer) Render(root *html.Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	r.renderNode(&b, root, lipgloss.NewStyle())
	return b.String()
}

func (r *Renderer) renderNode(b *strings.Builder, n *html.Node, inherited lipgloss.Style) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(inherited.Render(n.Data))
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
		inherited = r.styleFor(n).Inherit(inherited)
	}

	// Consecutive text children share one styled run.
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(inherited.Render(run.String()))
			run.Reset()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			run.WriteString(c.Data)
			continue
		}
		flush()
		r.renderNode(b, c, inherited)
	}
	flush()
}

// styleFor merges the tag style with every class style of n.
func (r *Renderer) styleFor(n *html.Node) lipgloss.Style {
	st := lipgloss.NewStyle()
	if tag, ok := r.theme.Tags[n.Data]; ok {
		st = tag
	}
	for _, class := range dom.Classes(n) {
		if cs, ok := r.sheet.Get(class); ok {
			st = st.Inherit(cs)
		}
	}
	return st
}

// PlainText returns the visible text under root, without styling.
func PlainText(root *html.Node) string {
	if root == nil {
		return ""
	}
	return dom.Text(root)
}

// Width returns the number of terminal cells s occupies, ignoring ANSI codes.
func Width(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Strip removes ANSI escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}
