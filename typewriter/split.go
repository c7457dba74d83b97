package typewriter

import "github.com/rivo/uniseg"

// splitCodePoints is the default splitter: one unit per code point.
func splitCodePoints(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// GraphemeSplitter splits s into user-perceived characters, so emoji
// sequences and combining marks are typed as one unit. Plug it into
// Options.StringSplitter.
func GraphemeSplitter(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
