package markup

import (
	"testing"
)

func TestContainsTag(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Hello world", false},
		{"Hello <strong>world</strong>!", true},
		{"<div>", true},
		{"a < b > c", false},
		{"<1>", false},
		{"<P class='x'>", true},
	}
	for _, tt := range tests {
		if got := ContainsTag(tt.in); got != tt.want {
			t.Errorf("ContainsTag(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFlat(t *testing.T) {
	p := NewParser()
	items, err := p.Parse("Hello <strong>world</strong>!")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Text != "Hello " || items[0].IsElement() {
		t.Errorf("item 0: %+v", items[0])
	}
	if items[1].Tag != "strong" || len(items[1].Children) != 1 || items[1].Children[0].Text != "world" {
		t.Errorf("item 1: %+v", items[1])
	}
	if items[2].Text != "!" {
		t.Errorf("item 2: %+v", items[2])
	}
}

func TestParseNested(t *testing.T) {
	p := NewParser()
	items, err := p.Parse(`<div class="wrapper"><p><strong>test</strong></p>!</div>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Tag != "div" {
		t.Fatalf("unexpected root items: %+v", items)
	}
	div := items[0]
	if len(div.Attrs) != 1 || div.Attrs[0].Key != "class" || div.Attrs[0].Val != "wrapper" {
		t.Errorf("attrs not kept: %+v", div.Attrs)
	}
	if len(div.Children) != 2 {
		t.Fatalf("expected p and text, got %+v", div.Children)
	}
	strong := div.Children[0].Children[0]
	if strong.Tag != "strong" || strong.Children[0].Text != "test" {
		t.Errorf("nested strong wrong: %+v", strong)
	}
}

func TestParseDecodesEntities(t *testing.T) {
	p := NewParser()
	items, err := p.Parse("<b>a &amp; b</b>")
	if err != nil {
		t.Fatal(err)
	}
	if got := items[0].Children[0].Text; got != "a & b" {
		t.Errorf("expected decoded text, got %q", got)
	}
}

func TestParseCaches(t *testing.T) {
	p := NewParser(WithCacheSize(2))
	a, _ := p.Parse("<i>x</i>")
	b, _ := p.Parse("<i>x</i>")
	if p.Len() != 1 {
		t.Errorf("expected one cached entry, got %d", p.Len())
	}
	if &a[0] != &b[0] {
		t.Error("second parse did not come from cache")
	}

	uncached := NewParser(WithCacheSize(0))
	uncached.Parse("<i>x</i>")
	if uncached.Len() != 0 {
		t.Error("cache should be disabled")
	}
}

func TestSanitized(t *testing.T) {
	p := NewParser(Sanitized())
	items, err := p.Parse(`<strong>ok</strong><script>alert(1)</script>`)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.Tag == "script" {
			t.Fatal("script tag survived sanitizing")
		}
	}
	if items[0].Tag != "strong" {
		t.Errorf("safe tag dropped: %+v", items)
	}
}

func TestNewNodeIsFresh(t *testing.T) {
	items, _ := NewParser().Parse(`<a href="/x">y</a>`)
	n1 := items[0].NewNode()
	n2 := items[0].NewNode()
	if n1 == n2 {
		t.Fatal("expected distinct nodes")
	}
	if n1.FirstChild != nil {
		t.Error("node should be empty")
	}
	n1.Attr[0].Val = "/changed"
	if items[0].Attrs[0].Val != "/x" {
		t.Error("node shares attribute storage with cached item")
	}
}
