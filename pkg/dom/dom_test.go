package dom

import (
	"strings"
	"testing"
	"time"
)

const sampleHTML = `<html><head><title>Mensa Test</title></head><body>
<table class="aw-weekly-menu wide">
  <thead><tr><th><p>Mo</p><p>08.09.2025</p></th></tr></thead>
  <tr><td><div class="meal primary" id="m1"><div class="description"><p>  Tomaten
  suppe </p></div></div></td></tr>
</table>
</body></html>`

func TestParseImpliesTbody(t *testing.T) {
	root, err := ParseString(sampleHTML)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	table := root.FirstDescendant(And(Tag("table"), Class("aw-weekly-menu")))
	if table == nil {
		t.Fatal("table.aw-weekly-menu not found")
	}
	if !table.HasClass("wide") {
		t.Errorf("HasClass(wide) = false, want true")
	}
	if table.HasClass("aw-weekly") {
		t.Errorf("HasClass(aw-weekly) = true, want false")
	}

	tbody := table.FirstChildMatching(Tag("tbody"))
	if tbody == nil {
		t.Fatal("parser did not insert tbody")
	}
	if got := len(tbody.ChildElements(Tag("tr"))); got != 1 {
		t.Errorf("len(tr) = %d, want 1", got)
	}
}

func TestElementLookups(t *testing.T) {
	root, err := ParseString(sampleHTML)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	meal := root.FirstDescendant(Class("meal"))
	if meal == nil {
		t.Fatal("meal block not found")
	}
	if id, ok := meal.Attr("id"); !ok || id != "m1" {
		t.Errorf("Attr(id) = %q, %v, want %q, true", id, ok, "m1")
	}
	if _, ok := meal.Attr("title"); ok {
		t.Errorf("Attr(title) present, want absent")
	}
	if got := meal.AttrOr("data-x", "none"); got != "none" {
		t.Errorf("AttrOr() = %q, want %q", got, "none")
	}

	desc := meal.FirstDescendant(Class("description"))
	if got := desc.Text(); got != "Tomaten suppe" {
		t.Errorf("Text() = %q, want %q", got, "Tomaten suppe")
	}

	ps := root.Descendants(Tag("p"))
	if len(ps) != 3 {
		t.Fatalf("len(p) = %d, want 3", len(ps))
	}
	if got := ps[1].Text(); got != "08.09.2025" {
		t.Errorf("second p = %q, want %q", got, "08.09.2025")
	}

	if got := root.FirstDescendant(Tag("nav")); got != nil {
		t.Errorf("FirstDescendant(nav) = %v, want nil", got)
	}
	var nilEl *Element
	if got := nilEl.Text(); got != "" {
		t.Errorf("nil Text() = %q, want empty", got)
	}
}

func TestPredicates(t *testing.T) {
	el := NewElement("SPAN", map[string]string{"title": "Preis für Studierende", "class": "a b"})

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"tag lowercased", Tag("span"), true},
		{"tag mismatch", Tag("div"), false},
		{"has attr", HasAttr("title"), true},
		{"missing attr", HasAttr("id"), false},
		{"and", And(Tag("span"), Class("b")), true},
		{"and fails", And(Tag("span"), Class("c")), false},
		{"or", Or(Tag("div"), Class("a")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(el); got != tt.want {
				t.Errorf("pred() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePupJSON(t *testing.T) {
	input := `[
  {"tag": "div", "class": "primary meal", "id": "m42", "children": [
    {"tag": "div", "class": "description", "children": [{"tag": "p", "text": "Linsensuppe"}]},
    {"tag": "p", "class": "price", "children": [
      {"tag": "span", "title": "Preis für Studierende", "text": "1,90 €"},
      {"tag": "span", "title": "Preis für Bedienstete", "text": "3,10 €"}
    ]}
  ]}
]`
	root, err := ParsePupJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePupJSON() error = %v", err)
	}
	if root.Tag() != "#pup" {
		t.Errorf("root tag = %q, want #pup", root.Tag())
	}

	meal := root.FirstDescendant(Class("meal"))
	if meal == nil {
		t.Fatal("meal not found")
	}
	if !meal.HasClass("primary") {
		t.Errorf("meal missing class primary")
	}
	if got := meal.FirstDescendant(Class("description")).Text(); got != "Linsensuppe" {
		t.Errorf("description = %q, want %q", got, "Linsensuppe")
	}
	if got := len(meal.Descendants(HasAttr("title"))); got != 2 {
		t.Errorf("titled spans = %d, want 2", got)
	}
}

func TestParsePupJSONEdgeCases(t *testing.T) {
	root, err := ParsePupJSON(strings.NewReader("  "))
	if err != nil {
		t.Fatalf("empty input error = %v", err)
	}
	if len(root.Children()) != 0 {
		t.Errorf("empty input children = %d, want 0", len(root.Children()))
	}

	root, err = ParsePupJSON(strings.NewReader(`{"tag":"div","class":"meal"}`))
	if err != nil {
		t.Fatalf("single object error = %v", err)
	}
	if len(root.Children()) != 1 {
		t.Errorf("single object children = %d, want 1", len(root.Children()))
	}

	if _, err := ParsePupJSON(strings.NewReader(`[{"tag": 3}]`)); err == nil {
		t.Errorf("expected error for non-string tag")
	}
}

func TestWrapAsMenuTable(t *testing.T) {
	block := NewElement("div", map[string]string{"class": "meal"})
	doc := WrapAsMenuTable([]*Element{block}, time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC))

	table := doc.FirstDescendant(Class("aw-weekly-menu"))
	if table == nil {
		t.Fatal("wrapped table missing")
	}
	header := table.FirstDescendant(Tag("thead")).FirstDescendant(Tag("p"))
	if got := header.Text(); got != "8.9.2025" {
		t.Errorf("header = %q, want %q", got, "8.9.2025")
	}
	if got := len(table.Descendants(Class("meal"))); got != 1 {
		t.Errorf("meal blocks = %d, want 1", got)
	}

	empty := WrapAsMenuTable(nil, time.Time{})
	if got := empty.FirstDescendant(Tag("p")).Text(); got != "" {
		t.Errorf("zero date header = %q, want empty", got)
	}
}

func TestParseReturnsDocumentRoot(t *testing.T) {
	root, err := Parse(strings.NewReader("<p>Reis</p>"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := root.Tag(); got != "#document" {
		t.Errorf("root.Tag() = %q, want #document", got)
	}
	html := root.FirstChildMatching(Tag("html"))
	if html == nil {
		t.Fatal("implied html element missing")
	}
	if got := html.FirstDescendant(Tag("p")).Text(); got != "Reis" {
		t.Errorf("p text = %q, want Reis", got)
	}
}
