package harvest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dialogkit/slotmat/internal/dataset"
)

const cityHTML = `
<html><body>
<h1>Destinations</h1>
<ul class="cities">
  <li> London </li>
  <li>Paris</li>
  <li>New   York</li>
  <li>paris</li>
  <li><a data-code="LHR" href="/london">London</a></li>
</ul>
<a class="next" href="/cities?page=2">More</a>
</body></html>
`

func TestExtractValues(t *testing.T) {
	values, err := ExtractValues(cityHTML, Seed{Slot: "city", Selector: "ul.cities li"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"london", "paris", "new york"}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("ExtractValues = %v, want %v", values, want)
	}
}

func TestExtractValuesAttr(t *testing.T) {
	values, err := ExtractValues(cityHTML, Seed{Slot: "city", Selector: "ul.cities a", Attr: "data-code"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"lhr"}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("ExtractValues = %v, want %v", values, want)
	}
}

func TestExtractValuesNoMatch(t *testing.T) {
	values, err := ExtractValues(cityHTML, Seed{Slot: "city", Selector: "table td"})
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 0 {
		t.Errorf("ExtractValues = %v, want none", values)
	}
}

func TestNextPageURL(t *testing.T) {
	next, err := NextPageURL(cityHTML, "https://travel.test/cities", "a.next")
	if err != nil {
		t.Fatal(err)
	}
	if next != "https://travel.test/cities?page=2" {
		t.Errorf("NextPageURL = %q, want %q", next, "https://travel.test/cities?page=2")
	}

	next, err = NextPageURL(cityHTML, "https://travel.test/cities", "")
	if err != nil || next != "" {
		t.Errorf("NextPageURL with no selector = %q, %v, want empty", next, err)
	}

	next, err = NextPageURL(cityHTML, "https://travel.test/cities", "a.missing")
	if err != nil || next != "" {
		t.Errorf("NextPageURL with no match = %q, %v, want empty", next, err)
	}

	next, err = NextPageURL(`<a class="next" href="#top">top</a>`, "https://travel.test/", "a.next")
	if err != nil || next != "" {
		t.Errorf("NextPageURL with fragment link = %q, %v, want empty", next, err)
	}
}

func TestValuesAdd(t *testing.T) {
	values := make(Values)
	values.Add("city", []string{"paris", "london"})
	values.Add("city", []string{"london", "", "berlin"})

	want := []string{"berlin", "london", "paris"}
	if !reflect.DeepEqual(values["city"], want) {
		t.Errorf("values[city] = %v, want %v", values["city"], want)
	}
}

func TestLoadSeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.jsonl")
	content := `# harvest seeds
{"url": "https://travel.test/cities", "slot": "city", "selector": "li"}

{"url": "https://travel.test/food", "slot": "food", "selector": "td", "next": "a.next", "max_pages": 3}
not json
{"url": "https://travel.test/broken", "slot": "", "selector": "li"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	seeds, err := loadSeeds(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(seeds) != 2 {
		t.Fatalf("loaded %d seeds, want 2", len(seeds))
	}
	if seeds[0].Slot != "city" || seeds[1].Slot != "food" {
		t.Errorf("seed slots = %q, %q", seeds[0].Slot, seeds[1].Slot)
	}
	if seeds[1].MaxPages != 3 || seeds[1].Next != "a.next" {
		t.Errorf("seed fields not kept: %+v", seeds[1])
	}
}

func TestMergeOntology(t *testing.T) {
	ont := &dataset.Ontology{
		Slots:   map[string][]string{"city": {"london", "paris"}},
		Actions: []string{"inform"},
	}
	values := Values{
		"city": {"berlin", "paris", "amsterdam"},
		"food": {"thai"},
	}

	added := MergeOntology(ont, values)
	if added != 3 {
		t.Errorf("added = %d, want 3", added)
	}

	// Existing candidates keep their positions, new ones follow sorted.
	wantCity := []string{"london", "paris", "amsterdam", "berlin"}
	if !reflect.DeepEqual(ont.Slots["city"], wantCity) {
		t.Errorf("city = %v, want %v", ont.Slots["city"], wantCity)
	}
	if !reflect.DeepEqual(ont.Slots["food"], []string{"thai"}) {
		t.Errorf("food = %v, want [thai]", ont.Slots["food"])
	}
	if !reflect.DeepEqual(ont.Actions, []string{"inform"}) {
		t.Errorf("actions changed: %v", ont.Actions)
	}
}

func TestExpandTemplates(t *testing.T) {
	templates := []Seed{
		{URL: "https://travel.test/cities?page={page}", Slot: "city", Selector: "li", Next: "a.next"},
		{URL: "https://travel.test/food", Slot: "food", Selector: "td"},
	}

	seeds := ExpandTemplates(templates, 3)
	if len(seeds) != 4 {
		t.Fatalf("expanded to %d seeds, want 4", len(seeds))
	}
	if seeds[0].URL != "https://travel.test/cities?page=1" {
		t.Errorf("first URL = %q", seeds[0].URL)
	}
	if seeds[2].URL != "https://travel.test/cities?page=3" {
		t.Errorf("third URL = %q", seeds[2].URL)
	}
	if seeds[0].Next != "" {
		t.Errorf("expanded seed kept pagination selector %q", seeds[0].Next)
	}
	if seeds[3].URL != "https://travel.test/food" {
		t.Errorf("passthrough URL = %q", seeds[3].URL)
	}
}

func TestDomainKey(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://www.example.co.uk/cities?page=2", "example.co.uk"},
		{"https://travel.example.com/food", "example.com"},
		{"http://localhost:8080/x", "localhost"},
	}
	for _, tt := range tests {
		if got := domainKey(tt.rawURL); got != tt.want {
			t.Errorf("domainKey(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}
