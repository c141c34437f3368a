package catalog

import (
	"testing"

	"github.com/chethan059/compliment-generator/internal/domain"
)

func TestDefault(t *testing.T) {
	all, err := Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	seen := make(map[string]bool, len(all))
	perCategory := make(map[domain.Category]int)
	for _, c := range all {
		if c.ID == "" || c.Text == "" {
			t.Fatalf("incomplete entry: %+v", c)
		}
		if seen[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
		if c.IsCustom {
			t.Fatalf("catalog entry %q must not be custom", c.ID)
		}
		perCategory[c.Category]++
	}

	// Every category has at least one built-in, so a category-filtered
	// schedule always has something to draw from out of the box.
	for _, cat := range domain.Categories() {
		if perCategory[cat] == 0 {
			t.Fatalf("category %q has no built-in compliments", cat)
		}
	}
}
