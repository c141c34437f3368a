// Package catalog embeds the built-in compliment catalog. Entries are seeded
// into the store at startup and are not user-deletable; custom compliments
// live alongside them with IsCustom set.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/chethan059/compliment-generator/internal/domain"
)

//go:embed compliments.json
var catalogFS embed.FS

type entry struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Default returns the built-in compliments. CreatedAt is left zero; the
// store stamps seed time on first insert.
func Default() ([]domain.Compliment, error) {
	raw, err := catalogFS.ReadFile("compliments.json")
	if err != nil {
		return nil, err
	}
	var entries []entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make([]domain.Compliment, 0, len(entries))
	for _, e := range entries {
		cat, err := domain.ParseCategory(e.Category)
		if err != nil || cat == domain.CategoryAny {
			return nil, fmt.Errorf("catalog entry %q: bad category %q", e.ID, e.Category)
		}
		out = append(out, domain.Compliment{
			ID:       e.ID,
			Text:     e.Text,
			Category: cat,
			IsCustom: false,
		})
	}
	return out, nil
}
