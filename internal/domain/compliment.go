package domain

import (
	"errors"
	"strings"
	"time"
)

// Category groups compliments so a schedule can restrict what it delivers.
type Category string

const (
	CategoryMotivational Category = "motivational"
	CategoryFunny        Category = "funny"
	CategoryEncouraging  Category = "encouraging"
	CategoryProfessional Category = "professional"
	CategoryPersonal     Category = "personal"
	CategoryGeneral      Category = "general"

	// CategoryAny is the empty category: no filtering.
	CategoryAny Category = ""
)

var ErrUnknownCategory = errors.New("unknown category")

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryMotivational,
		CategoryFunny,
		CategoryEncouraging,
		CategoryProfessional,
		CategoryPersonal,
		CategoryGeneral,
	}
}

// ParseCategory validates a category string. The empty string is accepted
// and means "any category" (no filter).
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == CategoryAny {
		return CategoryAny, nil
	}
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Compliment is one short affirmation text. Built-in entries come from the
// embedded catalog and are immutable; custom entries are authored by the user
// and may be deleted.
type Compliment struct {
	ID        string
	Text      string
	Category  Category
	CreatedAt time.Time // UTC
	IsCustom  bool
}
