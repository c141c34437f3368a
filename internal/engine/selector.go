package engine

import (
	"math/rand"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// Pick returns one compliment chosen uniformly at random from the pool,
// optionally restricted to a category. It returns nil when the (filtered)
// pool is empty — the caller treats that as "nothing to deliver", not an
// error.
func Pick(pool []domain.Compliment, category domain.Category) *domain.Compliment {
	if category == domain.CategoryAny {
		if len(pool) == 0 {
			return nil
		}
		c := pool[rand.Intn(len(pool))]
		return &c
	}

	matching := make([]domain.Compliment, 0, len(pool))
	for _, c := range pool {
		if c.Category == category {
			matching = append(matching, c)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	c := matching[rand.Intn(len(matching))]
	return &c
}
