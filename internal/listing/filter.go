// Package listing turns raw list-view parameters into bounded,
// ordered, filtered pages of results.
package listing

import (
	"context"
	"fmt"
	"strings"

	"bloghub/pkg/models"
)

// CategoryFinder resolves a category reference during filter normalization
type CategoryFinder interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
}

// Filters is a normalized description of which subset of a collection
// to return. A nil Category means "no filter, return all".
type Filters struct {
	Category *models.Category
}

// NormalizeFilters resolves an untrusted category id into Filters.
// Absent, malformed, or unknown ids fall back to "no filter" rather
// than erroring; only infrastructure failures propagate.
func NormalizeFilters(ctx context.Context, rawCategoryID string, finder CategoryFinder) (Filters, error) {
	id := strings.TrimSpace(rawCategoryID)
	if id == "" {
		return Filters{}, nil
	}

	category, err := finder.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return Filters{}, nil
		}
		return Filters{}, fmt.Errorf("failed to resolve category filter: %w", err)
	}
	if category == nil {
		return Filters{}, nil
	}

	return Filters{Category: category}, nil
}

// CategoryID returns the resolved category id, or "" when unfiltered
func (f Filters) CategoryID() string {
	if f.Category == nil {
		return ""
	}
	return f.Category.ID
}
