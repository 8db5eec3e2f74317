package listing

import (
	"context"
	"fmt"

	"bloghub/pkg/models"
)

// DefaultPageSize matches the original paginator constant
const DefaultPageSize = 10

// Query describes a filtered, ordered collection the paginator can
// count and window. Count and Fetch must observe the same filter so
// the reported total always agrees with the returned window.
type Query[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// Page is one bounded window of a collection plus total-count metadata
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Meta converts the page counters into the API metadata shape
func (p *Page[T]) Meta() models.PaginationMeta {
	return models.PaginationMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// Paginate counts the full query once, then fetches the requested
// window. Page numbers below 1 are clamped to 1; a page beyond the
// last yields empty items with the true totals. Even an empty
// collection reports one page so callers can always render page 1.
func Paginate[T any](ctx context.Context, q Query[T], page, pageSize int) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	offset := (page - 1) * pageSize
	items := []T{}
	if offset < total {
		items, err = q.Fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page: %w", err)
		}
	}

	return &Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// funcQuery adapts a pair of closures to the Query interface
type funcQuery[T any] struct {
	count func(ctx context.Context) (int, error)
	fetch func(ctx context.Context, offset, limit int) ([]T, error)
}

func (q funcQuery[T]) Count(ctx context.Context) (int, error) {
	return q.count(ctx)
}

func (q funcQuery[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	return q.fetch(ctx, offset, limit)
}

// NewQuery builds a Query from count and fetch closures. Repositories
// use this to hand the paginator both halves of one composed query.
func NewQuery[T any](
	count func(ctx context.Context) (int, error),
	fetch func(ctx context.Context, offset, limit int) ([]T, error),
) Query[T] {
	return funcQuery[T]{count: count, fetch: fetch}
}
