// Package pagination splits a collection into fixed size pages.
//
// A Config is built once per request and passed, together with the
// collection (a Source), to the pure Pages and Data functions.
package pagination

import (
	"context"
	"fmt"
	"math"
)

const (
	DefaultPageSize = 10
	DefaultPage     = 1
)

// Source is a collection that can be counted and sliced.
type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	FindSlice(ctx context.Context, limit, offset int) ([]T, error)
}

// Config selects one page of a collection.
type Config struct {
	Page     int
	PageSize int
}

// New builds a Config, clamping page and pageSize to at least 1. Page is also
// capped so that its offset and the following page number fit in an int.
func New(page, pageSize int) Config {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if last := maxPage(pageSize); page > last {
		page = last
	}
	return Config{Page: page, PageSize: pageSize}
}

func maxPage(pageSize int) int {
	return max(math.MaxInt/pageSize-1, 1)
}

// Offset is the index of the first row on the page.
func (c Config) Offset() int {
	return c.Page*c.PageSize - c.PageSize
}

// Pages returns the number of pages needed to hold the whole collection.
func Pages[T any](ctx context.Context, src Source[T], cfg Config) (int, error) {
	total, err := src.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return (total + cfg.PageSize - 1) / cfg.PageSize, nil
}

// Data returns the rows of the configured page. A page past the end is empty.
func Data[T any](ctx context.Context, src Source[T], cfg Config) ([]T, error) {
	rows, err := src.FindSlice(ctx, cfg.PageSize, cfg.Offset())
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", cfg.Page, err)
	}
	return rows, nil
}

// Page bundles a page of rows with the navigation numbers a listing needs.
type Page[T any] struct {
	Items    []T
	Current  int
	Pages    int
	PageSize int
}

func (p Page[T]) HasPrev() bool { return p.Current > 1 }
func (p Page[T]) HasNext() bool { return p.Current < p.Pages }
func (p Page[T]) Prev() int     { return p.Current - 1 }
func (p Page[T]) Next() int     { return p.Current + 1 }

// Load runs Pages and Data for cfg.
func Load[T any](ctx context.Context, src Source[T], cfg Config) (Page[T], error) {
	pages, err := Pages(ctx, src, cfg)
	if err != nil {
		return Page[T]{}, err
	}
	items, err := Data(ctx, src, cfg)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Current: cfg.Page, Pages: pages, PageSize: cfg.PageSize}, nil
}
