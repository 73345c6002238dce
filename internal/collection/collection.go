// Package collection implements the shared list state behind every
// admin listing: one fetch, client-side substring filtering over a
// fixed set of fields, and page slicing over the filtered result.
package collection

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
)

// Fetcher loads the full entity list from the backend.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// SearchFields extracts the strings a query is matched against.
type SearchFields[T any] func(item T) []string

// IDOf returns the entity identifier used by FindByID.
type IDOf[T any] func(item T) string

// Collection holds one listing's items, query and page. All methods
// are safe for concurrent use.
type Collection[T any] struct {
	mu       sync.RWMutex
	items    []T
	query    string
	page     int
	pageSize int
	loading  bool
	err      error
	gen      uint64

	fetch  Fetcher[T]
	fields SearchFields[T]
	idOf   IDOf[T]
}

func New[T any](fetch Fetcher[T], fields SearchFields[T], idOf IDOf[T], pageSize int) *Collection[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Collection[T]{
		fetch:    fetch,
		fields:   fields,
		idOf:     idOf,
		page:     1,
		pageSize: pageSize,
	}
}

// Load fetches the list and replaces the items. A load started before
// a newer one finished is discarded so a slow response cannot clobber
// fresher data. When the session is still resolving the collection
// stays in its loading state without surfacing an error.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if errors.Is(err, domain.ErrAuthNotReady) {
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	c.items = items
	return nil
}

// SetQuery updates the search text and resets to the first page.
func (c *Collection[T]) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if q == c.query {
		return
	}
	c.query = q
	c.page = 1
}

func (c *Collection[T]) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

func (c *Collection[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.page = page
}

func (c *Collection[T]) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Filtered returns all items matching the current query,
// case-insensitively, as a substring of any search field.
func (c *Collection[T]) Filtered() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filteredLocked()
}

func (c *Collection[T]) filteredLocked() []T {
	if c.query == "" {
		out := make([]T, len(c.items))
		copy(out, c.items)
		return out
	}
	q := strings.ToLower(c.query)
	var out []T
	for _, item := range c.items {
		for _, field := range c.fields(item) {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Page returns the current page of the filtered items. A page past the
// end yields an empty slice rather than a panic.
func (c *Collection[T]) Page() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	filtered := c.filteredLocked()
	start := (c.page - 1) * c.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + c.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// TotalPages is ceil(filtered / pageSize); an empty result still
// reports one page so the pager has something to render.
func (c *Collection[T]) TotalPages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.filteredLocked())
	if n == 0 {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(c.pageSize)))
}

func (c *Collection[T]) TotalFiltered() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filteredLocked())
}

// FindByID looks an entity up in the already-loaded items.
func (c *Collection[T]) FindByID(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
