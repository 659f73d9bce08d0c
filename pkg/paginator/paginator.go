// Package paginator slices ordered result sets into fixed-size, 1-based pages.
//
// Page lookup is forgiving: a missing or non-numeric page selects the first
// page and an out-of-range number selects the last one, so callers never have
// to turn a bad ?page= value into an error.
package paginator

import "strconv"

// Page describes one slice of a result set. Items are filled by the caller.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Number   int   `json:"number"`
	PageSize int   `json:"page_size"`
	NumPages int   `json:"num_pages"`
	Count    int64 `json:"count"`
}

// Request is the resolved window for a page query.
type Request struct {
	Number   int
	PageSize int
	NumPages int
	Count    int64
}

// Offset is the number of rows to skip.
func (r Request) Offset() int { return (r.Number - 1) * r.PageSize }

// Limit is the number of rows to fetch.
func (r Request) Limit() int { return r.PageSize }

// Resolve validates raw (typically the ?page= query value) against count rows.
func Resolve(raw string, pageSize int, count int64) Request {
	if pageSize <= 0 {
		pageSize = 10
	}
	numPages := NumPages(count, pageSize)
	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}
	return Request{Number: number, PageSize: pageSize, NumPages: numPages, Count: count}
}

// NumPages returns the page count; an empty set still has one (empty) page.
func NumPages(count int64, pageSize int) int {
	if count <= 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

// New wraps items fetched for r into a Page.
func New[T any](r Request, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Number: r.Number, PageSize: r.PageSize, NumPages: r.NumPages, Count: r.Count}
}

func (p Page[T]) Len() int          { return len(p.Items) }
func (p Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}
func (p Page[T]) NextNumber() int     { return p.Number + 1 }
func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

// Numbers lists every page number, for rendering page links.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
