// Package paginate slices ordered result sets into fixed-size pages.
//
// Invalid page requests never fail: a missing, non-numeric or non-positive
// page resolves to the first page and a page past the end resolves to the
// last one.
package paginate

import (
	"strconv"
	"strings"
)

// Page describes one page of an ordered result set.
type Page struct {
	Number   int
	PerPage  int
	NumPages int
	Total    int64
}

// Resolve computes the page to serve for a result set of total items.
func Resolve(total int64, perPage int, requested string) Page {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}

	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages == 0 {
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(requested))
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{Number: number, PerPage: perPage, NumPages: numPages, Total: total}
}

// Slice returns the items of the requested page of an already ordered slice.
func Slice[T any](items []T, perPage int, requested string) ([]T, Page) {
	page := Resolve(int64(len(items)), perPage, requested)
	start := page.Offset()
	if start >= len(items) {
		return []T{}, page
	}
	end := min(start+page.PerPage, len(items))
	return items[start:end], page
}

// Offset is the zero-based index of the first item on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p Page) PreviousNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// StartIndex is the 1-based index of the first item on the page, 0 when empty.
func (p Page) StartIndex() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (p Page) EndIndex() int {
	end := int64(p.Offset() + p.PerPage)
	if end > p.Total {
		end = p.Total
	}
	return int(end)
}
