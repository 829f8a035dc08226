package handlers

import (
	"errors"
	"strconv"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
)

// ErrInvalidPage rejects non-numeric or non-positive paging parameters
// rather than clamping them, so a given request always means one window.
var ErrInvalidPage = errors.New("page and per_page must be positive integers")

// Page is a deterministic offset window over an ordered result set.
type Page struct {
	Number int
	Size   int
}

// Offset is the zero-based index of the window's first row,
// (page-1)*per_page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit is the window width; the window covers rows
// [Offset(), Offset()+Limit()-1] inclusive.
func (p Page) Limit() int {
	return p.Size
}

// ResolvePage parses page/per_page query values, applying defaults of 1/20
// when a value is absent.
func ResolvePage(pageStr, perPageStr string) (Page, error) {
	page := defaultPage
	perPage := defaultPerPage

	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidPage
		}
		page = n
	}
	if perPageStr != "" {
		n, err := strconv.Atoi(perPageStr)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidPage
		}
		perPage = n
	}

	return Page{Number: page, Size: perPage}, nil
}
