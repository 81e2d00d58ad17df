package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params holds page-number pagination parameters extracted from a request.
type Params struct {
	Page     int
	PageSize int
}

// FromContext extracts pagination parameters from the echo context. Page
// numbers start at 1; page_size defaults to 10 and is capped at 100.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

// Limit returns the SQL LIMIT for the page.
func (p Params) Limit() int {
	return p.PageSize
}

// Offset returns the SQL OFFSET for the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// HasNext reports whether results exist after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset()+p.PageSize < total
}

// HasPrevious reports whether results exist before the current page.
func (p Params) HasPrevious() bool {
	return p.Page > 1
}

// Response is the paginated list envelope.
type Response struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewResponse wraps one page of results with count and relative page links.
func NewResponse(results interface{}, total int, p Params, basePath string) *Response {
	resp := &Response{
		Count:   total,
		Results: results,
	}
	if p.HasNext(total) {
		next := pageLink(basePath, p.Page+1, p.PageSize)
		resp.Next = &next
	}
	if p.HasPrevious() {
		prev := pageLink(basePath, p.Page-1, p.PageSize)
		resp.Previous = &prev
	}
	return resp
}

func pageLink(basePath string, page, size int) string {
	return fmt.Sprintf("%s?page=%d&page_size=%d", basePath, page, size)
}
