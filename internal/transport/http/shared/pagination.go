package shared

import (
	"net/http"
	"strconv"
)

type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// ParsePage reads ?page= and ?limit=, clamping to sane values.
func ParsePage(r *http.Request, defaultLimit, maxLimit int) Page {
	page := 1
	limit := defaultLimit
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Page{Number: page, Limit: limit}
}

type PageMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	Next       *int `json:"next,omitempty"`
	Prev       *int `json:"prev,omitempty"`
}

func NewPageMeta(page Page, total int) PageMeta {
	meta := PageMeta{Page: page.Number, Limit: page.Limit, Total: total}
	if page.Limit > 0 {
		meta.TotalPages = (total + page.Limit - 1) / page.Limit
	}
	if page.Number < meta.TotalPages {
		next := page.Number + 1
		meta.Next = &next
	}
	if page.Number > 1 {
		prev := page.Number - 1
		meta.Prev = &prev
	}
	return meta
}
