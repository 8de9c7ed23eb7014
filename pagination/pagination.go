// Package pagination implements the list-query contract shared by every
// collection endpoint: equality filters are applied by the caller, this
// package handles zero-based inclusive ranges, sort whitelisting,
// case-insensitive substring search, and the items/count envelope the
// data-table client consumes.
package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is an externally controlled page window. From and To are zero-based
// inclusive row indexes, matching the range convention of the resource query
// interface.
type Params struct {
	From int
	To   int
	Sort string
	Desc bool
}

// Parse reads either an explicit range (from, to) or page/per_page from the
// query string. Out-of-bounds values clamp rather than error.
func Parse(q url.Values) Params {
	p := Params{Sort: q.Get("sort"), Desc: q.Get("dir") == "desc"}

	if q.Has("from") || q.Has("to") {
		p.From = atoiDefault(q.Get("from"), 0)
		p.To = atoiDefault(q.Get("to"), p.From+DefaultPerPage-1)
	} else {
		page := atoiDefault(q.Get("page"), 0)
		perPage := atoiDefault(q.Get("per_page"), DefaultPerPage)
		if perPage < 1 {
			perPage = DefaultPerPage
		}
		if perPage > MaxPerPage {
			perPage = MaxPerPage
		}
		p.From = page * perPage
		p.To = p.From + perPage - 1
	}

	if p.From < 0 {
		p.From = 0
	}
	if p.To < p.From {
		p.To = p.From
	}
	if p.To-p.From+1 > MaxPerPage {
		p.To = p.From + MaxPerPage - 1
	}
	return p
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// PerPage is the window size implied by the range
func (p Params) PerPage() int {
	return p.To - p.From + 1
}

// Apply sets the window on a gorm query
func (p Params) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(p.From).Limit(p.PerPage())
}

// OrderClause builds an ORDER BY column against a whitelist; an unknown or
// empty sort column falls back to the provided default clause.
func (p Params) OrderClause(allowed map[string]bool, fallback string) string {
	if p.Sort == "" || !allowed[p.Sort] {
		return fallback
	}
	if p.Desc {
		return p.Sort + " desc"
	}
	return p.Sort + " asc"
}

// ILike adds a case-insensitive substring match on a column. Spelled with
// LOWER on both sides so sqlite and postgres behave identically.
func ILike(db *gorm.DB, column, term string) *gorm.DB {
	return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
}

// Page is the envelope every list endpoint returns. PageCount is derived for
// display only; the window itself is externally controlled.
type Page struct {
	Items     interface{} `json:"items"`
	Count     int64       `json:"count"`
	PageCount int         `json:"page_count"`
}

// NewPage computes the display page count from the total and window size
func NewPage(items interface{}, count int64, perPage int) Page {
	pages := 0
	if perPage > 0 {
		pages = int((count + int64(perPage) - 1) / int64(perPage))
	}
	return Page{Items: items, Count: count, PageCount: pages}
}
