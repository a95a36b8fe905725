package app

import "strings"

// Page sizes offered by every list view.
var pageSizes = map[int]struct{}{10: {}, 20: {}, 50: {}, 100: {}}

const defaultPageSize = 20

// ListParams is the shared read contract of every admin list view:
// free-text search, discrete filters, 1-based page, fixed page-size menu.
type ListParams struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Normalize clamps params to the supported ranges: page >= 1, page size
// from the fixed menu (falling back to the default), trimmed search.
func (p ListParams) Normalize() ListParams {
	p.Search = strings.TrimSpace(p.Search)
	if p.Page < 1 {
		p.Page = 1
	}
	if _, ok := pageSizes[p.PageSize]; !ok {
		p.PageSize = defaultPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Filter returns the named filter value, or "" when absent.
func (p ListParams) Filter(name string) string {
	return p.Filters[name]
}
