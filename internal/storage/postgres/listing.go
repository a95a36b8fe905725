package postgres

import (
	"fmt"
	"strings"

	"github.com/cimillas/aplay-admin/internal/app"
)

// filterSet accumulates WHERE conditions with positional args so the
// count query and the page query share one clause. Column names are
// always literals from the calling repository, never caller input.
type filterSet struct {
	clauses []string
	args    []any
}

func (f *filterSet) eq(column string, value any) {
	f.args = append(f.args, value)
	f.clauses = append(f.clauses, fmt.Sprintf("%s = $%d", column, len(f.args)))
}

// search adds a case-insensitive substring match over the given columns.
func (f *filterSet) search(term string, columns ...string) {
	if term == "" {
		return
	}
	f.args = append(f.args, "%"+term+"%")
	n := len(f.args)
	ors := make([]string, 0, len(columns))
	for _, col := range columns {
		ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, n))
	}
	f.clauses = append(f.clauses, "("+strings.Join(ors, " OR ")+")")
}

func (f *filterSet) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// page appends LIMIT/OFFSET for the normalized params and returns the
// full arg list for the page query.
func (f *filterSet) page(params app.ListParams) (string, []any) {
	args := append(append([]any{}, f.args...), params.PageSize, params.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
