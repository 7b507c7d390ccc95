package repository

import (
	"fmt"
	"strings"
)

// PostFilter describes a search predicate over posts. Title and Author are
// exact matches; a filter with several set fields is their conjunction.
// And/Or/Not compose sub-filters into arbitrary boolean shapes, mirroring the
// query API's where input.
type PostFilter struct {
	Title  *string      `json:"title,omitempty"`
	Author *string      `json:"author,omitempty"`
	And    []PostFilter `json:"and,omitempty"`
	Or     []PostFilter `json:"or,omitempty"`
	Not    []PostFilter `json:"not,omitempty"`
}

// Compile renders the filter as a parameterized SQL condition. Placeholders
// continue from the entries already in args, so the clause can be appended to
// a query that has bound parameters of its own. An empty filter compiles to
// TRUE.
func (f PostFilter) Compile(args *[]interface{}) string {
	var conds []string

	if f.Title != nil {
		*args = append(*args, *f.Title)
		conds = append(conds, fmt.Sprintf("p.title = $%d", len(*args)))
	}
	if f.Author != nil {
		*args = append(*args, *f.Author)
		conds = append(conds, fmt.Sprintf("p.author = $%d", len(*args)))
	}
	for _, sub := range f.And {
		conds = append(conds, sub.Compile(args))
	}
	if len(f.Or) > 0 {
		ors := make([]string, len(f.Or))
		for i, sub := range f.Or {
			ors[i] = sub.Compile(args)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	for _, sub := range f.Not {
		conds = append(conds, "NOT "+sub.Compile(args))
	}

	if len(conds) == 0 {
		return "TRUE"
	}
	return "(" + strings.Join(conds, " AND ") + ")"
}
