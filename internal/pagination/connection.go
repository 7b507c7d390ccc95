package pagination

// Edge pairs a result row with its cursor.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// PageInfo describes the boundaries of a page.
type PageInfo struct {
	HasNextPage     bool    `json:"has_next_page"`
	HasPreviousPage bool    `json:"has_previous_page"`
	StartCursor     *string `json:"start_cursor"`
	EndCursor       *string `json:"end_cursor"`
}

// Connection is a cursor-paginated result set.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"page_info"`
}

// EmptyConnection is the page returned when the fetch matched nothing,
// including when the supplied cursor is malformed or points at no row:
// zero edges, both flags false, nil cursors.
func EmptyConnection[T any]() Connection[T] {
	return Connection[T]{Edges: []Edge[T]{}}
}

// NewLookaheadConnection builds a page from rows fetched with a first+1
// lookahead. When more than first rows came back the extra row is dropped and
// HasNextPage is true. This is the exact form, used for posts.
func NewLookaheadConnection[T any](rows []T, first int, afterSupplied bool, cursorOf func(T) string) Connection[T] {
	hasNext := len(rows) > first
	if hasNext {
		rows = rows[:first]
	}
	return build(rows, hasNext, afterSupplied, cursorOf)
}

// NewCountedConnection builds a page from rows fetched with a limit of exactly
// first. HasNextPage is inferred from the row count matching the requested
// count. A full page with nothing behind it reports a spurious next page; the
// degenerate short page is always exact. Used for comments.
func NewCountedConnection[T any](rows []T, first int, afterSupplied bool, cursorOf func(T) string) Connection[T] {
	return build(rows, len(rows) == first, afterSupplied, cursorOf)
}

func build[T any](rows []T, hasNext, afterSupplied bool, cursorOf func(T) string) Connection[T] {
	if len(rows) == 0 {
		return EmptyConnection[T]()
	}

	edges := make([]Edge[T], len(rows))
	for i, row := range rows {
		edges[i] = Edge[T]{Node: row, Cursor: cursorOf(row)}
	}

	start := edges[0].Cursor
	end := edges[len(edges)-1].Cursor
	return Connection[T]{
		Edges: edges,
		PageInfo: PageInfo{
			HasNextPage:     hasNext,
			HasPreviousPage: afterSupplied,
			StartCursor:     &start,
			EndCursor:       &end,
		},
	}
}
