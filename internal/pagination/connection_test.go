package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intCursor(n int) string { return strconv.Itoa(n) }

func TestEmptyConnection(t *testing.T) {
	conn := EmptyConnection[int]()

	assert.Empty(t, conn.Edges)
	assert.NotNil(t, conn.Edges)
	assert.False(t, conn.PageInfo.HasNextPage)
	assert.False(t, conn.PageInfo.HasPreviousPage)
	assert.Nil(t, conn.PageInfo.StartCursor)
	assert.Nil(t, conn.PageInfo.EndCursor)
}

func TestNewLookaheadConnection_ExtraRowMeansNextPage(t *testing.T) {
	// 4 rows fetched for first=3: the lookahead row is dropped.
	conn := NewLookaheadConnection([]int{10, 9, 8, 7}, 3, false, intCursor)

	require.Len(t, conn.Edges, 3)
	assert.True(t, conn.PageInfo.HasNextPage)
	assert.False(t, conn.PageInfo.HasPreviousPage)
	require.NotNil(t, conn.PageInfo.StartCursor)
	require.NotNil(t, conn.PageInfo.EndCursor)
	assert.Equal(t, "10", *conn.PageInfo.StartCursor)
	assert.Equal(t, "8", *conn.PageInfo.EndCursor)
}

func TestNewLookaheadConnection_FullPageWithoutExtraIsLast(t *testing.T) {
	conn := NewLookaheadConnection([]int{3, 2, 1}, 3, true, intCursor)

	require.Len(t, conn.Edges, 3)
	assert.False(t, conn.PageInfo.HasNextPage)
	assert.True(t, conn.PageInfo.HasPreviousPage)
}

func TestNewLookaheadConnection_EmptyFetch(t *testing.T) {
	// Even with a cursor supplied, an empty fetch reports the uniform empty page.
	conn := NewLookaheadConnection([]int{}, 3, true, intCursor)

	assert.Empty(t, conn.Edges)
	assert.False(t, conn.PageInfo.HasNextPage)
	assert.False(t, conn.PageInfo.HasPreviousPage)
	assert.Nil(t, conn.PageInfo.StartCursor)
	assert.Nil(t, conn.PageInfo.EndCursor)
}

func TestNewCountedConnection_FullPageReportsNext(t *testing.T) {
	// The count heuristic: exactly first rows implies a next page, even if
	// nothing actually follows.
	conn := NewCountedConnection([]int{1, 2, 3}, 3, false, intCursor)

	require.Len(t, conn.Edges, 3)
	assert.True(t, conn.PageInfo.HasNextPage)
}

func TestNewCountedConnection_ShortPageIsExact(t *testing.T) {
	conn := NewCountedConnection([]int{1, 2}, 3, true, intCursor)

	require.Len(t, conn.Edges, 2)
	assert.False(t, conn.PageInfo.HasNextPage)
	assert.True(t, conn.PageInfo.HasPreviousPage)
	assert.Equal(t, "1", *conn.PageInfo.StartCursor)
	assert.Equal(t, "2", *conn.PageInfo.EndCursor)
}

func TestConnection_EdgeCursorsMatchNodes(t *testing.T) {
	conn := NewLookaheadConnection([]int{5, 4}, 5, false, intCursor)

	require.Len(t, conn.Edges, 2)
	for _, edge := range conn.Edges {
		assert.Equal(t, strconv.Itoa(edge.Node), edge.Cursor)
	}
}
