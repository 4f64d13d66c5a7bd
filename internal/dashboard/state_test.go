package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewStatePagination(t *testing.T) {
	state := NewViewState(5)

	assert.Equal(t, 0, state.TotalPages(0))
	assert.Equal(t, 1, state.TotalPages(5))
	assert.Equal(t, 2, state.TotalPages(6))
	assert.Equal(t, 3, state.TotalPages(11))

	start, end := state.PageBounds(12)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	state.SetPage(3, state.TotalPages(12))
	start, end = state.PageBounds(12)
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)

	// pages are clamped to the filtered set
	state.SetPage(99, state.TotalPages(12))
	assert.Equal(t, 3, state.Page)
	state.SetPage(-1, state.TotalPages(12))
	assert.Equal(t, 1, state.Page)
}

func TestViewStateSearchResetsPage(t *testing.T) {
	state := NewViewState(5)
	state.SetPage(2, 4)
	assert.Equal(t, 2, state.Page)

	state.SetSearch("atlas")
	assert.Equal(t, 1, state.Page)

	state.SetPage(2, 4)
	state.SetStatusFilter("DONE")
	assert.Equal(t, 1, state.Page)
}

func TestViewStateMatching(t *testing.T) {
	state := NewViewState(5)

	assert.True(t, state.MatchesSearch("Atlas"))
	state.SetSearch("atl")
	assert.True(t, state.MatchesSearch("Atlas"))
	assert.False(t, state.MatchesSearch("Borealis"))

	assert.True(t, state.MatchesStatus("TODO"))
	state.SetStatusFilter("DONE")
	assert.True(t, state.MatchesStatus("DONE"))
	assert.False(t, state.MatchesStatus("TODO"))
}
