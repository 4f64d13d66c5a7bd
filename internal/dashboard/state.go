package dashboard

import "strings"

const defaultPageSize = 5

// ViewState holds the UI state of a single dashboard view: search term,
// status filter and pagination. It is owned by its view, never shared.
type ViewState struct {
	SearchTerm   string
	StatusFilter string
	Page         int
	PageSize     int
}

// NewViewState initializes state with the given page size.
func NewViewState(pageSize int) ViewState {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return ViewState{Page: 1, PageSize: pageSize}
}

// SetSearch updates the search term and resets to the first page, since the
// filtered set changed.
func (s *ViewState) SetSearch(term string) {
	s.SearchTerm = term
	s.Page = 1
}

// SetStatusFilter updates the status filter and resets to the first page.
func (s *ViewState) SetStatusFilter(status string) {
	s.StatusFilter = status
	s.Page = 1
}

// SetPage moves to the requested page, clamped to [1, totalPages].
func (s *ViewState) SetPage(page, totalPages int) {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	s.Page = page
}

// TotalPages computes the page count for a filtered set of n items.
func (s ViewState) TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + s.PageSize - 1) / s.PageSize
}

// PageBounds returns the half-open [start, end) slice bounds of the current
// page over n filtered items.
func (s ViewState) PageBounds(n int) (int, int) {
	start := (s.Page - 1) * s.PageSize
	if start >= n {
		return 0, 0
	}
	end := start + s.PageSize
	if end > n {
		end = n
	}
	return start, end
}

// MatchesSearch reports whether a name matches the search term,
// case-insensitively. An empty term matches everything.
func (s ViewState) MatchesSearch(name string) bool {
	if s.SearchTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(s.SearchTerm))
}

// MatchesStatus reports whether a status passes the filter. An empty filter
// matches everything.
func (s ViewState) MatchesStatus(status string) bool {
	return s.StatusFilter == "" || s.StatusFilter == status
}
