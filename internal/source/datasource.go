package source

import (
	"context"

	"github.com/nikbrunner/dropdown/internal/model"
)

// Query describes one remote search request.
type Query struct {
	Keyword string
	Page    int
	PerPage int
}

// Page is one page of remote results.
type Page struct {
	Entries    []model.Entry
	Page       int
	TotalPages int
	HasMore    bool
}

// DataSource provides paginated, keyword-filtered entries from somewhere
// outside the widget.
type DataSource interface {
	Fetch(ctx context.Context, q Query) (Page, error)
}
