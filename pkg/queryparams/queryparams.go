package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams carries pagination, sorting and filtering for list endpoints.
// Field names match the query string (?page=2&perPage=50&sortBy=name...).
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"perPage"`
	SortBy  string `query:"sortBy"`
	OrderBy string `query:"orderBy"`
	Query   string `query:"q"`
	Status  string `query:"status"`
}

// DefaultListParams returns params sorted by the given column, descending.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: "desc",
	}
}

// Validate clamps the params into safe ranges.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.SortBy == "" {
		p.SortBy = "created_at"
	}
	switch strings.ToLower(p.OrderBy) {
	case "asc", "desc":
		p.OrderBy = strings.ToLower(p.OrderBy)
	default:
		p.OrderBy = "desc"
	}
	p.Query = strings.TrimSpace(p.Query)
}

// Offset returns the SQL offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// OrderClause returns "column direction" for GORM's Order().
func (p ListParams) OrderClause() string {
	return p.SortBy + " " + p.OrderBy
}

// PaginationMeta describes the page that was returned.
type PaginationMeta struct {
	CurrentPage int
	PerPage     int
	TotalItems  int64
	TotalPages  int
}

// PaginatedResult wraps one page of data with its meta.
type PaginatedResult struct {
	Data interface{}
	Meta PaginationMeta
}

// NewPaginatedResult computes the meta from a total row count.
func NewPaginatedResult(data interface{}, params ListParams, total int64) *PaginatedResult {
	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
	}
}
