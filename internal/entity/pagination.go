package entity

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PaginateQuery is the request-scoped paging input. Page is 1-based.
type PaginateQuery struct {
	Page  int
	Limit int
}

// Normalized replaces out-of-range values with the defaults.
func (q PaginateQuery) Normalized() PaginateQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Skip returns the number of documents preceding the requested page.
func (q PaginateQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// Paginated is the wire shape of every paginated listing. The JSON field
// names are a compatibility contract with existing consumers.
type Paginated[T any] struct {
	Data        []T   `json:"data"`
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PerPage     int   `json:"perPage"`
}

// NewPaginated assembles a page of results, deriving totalPages as
// ceil(total/limit).
func NewPaginated[T any](data []T, total int64, q PaginateQuery) Paginated[T] {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{
		Data:        data,
		Total:       total,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		PerPage:     q.Limit,
	}
}
