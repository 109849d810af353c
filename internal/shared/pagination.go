package shared

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Pagination holds normalized paging parameters. Inputs are always coerced
// into range, never rejected.
type Pagination struct {
	Page     int64
	PageSize int64
}

// NormalizePagination applies defaults and clamps: page >= 1, page size in
// [1, 200]. Zero values mean "not supplied".
func NormalizePagination(page, pageSize int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset derives the row offset for the current page.
func (p Pagination) Offset() int64 {
	return (p.Page - 1) * p.PageSize
}

// Page is the envelope returned by every list query. Total counts all rows
// matching the same predicate used to select Data, ignoring pagination.
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
}

// NewPage builds the envelope, guaranteeing Data is never null in JSON.
func NewPage[T any](data []T, total int64, p Pagination) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Total: total, Page: p.Page, PageSize: p.PageSize}
}
