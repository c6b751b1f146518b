package types

// Filter represents query parameters for filtering, sorting and pagination.
//
//	/api/rooms/:roomID/items?search=chair&sort[created_at]=desc&filter[name]=Chair&limit=10&page=1
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Pagination represents pagination metadata.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

func NewPagination(total uint64, page, limit int) Pagination {
	p := Pagination{TotalCount: total, Page: page, Limit: limit}
	if limit > 0 {
		p.TotalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}
	return p
}
