package common

type Pagination struct {
	Total int64 `json:"total"`
}

// SearchResponse wraps a list with its total count.
type SearchResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func NewSearchResponse(data any, total int64) *SearchResponse {
	return &SearchResponse{
		Data:       data,
		Pagination: Pagination{Total: total},
	}
}
