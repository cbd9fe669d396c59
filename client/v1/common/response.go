package common

type SuccessResponse[T any] struct {
	Data T `json:"data"`
}

type Pagination struct {
	Total int64 `json:"total"`
}

type SearchResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
