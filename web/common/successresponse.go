package common

type SuccessResponse struct {
	Data any `json:"data"`
}

func NewSuccessResponse(data any) *SuccessResponse {
	return &SuccessResponse{Data: data}
}
