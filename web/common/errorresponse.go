package common

type ErrorResponse struct {
	Message  string  `json:"message"`
	RecordID *string `json:"recordId,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}
