package dto

// APIResponse is the uniform success/error envelope returned by every
// endpoint: {statusCode, data, message, success} with success derived from
// the status code.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	Errors     []any  `json:"errors,omitempty"`
}

// NewAPIResponse builds a success envelope. Success is true iff the status
// code is below 400.
func NewAPIResponse(statusCode int, data any, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// NewAPIError builds an error envelope mirroring the success shape with
// data:null and an empty errors list.
func NewAPIError(statusCode int, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     []any{},
	}
}
