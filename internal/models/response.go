package models

// APIResponse is the uniform envelope wrapping every response.
// Data is null on errors and on acknowledgments without payload; Errors is
// null except for validation failures.
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

// SuccessResponse builds a success envelope.
func SuccessResponse(data any, message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse builds an error envelope with optional field-level messages.
func ErrorResponse(message string, errs ...string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}
