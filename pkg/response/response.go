package response

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// PageResponse is a list response carrying offset pagination metadata
type PageResponse struct {
	Response
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// SummaryResponse is a list response with a rolled-up summary object
type SummaryResponse struct {
	Response
	Summary interface{} `json:"summary"`
}

// DeniedResponse is the soft access failure of read endpoints. It is sent with
// HTTP 200, an empty data list and the error marker set.
type DeniedResponse struct {
	Status     string        `json:"status"`
	StatusCode int           `json:"status_code"`
	Message    string        `json:"message"`
	Data       []interface{} `json:"data"`
	Error      bool          `json:"error"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// SuccessMessage returns a success response with a human readable message
func SuccessMessage(statusCode int, message string, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// Page wraps a list with its total count and the offset window used
func Page(statusCode int, data interface{}, total int64, skip, limit int) PageResponse {
	return PageResponse{
		Response: Success(statusCode, data),
		Total:    total,
		Skip:     skip,
		Limit:    limit,
	}
}

// WithSummary wraps a list together with its summary
func WithSummary(statusCode int, message string, data, summary interface{}) SummaryResponse {
	return SummaryResponse{
		Response: SuccessMessage(statusCode, message, data),
		Summary:  summary,
	}
}

// Denied builds a soft access failure payload
func Denied(statusCode int, message string) DeniedResponse {
	return DeniedResponse{
		Status:     "error",
		StatusCode: statusCode,
		Message:    message,
		Data:       []interface{}{},
		Error:      true,
	}
}
