package response

import (
	"zylumine/lib/clock"
	"zylumine/lib/validate"
)

// Response is the JSON body of every API reply that is not a bare record.
type Response struct {
	Data      interface{} `json:"data,omitempty"`
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   string      `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func Ok(message string, data interface{}) Response {
	return Response{
		Data:      data,
		Success:   true,
		Message:   message,
		Timestamp: clock.Now(),
	}
}

func Error(message string) Response {
	return Response{
		Success:   false,
		Error:     message,
		Timestamp: clock.Now(),
	}
}

func ErrorDetails(message, details string) Response {
	r := Error(message)
	r.Details = details
	return r
}

// Invalid describes a request that failed to bind: absent fields are reported the
// same way for every endpoint, anything else carries the decoder or validator text.
func Invalid(err error) Response {
	if validate.IsMissing(err) {
		return Error("Missing required fields")
	}
	return ErrorDetails("Invalid request", err.Error())
}
