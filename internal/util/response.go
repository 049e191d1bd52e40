package util

// Envelope is the generic JSON payload shape used by every handler.
type Envelope map[string]any

// OK wraps a successful single-record response.
func OK(data any) Envelope {
	return Envelope{"success": true, "data": data}
}

// OKList wraps a successful collection response with its count.
func OKList(data any, count int) Envelope {
	return Envelope{"success": true, "count": count, "data": data}
}

// OKMessage wraps a successful mutation response.
func OKMessage(message string, data any) Envelope {
	return Envelope{"success": true, "message": message, "data": data}
}

// Fail wraps an error response.
func Fail(message string) Envelope {
	return Envelope{"success": false, "message": message}
}

// FailFields wraps a validation failure with per-field messages.
func FailFields(message string, fields map[string]string) Envelope {
	return Envelope{"success": false, "message": message, "errors": fields}
}
