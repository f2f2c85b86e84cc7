package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ListEnvelope wraps collection responses with the cursor for the next page.
type ListEnvelope struct {
	Data       any     `json:"data"`
	NextCursor *string `json:"next_cursor,omitempty"`
}
