package types

// ErrorBody is the JSON shape of every failed request. Detail carries the
// human readable reason, Errors the per-field validation messages.
type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
	Errors any    `json:"errors,omitempty"`
}

// MessageBody is returned by operations whose only result is a status message.
type MessageBody struct {
	Message string `json:"message"`
}
