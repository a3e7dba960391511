package handler

// errorResponse documents the error envelope written by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
