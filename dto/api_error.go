package dto

// APIErrorResponse is the only error body the API emits. Unauthorized
// requests get {"error":"unauthorized"}, everything else an opaque
// {"error":"internal_error"}.
type APIErrorResponse struct {
	Error string `json:"error"`
}
