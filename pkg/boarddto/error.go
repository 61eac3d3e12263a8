package boarddto

// Error codes carried on the wire. They mirror the engine's error
// taxonomy; every one of them is recoverable.
const (
	CodeOutOfBounds        = "out_of_bounds"
	CodeIllegalDestination = "illegal_destination"
	CodeNoActiveSelection  = "no_active_selection"
	CodeEmptySquare        = "empty_square"
	CodeSessionNotFound    = "session_not_found"
	CodeBadRequest         = "bad_request"
)

type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "board error"
}
