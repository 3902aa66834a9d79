package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

type ErrorCode string

const (
	// validation related
	InvalidInput      ErrorCode = "invalid_input"
	InvalidAssignment ErrorCode = "invalid_assignment"
	UnresolvedActor   ErrorCode = "unresolved_actor"

	// collaborator service related
	FetchFailed ErrorCode = "fetch_failed"
	WriteFailed ErrorCode = "write_failed"

	// general
	Cancelled ErrorCode = "cancelled"
)
