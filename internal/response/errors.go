package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Exam lifecycle ────────────────────────────────────────────────
	ErrNoActiveExam  ErrCode = "NO_ACTIVE_EXAM"
	ErrNotSubmitted  ErrCode = "NOT_SUBMITTED"
	ErrExamSubmitted ErrCode = "EXAM_SUBMITTED"
	ErrViewConflict  ErrCode = "VIEW_CONFLICT"
	ErrUnknownOption ErrCode = "UNKNOWN_OPTION"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Exam lifecycle ────────────────────────────────────────────────
	case ErrNoActiveExam:
		return "No exam is currently in progress. Start one from the home screen."
	case ErrNotSubmitted:
		return "Results are only available after the exam is submitted."
	case ErrExamSubmitted:
		return "The exam has already been submitted."
	case ErrViewConflict:
		return "This action is not available from the current screen."
	case ErrUnknownOption:
		return "The selected option does not belong to this question."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
