package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation       ErrCode = "VALIDATION_ERROR"
	ErrInvalidID        ErrCode = "INVALID_ID"
	ErrInvalidGroupName ErrCode = "INVALID_GROUP_NAME"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrAlreadyExists ErrCode = "ALREADY_EXISTS"
	ErrConflict      ErrCode = "CONFLICT"
	ErrTransient     ErrCode = "TRANSIENT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionInvalidated:
		return "Your session has ended. Please sign in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is not valid."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidGroupName:
		return "Group names may not contain '.' or '$' and must be at most 64 characters."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrAlreadyExists:
		return "The resource already exists."
	case ErrConflict:
		return "The request conflicts with the current state of the resource."
	case ErrTransient:
		return "A temporary storage error occurred. Please retry."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
