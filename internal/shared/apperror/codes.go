package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput           = "INVALID_INPUT"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeConflict               = "CONFLICT"
	CodeInvalidState           = "INVALID_STATE"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeNoApplicableStructure  = "NO_APPLICABLE_STRUCTURE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeDataIntegrity      = "DATA_INTEGRITY"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
