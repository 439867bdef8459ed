package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidQuery    = 1003
	ErrCodeInvalidID       = 1004
	ErrCodeMissingRequired = 1005
	ErrCodeInvalidEmail    = 1006
	ErrCodeInvalidQuantity = 1007
	ErrCodeInvalidCategory = 1008
	ErrCodeInvalidPrice    = 1009
	ErrCodeInvalidUpload   = 1010

	// Domain state (2xxx)
	ErrCodeProductNotFound  = 2001
	ErrCodeCartItemNotFound = 2002
	ErrCodeFileNotFound     = 2003
	ErrCodeProfileNotFound  = 2004
	ErrCodeOTPExpired       = 2101
	ErrCodeOTPInvalid       = 2102
	ErrCodeConflict         = 2103

	// Auth & limits (3xxx)
	ErrCodeUnauthorized      = 3001
	ErrCodeForbidden         = 3002
	ErrCodeResourceExhausted = 3003

	// Internal/system (4xxx)
	ErrCodeInternal       = 4001
	ErrCodeStoreFailure   = 4002
	ErrCodeBlobFailure    = 4003
	ErrCodeMailFailure    = 4004
	ErrCodeNotImplemented = 4005
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeProductNotFound
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	case 501:
		return ErrCodeNotImplemented
	default:
		return 0
	}
}
