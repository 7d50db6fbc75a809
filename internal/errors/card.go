package errors

var (
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "invalid input",
	}
	ErrNotFound = &DomainError{
		Code:    "CARD_NOT_FOUND",
		Message: "card not found",
	}
	ErrIO = &DomainError{
		Code:    "STORAGE_IO",
		Message: "storage failure",
	}
	ErrLockTimeout = &DomainError{
		Code:    "LOCK_TIMEOUT",
		Message: "timed out waiting for the data file lock",
	}
)
