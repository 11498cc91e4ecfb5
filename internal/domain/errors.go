package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	// DistanceMeters is an optional diagnostic set on proximity failures.
	DistanceMeters int   `json:"-"`
	Cause          error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrWrongPassword() *AppError {
	return &AppError{Code: "WRONG_PASSWORD", Message: "Wrong password", Status: 401}
}

// ErrTooFar is returned when the reported position is outside the unlock
// radius. The rounded distance is surfaced as a diagnostic.
func ErrTooFar(distanceMeters float64) *AppError {
	return &AppError{
		Code:           "TOO_FAR",
		Message:        "Too far from challenge location",
		Status:         403,
		DistanceMeters: int(distanceMeters + 0.5),
	}
}

// ErrChallengeLocked is returned when sequential ordering is enforced and an
// earlier challenge is still incomplete.
func ErrChallengeLocked() *AppError {
	return &AppError{Code: "CHALLENGE_LOCKED", Message: "Complete earlier challenges first", Status: 403}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
