// Package errors defines the domain error taxonomy shared by services and
// handlers. Every failure a caller can act on is a *DomainError with a stable
// machine-readable code; storage faults stay wrapped stdlib errors.
package errors

// DomainError is a business-rule failure with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// Is matches on the code so parameterized instances compare equal to the
// package sentinels under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
