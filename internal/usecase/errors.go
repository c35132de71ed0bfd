package usecase

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// GatewayError carries the payment reference so support can trace the
// attempt. Retryable is false for configuration problems.
type GatewayError struct {
	Code      string
	Message   string
	Reference string
	Retryable bool
}

func (e *GatewayError) Error() string {
	if e.Reference == "" {
		return e.Message
	}
	return e.Message + " (reference: " + e.Reference + ")"
}

func IsGatewayError(err error) bool {
	_, ok := err.(*GatewayError)
	return ok
}
