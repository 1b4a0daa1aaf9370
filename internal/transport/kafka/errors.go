package kafka

// PermanentError marks a message that will never succeed; the consumer marks
// it consumed instead of forcing a redelivery loop.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as a permanent error.
func Permanent(err error) error {
	return PermanentError{Err: err}
}
