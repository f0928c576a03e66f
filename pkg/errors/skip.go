package errors

// SkipMessageError marks a queue message that was intentionally dropped
// (already processed, stale settings snapshot). Consumers ack instead of
// requeueing when they see it.
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "message skipped: " + e.Reason
}

// IsSkipMessage reports whether err is a SkipMessageError.
func IsSkipMessage(err error) bool {
	_, ok := err.(*SkipMessageError)
	return ok
}
