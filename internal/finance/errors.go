package finance

import "fmt"

// ComputationError reports a numeric input the calculator refuses to work
// with. The form boundary turns it into a validation failure; it is never a
// crash condition.
type ComputationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ComputationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("finance: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("finance: %s %q: %s", e.Field, e.Value, e.Reason)
}

func computationErrf(field, value, reason string) error {
	return &ComputationError{Field: field, Value: value, Reason: reason}
}
