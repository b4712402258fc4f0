package plans

import (
	"context"
	"errors"
	"fmt"
)

// GenerationError reports a failed plan generation: the provider call failed
// or timed out, or its output was rejected. Raw carries the rejected text for
// diagnostics and must never be sent to clients.
type GenerationError struct {
	Kind    string
	Message string
	Raw     string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generate %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("generate %s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Timeout reports whether the generation call hit its deadline.
func (e *GenerationError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}
