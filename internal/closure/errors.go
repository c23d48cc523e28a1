package closure

import (
	"errors"
	"fmt"
)

// ErrMissingState marks a required catalog state that could not be resolved.
// This is a configuration fault, not user error: it aborts the operation
// instead of becoming a rejection message.
var ErrMissingState = errors.New("required catalog state not found")

func missingState(scope, name string) error {
	return fmt.Errorf("%w: %q for scope %q", ErrMissingState, name, scope)
}
