// File: internal/services/assistant/errors.go
package assistant

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a collaborator failure after retries and timeouts are
// exhausted. The caller treats it as retryable and must not roll back
// already-persisted user turns.
var ErrUnavailable = errors.New("assistant service unavailable")

func unavailable(operation string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, operation, cause)
}
