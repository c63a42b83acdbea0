// errors.go
package modrules

import (
	"errors"
	"fmt"

	"github.com/arc-language/modrules/pkg/rules"
)

var (
	// ErrPlatformNotSupported indicates the target platform has no prebuilt libraries
	ErrPlatformNotSupported = rules.ErrUnsupportedPlatform

	// ErrInvalidTarget indicates the target descriptor is incomplete
	ErrInvalidTarget = errors.New("invalid target")

	// ErrMissingFiles indicates resolved libraries or include directories are absent
	ErrMissingFiles = errors.New("missing files")
)

// Error wraps an error with additional context
type Error struct {
	Op     string // Operation that failed
	Target string // Target if applicable
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
