// pkg/rules/errors.go
package rules

import (
	"errors"
	"fmt"

	"github.com/arc-language/modrules/pkg/platform"
)

// ErrUnsupportedPlatform matches any UnsupportedPlatformError via errors.Is
var ErrUnsupportedPlatform = errors.New("platform not supported")

// UnsupportedPlatformError aborts resolution for a platform that has no
// prebuilt connector libraries. It is not recoverable: continuing would
// produce a module that cannot link.
type UnsupportedPlatformError struct {
	Platform platform.Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%s does not support platform %s", ModuleName, e.Platform)
}

// Is makes errors.Is(err, ErrUnsupportedPlatform) true
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}
