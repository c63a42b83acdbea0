// pkg/rules/fingerprint.go
package rules

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/arc-language/modrules/pkg/core"
	"zombiezen.com/go/nix/nixbase32"
)

// Fingerprint hashes resolved rules into a Nix base32 string. Equal rules
// always give the same fingerprint, which keys the rules cache.
func Fingerprint(r *core.Rules) (string, error) {
	if r == nil {
		return "", fmt.Errorf("rules cannot be nil")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding rules: %w", err)
	}

	sum := sha256.Sum256(data)
	return nixbase32.EncodeToString(sum[:]), nil
}
