// pkg/core/interface.go
package core

import "io"

// Encoder defines the common interface for all rules output formats
type Encoder interface {
	// Name returns the format name (e.g., "yaml", "json")
	Name() string

	// Encode writes the rules to w
	Encode(w io.Writer, rules *Rules) error

	// EncodeAll writes several resolved targets to w as one document
	EncodeAll(w io.Writer, set []NamedRules) error
}
