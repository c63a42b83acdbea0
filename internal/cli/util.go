// internal/cli/util.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/modrules"
)

// resolveForQuery resolves the flag-selected target without caching
func resolveForQuery(cmd *cobra.Command) (*modrules.Rules, error) {
	target, err := resolveTarget(cmd)
	if err != nil {
		return nil, err
	}

	r, err := newResolver()
	if err != nil {
		return nil, err
	}

	return r.Resolve(target)
}

func printLines(cmd *cobra.Command, lines []string) {
	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
