// internal/cli/platforms.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/modrules/pkg/platform"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List known platforms and whether libraries exist for them",
	Args:  cobra.NoArgs,
	RunE:  runPlatforms,
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	host, err := platform.Detect()
	if err == nil {
		fmt.Fprintf(out, "Host: %s\n\n", host)
	}

	fmt.Fprintf(out, "Platforms:\n")
	for _, p := range platform.All() {
		marker := " "
		if host != nil && p == host.Platform {
			marker = "*"
		}

		family := platform.FamilyOf(p)
		status := family.String()
		if family == platform.FamilyUnsupported {
			status = "not supported"
		}

		fmt.Fprintf(out, "  %s %-11s %-14s %v\n", marker, p, status, p.Groups())
	}

	if host != nil {
		fmt.Fprintf(out, "\n* = host platform\n")
	}

	return nil
}
