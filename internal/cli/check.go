// internal/cli/check.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/modrules"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the resolved libraries and include directories exist",
	Long: `Resolve the rules for a target and check every library file and include
directory they reference is present. Exits non-zero if anything is missing.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(cmd)
	if err != nil {
		return err
	}

	r, err := newResolver()
	if err != nil {
		return err
	}

	rules, report, err := r.Verify(context.Background(), target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Target: %s (%s libraries)\n", target, rules.BuildLabel)

	for _, lib := range report.Libraries {
		fmt.Fprintf(out, "✓ %s (%d bytes)\n", lib.Path, lib.Size)
	}
	for _, path := range report.MissingLibs {
		fmt.Fprintf(out, "✗ missing library %s\n", path)
	}
	for _, dir := range report.MissingInclude {
		fmt.Fprintf(out, "✗ missing include directory %s\n", dir)
	}

	if !report.OK() {
		return &modrules.Error{
			Op:     "check",
			Target: target.String(),
			Err:    fmt.Errorf("%w: %d libraries, %d include directories", modrules.ErrMissingFiles, len(report.MissingLibs), len(report.MissingInclude)),
		}
	}

	fmt.Fprintln(out, "All files present.")
	return nil
}
