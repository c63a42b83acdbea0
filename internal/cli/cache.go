// internal/cli/cache.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/modrules/pkg/export"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the rules cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}

		entries, err := r.CacheEntries()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No cached rules.")
			return nil
		}

		for _, e := range entries {
			fmt.Fprintf(out, "%s  %-28s %s  %s\n", e.Fingerprint, e.Target, e.CreatedAt, e.ModuleRoot)
		}
		return nil
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show [fingerprint]",
	Short: "Show cached rules by fingerprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc, err := export.Get(config.Format)
		if err != nil {
			return err
		}

		r, err := newResolver()
		if err != nil {
			return err
		}

		entry, err := r.Cached(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if enc.Name() == "text" {
			fmt.Fprintf(out, "Target: %s\n", entry.Target)
			fmt.Fprintf(out, "Module root: %s\n", entry.ModuleRoot)
			fmt.Fprintf(out, "Created: %s\n\n", entry.CreatedAt)
		}
		return enc.Encode(out, &entry.Rules)
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheShowCmd)
}
