// internal/cli/bundle.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/modrules"
)

var (
	bundleOutput     string
	bundleNoHeaders  bool
	bundleNoManifest bool
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Pack the target's libraries and headers into a .nar.xz archive",
	Long: `Pack the resolved static libraries, include directories and a rules
manifest into a xz-compressed NAR archive laid out like the plugin directory.

Examples:
  modrules bundle -p Win64 -c Development
  modrules bundle -p Mac -c Debug -o dist/connector-mac.nar.xz --no-headers`,
	Args: cobra.NoArgs,
	RunE: runBundle,
}

var extractCmd = &cobra.Command{
	Use:   "extract [bundle] [destination]",
	Short: "Unpack a bundle created with 'modrules bundle'",
	Args:  cobra.ExactArgs(2),
	RunE:  runExtract,
}

func init() {
	bundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "", "output file (default is <Module>-<Build>-<Platform>.nar.xz)")
	bundleCmd.Flags().BoolVar(&bundleNoHeaders, "no-headers", false, "leave include directories out")
	bundleCmd.Flags().BoolVar(&bundleNoManifest, "no-manifest", false, "leave the rules manifest out")
}

func runBundle(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(cmd)
	if err != nil {
		return err
	}

	r, err := newResolver()
	if err != nil {
		return err
	}

	opts := &modrules.BundleOptions{
		SkipHeaders:  bundleNoHeaders,
		SkipManifest: bundleNoManifest,
	}

	path, stats, err := r.Bundle(context.Background(), target, bundleOutput, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d files, %d bytes uncompressed)\n", path, stats.Files, stats.Bytes)
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	r, err := newResolver()
	if err != nil {
		return err
	}

	stats, err := r.Extract(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Extracted %d files into %s\n", stats.Files, args[1])
	return nil
}
