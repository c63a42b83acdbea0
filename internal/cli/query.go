// internal/cli/query.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	depsPublic   bool
	depsPrivate  bool
	flagsOneLine bool
)

var libsCmd = &cobra.Command{
	Use:   "libs",
	Short: "Print the static libraries to link, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := resolveForQuery(cmd)
		if err != nil {
			return err
		}
		printLines(cmd, rules.Libraries)
		return nil
	},
}

var includesCmd = &cobra.Command{
	Use:   "includes",
	Short: "Print the public include directories, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := resolveForQuery(cmd)
		if err != nil {
			return err
		}
		printLines(cmd, rules.IncludePaths)
		return nil
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Print the module dependencies",
	Long: `Print the public and private module dependencies. The lists are the
same for every target.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := resolveForQuery(cmd)
		if err != nil {
			return err
		}

		switch {
		case depsPublic && !depsPrivate:
			printLines(cmd, rules.PublicDependencies)
		case depsPrivate && !depsPublic:
			printLines(cmd, rules.PrivateDependencies)
		default:
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Public:")
			for _, dep := range rules.PublicDependencies {
				fmt.Fprintf(out, "  %s\n", dep)
			}
			fmt.Fprintln(out, "Private:")
			for _, dep := range rules.PrivateDependencies {
				fmt.Fprintf(out, "  %s\n", dep)
			}
		}
		return nil
	},
}

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print compiler and linker flags for the target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveTarget(cmd)
		if err != nil {
			return err
		}

		r, err := newResolver()
		if err != nil {
			return err
		}

		flags, err := r.Flags(target)
		if err != nil {
			return err
		}

		if flagsOneLine {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(flags.All(), " "))
			return nil
		}
		printLines(cmd, flags.All())
		return nil
	},
}

func init() {
	depsCmd.Flags().BoolVar(&depsPublic, "public", false, "only public dependencies")
	depsCmd.Flags().BoolVar(&depsPrivate, "private", false, "only private dependencies")
	flagsCmd.Flags().BoolVar(&flagsOneLine, "one-line", false, "print all flags on one line")
}
