// internal/cli/resolve.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/modrules/pkg/core"
	"github.com/arc-language/modrules/pkg/export"
)

var (
	resolveMatrix  string
	resolveNoCache bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the module build rules for a target",
	Long: `Resolve the module build rules for a target platform and configuration.

The resolved rules are recorded in the rules cache under their fingerprint
unless --no-cache is given. With --matrix the yaml, json and toml formats
write a single document listing every target under "targets".

Examples:
  modrules resolve --platform Win64 --configuration Debug --debug-crt
  modrules resolve -p Linux -c Shipping --format yaml
  modrules resolve --matrix targets.hcl --format json`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveMatrix, "matrix", "", "resolve every target in an HCL matrix file or directory")
	resolveCmd.Flags().BoolVar(&resolveNoCache, "no-cache", false, "do not record the rules in the cache")
}

func runResolve(cmd *cobra.Command, args []string) error {
	enc, err := export.Get(config.Format)
	if err != nil {
		return err
	}

	r, err := newResolver()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if resolveMatrix != "" {
		results, err := r.ResolveMatrix(context.Background(), resolveMatrix)
		if err != nil {
			return err
		}

		set := make([]core.NamedRules, 0, len(results))
		for _, res := range results {
			set = append(set, core.NamedRules{Name: res.Entry.Name, Target: res.Entry.Target, Rules: res.Rules})
		}
		return enc.EncodeAll(out, set)
	}

	target, err := resolveTarget(cmd)
	if err != nil {
		return err
	}

	var rules *core.Rules
	if resolveNoCache {
		rules, err = r.Resolve(target)
	} else {
		var fp string
		rules, fp, err = r.ResolveAndCache(target)
		if err == nil && config.Debug {
			fmt.Fprintf(cmd.ErrOrStderr(), "Fingerprint: %s\n", fp)
		}
	}
	if err != nil {
		return err
	}

	return enc.Encode(out, rules)
}
