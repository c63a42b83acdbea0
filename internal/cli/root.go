// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/modrules"
	"github.com/arc-language/modrules/pkg/core"
	"github.com/arc-language/modrules/pkg/platform"
)

var (
	cfgFile    string
	moduleRoot string
	cachePath  string
	format     string
	debug      bool
	config     *core.Config

	targetPlatform      string
	targetConfiguration string
	targetDebugCRT      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "modrules",
	Short: "Module build rules resolver",
	Long: `modrules - Module build rules resolver

Resolves the build rules of the SubstanceConnector module for a target
platform and configuration: prebuilt static libraries, include paths and
module dependencies, in the form the engine's build orchestrator consumes.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/modrules/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&moduleRoot, "module-root", "", "directory of the module descriptor (default is the current directory)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "rules cache directory (default is $HOME/.cache/modrules)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format (text, yaml, json, toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Target flags
	rootCmd.PersistentFlags().StringVarP(&targetPlatform, "platform", "p", "", "target platform (default is the host platform)")
	rootCmd.PersistentFlags().StringVarP(&targetConfiguration, "configuration", "c", "", "build configuration (Debug, DebugGame, Development, Shipping, Test)")
	rootCmd.PersistentFlags().BoolVar(&targetDebugCRT, "debug-crt", false, "Debug builds link the debug C runtime")

	// Add commands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(libsCmd)
	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if moduleRoot != "" {
		config.ModuleRoot = moduleRoot
	}
	if cachePath != "" {
		config.CachePath = cachePath
	}
	if format != "" {
		config.Format = format
	}
	if debug {
		config.Debug = true
	}
}

// newResolver builds a resolver from the loaded configuration
func newResolver() (*modrules.Resolver, error) {
	return modrules.New(&modrules.Config{
		ModuleRoot: config.ModuleRoot,
		CachePath:  config.CachePath,
		Debug:      config.Debug,
	})
}

// resolveTarget builds the target from flags, falling back to the config
// file and then to the host platform
func resolveTarget(cmd *cobra.Command) (modrules.Target, error) {
	var target modrules.Target

	platformName := config.Target.Platform
	if cmd.Flags().Changed("platform") {
		platformName = targetPlatform
	}
	if platformName == "" {
		host, err := platform.Detect()
		if err != nil {
			return target, fmt.Errorf("detecting platform: %w", err)
		}
		platformName = host.Platform.String()
	}

	p, err := platform.Parse(platformName)
	if err != nil {
		return target, err
	}

	configName := config.Target.Configuration
	if cmd.Flags().Changed("configuration") {
		configName = targetConfiguration
	}
	c, err := core.ParseConfiguration(configName)
	if err != nil {
		return target, err
	}

	debugCRT := config.Target.DebugCRT
	if cmd.Flags().Changed("debug-crt") {
		debugCRT = targetDebugCRT
	}

	target.Platform = p
	target.Configuration = c
	target.DebugBuildsActuallyUseDebugCRT = debugCRT
	return target, nil
}
