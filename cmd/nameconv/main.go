// Command nameconv checks file names against a naming convention.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/colorium/nameconv/internal/config"
)

// globalOptions hold the persistent flags that are not settings keys.
type globalOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var g globalOptions

	root := &cobra.Command{
		Use:   "nameconv",
		Short: "Check file names against a naming convention",
		Long: `Check scene and asset file names against a naming convention.

The convention is read from --convention, $NAMECONV_CONVENTION, or a
nameconv.yaml found in the current directory or the user config
directory. Without one, the built-in Colorium asset convention is used:

  type_name[_variant][_scene[-shot]]_version

Settings may also come from a settings file (--config) and NAMECONV_*
environment variables. Flags take precedence over both.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "",
		"Settings file (YAML, TOML or JSON)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false,
		"Log at debug level")
	pf.String("log-level", "warn",
		"Log level: debug, info, warn, error")
	pf.StringP("convention", "c", "",
		"Convention file (default: nameconv.yaml lookup, then built-in)")
	pf.StringP("format", "f", config.FormatJSONL,
		"Output format: jsonl, pretty")

	root.AddCommand(
		newCheckCmd(&g),
		newRulesCmd(&g),
		newWatchCmd(&g),
		newCompletionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
