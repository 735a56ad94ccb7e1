// Package cli contains the cobra command tree of the stackfast command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	appVersion = v
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	config  string
	noColor bool
	json    bool
}

// NewRootCmd builds the command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "stackfast",
		Short: "Recommend a technology stack for a project idea",
		Long: `stackfast scores a curated tool catalog against a project idea and your
skill levels, then prints a recommended stack with warnings and a monthly
cost projection.`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&flags.config, "config", "", "Config file path (default: ~/.config/stackfast/config.yaml)")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "Output as JSON")

	root.AddCommand(newRecommendCmd(flags), newCatalogCmd(flags))
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
