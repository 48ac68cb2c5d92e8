package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
)

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool

var rootCmd = &cobra.Command{
	Use:   "pnp",
	Short: "pnp manages modern pages as files",
	Long: `Author page canvases as YAML blueprints, render them to the markup
the host stores, and move pages between a local directory and a live site.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Enable verbose output. The most verbose level wins when multiple flags are passed.
		if verboseInfo {
			pages.CurrentLogger().SetVerboseLevel(pages.VerboseInfo)
		}
		if verboseDebug {
			pages.CurrentLogger().SetVerboseLevel(pages.VerboseDebug)
		}
		if verboseTrace {
			pages.CurrentLogger().SetVerboseLevel(pages.VerboseTrace)
		}
	},
}

func init() {
	// Use PersistentFlags to make flags accessible to sub-commands
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "v", "", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVarP(&verboseDebug, "vv", "", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVarP(&verboseTrace, "vvv", "", false, "enable verbose trace output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
