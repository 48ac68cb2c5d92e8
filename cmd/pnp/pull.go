package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
	"github.com/Ameralajore/PnP-JS-Core/pkg/console"
)

func init() {
	rootCmd.AddCommand(pullCmd)
}

var pullCmd = &cobra.Command{
	Use:   "pull <page>...",
	Short: "Pull pages",
	Long:  `Mirror stored pages from the site into the local directory.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := CurrentConfig()
		if !cfg.ConfigFile.Remote() {
			fmt.Println("There is no site currently configured.")
			fmt.Println("Please specify one in pnp.toml")
			os.Exit(1)
		}
		remote, err := cfg.NewStore()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := os.MkdirAll(cfg.LocalDir(), 0755); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		local, err := pages.NewFSStore(cfg.LocalDir())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var progress *console.ProgressLog
		if len(args) > 1 {
			progress = console.NewProgressLog(len(args))
		}

		ctx := context.Background()
		for _, arg := range args {
			ref := pages.PageRef(arg)
			if progress != nil {
				progress.Advance(fmt.Sprintf("Pulling %s...", ref))
			}
			content, err := remote.FetchPageContent(ctx, ref)
			if err != nil {
				if progress != nil {
					progress.Clear("")
				}
				fmt.Println(err)
				os.Exit(1)
			}
			if err := local.Mirror(ctx, ref, content); err != nil {
				if progress != nil {
					progress.Clear("")
				}
				fmt.Println(err)
				os.Exit(1)
			}
			pages.CurrentLogger().Infof("Pulled %s", ref)
		}
		if progress != nil {
			progress.Clear(fmt.Sprintf("Pulled %d pages", len(args)))
		}
	},
}
