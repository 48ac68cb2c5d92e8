package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/blueprint"
	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <blueprint> <page>",
	Short: "Show changes",
	Long: `Show changes between a rendered blueprint and the stored page. A page
that does not exist yet diffs against empty content.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		def, err := blueprint.Load(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		cfg := CurrentConfig()
		page, err := def.Materialize(canvas.WithFormat(cfg.Format()))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		local, err := page.ToMarkup()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		store, err := cfg.NewStore()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		ref := pages.PageRef(args[1])
		remote := ""
		content, err := store.FetchPageContent(context.Background(), ref)
		if err == nil {
			remote = content.Markup
		} else if !errors.Is(err, pages.ErrPageNotExist) {
			fmt.Println(err)
			os.Exit(1)
		}

		if remote == local {
			return
		}
		before := ""
		if remote != "" {
			before = remote + "\n"
		}
		patch := godiffpatch.GeneratePatch(string(ref), before, local+"\n")
		printDiff(patch)
	},
}

func printDiff(diff string) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			color.Red(line)
		} else if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			color.Green(line)
		} else {
			println(line)
		}
	}
}
