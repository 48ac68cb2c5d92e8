package main

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/blueprint"
	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <blueprint|page>",
	Short: "Preview a page",
	Long: `Render a blueprint file, or a stored page, into a temporary HTML file
and open it in the default browser. Arguments ending in .yaml or .yml
are read as blueprint files, anything else as a stored page.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		page, err := previewPage(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		markup, err := page.ToMarkup()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		file, err := os.CreateTemp("", "pnp-preview-*.html")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		document := fmt.Sprintf(
			"<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s\n</body>\n</html>\n",
			html.EscapeString(page.Title), markup)
		if _, err := file.WriteString(document); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := file.Close(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Printf("Preview written to %s\n", file.Name())
		if err := browser.OpenFile(file.Name()); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func previewPage(arg string) (*canvas.Page, error) {
	if strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml") {
		def, err := blueprint.Load(arg)
		if err != nil {
			return nil, err
		}
		return def.Materialize(canvas.WithFormat(CurrentFormat()))
	}
	return CurrentService().Load(context.Background(), pages.PageRef(arg))
}
