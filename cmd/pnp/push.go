package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/blueprint"
	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
)

func init() {
	rootCmd.AddCommand(pushCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push <blueprint> <page>",
	Short: "Push a blueprint",
	Long: `Render a blueprint and write it to the stored page, creating the page
when it does not exist yet.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		def, err := blueprint.Load(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		page, err := def.Materialize(canvas.WithFormat(CurrentFormat()))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		service := CurrentService()
		ref := pages.PageRef(args[1])
		ctx := context.Background()
		if err := service.EnsurePage(ctx, ref, def.Title); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := service.Save(ctx, ref, page); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Pushed %s\n", ref)
	},
}
