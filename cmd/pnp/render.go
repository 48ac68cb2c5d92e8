package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/blueprint"
	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
)

var renderOutput string

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write the markup to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <blueprint>",
	Short: "Render a blueprint",
	Long:  `Render a blueprint file to the canvas markup the host stores.`,
	Args:  cobra.ExactArgs(1),
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
		markup, err := page.ToMarkup()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if renderOutput != "" {
			if err := os.WriteFile(renderOutput, []byte(markup+"\n"), 0644); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			return
		}
		fmt.Println(markup)
	},
}
