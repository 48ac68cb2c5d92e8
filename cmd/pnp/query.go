package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <page> <expression>",
	Short: "Query a page",
	Long: `Evaluate a jq expression against the page structure and print one
JSON result per line.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		service := CurrentService()
		page, err := service.Load(context.Background(), pages.PageRef(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		results, err := service.Query(page, args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Markup values stay readable: no HTML escaping in the output
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetEscapeHTML(false)
		for _, result := range results {
			if err := encoder.Encode(result); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
	},
}
