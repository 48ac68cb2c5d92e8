package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
)

func init() {
	rootCmd.AddCommand(componentsCmd)
}

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List site components",
	Long:  `List the web part components installed on the site.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := CurrentConfig().NewStore()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		catalog, ok := store.(pages.ComponentCatalog)
		if !ok {
			fmt.Println("The local workspace has no component catalog.")
			fmt.Println("Please configure a site in pnp.toml")
			os.Exit(1)
		}
		defs, err := catalog.ListComponents(context.Background())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		sort.Slice(defs, func(i, j int) bool {
			return defs[i].Name < defs[j].Name
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tID")
		for _, def := range defs {
			fmt.Fprintf(w, "%s\t%s\n", def.Name, def.ID)
		}
		w.Flush()
	},
}
