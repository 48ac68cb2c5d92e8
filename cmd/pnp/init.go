package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Init new workspace",
	Long:  `Set up the local directory as the root of a new page workspace.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to read current working directory: %v", err)
			os.Exit(1)
		}
		_, err = config.InitConfigFromDirectory(cwd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error while initializing configuration: %v", err)
			os.Exit(1)
		}
	},
}
