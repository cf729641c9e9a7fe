package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darideveloper/cotiza"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cotiza",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cotiza version %s\n", cotiza.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
