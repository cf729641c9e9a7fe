package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cotiza",
	Short: "Cotiza is the quote wizard service behind the agency websites",
	Long:  `Cotiza prices website quotes from a feature/section catalog and relays submitted requests to the notification endpoint.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog override file (YAML)")
}
