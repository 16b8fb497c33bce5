// Package main provides the command-line interface for the coop kernel.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "coop",
	Short: "Coop CLI tool can perform common tasks related to developing " +
		"applications with the coop kernel.",
	Long: `Coop CLI tool can perform common tasks related to developing ` +
		`applications with the coop cooperative kernel. Currently, it ` +
		`supports running an instrumented demo application.`,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
