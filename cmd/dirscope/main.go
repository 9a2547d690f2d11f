package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dirscope",
	Short: "A directory inventory tool with extended metadata export",
	Long: `dirscope scans a directory tree, collects per-entry metadata
(sizes, timestamps, platform tags and kind descriptions), and exports
the inventory as a formatted spreadsheet, CSV, or SQLite database.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(browseCmd)
}
