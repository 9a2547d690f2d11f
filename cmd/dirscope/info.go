package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sztaroszta/dirscope/internal/db"

	_ "modernc.org/sqlite"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display inventory metadata",
	Long:  `Print metadata about an inventory database including timestamps, statistics, and recorded errors.`,
	RunE:  runInfo,
}

var (
	infoDB     string
	infoErrors bool
)

func init() {
	infoCmd.Flags().StringVarP(&infoDB, "db", "d", "", "Path to inventory database file")
	infoCmd.Flags().BoolVar(&infoErrors, "errors", false, "List the paths that failed during the scan")
	infoCmd.MarkFlagRequired("db")
}

func runInfo(cmd *cobra.Command, args []string) error {
	database, err := sql.Open("sqlite", infoDB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.ApplyReadPragmas(database); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	meta, err := db.GetMeta(database)
	if err != nil {
		return err
	}

	fmt.Printf("Inventory Information\n")
	fmt.Printf("=====================\n\n")
	fmt.Printf("Root Path:    %s\n", meta.RootPath)
	fmt.Printf("Start Time:   %s\n", meta.StartTime.Format(time.RFC3339))
	fmt.Printf("Duration:     %s\n", meta.Elapsed.Round(time.Millisecond))
	if meta.Interrupted {
		fmt.Printf("Status:       INTERRUPTED (partial inventory)\n")
	}
	fmt.Printf("\nStatistics\n")
	fmt.Printf("----------\n")
	fmt.Printf("Files:        %s\n", humanize.Comma(meta.FileCount))
	fmt.Printf("Directories:  %s\n", humanize.Comma(meta.DirCount))
	fmt.Printf("Total Size:   %s (%s bytes)\n",
		humanize.Bytes(uint64(meta.TotalSize)), humanize.Comma(meta.TotalSize))
	fmt.Printf("Max Depth:    %d levels\n", meta.MaxDepth)
	fmt.Printf("Errors:       %s\n", humanize.Comma(meta.ErrorCount))

	if infoErrors && meta.ErrorCount > 0 {
		errs, err := db.Errors(database)
		if err != nil {
			return err
		}
		fmt.Printf("\nErrors\n")
		fmt.Printf("------\n")
		for _, e := range errs {
			fmt.Printf("%s  %s  %s\n", e.Kind, e.Path, e.Message)
		}
	}

	return nil
}
