package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sztaroszta/dirscope/internal/config"
	"github.com/sztaroszta/dirscope/internal/entry"
	"github.com/sztaroszta/dirscope/internal/export"
	"github.com/sztaroszta/dirscope/internal/pathutil"
	"github.com/sztaroszta/dirscope/internal/probe"
	"github.com/sztaroszta/dirscope/internal/scan"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory and export its inventory",
	Long: `Scan a directory tree, collect sizes, timestamps, and extended
metadata for every entry, and export the inventory to a spreadsheet,
CSV file, or SQLite database.`,
	RunE: runScan,
}

var (
	scanRoot       string
	scanOut        string
	scanFormat     string
	scanSheet      string
	scanExclude    []string
	scanProbe      string
	scanNoMetadata bool
	scanVerbose    bool
	scanProgress   time.Duration
)

func init() {
	scanCmd.Flags().StringVarP(&scanRoot, "root", "r", ".", "Root directory to scan")
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "", "Output file (default <root>_<timestamp>.xlsx)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Output format: xlsx|csv|sqlite (default from extension)")
	scanCmd.Flags().StringVar(&scanSheet, "sheet", "", "Worksheet title for xlsx output")
	scanCmd.Flags().StringSliceVarP(&scanExclude, "exclude", "e", nil, "Regex patterns to exclude (can be repeated)")
	scanCmd.Flags().StringVar(&scanProbe, "probe", "", "Metadata probe backend: auto|mdls|xattr|none")
	scanCmd.Flags().BoolVar(&scanNoMetadata, "no-metadata", false, "Skip extended metadata probing entirely")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Enable verbose scan logging")
	scanCmd.Flags().DurationVar(&scanProgress, "progress-interval", 0, "Emit progress lines to stderr at this interval when not a TTY (0 to disable)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	root, err := filepath.Abs(scanRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	root = pathutil.Normalize(root)

	outPath := scanOut
	if outPath == "" {
		ext := "." + cfg.Format
		if scanFormat != "" && scanFormat != "auto" {
			ext = "." + scanFormat
		}
		if ext == ".sqlite" {
			ext = ".db"
		}
		outPath = fmt.Sprintf("%s_%s%s", filepath.Base(root), time.Now().Format("20060102_150405"), ext)
	}

	formatSel := scanFormat
	if formatSel == "" && filepath.Ext(outPath) == "" {
		formatSel = cfg.Format
	}
	format, err := export.DetectFormat(outPath, formatSel)
	if err != nil {
		return err
	}

	sheet := scanSheet
	if sheet == "" {
		sheet = cfg.Sheet
	}

	logger := zap.NewNop()
	if scanVerbose || cfg.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()
	}

	opts := scan.DefaultOptions().WithLogger(logger)

	prober, err := buildProber(cfg)
	if err != nil {
		return err
	}
	opts.WithProber(prober)

	patterns := append(append([]string(nil), cfg.Exclude...), scanExclude...)
	for _, pattern := range patterns {
		if err := opts.AddExcludePattern(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	progressInterval := scanProgress
	if progressInterval == 0 {
		progressInterval = cfg.ProgressInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nCanceling... (press Ctrl+C again to force)")
		cancel()
		<-sigCh
		os.Exit(130)
	}()

	fmt.Printf("Scanning %s...\n", root)
	startTime := time.Now()

	scanner := scan.NewScanner(opts)
	progressDone := make(chan struct{})
	go displayProgress(scanner, startTime, progressInterval, progressDone)

	report, err := scanner.Run(ctx, root)
	close(progressDone)
	if isTerminal() {
		fmt.Fprintf(os.Stderr, "\r\033[K")
	}
	if err != nil {
		if errors.Is(err, scan.ErrRootInvalid) {
			return err
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := export.Write(report, outPath, format, sheet); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	printSummary(report, outPath)
	return nil
}

func buildProber(cfg *config.Config) (probe.Prober, error) {
	if scanNoMetadata {
		return probe.Noop{}, nil
	}
	backend := scanProbe
	if backend == "" {
		backend = cfg.Probe
	}
	prober, err := probe.ByName(backend)
	if err != nil {
		return nil, err
	}
	return prober, nil
}

func displayProgress(scanner *scan.Scanner, startTime time.Time, interval time.Duration, done <-chan struct{}) {
	isTTY := isTerminal()
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	var spinnerIdx int
	lastNonTTY := time.Now()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p := scanner.Progress()
			elapsed := time.Since(startTime).Round(time.Millisecond)

			if isTTY {
				spinner := spinnerFrames[spinnerIdx%len(spinnerFrames)]
				spinnerIdx++

				errStr := ""
				if p.Errors > 0 {
					errStr = fmt.Sprintf(" | %d errors", p.Errors)
				}
				fmt.Fprintf(os.Stderr, "\r\033[K%s Scanning... %d files | %d dirs | %s | %s%s",
					spinner, p.Files, p.Dirs, humanize.Bytes(uint64(p.TotalBytes)), elapsed, errStr)
			} else if interval > 0 && time.Since(lastNonTTY) >= interval {
				fmt.Fprintf(os.Stderr, "PROGRESS files=%d dirs=%d bytes=%s elapsed=%s errors=%d path=%s\n",
					p.Files, p.Dirs, humanize.Bytes(uint64(p.TotalBytes)), elapsed, p.Errors, p.CurrentPath)
				lastNonTTY = time.Now()
			}
		}
	}
}

func printSummary(report *entry.Report, outPath string) {
	title := color.New(color.FgGreen, color.Bold)
	if report.Interrupted {
		title = color.New(color.FgYellow, color.Bold)
		title.Println("\n! Scan interrupted - partial inventory written")
	} else {
		title.Println("\n✓ Processing complete")
	}

	fmt.Printf("\nDirectory scanned: %s\n", report.Root)
	fmt.Printf("Items processed:   %s\n", humanize.Comma(report.Processed))
	fmt.Printf("  • Directories:   %s\n", humanize.Comma(report.Dirs))
	fmt.Printf("  • Files:         %s\n", humanize.Comma(report.Files))
	fmt.Printf("Max depth:         %d levels\n", report.MaxDepth)
	fmt.Printf("Total size:        %s (%s bytes)\n",
		humanize.Bytes(uint64(report.TotalSize)), humanize.Comma(report.TotalSize))
	fmt.Printf("Output file:       %s\n", outPath)
	fmt.Printf("Processing time:   %s\n", report.Elapsed.Round(time.Millisecond))

	// The error count is always reported so skipped protected folders
	// are never silent.
	if report.ErrorCount() > 0 {
		color.New(color.FgRed).Printf("Errors:            %d\n", report.ErrorCount())
		for _, se := range report.Errors {
			fmt.Printf("  %s: %s\n", se.Kind, se.Path)
		}
	} else {
		fmt.Printf("Errors:            0\n")
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
