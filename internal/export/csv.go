package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sztaroszta/dirscope/internal/entry"
)

// WriteCSV renders the report with the same row schema as the workbook,
// one record per entry.
func WriteCSV(report *entry.Report, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers(report.MaxDepth)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range report.Entries {
		created := ""
		if e.Created != nil {
			created = e.Created.Format(timeLayout)
		}
		record := []string{
			strconv.Itoa(i + 1),
			e.RelPath,
			strconv.FormatFloat(float64(e.Size)/1024.0, 'f', 2, 64),
			strconv.FormatInt(e.Size, 10),
			created,
			e.Modified.Format(timeLayout),
			e.Hidden,
			strings.Join(e.Tags, ", "),
			e.Kind,
			e.FileType,
		}
		record = append(record, e.Levels...)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
