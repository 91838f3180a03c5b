// Package report renders finalized day reports as CSV files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// Header holds the report column names in output order.
var Header = []string{
	"Player",
	"Cumulative Online (sec)",
	"Cumulative Online (min)",
	"Cumulative Online (hr)",
	"Cumulative Commands Used",
}

// utf8BOM prefixes every report file so spreadsheet tools pick up the
// encoding.
const utf8BOM = "\xef\xbb\xbf"

const (
	fileMode = 0644
	dirMode  = 0755
)

// Write emits the report to w: BOM, header row, then one row per player
// in the report's order.
func Write(w io.Writer, rep model.DayReport) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("report: write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	for _, row := range rep.Rows {
		record := []string{
			row.Player,
			strconv.FormatInt(row.OnlineSeconds, 10),
			FormatDecimal(row.OnlineMinutes()),
			FormatDecimal(row.OnlineHours()),
			strconv.FormatInt(row.Commands, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("report: write row for %s: %w", row.Player, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

// WriteFile writes the report to <dir>/<date>_analysis.csv. A report with
// zero rows writes nothing and returns an empty path; the day is simply
// skipped.
func WriteFile(dir string, rep model.DayReport) (string, error) {
	if len(rep.Rows) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", fmt.Errorf("report: mkdir %s: %w", dir, err)
	}

	path := filepath.Join(dir, rep.Date+"_analysis.csv")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileMode)
	if err != nil {
		return "", fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := Write(f, rep); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("report: close %s: %w", path, err)
	}
	return path, nil
}

// FormatDecimal renders a two-decimal-rounded value with its trailing
// zeros trimmed but always at least one fractional digit, matching the
// historical report format: 300 s is "5.0" minutes and "0.08" hours.
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
