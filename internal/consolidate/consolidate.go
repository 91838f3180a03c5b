// Package consolidate merges numbered daily log fragments into one
// chronological log file per calendar date.
package consolidate

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// fragmentPattern matches rotated fragment names like 2024-05-01-3.log.
var fragmentPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(\d+)\.log$`)

const (
	fileMode = 0644
	dirMode  = 0755
)

// fragment is one numbered piece of a day's log.
type fragment struct {
	number int
	path   string
}

// SeparatorFor returns the marker line appended after a merged fragment.
// The analyzer skips these transparently.
func SeparatorFor(originalFilename string) string {
	return fmt.Sprintf("--- End of %s ---", originalFilename)
}

// Consolidate scans sourceDir for YYYY-MM-DD-N.log fragments, groups them
// by date, sorts each group by fragment number, and writes one
// <mergedDir>/YYYY-MM-DD.log per date with a separator line after each
// fragment. It returns the dates written, sorted ascending.
//
// A fragment that cannot be read is skipped with a diagnostic; a date
// whose merged file cannot be written is skipped without aborting the
// batch. A missing sourceDir is an error.
func Consolidate(sourceDir, mergedDir string) ([]string, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("consolidate: read source dir: %w", err)
	}
	if err := os.MkdirAll(mergedDir, dirMode); err != nil {
		return nil, fmt.Errorf("consolidate: mkdir %s: %w", mergedDir, err)
	}

	byDate := make(map[string][]fragment)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := fragmentPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		byDate[m[1]] = append(byDate[m[1]], fragment{
			number: n,
			path:   filepath.Join(sourceDir, entry.Name()),
		})
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var written []string
	for _, date := range dates {
		frags := byDate[date]
		sort.Slice(frags, func(i, j int) bool { return frags[i].number < frags[j].number })

		outPath := filepath.Join(mergedDir, date+".log")
		if err := writeMerged(outPath, frags); err != nil {
			log.Printf("consolidate: skipping date %s: %v", date, err)
			continue
		}
		written = append(written, date)
	}
	return written, nil
}

// writeMerged concatenates the fragments into outPath, ensuring each
// fragment ends with a newline before its separator line.
func writeMerged(outPath string, frags []fragment) error {
	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}

	for _, frag := range frags {
		content, err := os.ReadFile(frag.path)
		if err != nil {
			log.Printf("consolidate: skipping fragment %s: %v", frag.path, err)
			continue
		}
		if _, err := out.Write(content); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		if len(content) > 0 && content[len(content)-1] != '\n' {
			if _, err := out.WriteString("\n"); err != nil {
				out.Close()
				return fmt.Errorf("write %s: %w", outPath, err)
			}
		}
		sep := "\n" + SeparatorFor(filepath.Base(frag.path)) + "\n\n"
		if _, err := out.WriteString(sep); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outPath, err)
	}
	return nil
}
