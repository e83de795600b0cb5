package scorer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheet is returned for workbooks without a readable first sheet
var ErrNoSheet = errors.New("workbook has no sheets")

// XLSXToCSV writes the first sheet of the workbook at src to a CSV next to it and returns its path
func XLSXToCSV(src string) (string, error) {
	f, err := excelize.OpenFile(src)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "", ErrNoSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read rows: %w", err)
	}

	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".csv"
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	w := csv.NewWriter(out)
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	for _, row := range rows {
		// GetRows drops trailing empty cells; pad to the header width
		for len(row) < width {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			out.Close()
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		out.Close()
		return "", err
	}
	return dst, out.Close()
}
