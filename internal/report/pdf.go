// Package report renders solved timetables into per-batch PDF documents.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/samber/lo"

	"github.com/campushub/timetabler/pkg/model"
)

// WriteBatchReport writes one PDF with a weekly grid page per batch.
func WriteBatchReport(sol *model.Solution, grid model.Grid, path string) error {
	rows := sol.Rows()
	byBatch := lo.GroupBy(rows, func(r *model.ScheduleRow) string { return r.Batch })
	batches := lo.Keys(byBatch)
	if len(batches) == 0 {
		return fmt.Errorf("no placed sessions to report")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)

	sort.Strings(batches)
	for _, batch := range batches {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "Weekly Timetable - "+batch, "", 1, "C", false, 0, "")
		pdf.Ln(3)

		cells := make(map[[2]int]string)
		for _, r := range byBatch[batch] {
			cells[[2]int{r.Day, r.Period}] = fmt.Sprintf("%s %s", r.CourseCode, r.Room)
		}

		colWidth := 277.0 / float64(grid.PeriodsPerDay+1)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(colWidth, 8, "Day", "1", 0, "C", false, 0, "")
		for p := 0; p < grid.PeriodsPerDay; p++ {
			label := fmt.Sprintf("P%d", p+1)
			if p == grid.BreakPeriod {
				label = "Break"
			}
			pdf.CellFormat(colWidth, 8, label, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for day := 0; day < grid.Days; day++ {
			pdf.CellFormat(colWidth, 8, model.DayNames[day], "1", 0, "C", false, 0, "")
			for p := 0; p < grid.PeriodsPerDay; p++ {
				value := cells[[2]int{day, p}]
				if p == grid.BreakPeriod {
					value = "-"
				}
				pdf.CellFormat(colWidth, 8, value, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
