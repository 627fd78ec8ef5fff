package csvio

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/campushub/timetabler/pkg/model"
)

// ExportSchedule writes the solution as CSV, one row per placed
// session-period per batch, to the given path.
func ExportSchedule(sol *model.Solution, path string) error {
	rows := sol.Rows()
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ExportScheduleString renders the same CSV rows into a string, used by the
// HTTP server.
func ExportScheduleString(sol *model.Solution) (string, error) {
	rows := sol.Rows()
	str, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("marshal schedule: %w", err)
	}
	return str, nil
}

// PrintSchedule prints the weekly schedule grouped by batch.
func PrintSchedule(sol *model.Solution) {
	rows := sol.Rows()
	var current string
	for _, r := range rows {
		if r.Batch != current {
			current = r.Batch
			pad := max(32-len(current), 2)
			fmt.Printf("\n%s %s %s\n", strings.Repeat("-", pad/2), current, strings.Repeat("-", pad-pad/2))
		}
		fmt.Printf("%-12s P%-2d  %-10s %-9s %-8s %s\n",
			model.DayNames[r.Day], r.Period+1, r.CourseCode, r.Type, r.Room, r.Professor)
	}
	fmt.Printf("Printed rows: %d\n", len(rows))
}
