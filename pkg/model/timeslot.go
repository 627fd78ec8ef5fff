package model

import "fmt"

// DayNames maps day indices to display names. Index 0 is Monday.
var DayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// TimeSlot is one cell of the weekly grid.
type TimeSlot struct {
	Day    int
	Period int
}

func (t TimeSlot) String() string {
	if t.Day >= 0 && t.Day < len(DayNames) {
		return fmt.Sprintf("%s P%d", DayNames[t.Day], t.Period+1)
	}
	return fmt.Sprintf("D%d P%d", t.Day, t.Period+1)
}

// Grid describes the fixed weekly slot grid for one run.
type Grid struct {
	Days            int
	PeriodsPerDay   int
	BreakPeriod     int // period index reserved for the lunch break, -1 for none
	LabBlockPeriods int // consecutive periods one practical session spans
}

// DefaultGrid mirrors the institute's published week: six days of eight
// teaching periods with the break after the fourth, labs in two-hour blocks.
func DefaultGrid() Grid {
	return Grid{Days: 6, PeriodsPerDay: 8, BreakPeriod: 4, LabBlockPeriods: 2}
}

// Fits reports whether a session of the given length starting at slot stays
// inside one day and does not cross the break period.
func (g Grid) Fits(day, period, periods int) bool {
	if day < 0 || day >= g.Days || period < 0 || periods < 1 {
		return false
	}
	if period+periods > g.PeriodsPerDay {
		return false
	}
	for p := period; p < period+periods; p++ {
		if p == g.BreakPeriod {
			return false
		}
	}
	return true
}

// Term is the scheduling window a course is active in.
type Term int

const (
	TermFull Term = iota
	TermHalf1
	TermHalf2
)

func (t Term) String() string {
	switch t {
	case TermHalf1:
		return "Half1"
	case TermHalf2:
		return "Half2"
	default:
		return "Full"
	}
}

// Overlaps reports whether two term windows share any week of the semester.
// Half1 and Half2 are the only disjoint pair.
func (t Term) Overlaps(other Term) bool {
	if t == TermFull || other == TermFull {
		return true
	}
	return t == other
}

// ParseTerm maps the loader's Term column to a Term. Unknown values count as
// full-semester, matching the original data files where the column is blank
// for most courses.
func ParseTerm(s string) Term {
	switch s {
	case "Half1", "half1", "H1":
		return TermHalf1
	case "Half2", "half2", "H2":
		return TermHalf2
	default:
		return TermFull
	}
}
