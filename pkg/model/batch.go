package model

// Batch is one student group, e.g. CSE_Y2_A.
type Batch struct {
	ID       string
	Branch   string
	Year     int
	Students int
	// ElectiveGroups lists the elective groups this batch chooses among.
	ElectiveGroups []string
}
