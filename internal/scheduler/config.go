package scheduler

import (
	"time"

	"github.com/campushub/timetabler/pkg/model"
)

// Weights tune the soft-constraint penalties. Higher means the scheduler
// works harder to avoid that violation.
type Weights struct {
	// ProfessorPreference penalizes slots outside a professor's preferred
	// periods.
	ProfessorPreference float64
	// Spread penalizes a course holding several sessions on the same day.
	Spread float64
	// Gap penalizes idle periods inside a batch's day.
	Gap float64
	// LabSlot penalizes labs in the first period of a day.
	LabSlot float64
}

// Config carries the knobs a caller tunes to trade solve time for quality.
type Config struct {
	Grid model.Grid
	// MaxNodes bounds search effort per trial; 0 disables the bound.
	MaxNodes int
	// TimeLimit bounds wall-clock time for the whole solve; 0 disables it.
	TimeLimit time.Duration
	// Trials is the number of independent randomized-restart searches.
	Trials int
	// Seed drives candidate tie-breaking; trial i uses Seed+i.
	Seed    int64
	Weights Weights
	// DefaultMaxProfHoursPerDay applies to professors without a declared
	// daily limit.
	DefaultMaxProfHoursPerDay int
}

// DefaultConfig mirrors the institute defaults: a 6x8 grid with a lunch
// break, two-period lab blocks, and six teaching hours per professor per day.
func DefaultConfig() Config {
	return Config{
		Grid:     model.DefaultGrid(),
		MaxNodes: 25000,
		Trials:   4,
		Seed:     1,
		Weights: Weights{
			ProfessorPreference: 1.0,
			Spread:              2.0,
			Gap:                 0.5,
			LabSlot:             0.5,
		},
		DefaultMaxProfHoursPerDay: 6,
	}
}
