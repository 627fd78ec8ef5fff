package scheduler

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/campushub/timetabler/pkg/model"
)

// Problem is one immutable, already-validated instance: domain objects plus
// the sessions derived from them. It is shared read-only across trials.
type Problem struct {
	Grid       model.Grid
	Courses    []*model.Course
	Rooms      []*model.Classroom
	Professors []*model.Professor
	Batches    []*model.Batch
	Sessions   []*model.Session

	profByName map[string]*model.Professor
}

// NewProblem expands courses into sessions and freezes the instance. It
// returns a wrapped model.ErrMalformedInput when the domain data cannot be
// expanded.
func NewProblem(courses []*model.Course, rooms []*model.Classroom, professors []*model.Professor, batches []*model.Batch, grid model.Grid) (*Problem, error) {
	if grid.Days < 1 || grid.PeriodsPerDay < 1 {
		return nil, fmt.Errorf("%w: grid must have at least one day and one period", model.ErrMalformedInput)
	}
	sessions, err := model.BuildSessions(courses, grid)
	if err != nil {
		return nil, err
	}

	// Deterministic room order is part of the search contract.
	sortedRooms := make([]*model.Classroom, len(rooms))
	copy(sortedRooms, rooms)
	sort.Slice(sortedRooms, func(i, j int) bool { return sortedRooms[i].Code < sortedRooms[j].Code })

	return &Problem{
		Grid:       grid,
		Courses:    courses,
		Rooms:      sortedRooms,
		Professors: professors,
		Batches:    batches,
		Sessions:   sessions,
		profByName: lo.KeyBy(professors, func(p *model.Professor) string { return p.Name }),
	}, nil
}

// ProfessorByName returns the professor record, or nil for professors that
// appear only in course rows (treated as all-free with the default limit).
func (p *Problem) ProfessorByName(name string) *model.Professor {
	return p.profByName[name]
}
