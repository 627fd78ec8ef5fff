package scheduler

import (
	"fmt"
	"slices"

	"github.com/campushub/timetabler/pkg/model"
)

// noSession marks an empty cell.
const noSession model.SessionID = -1

// Half-semester windows occupy separate planes of the same grid; a
// full-semester session occupies both.
const (
	planeHalf1 = 0
	planeHalf2 = 1
)

func planesOf(t model.Term) []int {
	switch t {
	case model.TermHalf1:
		return []int{planeHalf1}
	case model.TermHalf2:
		return []int{planeHalf2}
	default:
		return []int{planeHalf1, planeHalf2}
	}
}

// resourceGrid is single-occupancy busy bookkeeping for a room or professor.
type resourceGrid struct {
	cells [][][2]model.SessionID // [day][period][plane]
}

// batchCell allows co-occupancy for sessions of one elective group.
type batchCell struct {
	sessions []model.SessionID
	group    string
}

type batchGrid struct {
	cells [][][2]batchCell
}

// ConflictIndex keeps room-busy, professor-busy and batch-busy grids in sync
// with the live assignment so feasibility checks cost O(1) per period.
// It is owned by exactly one engine and must always mirror the assignment;
// divergence is an engine bug and raises InternalConsistencyError via panic.
type ConflictIndex struct {
	grid    model.Grid
	rooms   map[string]*resourceGrid
	profs   map[string]*resourceGrid
	batches map[string]*batchGrid
	// profDayHours[name][plane][day] counts booked teaching periods.
	profDayHours map[string][2][]int
}

// NewConflictIndex returns an empty index for the grid.
func NewConflictIndex(grid model.Grid) *ConflictIndex {
	return &ConflictIndex{
		grid:         grid,
		rooms:        make(map[string]*resourceGrid),
		profs:        make(map[string]*resourceGrid),
		batches:      make(map[string]*batchGrid),
		profDayHours: make(map[string][2][]int),
	}
}

func (ix *ConflictIndex) newResourceGrid() *resourceGrid {
	cells := make([][][2]model.SessionID, ix.grid.Days)
	for d := range cells {
		cells[d] = make([][2]model.SessionID, ix.grid.PeriodsPerDay)
		for p := range cells[d] {
			cells[d][p] = [2]model.SessionID{noSession, noSession}
		}
	}
	return &resourceGrid{cells: cells}
}

func (ix *ConflictIndex) roomGrid(code string) *resourceGrid {
	g, ok := ix.rooms[code]
	if !ok {
		g = ix.newResourceGrid()
		ix.rooms[code] = g
	}
	return g
}

func (ix *ConflictIndex) profGrid(name string) *resourceGrid {
	g, ok := ix.profs[name]
	if !ok {
		g = ix.newResourceGrid()
		ix.profs[name] = g
	}
	return g
}

func (ix *ConflictIndex) batchGridFor(id string) *batchGrid {
	g, ok := ix.batches[id]
	if !ok {
		cells := make([][][2]batchCell, ix.grid.Days)
		for d := range cells {
			cells[d] = make([][2]batchCell, ix.grid.PeriodsPerDay)
		}
		g = &batchGrid{cells: cells}
		ix.batches[id] = g
	}
	return g
}

// RoomFree reports whether the room is unbooked at the slot for every week
// the term touches.
func (ix *ConflictIndex) RoomFree(room string, term model.Term, day, period int) bool {
	g := ix.roomGrid(room)
	for _, plane := range planesOf(term) {
		if g.cells[day][period][plane] != noSession {
			return false
		}
	}
	return true
}

// ProfessorFree reports whether the professor is unbooked at the slot.
func (ix *ConflictIndex) ProfessorFree(prof string, term model.Term, day, period int) bool {
	g := ix.profGrid(prof)
	for _, plane := range planesOf(term) {
		if g.cells[day][period][plane] != noSession {
			return false
		}
	}
	return true
}

// ProfessorDayHours returns the professor's booked periods on the day, taking
// the busiest of the weeks the term touches.
func (ix *ConflictIndex) ProfessorDayHours(prof string, term model.Term, day int) int {
	hours, ok := ix.profDayHours[prof]
	if !ok {
		return 0
	}
	booked := 0
	for _, plane := range planesOf(term) {
		booked = max(booked, hours[plane][day])
	}
	return booked
}

// BatchFree reports whether the batch can take the slot. Sessions sharing a
// non-empty elective group may co-occupy; everything else is exclusive.
func (ix *ConflictIndex) BatchFree(batch string, term model.Term, day, period int, group string) bool {
	g := ix.batchGridFor(batch)
	for _, plane := range planesOf(term) {
		cell := g.cells[day][period][plane]
		if len(cell.sessions) == 0 {
			continue
		}
		if group == "" || cell.group != group {
			return false
		}
	}
	return true
}

// BatchOccupiedPeriods lists the busy periods of a batch's day, ascending.
func (ix *ConflictIndex) BatchOccupiedPeriods(batch string, term model.Term, day int) []int {
	g, ok := ix.batches[batch]
	if !ok {
		return nil
	}
	var periods []int
	for p := 0; p < ix.grid.PeriodsPerDay; p++ {
		for _, plane := range planesOf(term) {
			if len(g.cells[day][p][plane].sessions) > 0 {
				periods = append(periods, p)
				break
			}
		}
	}
	return periods
}

// Place books the session's span in every index. The caller has already
// established feasibility.
func (ix *ConflictIndex) Place(s *model.Session, p model.Placement) {
	planes := planesOf(s.Term)
	for period := p.Period; period < p.Period+p.Periods; period++ {
		if p.Room != nil {
			g := ix.roomGrid(p.Room.Code)
			for _, plane := range planes {
				if prev := g.cells[p.Day][period][plane]; prev != noSession {
					panic(&model.InternalConsistencyError{
						Detail: fmt.Sprintf("room %s day %d period %d already holds session %d", p.Room.Code, p.Day, period, prev),
					})
				}
				g.cells[p.Day][period][plane] = s.ID
			}
		}
		pg := ix.profGrid(p.Professor)
		for _, plane := range planes {
			if prev := pg.cells[p.Day][period][plane]; prev != noSession {
				panic(&model.InternalConsistencyError{
					Detail: fmt.Sprintf("professor %s day %d period %d already holds session %d", p.Professor, p.Day, period, prev),
				})
			}
			pg.cells[p.Day][period][plane] = s.ID
		}
		for _, batch := range s.Batches {
			bg := ix.batchGridFor(batch)
			for _, plane := range planes {
				cell := &bg.cells[p.Day][period][plane]
				cell.sessions = append(cell.sessions, s.ID)
				cell.group = s.ElectiveGroup
			}
		}
	}
	hours := ix.ensureProfHours(p.Professor)
	for _, plane := range planes {
		hours[plane][p.Day] += p.Periods
	}
}

// Unplace reverses Place exactly. Removing anything other than what Place
// recorded is a fatal invariant violation.
func (ix *ConflictIndex) Unplace(s *model.Session, p model.Placement) {
	planes := planesOf(s.Term)
	for period := p.Period; period < p.Period+p.Periods; period++ {
		if p.Room != nil {
			g := ix.roomGrid(p.Room.Code)
			for _, plane := range planes {
				if g.cells[p.Day][period][plane] != s.ID {
					panic(&model.InternalConsistencyError{
						Detail: fmt.Sprintf("unplace session %d: room %s day %d period %d holds session %d", s.ID, p.Room.Code, p.Day, period, g.cells[p.Day][period][plane]),
					})
				}
				g.cells[p.Day][period][plane] = noSession
			}
		}
		pg := ix.profGrid(p.Professor)
		for _, plane := range planes {
			if pg.cells[p.Day][period][plane] != s.ID {
				panic(&model.InternalConsistencyError{
					Detail: fmt.Sprintf("unplace session %d: professor %s day %d period %d holds session %d", s.ID, p.Professor, p.Day, period, pg.cells[p.Day][period][plane]),
				})
			}
			pg.cells[p.Day][period][plane] = noSession
		}
		for _, batch := range s.Batches {
			bg := ix.batchGridFor(batch)
			for _, plane := range planes {
				cell := &bg.cells[p.Day][period][plane]
				i := slices.Index(cell.sessions, s.ID)
				if i < 0 {
					panic(&model.InternalConsistencyError{
						Detail: fmt.Sprintf("unplace session %d: batch %s day %d period %d does not hold it", s.ID, batch, p.Day, period),
					})
				}
				cell.sessions = slices.Delete(cell.sessions, i, i+1)
				if len(cell.sessions) == 0 {
					cell.group = ""
				}
			}
		}
	}
	hours := ix.ensureProfHours(p.Professor)
	for _, plane := range planes {
		hours[plane][p.Day] -= p.Periods
		if hours[plane][p.Day] < 0 {
			panic(&model.InternalConsistencyError{
				Detail: fmt.Sprintf("professor %s day %d hours went negative", p.Professor, p.Day),
			})
		}
	}
}

func (ix *ConflictIndex) ensureProfHours(name string) [2][]int {
	hours, ok := ix.profDayHours[name]
	if !ok {
		hours = [2][]int{make([]int, ix.grid.Days), make([]int, ix.grid.Days)}
		ix.profDayHours[name] = hours
	}
	return hours
}
