package scheduler

import "github.com/campushub/timetabler/pkg/model"

// ViolationReason names the hard constraint a candidate placement breaks.
type ViolationReason int

const (
	ReasonNone ViolationReason = iota
	ReasonOutOfGrid
	ReasonRoomType
	ReasonRoomCapacity
	ReasonRoomRestricted
	ReasonRoomBusy
	ReasonProfessorUnavailable
	ReasonProfessorBusy
	ReasonProfessorDailyLimit
	ReasonBatchBusy
)

func (r ViolationReason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonOutOfGrid:
		return "slot range leaves the grid or crosses the break"
	case ReasonRoomType:
		return "room type mismatch"
	case ReasonRoomCapacity:
		return "room capacity exceeded"
	case ReasonRoomRestricted:
		return "room restricted to other batches"
	case ReasonRoomBusy:
		return "room already booked"
	case ReasonProfessorUnavailable:
		return "professor calendar marks slot busy"
	case ReasonProfessorBusy:
		return "professor already booked"
	case ReasonProfessorDailyLimit:
		return "professor daily hour limit reached"
	case ReasonBatchBusy:
		return "batch already booked"
	default:
		return "unknown"
	}
}

// FeasibilityResult is the outcome of one hard-constraint check.
type FeasibilityResult struct {
	OK     bool
	Reason ViolationReason
}

// Checker evaluates hard constraints against the live conflict index.
type Checker struct {
	Grid                model.Grid
	Index               *ConflictIndex
	Professors          map[string]*model.Professor
	DefaultMaxProfHours int
}

// Feasible decides whether placing the session at (day, period, room) keeps
// the partial assignment valid. It stops at the first violated constraint.
func (ck *Checker) Feasible(s *model.Session, day, period int, room *model.Classroom) FeasibilityResult {
	for _, reason := range ck.violations(s, day, period, room, true) {
		return FeasibilityResult{Reason: reason}
	}
	return FeasibilityResult{OK: true, Reason: ReasonNone}
}

// Violations lists every hard constraint the candidate breaks, used by the
// relaxation pass to find the least-bad placement.
func (ck *Checker) Violations(s *model.Session, day, period int, room *model.Classroom) []ViolationReason {
	return ck.violations(s, day, period, room, false)
}

func (ck *Checker) violations(s *model.Session, day, period int, room *model.Classroom, firstOnly bool) []ViolationReason {
	var out []ViolationReason
	add := func(r ViolationReason) bool {
		out = append(out, r)
		return firstOnly
	}

	if !ck.Grid.Fits(day, period, s.Periods) {
		add(ReasonOutOfGrid)
		// The remaining checks index into the grid; bail out either way.
		return out
	}
	if room == nil {
		if add(ReasonRoomType) {
			return out
		}
	} else {
		if room.Type != s.RoomType {
			if add(ReasonRoomType) {
				return out
			}
		}
		if room.Capacity < s.Students {
			if add(ReasonRoomCapacity) {
				return out
			}
		}
		for _, batch := range s.Batches {
			if !room.Allows(batch) {
				if add(ReasonRoomRestricted) {
					return out
				}
				break
			}
		}
		for p := period; p < period+s.Periods; p++ {
			if !ck.Index.RoomFree(room.Code, s.Term, day, p) {
				if add(ReasonRoomBusy) {
					return out
				}
				break
			}
		}
	}

	prof := ck.Professors[s.Professor]
	for p := period; p < period+s.Periods; p++ {
		if prof != nil && !prof.FreeAt(day, p) {
			if add(ReasonProfessorUnavailable) {
				return out
			}
			break
		}
	}
	for p := period; p < period+s.Periods; p++ {
		if !ck.Index.ProfessorFree(s.Professor, s.Term, day, p) {
			if add(ReasonProfessorBusy) {
				return out
			}
			break
		}
	}
	limit := ck.DefaultMaxProfHours
	if prof != nil && prof.MaxHoursPerDay > 0 {
		limit = prof.MaxHoursPerDay
	}
	if limit > 0 && ck.Index.ProfessorDayHours(s.Professor, s.Term, day)+s.Periods > limit {
		if add(ReasonProfessorDailyLimit) {
			return out
		}
	}

	for _, batch := range s.Batches {
		for p := period; p < period+s.Periods; p++ {
			if !ck.Index.BatchFree(batch, s.Term, day, p, s.ElectiveGroup) {
				if add(ReasonBatchBusy) {
					return out
				}
				break
			}
		}
	}
	return out
}
