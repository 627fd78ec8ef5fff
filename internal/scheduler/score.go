package scheduler

import "github.com/campushub/timetabler/pkg/model"

// placementCost is the soft-constraint delta a candidate would introduce
// given the current partial assignment. Lower is better.
func (e *Engine) placementCost(s *model.Session, c Candidate) float64 {
	w := e.cfg.Weights
	cost := 0.0

	if prof := e.problem.ProfessorByName(s.Professor); prof != nil {
		for p := c.Period; p < c.Period+s.Periods; p++ {
			if !prof.Prefers(p) {
				cost += w.ProfessorPreference
			}
		}
	}

	// Clustering a course's sessions on one day costs per existing session.
	cost += w.Spread * float64(e.courseDayCount[courseDay{s.Course.Code, c.Day}])

	// An isolated placement far from the batch's other sessions that day
	// creates idle gaps.
	for _, batch := range s.Batches {
		occupied := e.idx.BatchOccupiedPeriods(batch, s.Term, c.Day)
		if len(occupied) == 0 {
			continue
		}
		gap := nearestGap(occupied, c.Period, c.Period+s.Periods-1)
		if gap > 1 {
			cost += w.Gap * float64(gap-1)
		}
	}

	// Labs sit badly in the first period of a day.
	if s.Type == model.Practical && c.Period == 0 {
		cost += w.LabSlot
	}
	return cost
}

// nearestGap is the smallest distance from the span [lo, hi] to any occupied
// period; adjacent or overlapping spans yield <= 1.
func nearestGap(occupied []int, lo, hi int) int {
	best := -1
	for _, p := range occupied {
		var d int
		switch {
		case p < lo:
			d = lo - p
		case p > hi:
			d = p - hi
		default:
			d = 0
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// ScoreQuality aggregates all soft-constraint violations of an assignment.
// Lower is better; zero means no soft constraint is violated.
func ScoreQuality(problem *Problem, asg *model.Assignment, w Weights) float64 {
	score := 0.0
	courseDayCounts := make(map[courseDay]int)
	batchDays := make(map[string]map[int][]int) // batch -> day -> periods

	for _, s := range problem.Sessions {
		p, ok := asg.Get(s.ID)
		if !ok {
			continue
		}
		if prof := problem.ProfessorByName(s.Professor); prof != nil {
			for period := p.Period; period < p.Period+p.Periods; period++ {
				if !prof.Prefers(period) {
					score += w.ProfessorPreference
				}
			}
		}
		courseDayCounts[courseDay{s.Course.Code, p.Day}]++
		if s.Type == model.Practical && p.Period == 0 {
			score += w.LabSlot
		}
		for _, batch := range s.Batches {
			if batchDays[batch] == nil {
				batchDays[batch] = make(map[int][]int)
			}
			for period := p.Period; period < p.Period+p.Periods; period++ {
				batchDays[batch][p.Day] = append(batchDays[batch][p.Day], period)
			}
		}
	}

	// Each same-day pair of a course's sessions is one clustering violation.
	for _, n := range courseDayCounts {
		if n > 1 {
			score += w.Spread * float64(n*(n-1)/2)
		}
	}

	// Idle periods between a batch's first and last session of a day.
	for _, days := range batchDays {
		for _, periods := range days {
			score += w.Gap * float64(idlePeriods(periods, problem.Grid.BreakPeriod))
		}
	}
	return score
}

// idlePeriods counts free periods strictly inside a day's occupied span,
// ignoring the break period.
func idlePeriods(periods []int, breakPeriod int) int {
	if len(periods) == 0 {
		return 0
	}
	lo, hi := periods[0], periods[0]
	seen := make(map[int]bool, len(periods))
	for _, p := range periods {
		seen[p] = true
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	idle := 0
	for p := lo + 1; p < hi; p++ {
		if !seen[p] && p != breakPeriod {
			idle++
		}
	}
	return idle
}
