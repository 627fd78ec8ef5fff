package scheduler

import (
	"sort"

	"github.com/campushub/timetabler/pkg/model"
)

// Candidate is one (day, period, room) triple a session could occupy.
type Candidate struct {
	Day    int
	Period int
	Room   *model.Classroom
}

// enumerate walks the candidate space in the fixed deterministic order:
// days Monday first, periods ascending, rooms ascending by code.
func (e *Engine) enumerate(s *model.Session) []Candidate {
	var out []Candidate
	for day := 0; day < e.cfg.Grid.Days; day++ {
		for period := 0; period+s.Periods <= e.cfg.Grid.PeriodsPerDay; period++ {
			if !e.cfg.Grid.Fits(day, period, s.Periods) {
				continue
			}
			for _, room := range e.problem.Rooms {
				if room.Type != s.RoomType {
					continue
				}
				out = append(out, Candidate{Day: day, Period: period, Room: room})
			}
		}
	}
	return out
}

// feasibleCandidates filters the enumeration through the hard constraints.
func (e *Engine) feasibleCandidates(s *model.Session) []Candidate {
	var out []Candidate
	for _, c := range e.enumerate(s) {
		if e.checker.Feasible(s, c.Day, c.Period, c.Room).OK {
			out = append(out, c)
		}
	}
	return out
}

// rankedCandidates orders the feasible candidates least-soft-cost-first, with
// the enumeration order as the stable tie-break. Equal-cost runs are shuffled
// with the trial seed so restarts explore different corners of the space.
func (e *Engine) rankedCandidates(s *model.Session) []Candidate {
	cands := e.feasibleCandidates(s)
	costs := make([]float64, len(cands))
	for i, c := range cands {
		costs[i] = e.placementCost(s, c)
	}
	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return costs[order[i]] < costs[order[j]]
	})

	ranked := make([]Candidate, len(cands))
	for i, idx := range order {
		ranked[i] = cands[idx]
	}
	if e.rng != nil {
		e.shuffleEqualCost(ranked, costs, order)
	}
	return ranked
}

// shuffleEqualCost permutes each run of equal-cost candidates in place.
func (e *Engine) shuffleEqualCost(ranked []Candidate, costs []float64, order []int) {
	start := 0
	for i := 1; i <= len(ranked); i++ {
		if i < len(ranked) && costs[order[i]] == costs[order[start]] {
			continue
		}
		if run := i - start; run > 1 {
			e.rng.Shuffle(run, func(a, b int) {
				ranked[start+a], ranked[start+b] = ranked[start+b], ranked[start+a]
			})
		}
		start = i
	}
}

// orderSessions fixes the static search order: most constrained first, ties
// broken by term window, student count, then course code for reproducibility.
func (e *Engine) orderSessions() []*model.Session {
	sessions := make([]*model.Session, len(e.problem.Sessions))
	copy(sessions, e.problem.Sessions)

	counts := make(map[model.SessionID]int, len(sessions))
	for _, s := range sessions {
		counts[s.ID] = len(e.feasibleCandidates(s))
	}

	termRank := func(t model.Term) int {
		switch t {
		case model.TermHalf1:
			return 0
		case model.TermFull:
			return 1
		default:
			return 2
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if counts[a.ID] != counts[b.ID] {
			return counts[a.ID] < counts[b.ID]
		}
		if termRank(a.Term) != termRank(b.Term) {
			return termRank(a.Term) < termRank(b.Term)
		}
		if a.Students != b.Students {
			return a.Students > b.Students
		}
		if a.Course.Code != b.Course.Code {
			return a.Course.Code < b.Course.Code
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Instance != b.Instance {
			return a.Instance < b.Instance
		}
		return a.ID < b.ID
	})
	return sessions
}
