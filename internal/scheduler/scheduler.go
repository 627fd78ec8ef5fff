package scheduler

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/campushub/timetabler/pkg/model"
)

// courseDay keys the per-day session count of a course.
type courseDay struct {
	course string
	day    int
}

// Engine runs one backtracking search over a private assignment and conflict
// index. It is not safe for concurrent use; trials each get their own.
type Engine struct {
	cfg     Config
	log     *zap.Logger
	problem *Problem
	idx     *ConflictIndex
	checker *Checker
	asg     *model.Assignment
	rng     *rand.Rand

	courseDayCount map[courseDay]int
	nodes          int
	backtracks     int
}

// NewEngine builds a fresh engine for one trial.
func NewEngine(problem *Problem, cfg Config, seed int64, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	idx := NewConflictIndex(cfg.Grid)
	profs := make(map[string]*model.Professor, len(problem.Professors))
	for _, p := range problem.Professors {
		profs[p.Name] = p
	}
	return &Engine{
		cfg:     cfg,
		log:     log,
		problem: problem,
		idx:     idx,
		checker: &Checker{
			Grid:                cfg.Grid,
			Index:               idx,
			Professors:          profs,
			DefaultMaxProfHours: cfg.DefaultMaxProfHoursPerDay,
		},
		asg:            model.NewAssignment(),
		rng:            rand.New(rand.NewSource(seed)),
		courseDayCount: make(map[courseDay]int),
	}
}

// frame is one level of the explicit backtracking stack: the session, its
// candidates as ranked at expansion time, and the cursor into them.
type frame struct {
	s      *model.Session
	cands  []Candidate
	next   int
	chosen Candidate
}

// Solve runs the search to a terminal state. Search-quality shortfalls are
// reported inside the Solution, never as an error; the returned solution is
// always internally consistent, including after cancellation.
func (e *Engine) Solve(ctx context.Context) *model.Solution {
	start := time.Now()
	remaining := e.orderSessions()

	var leftovers []*model.Session
	frames := make([]*frame, 0, len(remaining))
	cancelled := false
	budgetHit := false

	for len(frames) < len(remaining) {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		if e.cfg.MaxNodes > 0 && e.nodes >= e.cfg.MaxNodes {
			budgetHit = true
			break
		}

		s := remaining[len(frames)]
		f := &frame{s: s, cands: e.rankedCandidates(s)}
		e.nodes++

		if len(f.cands) > 0 {
			f.chosen = f.cands[0]
			f.next = 1
			e.place(s, f.chosen)
			frames = append(frames, f)
			continue
		}

		// Dead end: chronologically unwind to the most recent frame with
		// an untried candidate. Candidates ranked at a frame's expansion
		// stay feasible on re-entry because every deeper placement has
		// been undone by then.
		retried := false
		for len(frames) > 0 {
			parent := frames[len(frames)-1]
			e.unplace(parent.s)
			e.backtracks++
			if parent.next < len(parent.cands) {
				parent.chosen = parent.cands[parent.next]
				parent.next++
				e.place(parent.s, parent.chosen)
				retried = true
				break
			}
			frames = frames[:len(frames)-1]
		}
		if !retried {
			// The whole prefix is exhausted: give up exhaustive search
			// for this session and rebuild without it.
			e.log.Debug("session deferred to relaxation",
				zap.String("session", s.String()),
				zap.Int("nodes", e.nodes))
			leftovers = append(leftovers, s)
			remaining = withoutSession(remaining, s.ID)
		}
	}

	sol := &model.Solution{
		Assignment: e.asg.Clone(),
		Sessions:   e.problem.Sessions,
		Stats: model.TrialStats{
			Nodes:      e.nodes,
			Backtracks: e.backtracks,
		},
	}

	unattempted := remaining[len(frames):]
	switch {
	case cancelled:
		for _, s := range append(leftovers, unattempted...) {
			sol.Unplaced = append(sol.Unplaced, model.UnplacedSession{
				Session: s,
				Reason:  "solve cancelled before placement",
			})
		}
	default:
		if budgetHit {
			e.log.Info("node budget exhausted, relaxing remaining sessions",
				zap.Int("nodes", e.nodes),
				zap.Int("remaining", len(unattempted)+len(leftovers)))
			leftovers = append(leftovers, unattempted...)
		}
		e.relax(leftovers, sol)
	}

	sol.Status = statusOf(sol)
	sol.Score = ScoreQuality(e.problem, sol.Assignment, e.cfg.Weights)
	sol.Stats.Nodes = e.nodes
	sol.Stats.Backtracks = e.backtracks
	sol.Stats.Duration = time.Since(start)
	return sol
}

// relax places each leftover session in its least-violating candidate and
// records the violations, guaranteeing usable output over no output. Relaxed
// placements never enter the conflict index; they are diagnostics, not
// commitments later sessions must honor.
func (e *Engine) relax(leftovers []*model.Session, sol *model.Solution) {
	for _, s := range leftovers {
		cands := e.enumerate(s)
		if len(cands) == 0 {
			sol.Unplaced = append(sol.Unplaced, model.UnplacedSession{
				Session: s,
				Reason:  "no room of type " + string(s.RoomType) + " fits a " + s.Type.String() + " span",
			})
			continue
		}
		bestIdx := -1
		bestViolations := 0
		bestCost := 0.0
		var best []ViolationReason
		for i, c := range cands {
			violations := e.checker.Violations(s, c.Day, c.Period, c.Room)
			cost := e.placementCost(s, c)
			if bestIdx < 0 || len(violations) < bestViolations ||
				(len(violations) == bestViolations && cost < bestCost) {
				bestIdx, bestViolations, bestCost, best = i, len(violations), cost, violations
			}
		}
		c := cands[bestIdx]
		reasons := make([]string, len(best))
		for i, v := range best {
			reasons[i] = v.String()
		}
		sol.Relaxed = append(sol.Relaxed, model.RelaxedSession{
			Session: s,
			Placement: model.Placement{
				Day:       c.Day,
				Period:    c.Period,
				Periods:   s.Periods,
				Room:      c.Room,
				Professor: s.Professor,
			},
			Violations: reasons,
		})
		e.log.Warn("session placed via relaxation",
			zap.String("session", s.String()),
			zap.Strings("violations", reasons))
	}
}

func (e *Engine) place(s *model.Session, c Candidate) {
	p := model.Placement{
		Day:       c.Day,
		Period:    c.Period,
		Periods:   s.Periods,
		Room:      c.Room,
		Professor: s.Professor,
	}
	e.idx.Place(s, p)
	e.asg.Place(s.ID, p)
	e.courseDayCount[courseDay{s.Course.Code, c.Day}]++
}

func (e *Engine) unplace(s *model.Session) {
	p, ok := e.asg.Get(s.ID)
	if !ok {
		panic(&model.InternalConsistencyError{Detail: "unplacing session absent from assignment"})
	}
	e.idx.Unplace(s, p)
	e.asg.Remove(s.ID)
	e.courseDayCount[courseDay{s.Course.Code, p.Day}]--
}

func statusOf(sol *model.Solution) model.SolveStatus {
	switch {
	case len(sol.Unplaced) > 0:
		return model.StatusInfeasible
	case len(sol.Relaxed) > 0:
		return model.StatusPartiallySolved
	default:
		return model.StatusSolved
	}
}

func withoutSession(sessions []*model.Session, id model.SessionID) []*model.Session {
	out := sessions[:0:0]
	for _, s := range sessions {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
