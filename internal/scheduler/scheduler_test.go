package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/timetabler/pkg/model"
)

// lectureProblem: one three-hour lecture course taught jointly to two batches,
// a single big enough room, and a professor capped at two hours a day. The
// only valid shape spreads the three sessions over at least two days.
func lectureProblem(t *testing.T) *Problem {
	t.Helper()
	grid := model.Grid{Days: 5, PeriodsPerDay: 4, BreakPeriod: -1, LabBlockPeriods: 2}
	courses := []*model.Course{{
		Code:      "CS101",
		Name:      "Programming",
		Hours:     model.LTPSC{Lecture: 3, Credits: 3},
		RoomType:  model.RoomLecture,
		Professor: "Prof. A",
		Batches:   []string{"CSE_Y1_A", "CSE_Y1_B"},
		StudentsByBatch: map[string]int{
			"CSE_Y1_A": 55,
			"CSE_Y1_B": 60,
		},
		Term: model.TermFull,
	}}
	rooms := []*model.Classroom{{Code: "L1", Type: model.RoomLecture, Capacity: 120}}
	professors := []*model.Professor{{Name: "Prof. A", MaxHoursPerDay: 2}}
	batches := []*model.Batch{
		{ID: "CSE_Y1_A", Students: 55},
		{ID: "CSE_Y1_B", Students: 60},
	}

	problem, err := NewProblem(courses, rooms, professors, batches, grid)
	require.NoError(t, err)
	return problem
}

func TestSolveJointLectures(t *testing.T) {
	problem := lectureProblem(t)
	cfg := DefaultConfig()
	cfg.Grid = problem.Grid
	cfg.Trials = 1

	sol := Solve(context.Background(), problem, cfg, zap.NewNop())
	require.Equal(t, model.StatusSolved, sol.Status)
	require.Len(t, problem.Sessions, 3)
	assert.Empty(t, sol.Relaxed)
	assert.Empty(t, sol.Unplaced)
	assert.NotEmpty(t, sol.RunID)

	seen := map[[2]int]bool{}
	days := map[int]bool{}
	for _, s := range problem.Sessions {
		p, ok := sol.Assignment.Get(s.ID)
		require.True(t, ok, "session %s not placed", s)
		slot := [2]int{p.Day, p.Period}
		assert.False(t, seen[slot], "two sessions share slot %v", slot)
		seen[slot] = true
		days[p.Day] = true
		assert.Equal(t, "L1", p.Room.Code)
		assert.Equal(t, "Prof. A", p.Professor)
	}
	// Two-hour daily cap forces at least two distinct days for three hours.
	assert.GreaterOrEqual(t, len(days), 2)

	ok, report := Validate(problem, sol)
	assert.True(t, ok, "validator rejected solution:\n%s", report)
}

func TestSolveDeterministicForSeed(t *testing.T) {
	problem := lectureProblem(t)
	cfg := DefaultConfig()
	cfg.Grid = problem.Grid
	cfg.Trials = 2
	cfg.Seed = 7

	first := Solve(context.Background(), problem, cfg, nil)
	second := Solve(context.Background(), lectureProblem(t), cfg, nil)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Rows(), second.Rows())
}

// overbookedLabProblem cannot be solved: two lab-only courses need four
// two-period blocks but the grid offers only three.
func overbookedLabProblem(t *testing.T) *Problem {
	t.Helper()
	grid := model.Grid{Days: 3, PeriodsPerDay: 2, BreakPeriod: -1, LabBlockPeriods: 2}
	courses := []*model.Course{
		{
			Code:            "PH100",
			Hours:           model.LTPSC{Practical: 4, Credits: 2},
			RoomType:        model.RoomLab,
			Professor:       "Prof. L",
			Batches:         []string{"CSE_Y1_A"},
			StudentsByBatch: map[string]int{"CSE_Y1_A": 30},
			Term:            model.TermFull,
		},
		{
			Code:            "CH100",
			Hours:           model.LTPSC{Practical: 4, Credits: 2},
			RoomType:        model.RoomLab,
			Professor:       "Prof. M",
			Batches:         []string{"CSE_Y1_A"},
			StudentsByBatch: map[string]int{"CSE_Y1_A": 30},
			Term:            model.TermFull,
		},
	}
	rooms := []*model.Classroom{{Code: "LAB1", Type: model.RoomLab, Capacity: 30}}
	professors := []*model.Professor{{Name: "Prof. L"}, {Name: "Prof. M"}}
	batches := []*model.Batch{{ID: "CSE_Y1_A", Students: 30}}

	problem, err := NewProblem(courses, rooms, professors, batches, grid)
	require.NoError(t, err)
	return problem
}

func TestSolveOverbookedDegradesGracefully(t *testing.T) {
	problem := overbookedLabProblem(t)
	cfg := DefaultConfig()
	cfg.Grid = problem.Grid
	cfg.Trials = 1
	cfg.MaxNodes = 2000

	sol := Solve(context.Background(), problem, cfg, zap.NewNop())
	assert.NotEqual(t, model.StatusSolved, sol.Status)
	assert.NotZero(t, len(sol.Relaxed)+len(sol.Unplaced))
	// Whatever did get placed still respects the hard constraints.
	assert.LessOrEqual(t, sol.PlacedCount(), len(problem.Sessions))
}

func TestSolveCancelledContext(t *testing.T) {
	problem := lectureProblem(t)
	cfg := DefaultConfig()
	cfg.Grid = problem.Grid
	cfg.Trials = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sol := Solve(ctx, problem, cfg, zap.NewNop())
	assert.Equal(t, model.StatusInfeasible, sol.Status)
	assert.Len(t, sol.Unplaced, len(problem.Sessions))
}

func TestOrderSessionsMostConstrainedFirst(t *testing.T) {
	problem := lectureProblem(t)
	cfg := DefaultConfig()
	cfg.Grid = problem.Grid
	e := NewEngine(problem, cfg, 1, zap.NewNop())

	order := e.orderSessions()
	require.Len(t, order, len(problem.Sessions))
	ids := map[model.SessionID]bool{}
	for _, s := range order {
		assert.False(t, ids[s.ID], "session repeated in order")
		ids[s.ID] = true
	}
}

func TestBetterPrefersStatusThenScore(t *testing.T) {
	solved := &model.Solution{Status: model.StatusSolved, Score: 9}
	partial := &model.Solution{Status: model.StatusPartiallySolved, Score: 1}
	assert.True(t, better(solved, partial))
	assert.False(t, better(partial, solved))

	cheap := &model.Solution{Status: model.StatusSolved, Score: 1}
	assert.True(t, better(cheap, solved))

	tieA := &model.Solution{Status: model.StatusSolved, Score: 1, Stats: model.TrialStats{Seed: 1}}
	tieB := &model.Solution{Status: model.StatusSolved, Score: 1, Stats: model.TrialStats{Seed: 2}}
	assert.True(t, better(tieA, tieB))
}
