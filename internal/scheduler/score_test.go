package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetabler/pkg/model"
)

func TestNearestGap(t *testing.T) {
	assert.Equal(t, 0, nearestGap([]int{2}, 1, 3))
	assert.Equal(t, 1, nearestGap([]int{0}, 1, 1))
	assert.Equal(t, 3, nearestGap([]int{0}, 3, 4))
	assert.Equal(t, 2, nearestGap([]int{0, 7}, 3, 5))
}

func TestIdlePeriods(t *testing.T) {
	assert.Equal(t, 0, idlePeriods(nil, -1))
	assert.Equal(t, 0, idlePeriods([]int{2, 3}, -1))
	assert.Equal(t, 2, idlePeriods([]int{1, 4}, -1))
	// Lunch never counts as an idle period.
	assert.Equal(t, 1, idlePeriods([]int{1, 4}, 2))
	assert.Equal(t, 0, idlePeriods([]int{5}, -1))
}

func TestScoreQuality(t *testing.T) {
	problem := lectureProblem(t)
	w := Weights{ProfessorPreference: 1, Spread: 2, Gap: 0.5, LabSlot: 0.5}
	room := problem.Rooms[0]

	// One lecture per day, back to back with nothing else: no violations.
	spread := model.NewAssignment()
	for i, s := range problem.Sessions {
		spread.Place(s.ID, model.Placement{Day: i, Period: 0, Periods: 1, Room: room, Professor: s.Professor})
	}
	assert.Zero(t, ScoreQuality(problem, spread, w))

	// All three lectures on Monday with a one-period hole: three same-day
	// pairs plus the batch gap.
	clustered := model.NewAssignment()
	periods := []int{0, 1, 3}
	for i, s := range problem.Sessions {
		clustered.Place(s.ID, model.Placement{Day: 0, Period: periods[i], Periods: 1, Room: room, Professor: s.Professor})
	}
	got := ScoreQuality(problem, clustered, w)
	want := w.Spread*3 + w.Gap*2 // gap counted once per batch
	assert.InDelta(t, want, got, 1e-9)
}

func TestPlacementCostPenalties(t *testing.T) {
	problem := lectureProblem(t)
	cfg := DefaultConfig()
	cfg.Grid = problem.Grid
	cfg.Weights = Weights{ProfessorPreference: 1, Spread: 2, Gap: 0.5, LabSlot: 0.5}
	e := NewEngine(problem, cfg, 1, nil)

	s := problem.Sessions[0]
	require.NotNil(t, s)
	room := problem.Rooms[0]

	// Empty timetable: nothing to clash with.
	assert.Zero(t, e.placementCost(s, Candidate{Day: 0, Period: 0, Room: room}))

	e.place(s, Candidate{Day: 0, Period: 0, Room: room})
	next := problem.Sessions[1]

	// Same course, same day: one clustering penalty.
	sameDay := e.placementCost(next, Candidate{Day: 0, Period: 1, Room: room})
	assert.InDelta(t, cfg.Weights.Spread, sameDay, 1e-9)

	// A distant period on the same day also pays the batch-gap penalty
	// once per batch sharing the session.
	distant := e.placementCost(next, Candidate{Day: 0, Period: 3, Room: room})
	assert.InDelta(t, cfg.Weights.Spread+2*cfg.Weights.Gap*2, distant, 1e-9)

	// A fresh day costs nothing.
	assert.Zero(t, e.placementCost(next, Candidate{Day: 1, Period: 0, Room: room}))
}
