package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid() Grid {
	return Grid{Days: 5, PeriodsPerDay: 8, BreakPeriod: 4, LabBlockPeriods: 2}
}

func TestBuildSessionsLectureTutorial(t *testing.T) {
	course := &Course{
		Code:            "CS101",
		Name:            "Programming",
		Hours:           LTPSC{Lecture: 3, Tutorial: 1, Credits: 4},
		RoomType:        RoomLecture,
		Professor:       "Prof. A",
		Batches:         []string{"CSE_Y1_A", "CSE_Y1_B"},
		StudentsByBatch: map[string]int{"CSE_Y1_A": 55, "CSE_Y1_B": 60},
	}

	sessions, err := BuildSessions([]*Course{course}, testGrid())
	require.NoError(t, err)
	require.Len(t, sessions, 4)

	lectures := 0
	tutorials := 0
	for _, s := range sessions {
		assert.Equal(t, 1, s.Periods)
		assert.Equal(t, RoomLecture, s.RoomType)
		assert.Equal(t, "Prof. A", s.Professor)
		assert.Equal(t, []string{"CSE_Y1_A", "CSE_Y1_B"}, s.Batches)
		assert.Equal(t, 115, s.Students)
		switch s.Type {
		case Lecture:
			lectures++
		case Tutorial:
			tutorials++
		}
	}
	assert.Equal(t, 3, lectures)
	assert.Equal(t, 1, tutorials)
}

func TestBuildSessionsSplitsByProfessor(t *testing.T) {
	course := &Course{
		Code:             "MA102",
		Hours:            LTPSC{Lecture: 2},
		RoomType:         RoomLecture,
		Professor:        "Prof. A",
		ProfessorByBatch: map[string]string{"ECE_Y1_A": "Prof. B"},
		Batches:          []string{"CSE_Y1_A", "ECE_Y1_A"},
	}

	sessions, err := BuildSessions([]*Course{course}, testGrid())
	require.NoError(t, err)
	// Two lecture streams of two sessions each.
	require.Len(t, sessions, 4)

	byProf := map[string]int{}
	for _, s := range sessions {
		require.Len(t, s.Batches, 1)
		byProf[s.Professor]++
	}
	assert.Equal(t, map[string]int{"Prof. A": 2, "Prof. B": 2}, byProf)
}

func TestBuildSessionsLabBlocks(t *testing.T) {
	course := &Course{
		Code:      "CS110",
		Hours:     LTPSC{Practical: 4},
		RoomType:  RoomLab,
		Professor: "Prof. L",
		Batches:   []string{"CSE_Y1_A", "CSE_Y1_B"},
	}

	sessions, err := BuildSessions([]*Course{course}, testGrid())
	require.NoError(t, err)
	// Labs run per batch: 4 hours / 2-period blocks = 2 sessions per batch.
	require.Len(t, sessions, 4)
	for _, s := range sessions {
		assert.Equal(t, Practical, s.Type)
		assert.Equal(t, 2, s.Periods)
		assert.Equal(t, RoomLab, s.RoomType)
		assert.Len(t, s.Batches, 1)
	}
}

func TestBuildSessionsErrors(t *testing.T) {
	grid := testGrid()
	cases := []struct {
		name   string
		course *Course
	}{
		{
			name: "practical hours not divisible into lab blocks",
			course: &Course{
				Code:     "CS111",
				Hours:    LTPSC{Practical: 3},
				RoomType: RoomLab,
				Batches:  []string{"CSE_Y1_A"},
			},
		},
		{
			name: "practical-only course with lecture room type",
			course: &Course{
				Code:     "CS112",
				Hours:    LTPSC{Practical: 2},
				RoomType: RoomLecture,
				Batches:  []string{"CSE_Y1_A"},
			},
		},
		{
			name: "lecture hours with lab room type",
			course: &Course{
				Code:     "CS113",
				Hours:    LTPSC{Lecture: 2},
				RoomType: RoomLab,
				Batches:  []string{"CSE_Y1_A"},
			},
		},
		{
			name:   "no batches",
			course: &Course{Code: "CS114", Hours: LTPSC{Lecture: 1}, RoomType: RoomLecture},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSessions([]*Course{tc.course}, grid)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))

			var malformed *MalformedCourseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.course.Code, malformed.Code)
		})
	}
}

func TestGridFits(t *testing.T) {
	grid := testGrid()
	assert.True(t, grid.Fits(0, 0, 1))
	assert.True(t, grid.Fits(4, 6, 2))
	assert.False(t, grid.Fits(5, 0, 1), "day outside grid")
	assert.False(t, grid.Fits(0, 7, 2), "span leaves the day")
	assert.False(t, grid.Fits(0, 3, 2), "span crosses the break")
	assert.False(t, grid.Fits(0, 4, 1), "break period itself")
}

func TestTermOverlaps(t *testing.T) {
	assert.True(t, TermFull.Overlaps(TermHalf1))
	assert.True(t, TermHalf2.Overlaps(TermFull))
	assert.True(t, TermHalf1.Overlaps(TermHalf1))
	assert.False(t, TermHalf1.Overlaps(TermHalf2))
}

func TestValidateCapacity(t *testing.T) {
	room := &Classroom{Code: "L1", Type: RoomLecture, Capacity: 60}
	assert.True(t, ValidateCapacity(room, &Batch{ID: "A", Students: 60}))
	assert.False(t, ValidateCapacity(room, &Batch{ID: "B", Students: 61}))
}
