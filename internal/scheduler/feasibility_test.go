package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushub/timetabler/pkg/model"
)

func TestCheckerFeasible(t *testing.T) {
	grid := model.Grid{Days: 5, PeriodsPerDay: 8, BreakPeriod: 4, LabBlockPeriods: 2}
	lecture := &model.Classroom{Code: "L1", Type: model.RoomLecture, Capacity: 60}
	lab := &model.Classroom{Code: "LAB1", Type: model.RoomLab, Capacity: 30}
	restricted := &model.Classroom{Code: "L2", Type: model.RoomLecture, Capacity: 120, AllowedBatches: []string{"ECE_Y1_A"}}

	ix := NewConflictIndex(grid)
	busyRoom := &model.Classroom{Code: "L3", Type: model.RoomLecture, Capacity: 120}
	occupant := testSession(99, func(s *model.Session) {
		s.Professor = "Prof. Busy"
		s.Batches = []string{"CSE_Y2_A"}
	})
	ix.Place(occupant, model.Placement{Day: 0, Period: 0, Periods: 1, Room: busyRoom, Professor: "Prof. Busy"})

	ck := &Checker{
		Grid:  grid,
		Index: ix,
		Professors: map[string]*model.Professor{
			"Prof. Off": {Name: "Prof. Off", BusyDays: []int{1}},
		},
		DefaultMaxProfHours: 6,
	}

	tests := []struct {
		name    string
		session *model.Session
		day     int
		period  int
		room    *model.Classroom
		want    ViolationReason
	}{
		{
			name:    "clear slot",
			session: testSession(1),
			day:     0, period: 1, room: lecture,
			want: ReasonNone,
		},
		{
			name:    "span leaves the day",
			session: testSession(2, func(s *model.Session) { s.Periods = 2 }),
			day:     0, period: 7, room: lecture,
			want: ReasonOutOfGrid,
		},
		{
			name:    "span crosses the break",
			session: testSession(3, func(s *model.Session) { s.Periods = 2 }),
			day:     0, period: 3, room: lecture,
			want: ReasonOutOfGrid,
		},
		{
			name:    "lecture in a lab room",
			session: testSession(4),
			day:     0, period: 1, room: lab,
			want: ReasonRoomType,
		},
		{
			name:    "over capacity",
			session: testSession(5, func(s *model.Session) { s.Students = 120 }),
			day:     0, period: 1, room: lecture,
			want: ReasonRoomCapacity,
		},
		{
			name:    "room reserved for another batch",
			session: testSession(6),
			day:     0, period: 1, room: restricted,
			want: ReasonRoomRestricted,
		},
		{
			name:    "room already booked",
			session: testSession(7),
			day:     0, period: 0, room: busyRoom,
			want: ReasonRoomBusy,
		},
		{
			name: "professor calendar busy day",
			session: testSession(8, func(s *model.Session) {
				s.Professor = "Prof. Off"
			}),
			day: 1, period: 0, room: lecture,
			want: ReasonProfessorUnavailable,
		},
		{
			name: "professor booked elsewhere",
			session: testSession(9, func(s *model.Session) {
				s.Professor = "Prof. Busy"
			}),
			day: 0, period: 0, room: lecture,
			want: ReasonProfessorBusy,
		},
		{
			name: "batch booked elsewhere",
			session: testSession(10, func(s *model.Session) {
				s.Batches = []string{"CSE_Y2_A"}
			}),
			day: 0, period: 0, room: lecture,
			want: ReasonBatchBusy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ck.Feasible(tt.session, tt.day, tt.period, tt.room)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, tt.want == ReasonNone, got.OK)
		})
	}
}

func TestCheckerDailyLimit(t *testing.T) {
	grid := model.Grid{Days: 5, PeriodsPerDay: 8, BreakPeriod: -1, LabBlockPeriods: 2}
	ix := NewConflictIndex(grid)
	room := &model.Classroom{Code: "L1", Type: model.RoomLecture, Capacity: 100}
	ck := &Checker{Grid: grid, Index: ix, Professors: map[string]*model.Professor{}, DefaultMaxProfHours: 2}

	s1 := testSession(1, func(s *model.Session) { s.Periods = 2 })
	ix.Place(s1, model.Placement{Day: 0, Period: 0, Periods: 2, Room: room, Professor: "Prof. A"})

	over := testSession(2, func(s *model.Session) { s.Batches = []string{"CSE_Y2_A"} })
	got := ck.Feasible(over, 0, 3, room)
	assert.Equal(t, ReasonProfessorDailyLimit, got.Reason)

	// Another day resets the count.
	got = ck.Feasible(over, 1, 0, room)
	assert.True(t, got.OK)
}

func TestCheckerViolationsListsAll(t *testing.T) {
	grid := model.Grid{Days: 5, PeriodsPerDay: 8, BreakPeriod: -1, LabBlockPeriods: 2}
	ix := NewConflictIndex(grid)
	ck := &Checker{Grid: grid, Index: ix, Professors: map[string]*model.Professor{}, DefaultMaxProfHours: 6}

	tiny := &model.Classroom{Code: "LAB1", Type: model.RoomLab, Capacity: 10}
	s := testSession(1, func(s *model.Session) { s.Students = 80 })

	got := ck.Violations(s, 0, 0, tiny)
	assert.Contains(t, got, ReasonRoomType)
	assert.Contains(t, got, ReasonRoomCapacity)
	assert.Len(t, got, 2)
}
