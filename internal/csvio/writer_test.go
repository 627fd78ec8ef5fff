package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetabler/pkg/model"
)

func sampleSolution() *model.Solution {
	course := &model.Course{Code: "CS101", Name: "Programming"}
	room := &model.Classroom{Code: "L1", Type: model.RoomLecture, Capacity: 120}
	sessions := []*model.Session{
		{
			ID:        0,
			Course:    course,
			Type:      model.Lecture,
			Batches:   []string{"CSE_Y1_A", "CSE_Y1_B"},
			Periods:   1,
			Professor: "Prof. A",
		},
		{
			ID:        1,
			Course:    course,
			Type:      model.Practical,
			Batches:   []string{"CSE_Y1_A"},
			Periods:   2,
			Professor: "Prof. A",
		},
	}

	asg := model.NewAssignment()
	asg.Place(0, model.Placement{Day: 0, Period: 1, Periods: 1, Room: room, Professor: "Prof. A"})
	asg.Place(1, model.Placement{Day: 2, Period: 0, Periods: 2, Room: room, Professor: "Prof. A"})
	return &model.Solution{Status: model.StatusSolved, Assignment: asg, Sessions: sessions}
}

func TestExportScheduleString(t *testing.T) {
	out, err := ExportScheduleString(sampleSolution())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Header plus one row per session-period per batch: the joint lecture
	// yields two rows, the two-period lab another two.
	require.Len(t, lines, 5)
	assert.Equal(t, "day,period,course_code,course_name,batch,room,professor,type", lines[0])
	assert.Contains(t, lines[1], "CS101")
	assert.Contains(t, out, "Practical")
}

func TestRowsOrderedByBatchDayPeriod(t *testing.T) {
	rows := sampleSolution().Rows()
	require.Len(t, rows, 4)
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Batch == cur.Batch {
			assert.LessOrEqual(t, prev.Day, cur.Day)
		} else {
			assert.Less(t, prev.Batch, cur.Batch)
		}
	}
}
