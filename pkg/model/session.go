package model

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// SessionID identifies one schedulable session within a run.
type SessionID int

// Session is one schedulable unit derived from a course's weekly hours.
// Sessions are built once before search and never mutated afterwards.
type Session struct {
	ID       SessionID
	Course   *Course
	Type     SessionType
	Batches  []string
	Students int
	// Instance distinguishes the weekly repetitions of one requirement.
	Instance int
	// Periods is the contiguous slot span, 1 for lectures and tutorials.
	Periods       int
	Professor     string
	RoomType      RoomType
	Term          Term
	ElectiveGroup string
}

func (s *Session) String() string {
	return fmt.Sprintf("%s/%s#%d", s.Course.Code, s.Type, s.Instance+1)
}

// BuildSessions expands courses into their concrete schedulable sessions.
//
// Lecture and tutorial hours become one-period sessions held jointly by every
// batch that shares the same professor for the course; practical hours become
// lab-block sessions held per batch. A MalformedCourseError is returned when
// hours do not divide into whole sessions or the room requirement contradicts
// the session types.
func BuildSessions(courses []*Course, grid Grid) ([]*Session, error) {
	var sessions []*Session
	nextID := SessionID(0)

	emit := func(c *Course, t SessionType, batches []string, prof string, periods, instance int) {
		students := lo.SumBy(batches, func(b string) int { return c.Students(b) })
		roomType := RoomLecture
		if t == Practical {
			roomType = RoomLab
		}
		sessions = append(sessions, &Session{
			ID:            nextID,
			Course:        c,
			Type:          t,
			Batches:       batches,
			Students:      students,
			Instance:      instance,
			Periods:       periods,
			Professor:     prof,
			RoomType:      roomType,
			Term:          c.Term,
			ElectiveGroup: c.ElectiveGroup,
		})
		nextID++
	}

	for _, c := range courses {
		if len(c.Batches) == 0 {
			return nil, &MalformedCourseError{Code: c.Code, Reason: "no batches assigned"}
		}
		if c.Hours.Lecture < 0 || c.Hours.Tutorial < 0 || c.Hours.Practical < 0 {
			return nil, &MalformedCourseError{Code: c.Code, Reason: "negative weekly hours"}
		}
		contact := c.Hours.Lecture + c.Hours.Tutorial
		if contact > 0 && c.RoomType == RoomLab {
			return nil, &MalformedCourseError{Code: c.Code, Reason: "lecture/tutorial hours require a Lecture room type"}
		}
		if contact == 0 && c.Hours.Practical > 0 && c.RoomType != "" && c.RoomType != RoomLab {
			return nil, &MalformedCourseError{
				Code:   c.Code,
				Reason: fmt.Sprintf("practical-only course names room type %q, want Lab", c.RoomType),
			}
		}
		if c.Hours.Practical > 0 {
			if grid.LabBlockPeriods < 1 || c.Hours.Practical%grid.LabBlockPeriods != 0 {
				return nil, &MalformedCourseError{
					Code:   c.Code,
					Reason: fmt.Sprintf("%d practical hours do not divide into %d-period lab blocks", c.Hours.Practical, grid.LabBlockPeriods),
				}
			}
		}

		// Batches taught by the same professor attend lectures and
		// tutorials together; the professor map splits them apart.
		byProf := lo.GroupBy(c.Batches, func(b string) string { return c.ProfessorFor(b) })
		profs := lo.Keys(byProf)
		sort.Strings(profs)

		for _, prof := range profs {
			batches := byProf[prof]
			sort.Strings(batches)
			for i := 0; i < c.Hours.Lecture; i++ {
				emit(c, Lecture, batches, prof, 1, i)
			}
			for i := 0; i < c.Hours.Tutorial; i++ {
				emit(c, Tutorial, batches, prof, 1, i)
			}
		}

		// Labs run per batch so sections fit the smaller lab rooms.
		labSessions := c.Hours.Practical / max(grid.LabBlockPeriods, 1)
		for _, batch := range sortedCopy(c.Batches) {
			prof := c.ProfessorFor(batch)
			for i := 0; i < labSessions; i++ {
				emit(c, Practical, []string{batch}, prof, grid.LabBlockPeriods, i)
			}
		}
	}
	return sessions, nil
}

// ScheduledPeriods sums the slot spans of a course's sessions, used for hour
// conservation checks.
func ScheduledPeriods(sessions []*Session, courseCode string) int {
	return lo.SumBy(sessions, func(s *Session) int {
		if s.Course.Code == courseCode {
			return s.Periods
		}
		return 0
	})
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
