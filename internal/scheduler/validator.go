package scheduler

import (
	"fmt"
	"strings"

	"github.com/campushub/timetabler/pkg/model"
)

// Validate re-checks a finished solution against the hard-constraint
// properties from first principles, without trusting the conflict index.
// Returns false and a report for invalid schedules.
func Validate(problem *Problem, sol *model.Solution) (bool, string) {
	var detail strings.Builder

	type booking struct {
		session *model.Session
		p       model.Placement
	}
	var placed []booking
	for _, s := range problem.Sessions {
		if p, ok := sol.Assignment.Get(s.ID); ok {
			placed = append(placed, booking{s, p})
		}
	}

	overlaps := func(a, b booking) bool {
		if a.p.Day != b.p.Day || !a.session.Term.Overlaps(b.session.Term) {
			return false
		}
		return a.p.Period < b.p.Period+b.p.Periods && b.p.Period < a.p.Period+a.p.Periods
	}

	roomOK := true
	profOK := true
	batchOK := true
	for i, a := range placed {
		for _, b := range placed[i+1:] {
			if !overlaps(a, b) {
				continue
			}
			if a.p.Room != nil && b.p.Room != nil && a.p.Room.Code == b.p.Room.Code {
				roomOK = false
				fmt.Fprintf(&detail, "- room %s double-booked by %s and %s\n",
					a.p.Room.Code, a.session, b.session)
			}
			if a.p.Professor == b.p.Professor {
				profOK = false
				fmt.Fprintf(&detail, "- professor %s double-booked by %s and %s\n",
					a.p.Professor, a.session, b.session)
			}
			shared := sharedBatch(a.session.Batches, b.session.Batches)
			if shared != "" && !sameElectiveGroup(a.session, b.session) {
				batchOK = false
				fmt.Fprintf(&detail, "- batch %s double-booked by %s and %s\n",
					shared, a.session, b.session)
			}
		}
	}

	capacityOK := true
	for _, b := range placed {
		if b.p.Room == nil || b.p.Room.Capacity < b.session.Students {
			capacityOK = false
			fmt.Fprintf(&detail, "- session %s exceeds room capacity\n", b.session)
		}
	}

	limitOK := true
	type profDay struct {
		prof  string
		plane int
		day   int
	}
	profHours := make(map[profDay]int)
	for _, b := range placed {
		for _, plane := range planesOf(b.session.Term) {
			profHours[profDay{b.p.Professor, plane, b.p.Day}] += b.p.Periods
		}
	}
	for key, hours := range profHours {
		limit := limitFor(problem, key.prof)
		if limit > 0 && hours > limit {
			limitOK = false
			fmt.Fprintf(&detail, "- professor %s exceeds %d hours on %s\n",
				key.prof, limit, model.DayNames[key.day])
		}
	}

	hoursOK := true
	for _, course := range problem.Courses {
		required := course.Hours.Lecture + course.Hours.Tutorial
		// Lectures and tutorials repeat per professor group; practicals
		// repeat per batch.
		required *= professorGroups(course)
		required += course.Hours.Practical * len(course.Batches)

		got := 0
		relaxed := 0
		for _, s := range problem.Sessions {
			if s.Course.Code != course.Code {
				continue
			}
			if _, ok := sol.Assignment.Get(s.ID); ok {
				got += s.Periods
			}
		}
		for _, r := range sol.Relaxed {
			if r.Session.Course.Code == course.Code {
				relaxed += r.Session.Periods
			}
		}
		if got != required {
			if got+relaxed == required {
				fmt.Fprintf(&detail, "- course %s: %d of %d weekly periods placed only via relaxation\n",
					course.Code, relaxed, required)
			} else {
				hoursOK = false
				fmt.Fprintf(&detail, "- course %s: placed %d weekly periods, want %d\n",
					course.Code, got, required)
			}
		}
	}

	var report strings.Builder
	check := func(ok bool, name string) {
		if ok {
			fmt.Fprintf(&report, "[  OK]: %s\n", name)
		} else {
			fmt.Fprintf(&report, "[FAIL]: %s\n", name)
		}
	}
	check(roomOK, "Room double-booking check.")
	check(profOK, "Professor exclusivity check.")
	check(batchOK, "Batch exclusivity check.")
	check(capacityOK, "Room capacity check.")
	check(limitOK, "Professor daily limit check.")
	check(hoursOK, "Hour conservation check.")
	report.WriteString(detail.String())

	valid := roomOK && profOK && batchOK && capacityOK && limitOK && hoursOK
	return valid, report.String()
}

func sharedBatch(a, b []string) string {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return x
			}
		}
	}
	return ""
}

func sameElectiveGroup(a, b *model.Session) bool {
	return a.ElectiveGroup != "" && a.ElectiveGroup == b.ElectiveGroup
}

func limitFor(problem *Problem, prof string) int {
	if p := problem.ProfessorByName(prof); p != nil {
		return p.MaxHoursPerDay
	}
	return 0
}

// professorGroups counts how many distinct professors split a course's
// batches, which is how many parallel lecture streams BuildSessions emits.
func professorGroups(course *model.Course) int {
	profs := make(map[string]bool)
	for _, batch := range course.Batches {
		profs[course.ProfessorFor(batch)] = true
	}
	return max(len(profs), 1)
}
