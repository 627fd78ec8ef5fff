package model

import (
	"sort"
	"time"
)

// SolveStatus is the terminal state of one solve.
type SolveStatus int

const (
	// StatusSolved: every session placed with zero hard violations.
	StatusSolved SolveStatus = iota
	// StatusPartiallySolved: some sessions placed only via relaxation.
	StatusPartiallySolved
	// StatusInfeasible: at least one session had no candidate at all.
	StatusInfeasible
)

func (s SolveStatus) String() string {
	switch s {
	case StatusSolved:
		return "Solved"
	case StatusPartiallySolved:
		return "PartiallySolved"
	default:
		return "Infeasible"
	}
}

// RelaxedSession records a session placed despite hard violations.
type RelaxedSession struct {
	Session    *Session
	Placement  Placement
	Violations []string
}

// UnplacedSession records a session the search could not place at all.
type UnplacedSession struct {
	Session *Session
	Reason  string
}

// TrialStats captures the effort behind one search trial.
type TrialStats struct {
	Seed       int64
	Nodes      int
	Backtracks int
	Duration   time.Duration
}

// Solution is the immutable result of one solve: the assignment plus full
// diagnostics. Search-quality shortfalls live here as data, never as errors.
type Solution struct {
	RunID      string
	Status     SolveStatus
	Assignment *Assignment
	Sessions   []*Session
	Relaxed    []RelaxedSession
	Unplaced   []UnplacedSession
	Score      float64
	Stats      TrialStats
}

// ScheduleRow is one exported line: a single period of a placed session for a
// single batch.
type ScheduleRow struct {
	Day        int    `csv:"day"`
	Period     int    `csv:"period"`
	CourseCode string `csv:"course_code"`
	CourseName string `csv:"course_name"`
	Batch      string `csv:"batch"`
	Room       string `csv:"room"`
	Professor  string `csv:"professor"`
	Type       string `csv:"type"`
}

// Rows flattens the assignment into exporter rows, one per session-period per
// batch, in a deterministic order.
func (s *Solution) Rows() []*ScheduleRow {
	var rows []*ScheduleRow
	appendRows := func(sess *Session, p Placement) {
		for _, batch := range sess.Batches {
			for period := p.Period; period < p.Period+p.Periods; period++ {
				room := ""
				if p.Room != nil {
					room = p.Room.Code
				}
				rows = append(rows, &ScheduleRow{
					Day:        p.Day,
					Period:     period,
					CourseCode: sess.Course.Code,
					CourseName: sess.Course.Name,
					Batch:      batch,
					Room:       room,
					Professor:  p.Professor,
					Type:       sess.Type.String(),
				})
			}
		}
	}
	for _, sess := range s.Sessions {
		if p, ok := s.Assignment.Get(sess.ID); ok {
			appendRows(sess, p)
		}
	}
	for _, r := range s.Relaxed {
		appendRows(r.Session, r.Placement)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Batch != b.Batch {
			return a.Batch < b.Batch
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.CourseCode < b.CourseCode
	})
	return rows
}

// PlacedCount is the number of cleanly placed sessions.
func (s *Solution) PlacedCount() int { return s.Assignment.Len() }
