package model

// RoomType partitions classrooms by what they can host.
type RoomType string

const (
	RoomLecture RoomType = "Lecture"
	RoomLab     RoomType = "Lab"
)

// SessionType is the contact-hour category of a schedulable session.
type SessionType int

const (
	Lecture SessionType = iota
	Tutorial
	Practical
)

func (s SessionType) String() string {
	switch s {
	case Tutorial:
		return "Tutorial"
	case Practical:
		return "Practical"
	default:
		return "Lecture"
	}
}

// LTPSC is the weekly hour breakdown of a course. SelfStudy hours are never
// scheduled; Credits ride along for priority ordering.
type LTPSC struct {
	Lecture   int
	Tutorial  int
	Practical int
	SelfStudy int
	Credits   int
}

// DefaultBatchSize is assumed when a course row carries no per-batch count.
const DefaultBatchSize = 60

// Course is one catalogue entry, immutable once loaded.
type Course struct {
	Code     string
	Name     string
	Hours    LTPSC
	Semester int
	// RoomType is the room requirement of the lecture/tutorial component.
	// Practical sessions always require a Lab room.
	RoomType RoomType
	// Professor teaches every batch unless ProfessorByBatch overrides it.
	Professor        string
	ProfessorByBatch map[string]string
	Batches          []string
	StudentsByBatch  map[string]int
	Term             Term
	ElectiveGroup    string
}

// ProfessorFor resolves the professor teaching this course for a batch.
func (c *Course) ProfessorFor(batch string) string {
	if p, ok := c.ProfessorByBatch[batch]; ok && p != "" {
		return p
	}
	return c.Professor
}

// Students returns the enrolled count for a batch, falling back to the
// default section size when the loader saw no per-batch count.
func (c *Course) Students(batch string) int {
	if n, ok := c.StudentsByBatch[batch]; ok && n > 0 {
		return n
	}
	return DefaultBatchSize
}
