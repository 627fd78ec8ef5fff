package model

// Placement fixes one session in the grid.
type Placement struct {
	Day       int
	Period    int
	Periods   int
	Room      *Classroom
	Professor string
}

// Assignment maps sessions to placements. It is partial during search and
// owned by exactly one scheduler invocation.
type Assignment struct {
	placements map[SessionID]Placement
}

// NewAssignment returns an empty assignment.
func NewAssignment() *Assignment {
	return &Assignment{placements: make(map[SessionID]Placement)}
}

// Place records a placement for the session.
func (a *Assignment) Place(id SessionID, p Placement) {
	a.placements[id] = p
}

// Remove deletes the session's placement, if any.
func (a *Assignment) Remove(id SessionID) {
	delete(a.placements, id)
}

// Get returns the placement for the session.
func (a *Assignment) Get(id SessionID) (Placement, bool) {
	p, ok := a.placements[id]
	return p, ok
}

// Len is the number of placed sessions.
func (a *Assignment) Len() int { return len(a.placements) }

// Clone returns an independent copy, used to snapshot solutions.
func (a *Assignment) Clone() *Assignment {
	out := NewAssignment()
	for id, p := range a.placements {
		out.placements[id] = p
	}
	return out
}
