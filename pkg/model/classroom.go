package model

import "slices"

// Classroom is one bookable room. An empty AllowedBatches set means any batch
// may be scheduled in it.
type Classroom struct {
	Code           string
	Type           RoomType
	Capacity       int
	AllowedBatches []string
}

// Allows reports whether the room is open to the given batch.
func (c *Classroom) Allows(batch string) bool {
	return len(c.AllowedBatches) == 0 || slices.Contains(c.AllowedBatches, batch)
}

// ValidateCapacity reports whether the room can seat the whole batch.
func ValidateCapacity(room *Classroom, batch *Batch) bool {
	return room != nil && batch != nil && room.Capacity >= batch.Students
}
