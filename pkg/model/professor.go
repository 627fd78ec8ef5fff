package model

import "slices"

// Professor holds teaching constraints for one lecturer. A nil Availability
// calendar means all slots are free; the original data files carry no
// calendars at all, so that is the common case.
type Professor struct {
	Name           string
	Courses        []string
	MaxHoursPerDay int
	// Availability[day][period] marks declared-free slots when present.
	Availability   [][]bool
	BusyDays       []int
	PreferredSlots []int
}

// FreeAt reports whether the professor's declared calendar permits the slot.
func (p *Professor) FreeAt(day, period int) bool {
	if slices.Contains(p.BusyDays, day) {
		return false
	}
	if p.Availability == nil {
		return true
	}
	if day < 0 || day >= len(p.Availability) {
		return false
	}
	if period < 0 || period >= len(p.Availability[day]) {
		return false
	}
	return p.Availability[day][period]
}

// Prefers reports whether the period is one of the professor's preferred
// slots. With no stated preference every slot counts as preferred.
func (p *Professor) Prefers(period int) bool {
	return len(p.PreferredSlots) == 0 || slices.Contains(p.PreferredSlots, period)
}
