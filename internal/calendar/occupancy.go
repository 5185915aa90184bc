package calendar

import (
	"maps"
	"slices"
)

// SlotSet is a set of lane indexes.
type SlotSet map[int]struct{}

// Has reports whether slot is in the set.
func (s SlotSet) Has(slot int) bool {
	_, ok := s[slot]
	return ok
}

// Sorted returns the lanes in ascending order.
func (s SlotSet) Sorted() []int {
	return slices.Sorted(maps.Keys(s))
}

// Max returns the highest lane, or -1 for an empty set.
func (s SlotSet) Max() int {
	highest := -1
	for slot := range s {
		highest = max(highest, slot)
	}
	return highest
}

// Occupancy maps a day of the month (1-based) to its occupied lanes.
type Occupancy map[int]SlotSet

// Occupied reports whether slot is taken on day.
func (o Occupancy) Occupied(day, slot int) bool {
	return o[day].Has(slot)
}

// Slots returns the lanes taken on day in ascending order.
func (o Occupancy) Slots(day int) []int {
	return o[day].Sorted()
}

// Count returns how many lanes are taken on day.
func (o Occupancy) Count(day int) int {
	return len(o[day])
}

// MaxSlot returns the highest lane taken on day, or -1.
func (o Occupancy) MaxSlot(day int) int {
	return o[day].Max()
}

// firstFree returns the lowest lane free on every day in [from, to].
func (o Occupancy) firstFree(from, to int) int {
	for slot := 0; ; slot++ {
		free := true
		for day := from; day <= to; day++ {
			if o.Occupied(day, slot) {
				free = false
				break
			}
		}
		if free {
			return slot
		}
	}
}

func (o Occupancy) mark(from, to, slot int) {
	for day := from; day <= to; day++ {
		set, ok := o[day]
		if !ok {
			set = make(SlotSet)
			o[day] = set
		}
		set[slot] = struct{}{}
	}
}
