package scheduling

// Booking is the slice of a stored quote that availability cares about.
type Booking struct {
	TimeSlot string
	Branch   string
}

// Availability lists the slots still bookable for a date and the slot
// values that reached capacity. Both follow catalog order.
type Availability struct {
	AvailableSlots     []Slot   `json:"availableSlots"`
	OccupiedSlotValues []string `json:"occupiedSlotValues"`
}

// Compute classifies every catalog slot for one date given the quotes
// already booked on that date. When branch is non-empty only bookings at
// that branch count toward occupancy. A slot with no bookings is always
// available; a slot is occupied once its count reaches MaxPerSlot.
func Compute(bookings []Booking, branch string) Availability {
	counts := make(map[string]int, len(catalog))
	for _, b := range bookings {
		if branch != "" && b.Branch != branch {
			continue
		}
		counts[b.TimeSlot]++
	}

	result := Availability{
		AvailableSlots:     make([]Slot, 0, len(catalog)),
		OccupiedSlotValues: []string{},
	}
	for _, slot := range catalog {
		if counts[slot.Value] < MaxPerSlot {
			result.AvailableSlots = append(result.AvailableSlots, slot)
		} else {
			result.OccupiedSlotValues = append(result.OccupiedSlotValues, slot.Value)
		}
	}
	return result
}
