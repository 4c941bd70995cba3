package scheduling

// Slot is a fixed bookable time of day within a single business day.
type Slot struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MaxPerSlot is the maximum number of quotes allowed for one
// (date, slot, branch) combination.
const MaxPerSlot = 5

// catalog is immutable business configuration, not derived data.
var catalog = []Slot{
	{Label: "08:00 AM", Value: "08:00"},
	{Label: "09:00 AM", Value: "09:00"},
	{Label: "10:00 AM", Value: "10:00"},
	{Label: "11:00 AM", Value: "11:00"},
	{Label: "12:00 PM", Value: "12:00"},
	{Label: "01:00 PM", Value: "13:00"},
	{Label: "02:00 PM", Value: "14:00"},
	{Label: "03:00 PM", Value: "15:00"},
	{Label: "04:00 PM", Value: "16:00"},
}

// Catalog returns the ordered slot list for a business day.
func Catalog() []Slot {
	out := make([]Slot, len(catalog))
	copy(out, catalog)
	return out
}

// IsValidSlot reports whether value is one of the catalog slot values.
func IsValidSlot(value string) bool {
	for _, s := range catalog {
		if s.Value == value {
			return true
		}
	}
	return false
}
