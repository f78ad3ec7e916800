package holiday

import "time"

// Type classifies a holiday calendar entry.
type Type string

const (
	TypeRegular Type = "REGULAR"
	TypeSpecial Type = "SPECIAL"
	// TypeDouble marks a date carrying two overlapping regular holidays.
	TypeDouble Type = "DOUBLE"
)

// Holiday is one national or local holiday calendar entry.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Type      Type
	Name      string
}

// Counts summarizes the holiday records found for one date.
type Counts struct {
	Regular int
	Special int
}

// CountOf tallies holiday records into regular/special counts.
// A DOUBLE entry counts as two regular holidays.
func CountOf(holidays []Holiday) Counts {
	var c Counts
	for _, h := range holidays {
		switch h.Type {
		case TypeRegular:
			c.Regular++
		case TypeSpecial:
			c.Special++
		case TypeDouble:
			c.Regular += 2
		}
	}
	return c
}
