package timekeeping

import (
	"sort"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

// Segment is one normalized presence interval attributed to an origin
// calendar date. Times are in the company's local timezone. A segment whose
// minutes fall after the origin date's midnight carries IsNextDayOverlap so
// daily totals stay with the shift's origin date.
type Segment struct {
	DateString       string
	TimeIn           time.Time
	TimeOut          time.Time
	IsNextDayOverlap bool
}

func (s Segment) Minutes() int {
	return int(s.TimeOut.Sub(s.TimeIn) / time.Minute)
}

// GroupPunches normalizes raw punches into ordered, non-overlapping segments
// keyed by origin date. Intersecting or touching punch intervals are
// coalesced into a single covering interval before any classification, so a
// minute can never be counted twice. Intervals crossing local midnight are
// split, the tail staying attributed to the origin date.
func GroupPunches(punches []timekeeping.RawPunch, loc *time.Location) (map[string][]Segment, error) {
	type interval struct {
		in  time.Time
		out time.Time
	}

	intervals := make([]interval, 0, len(punches))
	for _, p := range punches {
		if !p.TimeIn.Before(p.TimeOut) {
			return nil, timekeeping.ErrInvalidPunchRange
		}
		if p.TimeOut.Sub(p.TimeIn) > 24*time.Hour {
			return nil, timekeeping.ErrPunchTooLong
		}
		intervals = append(intervals, interval{p.TimeIn.In(loc), p.TimeOut.In(loc)})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].in.Before(intervals[j].in)
	})

	// Coalesce overlapping or touching intervals.
	var merged []interval
	for _, iv := range intervals {
		if len(merged) == 0 {
			merged = append(merged, iv)
			continue
		}
		last := &merged[len(merged)-1]
		if !iv.in.After(last.out) {
			if iv.out.After(last.out) {
				last.out = iv.out
			}
			continue
		}
		merged = append(merged, iv)
	}

	out := make(map[string][]Segment)
	for _, iv := range merged {
		origin := iv.in.Format(timekeeping.DateLayout)
		cursor := iv.in
		overlap := false
		for cursor.Before(iv.out) {
			midnight := nextMidnight(cursor, loc)
			end := iv.out
			if midnight.Before(end) {
				end = midnight
			}
			out[origin] = append(out[origin], Segment{
				DateString:       origin,
				TimeIn:           cursor,
				TimeOut:          end,
				IsNextDayOverlap: overlap,
			})
			cursor = end
			overlap = true
		}
	}
	return out, nil
}

func nextMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// RawLogs converts segments into persisted raw log rows.
func RawLogs(accountID, companyID string, segments []Segment) []timekeeping.Log {
	logs := make([]timekeeping.Log, 0, len(segments))
	for _, seg := range segments {
		logs = append(logs, timekeeping.Log{
			AccountID:        accountID,
			CompanyID:        companyID,
			DateString:       seg.DateString,
			TimeIn:           seg.TimeIn,
			TimeOut:          seg.TimeOut,
			IsRaw:            true,
			IsNextDayOverlap: seg.IsNextDayOverlap,
		})
	}
	return logs
}
