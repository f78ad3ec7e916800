package timekeeping

import (
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/payrollgroup"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

// ClassifyInput carries everything the classifier needs for one
// employee-day. Date is the origin date at local midnight.
type ClassifyInput struct {
	Date             time.Time
	Shift            shift.Snapshot
	Segments         []Segment
	Group            payrollgroup.PayrollGroup
	HasApprovedLeave bool
}

// Classification is the bucketed output for one employee-day. Raw values are
// pre-grace; the plain fields carry the post-grace adjusted values.
type Classification struct {
	WorkMinutes  int
	BreakMinutes int

	RawLateMinutes      int
	RawUndertimeMinutes int
	RawOvertimeMinutes  int

	LateMinutes      int
	UndertimeMinutes int
	OvertimeMinutes  int

	NightDiffMinutes         int
	NightDiffOvertimeMinutes int

	IsAbsent   bool
	IsRestDay  bool
	IsExtraDay bool

	workSpans  []span
	breakSpans []span
	otSpans    []span
	nightSpans []span
	lateSpan   *span
	underSpan  *span
}

// applyGrace implements threshold zeroing: a value at or below the grace
// threshold is forgiven entirely, one above it is kept unchanged. There is
// no proportional reduction.
func applyGrace(raw, grace int) int {
	if raw <= grace {
		return 0
	}
	return raw
}

// Classify buckets an employee-day's presence against the resolved shift.
// It is a pure function: same input, same output.
func Classify(in ClassifyInput) Classification {
	var c Classification

	presence := mergeSpans(presenceSpans(in.Date, in.Segments))

	if in.Shift.Source == shift.ActiveNone {
		// No shift resolved: every bucket stays zero.
		return c
	}

	switch in.Shift.Type {
	case shift.ShiftTimeBound:
		classifyTimeBound(&c, presence, in.Shift.Windows)
		c.IsAbsent = c.WorkMinutes == 0 && !in.HasApprovedLeave
	case shift.ShiftFlexitime:
		classifyByTarget(&c, presence, in.Shift.TargetHours)
		c.IsAbsent = c.WorkMinutes == 0 && !in.HasApprovedLeave
	case shift.ShiftExtraDay:
		classifyByTarget(&c, presence, in.Shift.TargetHours)
		c.IsExtraDay = true
	case shift.ShiftRestDay:
		classifyByTarget(&c, presence, in.Shift.TargetHours)
		c.IsRestDay = true
	}

	// Night differential is an overlay on work and overtime minutes within
	// the night window, never a separate time range.
	night := nightSpans(in.Group.NightDiffStartMinute, in.Group.NightDiffEndMinute)
	ndWork := intersectSpans(c.workSpans, night)
	ndOT := intersectSpans(c.otSpans, night)
	c.NightDiffMinutes = totalMinutes(ndWork)
	c.NightDiffOvertimeMinutes = totalMinutes(ndOT)
	c.nightSpans = mergeSpans(append(ndWork, ndOT...))

	c.LateMinutes = applyGrace(c.RawLateMinutes, in.Group.LateGraceMinutes)
	c.UndertimeMinutes = applyGrace(c.RawUndertimeMinutes, in.Group.UndertimeGraceMinutes)
	c.OvertimeMinutes = applyGrace(c.RawOvertimeMinutes, in.Group.OvertimeGraceMinutes)
	if c.OvertimeMinutes == 0 {
		// Forgiven overtime earns no night premium either.
		c.NightDiffOvertimeMinutes = 0
	}

	return c
}

func classifyTimeBound(c *Classification, presence []span, windows []shift.Window) {
	var workWindows, breakWindows []span
	for _, w := range windows {
		s := windowSpan(w)
		if w.IsBreakTime {
			breakWindows = append(breakWindows, s)
		} else {
			workWindows = append(workWindows, s)
		}
	}
	workWindows = mergeSpans(workWindows)
	breakWindows = mergeSpans(breakWindows)
	if len(workWindows) == 0 {
		return
	}

	expected := span{workWindows[0].start, workWindows[len(workWindows)-1].end}

	c.workSpans = intersectSpans(presence, workWindows)
	c.breakSpans = intersectSpans(presence, breakWindows)
	c.WorkMinutes = totalMinutes(c.workSpans)
	c.BreakMinutes = totalMinutes(c.breakSpans)

	if len(presence) > 0 {
		firstIn := presence[0].start
		lastOut := presence[len(presence)-1].end
		if firstIn > expected.start {
			late := span{expected.start, min(firstIn, expected.end)}
			c.RawLateMinutes = late.minutes()
			c.lateSpan = &late
		}
		if lastOut < expected.end {
			under := span{max(lastOut, expected.start), expected.end}
			c.RawUndertimeMinutes = under.minutes()
			c.underSpan = &under
		}
	}

	c.otSpans = subtractSpans(presence, []span{expected})
	c.RawOvertimeMinutes = totalMinutes(c.otSpans)
}

// classifyByTarget covers the shift types whose expected hours are a fixed
// configured value rather than window-derived. All presence up to the target
// is work; the tail beyond it is overtime. Lateness and undertime do not
// apply.
func classifyByTarget(c *Classification, presence []span, targetHours float64) {
	target := int(targetHours * 60)
	if target <= 0 {
		target = totalMinutes(presence)
	}
	work, overtime := splitAfter(presence, target)
	c.workSpans = work
	c.otSpans = overtime
	c.WorkMinutes = totalMinutes(work)
	c.RawOvertimeMinutes = totalMinutes(overtime)
}

func presenceSpans(date time.Time, segments []Segment) []span {
	spans := make([]span, 0, len(segments))
	for _, seg := range segments {
		start := int(seg.TimeIn.Sub(date) / time.Minute)
		end := int(seg.TimeOut.Sub(date) / time.Minute)
		spans = append(spans, span{start, end})
	}
	return spans
}

func windowSpan(w shift.Window) span {
	start, end := w.Start, w.End
	if w.IsNextDay {
		start += 1440
		end += 1440
	}
	if end <= start {
		end += 1440
	}
	return span{start, end}
}

// nightSpans expands the configured night window over the two calendar days
// a shift can touch (minute domain 0..2880).
func nightSpans(startMin, endMin int) []span {
	var spans []span
	for day := 0; day < 2; day++ {
		offset := day * 1440
		if startMin < endMin {
			spans = append(spans, span{offset + startMin, offset + endMin})
			continue
		}
		// Window wraps midnight, e.g. 22:00-06:00.
		spans = append(spans, span{offset, offset + endMin})
		spans = append(spans, span{offset + startMin, offset + 1440})
	}
	return mergeSpans(spans)
}

// ProcessedLogs renders a classification into typed log segments for the
// origin date.
func ProcessedLogs(accountID, companyID, dateString string, date time.Time, c Classification) []timekeeping.Log {
	var logs []timekeeping.Log
	add := func(spans []span, kind timekeeping.BreakdownType) {
		for _, s := range spans {
			// Keep the midnight boundary visible in the log table.
			parts := []span{s}
			if s.start < 1440 && s.end > 1440 {
				parts = []span{{s.start, 1440}, {1440, s.end}}
			}
			for _, p := range parts {
				logs = append(logs, timekeeping.Log{
					AccountID:        accountID,
					CompanyID:        companyID,
					DateString:       dateString,
					TimeIn:           date.Add(time.Duration(p.start) * time.Minute),
					TimeOut:          date.Add(time.Duration(p.end) * time.Minute),
					Type:             kind,
					IsNextDayOverlap: p.start >= 1440,
				})
			}
		}
	}

	add(c.workSpans, timekeeping.BreakdownWork)
	add(c.breakSpans, timekeeping.BreakdownBreak)
	add(c.otSpans, timekeeping.BreakdownOvertime)
	add(c.nightSpans, timekeeping.BreakdownNightDiff)
	if c.lateSpan != nil && c.LateMinutes > 0 {
		add([]span{*c.lateSpan}, timekeeping.BreakdownLate)
	}
	if c.underSpan != nil && c.UndertimeMinutes > 0 {
		add([]span{*c.underSpan}, timekeeping.BreakdownUndertime)
	}
	return logs
}
