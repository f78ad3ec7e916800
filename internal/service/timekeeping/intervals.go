package timekeeping

import "sort"

// span is a half-open minute interval [start, end) measured from the origin
// date's local midnight. Values may exceed 1440 for minutes spilling past
// midnight into the next calendar day.
type span struct {
	start int
	end   int
}

func (s span) minutes() int {
	if s.end <= s.start {
		return 0
	}
	return s.end - s.start
}

// mergeSpans sorts and coalesces overlapping or touching spans.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.minutes() > 0 {
			sorted = append(sorted, s)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	merged := []span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// intersectSpans returns the overlap of two merged span sets.
func intersectSpans(a, b []span) []span {
	var out []span
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := max(a[i].start, b[j].start)
		end := min(a[i].end, b[j].end)
		if start < end {
			out = append(out, span{start, end})
		}
		if a[i].end < b[j].end {
			i++
		} else {
			j++
		}
	}
	return out
}

// subtractSpans removes b from a. Both inputs must be merged.
func subtractSpans(a, b []span) []span {
	var out []span
	for _, s := range a {
		cur := s
		for _, cut := range b {
			if cut.end <= cur.start || cut.start >= cur.end {
				continue
			}
			if cut.start > cur.start {
				out = append(out, span{cur.start, cut.start})
			}
			if cut.end < cur.end {
				cur = span{cut.end, cur.end}
			} else {
				cur = span{cur.end, cur.end}
				break
			}
		}
		if cur.minutes() > 0 {
			out = append(out, cur)
		}
	}
	return out
}

func totalMinutes(spans []span) int {
	total := 0
	for _, s := range spans {
		total += s.minutes()
	}
	return total
}

// splitAfter splits a merged span set at a cumulative minute count: the first
// return holds the leading n minutes, the second the remainder. Used to peel
// overtime off the tail of flexitime presence.
func splitAfter(spans []span, n int) (head, tail []span) {
	remaining := n
	for _, s := range spans {
		if remaining <= 0 {
			tail = append(tail, s)
			continue
		}
		if s.minutes() <= remaining {
			head = append(head, s)
			remaining -= s.minutes()
			continue
		}
		head = append(head, span{s.start, s.start + remaining})
		tail = append(tail, span{s.start + remaining, s.end})
		remaining = 0
	}
	return head, tail
}
