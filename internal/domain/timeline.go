package domain

import "slices"

// ActiveSegmentAt returns the index of the segment whose
// [StartTime, EndTime) window contains t. Segments are scanned in
// start-time order and the first match wins. When no window matches
// (gaps between segments, or t past the last window) the first segment
// is selected; this covers the between-segments case deliberately.
// With no segments at all it returns -1.
func ActiveSegmentAt(segments []Segment, t float64) int {
	if len(segments) == 0 {
		return -1
	}

	order := make([]int, len(segments))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case segments[a].StartTime < segments[b].StartTime:
			return -1
		case segments[a].StartTime > segments[b].StartTime:
			return 1
		default:
			return 0
		}
	})

	for _, i := range order {
		if t >= segments[i].StartTime && t < segments[i].EndTime {
			return i
		}
	}
	return 0
}
