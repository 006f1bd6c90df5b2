package openinghours

// MergeOverlappingRanges coalesces overlapping and duplicate ranges.
//
// Ranges are taken in input order and folded into a set of disjoint ranges: a
// duplicate of a kept range is dropped, and a range overlapping kept ranges
// absorbs them, possibly several in a row. Ranges that only touch stay
// separate, so "09:00-12:00" and "12:00-17:00" are both kept. The order of the
// result is not guaranteed to follow the input.
func MergeOverlappingRanges(ranges []TimeRange) []TimeRange {
	var merged []TimeRange

next:
	for _, value := range ranges {
		kept := make([]TimeRange, 0, len(merged)+1)
		for _, r := range merged {
			if value.Equal(r) {
				continue next
			}

			if value.Overlaps(r) {
				value = TimeRangeFromList(value, r)
				continue
			}

			kept = append(kept, r)
		}

		merged = append(kept, value)
	}

	return merged
}

// MergeOverlappingRangeStrings is MergeOverlappingRanges for "HH:MM-HH:MM"
// definitions.
func MergeOverlappingRangeStrings(definitions []string) ([]string, error) {
	ranges := make([]TimeRange, 0, len(definitions))
	for _, def := range definitions {
		r, err := ParseTimeRange(def)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}

	merged := MergeOverlappingRanges(ranges)
	result := make([]string, len(merged))
	for i, r := range merged {
		result[i] = r.String()
	}
	return result, nil
}
