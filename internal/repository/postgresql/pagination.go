package postgresql

import "math"

// pageOffset converts a 1-based page into a row offset, saturating at MaxInt64.
func pageOffset(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	p, l := int64(page-1), int64(limit)
	if p > math.MaxInt64/l {
		return math.MaxInt64
	}
	return p * l
}
