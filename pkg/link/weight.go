package link

import "math"

// WeightForCount maps a link's occurrence count to a stroke weight.
//
// The scale is logarithmically compressed so high-traffic links do not
// visually dominate low-traffic ones by a linear multiple:
//
//	1 + 4 * log(1+count) / log(1+maxCount)
//
// When the maximum observed count is 1 (or no aggregation happened) every
// link gets the constant weight 2. The result is monotonically
// non-decreasing in count and bounded by 5.
func WeightForCount(count, maxCount int) float64 {
	if count < 1 {
		count = 1
	}
	if maxCount <= 1 {
		return 2
	}
	return 1 + 4*math.Log(1+float64(count))/math.Log(1+float64(maxCount))
}
