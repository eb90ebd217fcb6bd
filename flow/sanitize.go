package flow

import "math"

// Layout tolerance for floating point accumulation when testing whether
// content fits in the remaining column height or width.
const layoutEpsilon = 0.01

// sanitizeLength normalizes a spacing, width, height, or marker value.
// Authoring data and imported documents are not trusted: NaN, infinite,
// and negative values all collapse to 0.
func sanitizeLength(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// sanitizeOffset normalizes a signed offset or indent. Unlike lengths,
// negative values are meaningful (negative indents bleed into the
// margin), so only NaN and infinities collapse to 0.
func sanitizeOffset(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
