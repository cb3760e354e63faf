package renderer

// workGroupSize derives a 2D work-group shape from the device limits
// reported at pipeline-build time. Dimensions are grown alternately in
// powers of two, smaller axis first, until another doubling would exceed
// either the per-axis maximum or the total invocation budget.
func workGroupSize(maxInvocations, maxX, maxY int) (int, int) {
	x, y := 1, 1
	for {
		if x <= y && x*2 <= maxX && x*2*y <= maxInvocations {
			x *= 2
		} else if y*2 <= maxY && x*y*2 <= maxInvocations {
			y *= 2
		} else if x*2 <= maxX && x*2*y <= maxInvocations {
			x *= 2
		} else {
			return x, y
		}
	}
}

// groupCount returns how many work groups cover dim pixels: the dispatch
// grid must cover the whole texture even when the group size does not
// divide it evenly, so the division rounds up.
func groupCount(dim, local int) int {
	return (dim + local - 1) / local
}
