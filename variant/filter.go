package variant

// Filter applies the §4.K min-reads / min-per-sample-percentage gate.
type Filter struct {
	MinReads               int
	MinPerSamplePercentage int
}

// NewFilter builds a Filter with the given thresholds.
func NewFilter(minReads, minPerSamplePercentage int) Filter {
	return Filter{MinReads: minReads, MinPerSamplePercentage: minPerSamplePercentage}
}

// Passes reports whether v survives filtering: unconditionally true when
// v.NeverFilter is set, else both the total-supporting-reads and the
// best per-sample percent-coverage thresholds must be met.
func (f Filter) Passes(v Variant, c *Container) bool {
	if v.NeverFilter {
		return true
	}
	return c.TotalReadsSupportingVariant(v) >= f.MinReads &&
		c.MaxReadPercentVariantCoverage(v) >= f.MinPerSamplePercentage
}
