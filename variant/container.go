package variant

import (
	"fmt"
	"sort"

	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/region"
)

// sampleCounts is a variant's per-sample read tally (§4.H).
type sampleCounts struct {
	totalReads           int
	totalSupportingReads int
}

type containerEntry struct {
	variant *Variant
	samples map[string]*sampleCounts
}

// BreakpointLocus groups breakpoints observed at the same (contig,
// position, isStart), accumulating clip sequences, mate regions and a
// support count.
type BreakpointLocus struct {
	Contig        string
	Position      int64
	IsStart       bool
	ClipSequences []string
	MateRegions   *region.SetRegions
	Support       int
}

// Container is the keyed ordered map from variant to per-sample counts
// described in §3/§4.H, plus the start/end breakpoint-locus maps.
type Container struct {
	entries map[string]*containerEntry

	startLoci map[string]*BreakpointLocus
	endLoci   map[string]*BreakpointLocus

	minBaseQual    int
	minMappingQual byte
}

// NewContainer builds an empty Container gated by the given minimum
// representative base quality and minimum read mapping quality.
func NewContainer(minBaseQual int, minMappingQual byte) *Container {
	return &Container{
		entries:        make(map[string]*containerEntry),
		startLoci:      make(map[string]*BreakpointLocus),
		endLoci:        make(map[string]*BreakpointLocus),
		minBaseQual:    minBaseQual,
		minMappingQual: minMappingQual,
	}
}

func variantKey(v Variant) string {
	return fmt.Sprintf("%s:%d-%d:%s", v.Region.Contig, v.Region.Interval.Start, v.Region.Interval.End, v.Alt)
}

func (c *Container) getOrCreate(v Variant) *containerEntry {
	key := variantKey(v)
	if e, ok := c.entries[key]; ok {
		return e
	}
	e := &containerEntry{variant: &v, samples: make(map[string]*sampleCounts)}
	c.entries[key] = e
	return e
}

func (e *containerEntry) sample(name string) *sampleCounts {
	sc, ok := e.samples[name]
	if !ok {
		sc = &sampleCounts{}
		e.samples[name] = sc
	}
	return sc
}

// AddCandidateVariant records v with no supporting reads, disables its
// filtering, and sets its genotyping prior.
func (c *Container) AddCandidateVariant(v Variant, prior float64) {
	v.NeverFilter = true
	v.Prior = prior
	c.getOrCreate(v)
}

// AddVariantsFromRead records every variant read carries support for,
// gated by the variant's representative base quality and the read's
// mapping quality, and routes read's breakpoints into the locus maps.
func (c *Container) AddVariantsFromRead(read *readmodel.Read, variants []Variant, breakpoints []readmodel.Breakpoint, sample string) {
	for _, v := range variants {
		entry := c.getOrCreate(v)
		entry.variant.AddRead(read)

		if read.MappingQual >= c.minMappingQual && representativeBaseQuality(read, v) >= c.minBaseQual {
			entry.sample(sample).totalSupportingReads++
		}
	}
	for _, bp := range breakpoints {
		c.routeBreakpoint(bp)
	}
}

// representativeBaseQuality returns the max quality over the alt bases
// for SNP/MNP/insertion variants, or the sentinel 1000 for pure
// deletions (which have no alt bases to inspect).
func representativeBaseQuality(read *readmodel.Read, v Variant) int {
	if len(v.Alt) == 0 {
		return 1000
	}
	readSpan := read.GetIntervalInRead(v.Region.Interval)
	if v.Region.Interval.Start == v.Region.Interval.End {
		readSpan.End = readSpan.Start + int64(len(v.Alt))
	}
	maxQ := 0
	for i := readSpan.Start; i < readSpan.End; i++ {
		if i < 0 || i >= int64(len(read.Qualities)) {
			continue
		}
		if q := int(read.Qualities[i]); q > maxQ {
			maxQ = q
		}
	}
	return maxQ
}

func (c *Container) routeBreakpoint(bp readmodel.Breakpoint) {
	loci := c.endLoci
	if bp.IsStart {
		loci = c.startLoci
	}
	key := fmt.Sprintf("%s:%d", bp.Contig, bp.Position)
	locus, ok := loci[key]
	if !ok {
		locus = &BreakpointLocus{Contig: bp.Contig, Position: bp.Position, IsStart: bp.IsStart, MateRegions: region.NewSetRegions()}
		loci[key] = locus
	}
	locus.Support++
	if bp.ClipSequence != "" {
		locus.ClipSequences = append(locus.ClipSequences, bp.ClipSequence)
	}
	if bp.MateRegion != nil {
		locus.MateRegions.Insert(*bp.MateRegion)
	}
}

// ComputeCoverage sets each variant's per-sample total-read count to the
// number of reads whose maximal read interval overlaps its region.
func (c *Container) ComputeCoverage(reads []*readmodel.Read) {
	for _, e := range c.entries {
		for _, r := range reads {
			if !r.GetMaximalReadInterval().Overlaps(e.variant.Region) {
				continue
			}
			e.sample(r.SampleID).totalReads++
		}
	}
}

// TotalReadsSupportingVariant sums supporting-read counts across samples.
func (c *Container) TotalReadsSupportingVariant(v Variant) int {
	e, ok := c.entries[variantKey(v)]
	if !ok {
		return 0
	}
	total := 0
	for _, sc := range e.samples {
		total += sc.totalSupportingReads
	}
	return total
}

// MaxReadPercentVariantCoverage returns the max over samples of
// round(100*supporting/total).
func (c *Container) MaxReadPercentVariantCoverage(v Variant) int {
	e, ok := c.entries[variantKey(v)]
	if !ok {
		return 0
	}
	max := 0
	for _, sc := range e.samples {
		if sc.totalReads == 0 {
			continue
		}
		pct := int((100*sc.totalSupportingReads + sc.totalReads/2) / sc.totalReads)
		if pct > max {
			max = pct
		}
	}
	return max
}

// Variants returns every recorded variant in §3's total order.
func (c *Container) Variants() []Variant {
	out := make([]Variant, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e.variant)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// StartLoci returns the start-side breakpoint loci.
func (c *Container) StartLoci() []*BreakpointLocus { return locusValues(c.startLoci) }

// EndLoci returns the end-side breakpoint loci.
func (c *Container) EndLoci() []*BreakpointLocus { return locusValues(c.endLoci) }

func locusValues(m map[string]*BreakpointLocus) []*BreakpointLocus {
	out := make([]*BreakpointLocus, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
