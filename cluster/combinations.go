package cluster

import "github.com/wecall-go/variantcore/variant"

// EnumerateCombinations fills c.Combinations with the haplotype
// combinations valid under the pairwise co-occurrence states of c's
// variants, seeded with the first variant and capped at maxCombinations
// (§4.J). If the running count would reach the cap, c.Combinations is cleared and
// c.AllCombinationsComputed is set false.
func EnumerateCombinations(c *Cluster, maxClusterDistance int64, minReadsToSupportClaim, maxCombinations int) {
	if len(c.Variants) == 0 {
		c.Combinations = [][]variant.Variant{{}}
		c.AllCombinationsComputed = true
		return
	}

	combos := [][]variant.Variant{{c.Variants[0]}}

	for i := 1; i < len(c.Variants); i++ {
		if len(combos)+1 >= maxCombinations {
			c.Combinations = nil
			c.AllCombinationsComputed = false
			return
		}
		combos = stepCombination(combos, c.Variants[i], maxClusterDistance, minReadsToSupportClaim)
	}

	combos = append(combos, []variant.Variant{})
	c.Combinations = combos
	c.AllCombinationsComputed = true
}

func stepCombination(combos [][]variant.Variant, v variant.Variant, maxClusterDistance int64, minReadsToSupportClaim int) [][]variant.Variant {
	var alwaysTogether, neverTogether []variant.Variant
	anyAlways := false
	anySecondImplies := false

	var next [][]variant.Variant
	for _, combo := range combos {
		last := combo[len(combo)-1]
		switch PairwiseState(last, v, minReadsToSupportClaim, maxClusterDistance) {
		case AlwaysTogether:
			next = append(next, appendVariant(combo, v))
			alwaysTogether = append(alwaysTogether, last)
			anyAlways = true
		case NeverTogether:
			next = append(next, combo)
			neverTogether = append(neverTogether, last)
		case FirstImpliesSecond:
			next = append(next, appendVariant(combo, v))
		case SecondImpliesFirst:
			next = append(next, combo)
			next = append(next, appendVariant(combo, v))
			anySecondImplies = true
		default: // Uncertain
			next = append(next, combo)
			next = append(next, appendVariant(combo, v))
		}
	}
	if !anyAlways && !anySecondImplies {
		next = append(next, []variant.Variant{v})
	}

	return filterCombinations(next, v, alwaysTogether, neverTogether)
}

func appendVariant(combo []variant.Variant, v variant.Variant) []variant.Variant {
	out := make([]variant.Variant, len(combo), len(combo)+1)
	copy(out, combo)
	return append(out, v)
}

func containsVariant(combo []variant.Variant, v variant.Variant) bool {
	for _, c := range combo {
		if c.Compare(v) == 0 {
			return true
		}
	}
	return false
}

func filterCombinations(combos [][]variant.Variant, v variant.Variant, alwaysTogether, neverTogether []variant.Variant) [][]variant.Variant {
	var out [][]variant.Variant
	for _, combo := range combos {
		hasV := containsVariant(combo, v)
		ok := true
		for _, a := range alwaysTogether {
			if hasV != containsVariant(combo, a) {
				ok = false
				break
			}
		}
		if ok && hasV {
			for _, x := range neverTogether {
				if containsVariant(combo, x) {
					ok = false
					break
				}
			}
		}
		if ok {
			out = append(out, combo)
		}
	}
	return out
}
