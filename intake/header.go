// Package intake implements bite-sized block streaming of reads from
// backing alignment stores, read-group-to-sample mapping, per-sample
// grouping, coverage-ceiling protection, and the read filter/trimmer
// gates applied before candidate-variant generation.
package intake

import (
	"strings"

	"github.com/grailbio/hts/sam"
)

// SampleForReadGroup maps a header's @RG IDs to their SM sample names,
// the mapping component E needs to group reads by sample (§6,
// supplemented feature 1: read-group -> sample parsing from the header).
func SampleForReadGroup(header *sam.Header) map[string]string {
	out := make(map[string]string, len(header.RGs()))
	for _, rg := range header.RGs() {
		id := rg.Get(sam.Tag{'I', 'D'})
		sm := rg.Get(sam.Tag{'S', 'M'})
		if sm == "" {
			sm = id
		}
		out[id] = sm
	}
	return out
}

// SampleForRecord returns the mapped sample name for rec's read group, or
// the read group ID itself if it maps to nothing, or "" if rec carries no
// RG tag.
func SampleForRecord(rec *sam.Record, rgToSample map[string]string) string {
	aux := rec.AuxFields.Get(sam.Tag{'R', 'G'})
	if aux == nil {
		return ""
	}
	rg := strings.TrimSpace(aux.Value().(string))
	if sm, ok := rgToSample[rg]; ok {
		return sm
	}
	return rg
}
