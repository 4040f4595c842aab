package readmodel

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func floorQuality(q []byte, n int64, fromFront bool) {
	length := int64(len(q))
	if n > length {
		n = length
	}
	if fromFront {
		for i := int64(0); i < n; i++ {
			q[i] = MinAllowedQualityScore
		}
		return
	}
	for i := length - n; i < length; i++ {
		q[i] = MinAllowedQualityScore
	}
}

// TrimOverlap floors qualities over the portion of a proper-pair mate's
// read-past-its-partner overlap: a no-op for read1, non-proper-pairs, and
// a zero insert size. Orientation picks which end is floored, since the
// overlap always sits on the 3' side of whichever mate sequenced over it.
func (r *Read) TrimOverlap() {
	if r.Flags.Read1 || !r.Flags.ProperPair || r.InsertSize == 0 {
		return
	}
	overlap := 2*r.GetLength() - abs64(r.InsertSize)
	if overlap <= 0 {
		return
	}
	floorQuality(r.Qualities, overlap, r.Flags.Reverse)
}

// TrimReadOfShortFragment zeroes qualities over the portion of the read
// that extends past a fragment shorter than the read itself — a no-op for
// non-proper-pairs, a zero insert size, or a fragment at least as long as
// the read. Orientation is the same as TrimOverlap's.
func (r *Read) TrimReadOfShortFragment() {
	if !r.Flags.ProperPair || r.InsertSize == 0 {
		return
	}
	absIns := abs64(r.InsertSize)
	if absIns > r.GetLength() {
		return
	}
	beyond := r.GetLength() - absIns
	if beyond <= 0 {
		return
	}
	length := int64(len(r.Qualities))
	if beyond > length {
		beyond = length
	}
	start, end := length-beyond, length
	if r.Flags.Reverse {
		start, end = 0, beyond
	}
	for i := start; i < end; i++ {
		r.Qualities[i] = 0
	}
}
