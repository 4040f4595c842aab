package reference

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"

	"github.com/wecall-go/variantcore/biosimd"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/werrors"
)

// ContigEntry is one row of the reference index: a contig name and the
// interval [0, seqLength) it spans. The remaining index columns (byte
// offset, line length, full line length) are consumed while parsing but
// not retained — this store materialises whole contigs in memory rather
// than seeking within the backing file.
type ContigEntry struct {
	Name   string
	Length int64
}

// Store is a cached, contig-indexed reference sequence source. It keeps at
// most one materialised window at a time; getSequence calls contained in
// the cached window are served from memory.
type Store struct {
	seqs    map[string]string
	order   []string
	lengths map[string]int64
	cache   *Window
}

// ParseIndex reads a positional reference index: whitespace-separated rows
// of (contigName, seqLength, byteStart, lineLength, fullLineLength).
// Fails with InvalidFormat on a malformed row.
func ParseIndex(r io.Reader) ([]ContigEntry, error) {
	var entries []ContigEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, werrors.Errorf(werrors.InvalidFormat, "malformed reference index line: %q", line)
		}
		length, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, werrors.Wrap(err, werrors.InvalidFormat, "malformed reference index length in: "+line)
		}
		entries = append(entries, ContigEntry{Name: fields[0], Length: length})
	}
	if err := scanner.Err(); err != nil {
		return nil, werrors.Wrap(err, werrors.IoError, "reading reference index")
	}
	return entries, nil
}

// NewStore builds a Store from a FASTA byte stream and its parsed index.
// Bases are cleaned (upper-cased, non-ACGTN mapped to N) on load via
// biosimd, matching encoding/fasta's OptClean.
func NewStore(fastaData io.Reader, index []ContigEntry) (*Store, error) {
	s := &Store{
		seqs:    make(map[string]string),
		lengths: make(map[string]int64),
	}
	for _, e := range index {
		s.lengths[e.Name] = e.Length
	}

	scanner := bufio.NewScanner(fastaData)
	scanner.Buffer(nil, 300*1024*1024)
	var curName string
	var cur strings.Builder
	flush := func() {
		if curName == "" {
			return
		}
		seq := []byte(cur.String())
		biosimd.CleanASCIISeqInplace(seq)
		s.seqs[curName] = string(seq)
		s.order = append(s.order, curName)
		cur.Reset()
	}
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			curName = strings.Split(line[1:], " ")[0]
		} else {
			cur.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, werrors.Wrap(err, werrors.IoError, "reading reference FASTA")
	}
	flush()
	if len(s.seqs) == 0 {
		return nil, werrors.New(werrors.IoError, "reference FASTA contained no sequences")
	}
	return s, nil
}

// Contigs returns the contig name to whole-contig interval map, [0, length).
func (s *Store) Contigs() map[string]region.Interval {
	out := make(map[string]region.Interval, len(s.lengths))
	for name, length := range s.lengths {
		out[name] = region.Interval{Start: 0, End: length}
	}
	return out
}

// ContigStart returns 0 for every known contig; it carries no contig
// ordering and assumes nothing about on-disk byte layout.
func (s *Store) ContigStart(name string) (int64, error) {
	if _, ok := s.lengths[name]; !ok {
		return 0, werrors.Errorf(werrors.InvalidArgument, "unknown contig %q", name)
	}
	return 0, nil
}

// CacheSequence materialises r and stores it as the single-window cache.
func (s *Store) CacheSequence(r region.Region) error {
	w, err := s.getSequenceUncached(r)
	if err != nil {
		return err
	}
	s.cache = &w
	return nil
}

// GetSequence returns the reference window for r, padding any portion
// outside the contig's bounds with N. Contained calls against a prior
// CacheSequence call are served from the cache.
func (s *Store) GetSequence(r region.Region) (Window, error) {
	if s.cache != nil && s.cache.Region.Contains(r) {
		return s.cache.Subseq(r)
	}
	return s.getSequenceUncached(r)
}

func (s *Store) getSequenceUncached(r region.Region) (Window, error) {
	full, ok := s.seqs[r.Contig]
	if !ok {
		return Window{}, werrors.Errorf(werrors.IoError, "contig not found in reference: %s", r.Contig)
	}
	start, end := r.Interval.Start, r.Interval.End
	out := make([]byte, end-start)
	for i := range out {
		out[i] = padChar
	}
	contigLen := int64(len(full))
	lo := maxInt64(start, 0)
	hi := minInt64(end, contigLen)
	if lo < hi {
		copy(out[lo-start:hi-start], full[lo:hi])
	}
	if start < 0 {
		log.Printf("reference window %s extends before contig start; padding with N", r)
	}
	if end > contigLen {
		log.Printf("reference window %s extends past contig end; padding with N", r)
	}
	return Window{Region: r, Sequence: string(out)}, nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
