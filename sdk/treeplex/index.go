package treeplex

import "github.com/opencoff/go-chd"

// SequenceIndex assigns every sequence in Σ (plus ∅) a contiguous integer so
// that RSigmaVectors and sequence-form strategies can be represented as
// []float64 instead of map[Sequence]float64 in the CFR inner loop. The
// mapping is built once at load time via a minimal perfect hash (go-chd)
// over the sequence keys; degenerate sets (0 or 1 sequence, where CHD
// construction is not meaningful) fall back to a plain map lookup.
type SequenceIndex struct {
	sequences []Sequence
	h         *chd.CHD
	fallback  map[Sequence]int
}

// NewSequenceIndex builds an index over ss. On the map fallback ∅ keeps
// index 0; on the perfect-hash path every sequence, ∅ included, sits at the
// slot the hash assigns it.
func NewSequenceIndex(ss *SequenceSet) (*SequenceIndex, error) {
	all := ss.All()
	if len(all) <= 1 {
		fb := make(map[Sequence]int, len(all))
		for i, s := range all {
			fb[s] = i
		}
		return &SequenceIndex{sequences: all, fallback: fb}, nil
	}

	keys := make([][]byte, len(all))
	for i, s := range all {
		keys[i] = []byte(s.key())
	}

	builder, err := chd.New(keys)
	if err != nil {
		// Fall back gracefully: a hash-table-free game set still works,
		// just without the perfect-hash speedup in the inner loop.
		fb := make(map[Sequence]int, len(all))
		for i, s := range all {
			fb[s] = i
		}
		return &SequenceIndex{sequences: all, fallback: fb}, nil
	}

	dense := make([]Sequence, len(all))
	for i, s := range all {
		dense[builder.Find(keys[i])] = s
	}
	return &SequenceIndex{sequences: dense, h: builder}, nil
}

// Len returns the number of indexed sequences (including ∅).
func (idx *SequenceIndex) Len() int { return len(idx.sequences) }

// Index returns the contiguous index assigned to s.
func (idx *SequenceIndex) Index(s Sequence) int {
	if idx.fallback != nil {
		return idx.fallback[s]
	}
	return int(idx.h.Find([]byte(s.key())))
}

// Sequence returns the sequence assigned to index i.
func (idx *SequenceIndex) Sequence(i int) Sequence { return idx.sequences[i] }

// Contains reports whether s was one of the sequences the index was built
// over. A minimal perfect hash returns *some* in-range index for any key,
// so membership is confirmed by checking that slot actually stores s.
func (idx *SequenceIndex) Contains(s Sequence) bool {
	if idx.fallback != nil {
		_, ok := idx.fallback[s]
		return ok
	}
	i := idx.h.Find([]byte(s.key()))
	return int(i) < len(idx.sequences) && idx.sequences[i] == s
}
