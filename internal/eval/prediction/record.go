package prediction

import (
	"fmt"
	"strconv"
)

// Rank is the 1-based position of the true entity in a candidate list.
// The zero value is NotFound.
type Rank int

const NotFound Rank = 0

func (r Rank) Found() bool {
	return r > 0
}

// Reciprocal returns 1/r, or 0 when the entity was not found.
func (r Rank) Reciprocal() float64 {
	if !r.Found() {
		return 0
	}
	return 1.0 / float64(r)
}

func (r Rank) String() string {
	if !r.Found() {
		return "inf"
	}
	return strconv.Itoa(int(r))
}

type Triple struct {
	Head     string
	Relation string
	Tail     string
}

// Side holds the ranked candidates for one corruption side of a triple.
// Candidates, Confidences and Labels are index-aligned.
type Side struct {
	Candidates  []string
	Confidences []float64
	Rank        Rank
	Labels      []int
}

// Record is one evaluated triple with its head-side and tail-side predictions.
type Record struct {
	Triple
	Head Side
	Tail Side
}

// NewRecord builds a record and precomputes ranks and labels for both sides.
// Candidates and confidences of a side must have the same length.
func NewRecord(t Triple, headCandidates []string, headConfidences []float64, tailCandidates []string, tailConfidences []float64) (Record, error) {
	if len(headCandidates) != len(headConfidences) {
		return Record{}, fmt.Errorf("head side: %d candidates but %d confidences", len(headCandidates), len(headConfidences))
	}
	if len(tailCandidates) != len(tailConfidences) {
		return Record{}, fmt.Errorf("tail side: %d candidates but %d confidences", len(tailCandidates), len(tailConfidences))
	}
	return Record{
		Triple: t,
		Head:   newSide(t.Head, headCandidates, headConfidences),
		Tail:   newSide(t.Tail, tailCandidates, tailConfidences),
	}, nil
}

func newSide(truth string, candidates []string, confidences []float64) Side {
	rank, labels := CalcRankAndLabels(truth, candidates)
	return Side{
		Candidates:  candidates,
		Confidences: confidences,
		Rank:        rank,
		Labels:      labels,
	}
}

// CalcRankAndLabels scans candidates in order and returns the 1-based position
// of the first match of truth together with a label vector holding a single 1
// at that position. If truth is absent the rank is NotFound and all labels are 0.
func CalcRankAndLabels(truth string, candidates []string) (Rank, []int) {
	labels := make([]int, len(candidates))
	for i, c := range candidates {
		if c == truth {
			labels[i] = 1
			return Rank(i + 1), labels
		}
	}
	return NotFound, labels
}
