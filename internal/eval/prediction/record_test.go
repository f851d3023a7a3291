package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcRankAndLabels(t *testing.T) {
	tests := []struct {
		name       string
		truth      string
		candidates []string
		wantRank   Rank
		wantLabels []int
	}{
		{
			name:       "first position",
			truth:      "a",
			candidates: []string{"a", "b", "c"},
			wantRank:   1,
			wantLabels: []int{1, 0, 0},
		},
		{
			name:       "middle position",
			truth:      "b",
			candidates: []string{"a", "b", "c"},
			wantRank:   2,
			wantLabels: []int{0, 1, 0},
		},
		{
			name:       "only first occurrence labelled",
			truth:      "b",
			candidates: []string{"a", "b", "b"},
			wantRank:   2,
			wantLabels: []int{0, 1, 0},
		},
		{
			name:       "absent",
			truth:      "z",
			candidates: []string{"a", "b"},
			wantRank:   NotFound,
			wantLabels: []int{0, 0},
		},
		{
			name:       "empty candidates",
			truth:      "a",
			candidates: []string{},
			wantRank:   NotFound,
			wantLabels: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, labels := CalcRankAndLabels(tt.truth, tt.candidates)
			assert.Equal(t, tt.wantRank, rank)
			assert.Equal(t, tt.wantLabels, labels)
			assert.Len(t, labels, len(tt.candidates))
		})
	}
}

func TestRank(t *testing.T) {
	assert.False(t, NotFound.Found())
	assert.Equal(t, 0.0, NotFound.Reciprocal())
	assert.Equal(t, "inf", NotFound.String())

	r := Rank(4)
	assert.True(t, r.Found())
	assert.InDelta(t, 0.25, r.Reciprocal(), 1e-12)
	assert.Equal(t, "4", r.String())
}

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord(
		Triple{Head: "h", Relation: "r", Tail: "t"},
		[]string{"x", "h"}, []float64{0.9, 0.1},
		[]string{"y"}, []float64{0.3},
	)
	require.NoError(t, err)

	assert.Equal(t, Rank(2), rec.Head.Rank)
	assert.Equal(t, []int{0, 1}, rec.Head.Labels)
	assert.Equal(t, NotFound, rec.Tail.Rank)
	assert.Equal(t, []int{0}, rec.Tail.Labels)
	assert.Equal(t, "r", rec.Relation)
}

func TestNewRecord_MisalignedSides(t *testing.T) {
	triple := Triple{Head: "h", Relation: "r", Tail: "t"}

	_, err := NewRecord(triple, []string{"h", "x"}, []float64{0.9}, nil, nil)
	assert.ErrorContains(t, err, "head side: 2 candidates but 1 confidences")

	_, err = NewRecord(triple, nil, nil, []string{"t"}, []float64{0.4, 0.1})
	assert.ErrorContains(t, err, "tail side: 1 candidates but 2 confidences")
}
