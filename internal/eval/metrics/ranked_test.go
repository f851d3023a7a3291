package metrics

import (
	"testing"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/prediction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(head, rel, tail string, heads, tails []string) prediction.Record {
	return mustRecord(
		prediction.Triple{Head: head, Relation: rel, Tail: tail},
		heads, make([]float64, len(heads)),
		tails, make([]float64, len(tails)),
	)
}

func mustRecord(t prediction.Triple, heads []string, headConfs []float64, tails []string, tailConfs []float64) prediction.Record {
	rec, err := prediction.NewRecord(t, heads, headConfs, tails, tailConfs)
	if err != nil {
		panic(err)
	}
	return rec
}

func TestCalcHitsAtK(t *testing.T) {
	tests := []struct {
		name        string
		head        []prediction.Rank
		tail        []prediction.Rank
		numExamples int
		want        map[int]float64
	}{
		{
			name:        "no examples",
			numExamples: 0,
			want:        map[int]float64{1: 0, 3: 0},
		},
		{
			name:        "all first",
			head:        []prediction.Rank{1, 1},
			tail:        []prediction.Rank{1, 1},
			numExamples: 2,
			want:        map[int]float64{1: 1, 3: 1},
		},
		{
			name:        "mixed ranks",
			head:        []prediction.Rank{1, 4},
			tail:        []prediction.Rank{2, 3},
			numExamples: 2,
			want:        map[int]float64{1: 0.25, 3: 0.75},
		},
		{
			name:        "missing ranks lower the score",
			head:        []prediction.Rank{1},
			tail:        []prediction.Rank{1},
			numExamples: 2,
			want:        map[int]float64{1: 0.5, 3: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcHitsAtK([]int{1, 3}, tt.head, tt.tail, tt.numExamples)
			require.Len(t, got, len(tt.want))
			for k, v := range tt.want {
				assert.InDelta(t, v, got[k], 1e-9, "k=%d", k)
			}
		})
	}
}

func TestCalcHitsAtK_NonDecreasingInK(t *testing.T) {
	head := []prediction.Rank{5, 1, 12, 3, 3}
	tail := []prediction.Rank{2, 8, 1, 30}
	ks := []int{1, 2, 3, 5, 10, 20, 50}

	got := CalcHitsAtK(ks, head, tail, 6)
	for i := 1; i < len(ks); i++ {
		assert.GreaterOrEqual(t, got[ks[i]], got[ks[i-1]], "k=%d", ks[i])
	}
}

func TestCalcMRR(t *testing.T) {
	tests := []struct {
		name        string
		head        []prediction.Rank
		tail        []prediction.Rank
		numExamples int
		want        float64
	}{
		{name: "no finite ranks", numExamples: 3, want: 0},
		{name: "no examples", numExamples: 0, want: 0},
		{
			name:        "all first",
			head:        []prediction.Rank{1, 1, 1},
			tail:        []prediction.Rank{1, 1, 1},
			numExamples: 3,
			want:        1,
		},
		{
			name:        "mixed",
			head:        []prediction.Rank{1, 2},
			tail:        []prediction.Rank{4},
			numExamples: 2,
			// (1 + 1/2 + 1/4) / 4
			want: 1.75 / 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcMRR(tt.head, tt.tail, tt.numExamples)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestEvaluateRanked_UnfilteredDenominator(t *testing.T) {
	records := []prediction.Record{
		record("h1", "r", "t1", []string{"h1", "x"}, nil),
		record("h2", "r", "t2", []string{"x", "y"}, nil),
	}

	head, tail := FoundRanks(records)
	assert.Equal(t, []prediction.Rank{1}, head)
	assert.Empty(t, tail)

	res := EvaluateRanked(NewSet(HitsAtK, MeanReciprocalRank), []int{1}, records)
	// one head hit out of 2 records * 2 sides
	assert.InDelta(t, 0.25, res[HitsAtK].AtK[1], 1e-9)

	mrr, ok := res.Scalar(MeanReciprocalRank)
	require.True(t, ok)
	assert.InDelta(t, 0.25, mrr, 1e-9)
}

func TestEvaluateRanked_OnlyRequested(t *testing.T) {
	records := []prediction.Record{
		record("h", "r", "t", []string{"h"}, []string{"t"}),
	}

	res := EvaluateRanked(NewSet(MeanReciprocalRankUnfiltered), nil, records)
	assert.Len(t, res, 1)
	v, ok := res.Scalar(MeanReciprocalRankUnfiltered)
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestEvaluateRanked_FilteredEqualsUnfiltered(t *testing.T) {
	records := []prediction.Record{
		record("h1", "r", "t1", []string{"a", "h1"}, []string{"t1"}),
		record("h2", "r", "t2", []string{"h2"}, []string{"b", "c", "t2"}),
	}

	res := EvaluateRanked(NewSet(HitsAtK, HitsAtKUnfiltered, MeanReciprocalRank, MeanReciprocalRankUnfiltered), []int{1, 3}, records)
	assert.Equal(t, res[HitsAtK].AtK, res[HitsAtKUnfiltered].AtK)
	assert.Equal(t, *res[MeanReciprocalRank].Scalar, *res[MeanReciprocalRankUnfiltered].Scalar)
}

func TestEvaluateRanked_DefaultKValues(t *testing.T) {
	records := []prediction.Record{
		record("h", "r", "t", []string{"h"}, []string{"t"}),
	}

	res := EvaluateRanked(NewSet(HitsAtK), nil, records)
	for _, k := range DefaultKValues {
		assert.Contains(t, res[HitsAtK].AtK, k)
	}
}

func TestEvaluateRanked_PerRelation(t *testing.T) {
	records := []prediction.Record{
		record("g1", "GENE_DIS", "d1", []string{"g1"}, []string{"d1"}),
		record("g2", "GENE_DIS", "d2", []string{"x"}, []string{"y"}),
		record("c1", "DRUG_GENE", "g3", []string{"x", "c1"}, []string{"g3"}),
	}

	res := EvaluateRanked(NewSet(HitsAtKRel, MeanReciprocalRankRel), []int{1, 2}, records)

	hits := res[HitsAtKRel].PerRelation
	require.Len(t, hits, 2)
	assert.InDelta(t, 0.5, hits["GENE_DIS"].AtK[1], 1e-9)
	assert.InDelta(t, 0.5, hits["DRUG_GENE"].AtK[1], 1e-9)
	assert.InDelta(t, 1.0, hits["DRUG_GENE"].AtK[2], 1e-9)

	mrr := res[MeanReciprocalRankRel].PerRelation
	require.Len(t, mrr, 2)
	assert.InDelta(t, 0.5, *mrr["GENE_DIS"].Scalar, 1e-9)
	assert.InDelta(t, 0.75, *mrr["DRUG_GENE"].Scalar, 1e-9)
}
