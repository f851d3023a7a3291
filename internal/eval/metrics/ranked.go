package metrics

import (
	"github.com/DjordjeVuckovic/linkeval/internal/eval/prediction"
)

// CalcHitsAtK computes, for each k, the fraction of the 2*numExamples
// evaluated sides whose rank is at most k. Ranks that were not found never
// count as hits, but numExamples is the unfiltered record count so missing
// entities still lower the score.
func CalcHitsAtK(ks []int, headRanks, tailRanks []prediction.Rank, numExamples int) map[int]float64 {
	out := make(map[int]float64, len(ks))
	for _, k := range ks {
		if numExamples <= 0 {
			out[k] = 0
			continue
		}
		hits := countAtMost(headRanks, k) + countAtMost(tailRanks, k)
		out[k] = float64(hits) / float64(2*numExamples)
	}
	return out
}

// CalcMRR computes the mean reciprocal rank over both sides with the same
// 2*numExamples denominator as CalcHitsAtK.
func CalcMRR(headRanks, tailRanks []prediction.Rank, numExamples int) float64 {
	if numExamples <= 0 {
		return 0
	}
	var sum float64
	for _, r := range headRanks {
		sum += r.Reciprocal()
	}
	for _, r := range tailRanks {
		sum += r.Reciprocal()
	}
	return sum / float64(2*numExamples)
}

func countAtMost(ranks []prediction.Rank, k int) int {
	var n int
	for _, r := range ranks {
		if r.Found() && int(r) <= k {
			n++
		}
	}
	return n
}

// FoundRanks collects the head-side and tail-side ranks of records, dropping
// sides whose true entity was not among the candidates.
func FoundRanks(records []prediction.Record) (head, tail []prediction.Rank) {
	for _, rec := range records {
		if rec.Head.Rank.Found() {
			head = append(head, rec.Head.Rank)
		}
		if rec.Tail.Rank.Found() {
			tail = append(tail, rec.Tail.Rank)
		}
	}
	return head, tail
}

// EvaluateRanked computes the requested rank-based metrics.
//
// The unfiltered variants use the same formula and inputs as the filtered
// ones: filtering against other known true entities is not implemented, so
// both report identical numbers.
func EvaluateRanked(set Set, ks []int, records []prediction.Record) Results {
	if len(ks) == 0 {
		ks = DefaultKValues
	}

	headRanks, tailRanks := FoundRanks(records)
	numExamples := len(records)
	results := make(Results)

	if set.Has(HitsAtK) {
		results[HitsAtK] = AtKValue(CalcHitsAtK(ks, headRanks, tailRanks, numExamples))
	}
	if set.Has(HitsAtKUnfiltered) {
		results[HitsAtKUnfiltered] = AtKValue(CalcHitsAtK(ks, headRanks, tailRanks, numExamples))
	}
	if set.Has(MeanReciprocalRank) {
		results[MeanReciprocalRank] = ScalarValue(CalcMRR(headRanks, tailRanks, numExamples))
	}
	if set.Has(MeanReciprocalRankUnfiltered) {
		results[MeanReciprocalRankUnfiltered] = ScalarValue(CalcMRR(headRanks, tailRanks, numExamples))
	}

	if set.Has(HitsAtKRel) || set.Has(MeanReciprocalRankRel) {
		byRelation := groupByRelation(records)
		hitsRel := make(map[string]Value, len(byRelation))
		mrrRel := make(map[string]Value, len(byRelation))

		for relation, recs := range byRelation {
			h, t := FoundRanks(recs)
			hitsRel[relation] = AtKValue(CalcHitsAtK(ks, h, t, len(recs)))
			mrrRel[relation] = ScalarValue(CalcMRR(h, t, len(recs)))
		}

		if set.Has(HitsAtKRel) {
			results[HitsAtKRel] = Value{PerRelation: hitsRel}
		}
		if set.Has(MeanReciprocalRankRel) {
			results[MeanReciprocalRankRel] = Value{PerRelation: mrrRel}
		}
	}

	return results
}

func groupByRelation(records []prediction.Record) map[string][]prediction.Record {
	out := make(map[string][]prediction.Record)
	for _, rec := range records {
		out[rec.Relation] = append(out[rec.Relation], rec)
	}
	return out
}
