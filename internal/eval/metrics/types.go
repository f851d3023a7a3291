package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies a metric in a result set.
type Type string

const (
	HitsAtK           Type = "hits@k"
	HitsAtKUnfiltered Type = "hits@k_unfiltered"
	HitsAtKRel        Type = "hits@k_rel"

	MeanReciprocalRank           Type = "mrr"
	MeanReciprocalRankUnfiltered Type = "mrr_unfiltered"
	MeanReciprocalRankRel        Type = "mrr_rel"

	ROC     Type = "roc"
	PRCurve Type = "pr_curve"
	ROCAUC  Type = "roc_auc"
	PRAUC   Type = "pr_auc"
)

type Kind int

const (
	KindRanked Kind = iota
	KindThreshold
)

var AllTypes = []Type{
	HitsAtK, HitsAtKUnfiltered, HitsAtKRel,
	MeanReciprocalRank, MeanReciprocalRankUnfiltered, MeanReciprocalRankRel,
	ROC, PRCurve, ROCAUC, PRAUC,
}

var DefaultKValues = []int{1, 3, 10}

func (t Type) Kind() Kind {
	switch t {
	case ROC, PRCurve, ROCAUC, PRAUC:
		return KindThreshold
	default:
		return KindRanked
	}
}

func ParseType(s string) (Type, error) {
	norm := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllTypes {
		if t == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Set is the collection of metrics requested by a caller.
type Set map[Type]struct{}

func NewSet(types ...Type) Set {
	s := make(Set, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// ParseSet parses metric names. An empty input selects every metric.
func ParseSet(names []string) (Set, error) {
	if len(names) == 0 {
		return NewSet(AllTypes...), nil
	}
	s := make(Set, len(names))
	for _, n := range names {
		t, err := ParseType(n)
		if err != nil {
			return nil, err
		}
		s[t] = struct{}{}
	}
	return s, nil
}

func (s Set) Has(t Type) bool {
	_, ok := s[t]
	return ok
}

// HasKind reports whether any requested metric is of kind k.
func (s Set) HasKind(k Kind) bool {
	for t := range s {
		if t.Kind() == k {
			return true
		}
	}
	return false
}

// Types returns the requested metrics in a stable order.
func (s Set) Types() []Type {
	out := make([]Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
