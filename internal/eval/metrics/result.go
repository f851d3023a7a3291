package metrics

// Curve is a pair of index-aligned point sequences.
// For ROC, X is the false positive rate and Y the true positive rate.
// For the precision-recall curve, X is precision and Y is recall.
type Curve struct {
	X []float64 `json:"x" yaml:"x"`
	Y []float64 `json:"y" yaml:"y"`
}

// Value is a single metric outcome. Exactly one field is set.
type Value struct {
	Scalar      *float64         `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	AtK         map[int]float64  `json:"at_k,omitempty" yaml:"at_k,omitempty"`
	PerRelation map[string]Value `json:"per_relation,omitempty" yaml:"per_relation,omitempty"`
	Curve       *Curve           `json:"curve,omitempty" yaml:"curve,omitempty"`
}

func ScalarValue(v float64) Value {
	return Value{Scalar: &v}
}

func AtKValue(m map[int]float64) Value {
	return Value{AtK: m}
}

func CurveValue(x, y []float64) Value {
	return Value{Curve: &Curve{X: x, Y: y}}
}

type Results map[Type]Value

// Merge copies every entry of other into r, overwriting colliding keys.
func (r Results) Merge(other Results) {
	for k, v := range other {
		r[k] = v
	}
}

// Scalar returns the scalar value stored for t.
func (r Results) Scalar(t Type) (float64, bool) {
	v, ok := r[t]
	if !ok || v.Scalar == nil {
		return 0, false
	}
	return *v.Scalar, true
}
