package sweep

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Point is one (x, hit rate) sample of a series.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Series is one plotted line: every record of one group, sorted by x.
type Series struct {
	Key    string // group identity, e.g. "lru/4"
	Label  string
	Points []Point
}

// Predicate holds when the record's Field equals one of Values.
type Predicate struct {
	Field  Field
	Values []float64
}

// Holds reports whether r satisfies p.
func (p Predicate) Holds(r TrialRecord) bool {
	v := r.Number(p.Field)
	for _, want := range p.Values {
		if v == want {
			return true
		}
	}
	return false
}

func (p Predicate) String() string {
	vals := make([]string, len(p.Values))
	for i, v := range p.Values {
		vals[i] = formatNumber(v)
	}
	if len(vals) == 1 {
		return fmt.Sprintf("%s=%s", p.Field, vals[0])
	}
	return fmt.Sprintf("%s in {%s}", p.Field, strings.Join(vals, ","))
}

// Equals builds a single-value Predicate.
func Equals(f Field, v float64) Predicate {
	return Predicate{Field: f, Values: []float64{v}}
}

// OneOf builds a Predicate accepting any of vs.
func OneOf(f Field, vs ...float64) Predicate {
	return Predicate{Field: f, Values: vs}
}

// ViewSpec parameterizes the shared filter/group/sort algorithm.
type ViewSpec struct {
	ID         int
	Title      string
	XAxis      Field
	Predicates []Predicate
	GroupBy    []Field
	// Label renders the group a record belongs to as display text. Every
	// record of a group must produce the same label.
	Label func(TrialRecord) string
}

// Matches reports whether r contributes to the view: every predicate holds
// and r does not come from a single-access trace.
func (v ViewSpec) Matches(r TrialRecord) bool {
	if IsSingleAccessTrace(r.TraceFile) {
		return false
	}
	for _, p := range v.Predicates {
		if !p.Holds(r) {
			return false
		}
	}
	return true
}

func (v ViewSpec) groupKey(r TrialRecord) string {
	parts := make([]string, len(v.GroupBy))
	for i, f := range v.GroupBy {
		parts[i] = r.Text(f)
	}
	return strings.Join(parts, "/")
}

// Build runs spec over s. Groups are emitted in the order their first record
// appears in s, and each group's points are sorted by x with ties kept in
// source order. Groups without records are never emitted, so the result may
// be empty but never holds an empty series.
func Build(s *Snapshot, spec ViewSpec) []Series {
	out := make([]Series, 0)
	index := make(map[string]int)

	for _, r := range s.Filter(spec.Matches) {
		key := spec.groupKey(r)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Series{Key: key, Label: spec.label(r)})
		}
		out[i].Points = append(out[i].Points, Point{X: r.Number(spec.XAxis), Y: r.HitRate})
	}

	for i := range out {
		pts := out[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
	}

	logrus.Debugf("view %d: %d series from snapshot %s", spec.ID, len(out), s.ID())
	return out
}

func (v ViewSpec) label(r TrialRecord) string {
	if v.Label == nil {
		return v.groupKey(r)
	}
	return v.Label(r)
}

// ViewResult pairs a view with the series built for it.
type ViewResult struct {
	Spec   ViewSpec
	Series []Series
}

// BuildAll builds every fixed view over s, in view order.
func BuildAll(s *Snapshot) []ViewResult {
	specs := Views()
	results := make([]ViewResult, 0, len(specs))
	for _, spec := range specs {
		results = append(results, ViewResult{Spec: spec, Series: Build(s, spec)})
	}
	return results
}

// associativityLabel renders 1 as "Direct Mapped" and n as "n-way".
func associativityLabel(assoc int64) string {
	if assoc == 1 {
		return "Direct Mapped"
	}
	return fmt.Sprintf("%d-way", assoc)
}

func policyLabel(r TrialRecord) string {
	return r.Policy.Display()
}

func policyAssociativityLabel(r TrialRecord) string {
	return r.Policy.Display() + " - " + associativityLabel(r.Associativity)
}

// Views returns the four fixed sweep views in display order.
func Views() []ViewSpec {
	return []ViewSpec{
		{
			ID:    1,
			Title: "Hit Rate vs. Cache Size (Block Size: 64B)",
			XAxis: FieldCacheSize,
			Predicates: []Predicate{
				Equals(FieldBlockSize, 64),
				OneOf(FieldAssociativity, 1, 4, 256),
			},
			GroupBy: []Field{FieldPolicy, FieldAssociativity},
			Label:   policyAssociativityLabel,
		},
		{
			ID:    2,
			Title: "Hit Rate vs. Cache Size (Associativity: 4-way, Block Size: 64B)",
			XAxis: FieldCacheSize,
			Predicates: []Predicate{
				Equals(FieldAssociativity, 4),
				Equals(FieldBlockSize, 64),
			},
			GroupBy: []Field{FieldPolicy},
			Label:   policyLabel,
		},
		{
			ID:    3,
			Title: "Hit Rate vs. Block Size (Cache Size: 16KB, Associativity: 4-way)",
			XAxis: FieldBlockSize,
			Predicates: []Predicate{
				Equals(FieldCacheSize, 16384),
				Equals(FieldAssociativity, 4),
			},
			GroupBy: []Field{FieldPolicy},
			Label:   policyLabel,
		},
		{
			ID:    4,
			Title: "Hit Rate vs. Associativity (Cache Size: 16KB, Block Size: 64B)",
			XAxis: FieldAssociativity,
			Predicates: []Predicate{
				Equals(FieldCacheSize, 16384),
				Equals(FieldBlockSize, 64),
			},
			GroupBy: []Field{FieldPolicy},
			Label:   policyLabel,
		},
	}
}

// ViewByID returns the fixed view with the given ID.
func ViewByID(id int) (ViewSpec, bool) {
	for _, v := range Views() {
		if v.ID == id {
			return v, true
		}
	}
	return ViewSpec{}, false
}
