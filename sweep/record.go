package sweep

import "strings"

// Policy names a cache block replacement strategy.
type Policy string

const (
	PolicyLRU  Policy = "lru"
	PolicyFIFO Policy = "fifo"
)

// knownPolicies maps recognized policy names. Unknown policies are still
// accepted by the parser; this registry only drives diagnostics.
var knownPolicies = map[Policy]bool{
	PolicyLRU:  true,
	PolicyFIFO: true,
}

// IsKnownPolicy reports whether p is one of the built-in replacement policies.
func IsKnownPolicy(p Policy) bool {
	return knownPolicies[p]
}

// Display returns the upper-cased policy name used in series labels.
func (p Policy) Display() string {
	return strings.ToUpper(string(p))
}

// TrialRecord is one row of the results table: the outcome of simulating a
// single cache configuration against a single trace.
type TrialRecord struct {
	Policy        Policy
	Associativity int64 // 1 = direct-mapped
	CacheSize     int64 // bytes
	BlockSize     int64 // bytes
	Hits          int64
	Misses        int64
	HitRate       float64 // stored percentage; never recomputed from Hits/Misses
	TraceFile     string
}

// DerivedHitRate returns hits / (hits + misses) * 100, or 0 when the record
// has no accesses. It exists for diagnostics only; HitRate stays authoritative.
func (r TrialRecord) DerivedHitRate() float64 {
	total := r.Hits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total) * 100
}

// singleAccessPrefixes name the short hand-written traces that sit next to
// the sweep workloads in the results table.
var singleAccessPrefixes = []string{"read", "write"}

// IsSingleAccessTrace reports whether traceFile names a single-access trace
// (read01.trace, write01.trace, ...). Such rows never feed a sweep view.
func IsSingleAccessTrace(traceFile string) bool {
	for _, prefix := range singleAccessPrefixes {
		if strings.HasPrefix(traceFile, prefix) {
			return true
		}
	}
	return false
}

// Field identifies a column of the results table.
type Field int

const (
	FieldPolicy Field = iota
	FieldAssociativity
	FieldCacheSize
	FieldBlockSize
	FieldHits
	FieldMisses
	FieldHitRate
	FieldTraceFile
)

// fieldColumns holds the exact header name of every Field, in canonical order.
var fieldColumns = [...]string{
	FieldPolicy:        "Policy",
	FieldAssociativity: "Associativity",
	FieldCacheSize:     "CacheSize",
	FieldBlockSize:     "BlockSize",
	FieldHits:          "Hits",
	FieldMisses:        "Misses",
	FieldHitRate:       "HitRate",
	FieldTraceFile:     "TraceFile",
}

// Fields returns every column in canonical header order.
func Fields() []Field {
	return []Field{
		FieldPolicy, FieldAssociativity, FieldCacheSize, FieldBlockSize,
		FieldHits, FieldMisses, FieldHitRate, FieldTraceFile,
	}
}

// Column returns the header name of f.
func (f Field) Column() string {
	if f < 0 || int(f) >= len(fieldColumns) {
		return ""
	}
	return fieldColumns[f]
}

func (f Field) String() string {
	return f.Column()
}

// IsNumeric reports whether the column is parsed as a real number.
func (f Field) IsNumeric() bool {
	return f != FieldPolicy && f != FieldTraceFile
}

// fieldByColumn is the reverse of fieldColumns.
var fieldByColumn = func() map[string]Field {
	m := make(map[string]Field, len(fieldColumns))
	for i, name := range fieldColumns {
		m[name] = Field(i)
	}
	return m
}()

// FieldForColumn looks up a Field by its exact header name.
func FieldForColumn(name string) (Field, bool) {
	f, ok := fieldByColumn[name]
	return f, ok
}

// Number returns the numeric value of field f. String fields yield 0.
func (r TrialRecord) Number(f Field) float64 {
	switch f {
	case FieldAssociativity:
		return float64(r.Associativity)
	case FieldCacheSize:
		return float64(r.CacheSize)
	case FieldBlockSize:
		return float64(r.BlockSize)
	case FieldHits:
		return float64(r.Hits)
	case FieldMisses:
		return float64(r.Misses)
	case FieldHitRate:
		return r.HitRate
	default:
		return 0
	}
}

// Text returns the string form of field f, used to build group keys.
func (r TrialRecord) Text(f Field) string {
	switch f {
	case FieldPolicy:
		return string(r.Policy)
	case FieldTraceFile:
		return r.TraceFile
	default:
		return formatNumber(r.Number(f))
	}
}
