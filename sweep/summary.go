package sweep

import "math"

// Summary aggregates load diagnostics for a Snapshot.
type Summary struct {
	TotalRecords        int            `json:"total_records" yaml:"total_records"`
	SingleAccessRecords int            `json:"single_access_records" yaml:"single_access_records"`
	Policies            []Policy       `json:"policies" yaml:"policies"` // first-seen order
	UnknownPolicies     []Policy       `json:"unknown_policies,omitempty" yaml:"unknown_policies,omitempty"`
	TraceDistribution   map[string]int `json:"trace_distribution" yaml:"trace_distribution"` // trace file → record count
	MeanHitRate         float64        `json:"mean_hit_rate" yaml:"mean_hit_rate"`
	// MaxHitRateDrift is the largest |stored - derived| hit rate over all
	// records. The stored value is never corrected; this only reports it.
	MaxHitRateDrift float64 `json:"max_hit_rate_drift" yaml:"max_hit_rate_drift"`
}

// Summarize computes aggregate statistics from a Snapshot.
// Safe for nil or empty snapshots (returns zero-value fields).
func Summarize(s *Snapshot) *Summary {
	summary := &Summary{
		Policies:          make([]Policy, 0),
		TraceDistribution: make(map[string]int),
	}
	if s.Len() == 0 {
		return summary
	}

	seen := make(map[Policy]bool)
	totalHitRate := 0.0
	for _, r := range s.records {
		summary.TotalRecords++
		if IsSingleAccessTrace(r.TraceFile) {
			summary.SingleAccessRecords++
		}
		if !seen[r.Policy] {
			seen[r.Policy] = true
			summary.Policies = append(summary.Policies, r.Policy)
			if !IsKnownPolicy(r.Policy) {
				summary.UnknownPolicies = append(summary.UnknownPolicies, r.Policy)
			}
		}
		summary.TraceDistribution[r.TraceFile]++
		totalHitRate += r.HitRate

		if drift := math.Abs(r.HitRate - r.DerivedHitRate()); drift > summary.MaxHitRateDrift {
			summary.MaxHitRateDrift = drift
		}
	}
	summary.MeanHitRate = totalHitRate / float64(summary.TotalRecords)

	return summary
}
