// Package compliance implements the control assessment pipeline: resolving
// evidence artifacts on disk, deriving per-control statuses, and aggregating
// them into layer-level and global summary statistics.
package compliance

// Status represents the assessed state of a single control.
type Status string

const (
	// StatusImplemented means the control's evidence artifact exists.
	StatusImplemented Status = "implemented"
	// StatusMissing means an artifact was specified but not found.
	StatusMissing Status = "missing"
	// StatusNotApplicable means the control declares no artifact to check.
	StatusNotApplicable Status = "not_applicable"
	// StatusUnknown means the existence check itself failed (permission
	// denied, malformed pattern). Distinct from missing so I/O trouble is
	// never reported as a compliance gap.
	StatusUnknown Status = "unknown"
)

// Label returns the human-readable form of a status.
func (s Status) Label() string {
	switch s {
	case StatusImplemented:
		return "Implemented"
	case StatusMissing:
		return "Missing"
	case StatusNotApplicable:
		return "Not Applicable"
	case StatusUnknown:
		return "Unknown"
	}
	return string(s)
}

// Control is a single checklist row. It is never mutated after load; the
// pipeline only derives new values from it.
type Control struct {
	LayerNumber  string `json:"layer_number"`
	LayerName    string `json:"layer_name"`
	Group        string `json:"control_group"`
	Description  string `json:"control"`
	ArtifactSpec string `json:"artifact"`
	Component    string `json:"component"`
	TestCategory string `json:"test_category"`
	MetricKPI    string `json:"metric_kpi"`
	Evidence     string `json:"evidence"`
}

// Assessment is a control together with its derived status and reason.
type Assessment struct {
	Control
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// LayerStats holds per-layer assessment counts. LayerNumber is an opaque
// grouping key taken from the checklist; it is not required to be numeric.
type LayerStats struct {
	LayerNumber   string `json:"layer_number"`
	LayerName     string `json:"layer_name"`
	Implemented   int    `json:"implemented"`
	Missing       int    `json:"missing"`
	NotApplicable int    `json:"not_applicable"`
	Unknown       int    `json:"unknown,omitempty"`
}

// Total returns the number of controls observed in the layer.
func (l LayerStats) Total() int {
	return l.Implemented + l.Missing + l.NotApplicable + l.Unknown
}

// Applicable returns the number of controls that count toward the rate.
func (l LayerStats) Applicable() int {
	return l.Implemented + l.Missing
}

// ComplianceRate returns the layer's compliance percentage, 0 when the
// layer has no applicable controls.
func (l LayerStats) ComplianceRate() float64 {
	return rate(l.Implemented, l.Applicable())
}

// Summary is the aggregate result of one assessment run. Layers preserves
// the order in which layer keys were first observed in the checklist.
type Summary struct {
	GeneratedAt    string       `json:"generated_at"`
	TotalControls  int          `json:"total_controls"`
	Implemented    int          `json:"implemented"`
	Missing        int          `json:"missing"`
	NotApplicable  int          `json:"not_applicable"`
	Unknown        int          `json:"unknown,omitempty"`
	Applicable     int          `json:"applicable"`
	ComplianceRate float64      `json:"compliance_rate"`
	Layers         []LayerStats `json:"layer_statistics"`
}

// Layer returns the stats for the given layer key, if present.
func (s *Summary) Layer(number string) (LayerStats, bool) {
	for _, l := range s.Layers {
		if l.LayerNumber == number {
			return l, true
		}
	}
	return LayerStats{}, false
}

// rate computes implemented/applicable as a percentage. A zero denominator
// yields exactly 0 rather than NaN: with nothing applicable there is nothing
// to be compliant about.
func rate(implemented, applicable int) float64 {
	if applicable == 0 {
		return 0
	}
	return float64(implemented) / float64(applicable) * 100
}
