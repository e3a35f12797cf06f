package compliance

import "time"

// Summarize folds an ordered sequence of assessments into a Summary. Each
// assessment increments exactly one global counter and exactly one counter
// of its layer's stats. Layer groups are created on first sight of a layer
// key and keep that discovery order. The input is never mutated.
//
// The timestamp is captured once, on entry, so every report rendered from
// the returned Summary carries the same generation time.
func Summarize(assessments []Assessment) Summary {
	summary := Summary{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		TotalControls: len(assessments),
		Layers:        []LayerStats{},
	}

	index := make(map[string]int)
	for _, a := range assessments {
		i, ok := index[a.LayerNumber]
		if !ok {
			i = len(summary.Layers)
			index[a.LayerNumber] = i
			summary.Layers = append(summary.Layers, LayerStats{
				LayerNumber: a.LayerNumber,
				LayerName:   a.LayerName,
			})
		}
		layer := &summary.Layers[i]
		if layer.LayerName == "" {
			layer.LayerName = a.LayerName
		}

		switch a.Status {
		case StatusImplemented:
			summary.Implemented++
			layer.Implemented++
		case StatusMissing:
			summary.Missing++
			layer.Missing++
		case StatusNotApplicable:
			summary.NotApplicable++
			layer.NotApplicable++
		case StatusUnknown:
			summary.Unknown++
			layer.Unknown++
		}
	}

	summary.Applicable = summary.Implemented + summary.Missing
	summary.ComplianceRate = rate(summary.Implemented, summary.Applicable)
	return summary
}
