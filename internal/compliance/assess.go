package compliance

import "fmt"

// Reason strings attached to assessments. Kept short and stable because
// they appear verbatim in every report format.
const (
	reasonNoArtifact    = "no artifact specified"
	reasonArtifactFound = "artifact found"
	reasonNotFound      = "artifact not found"
)

// Assessor derives assessments from controls using a Resolver.
type Assessor struct {
	resolver Resolver
}

// NewAssessor creates an assessor backed by the given resolver.
func NewAssessor(resolver Resolver) *Assessor {
	return &Assessor{resolver: resolver}
}

// Assess derives the status of a single control. The status is determined
// entirely by the artifact spec and filesystem state: an empty spec is not
// applicable, a resolvable spec is implemented, an unresolvable one is
// missing. A failed existence check yields StatusUnknown instead of
// counting as a compliance gap; it never aborts the run.
func (a *Assessor) Assess(control Control) Assessment {
	assessment := Assessment{Control: control}

	if control.ArtifactSpec == "" {
		assessment.Status = StatusNotApplicable
		assessment.Reason = reasonNoArtifact
		return assessment
	}

	found, err := a.resolver.Exists(control.ArtifactSpec)
	switch {
	case err != nil:
		assessment.Status = StatusUnknown
		assessment.Reason = fmt.Sprintf("artifact check failed: %v", err)
	case found:
		assessment.Status = StatusImplemented
		assessment.Reason = reasonArtifactFound
	default:
		assessment.Status = StatusMissing
		assessment.Reason = reasonNotFound
	}
	return assessment
}

// AssessAll assesses every control in order. Input order is preserved in
// the result.
func (a *Assessor) AssessAll(controls []Control) []Assessment {
	assessments := make([]Assessment, 0, len(controls))
	for _, control := range controls {
		assessments = append(assessments, a.Assess(control))
	}
	return assessments
}
