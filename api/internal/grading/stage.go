package grading

// Stage is a step of the grading pipeline:
// Validating → Scoring → GeneratingFeedback → Assembling → Done,
// or Validating → Failed.
type Stage int

const (
	Validating Stage = iota
	Scoring
	GeneratingFeedback
	Assembling
	Done
	Failed
)

func (s Stage) String() string {
	switch s {
	case Validating:
		return "validating"
	case Scoring:
		return "scoring"
	case GeneratingFeedback:
		return "generating feedback"
	case Assembling:
		return "assembling"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
