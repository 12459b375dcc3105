package title

// Outcome classifies what a resolution stage produced.
type Outcome int

const (
	// Resolved means the stage settled the title (which may be nil).
	Resolved Outcome = iota
	// Fallback means the stage had nothing to say; the next stage runs.
	Fallback
	// Failed means resolution failed; the reason becomes the visible title.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Fallback:
		return "fallback"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the typed output of a Stage.
type Result struct {
	Outcome Outcome
	// Title is set for Resolved; nil means the page has no title.
	Title *string
	// Reason is set for Failed, and optionally for Fallback to explain why.
	Reason error
}

// Ok returns a Resolved result.
func Ok(title *string) Result {
	return Result{Outcome: Resolved, Title: title}
}

// Skip returns a Fallback result with an optional reason.
func Skip(reason error) Result {
	return Result{Outcome: Fallback, Reason: reason}
}

// Fail returns a Failed result.
func Fail(reason error) Result {
	return Result{Outcome: Failed, Reason: reason}
}
