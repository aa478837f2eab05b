package etl

// SubprocessType enumerates the five canonical phases of a day, plus the
// terminal states a day can land in.
type SubprocessType int

const (
	// NotStarted is the initial state before any phase has run.
	NotStarted SubprocessType = iota
	Extract
	Transform
	Load
	Validate
	Clean
	// Complete is terminal: every phase finished successfully.
	Complete
	// Failed is terminal: some phase aborted the day.
	Failed
)

func (t SubprocessType) String() string {
	switch t {
	case NotStarted:
		return "NotStarted"
	case Extract:
		return "Extract"
	case Transform:
		return "Transform"
	case Load:
		return "Load"
	case Validate:
		return "Validate"
	case Clean:
		return "Clean"
	case Complete:
		return "Complete"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Phases is the canonical, ordered phase list every day runs.
var Phases = []SubprocessType{Extract, Transform, Load, Validate, Clean}

// nextPhase maps each phase to the only phase legally allowed to follow it.
var nextPhase = map[SubprocessType]SubprocessType{
	NotStarted: Extract,
	Extract:    Transform,
	Transform:  Load,
	Load:       Validate,
	Validate:   Clean,
	Clean:      Complete,
}

// canTransition reports whether moving from `from` to `to` is a legal
// phase-machine transition. Any non-terminal phase may transition to
// Failed.
func canTransition(from, to SubprocessType) bool {
	if to == Failed {
		return from != Complete && from != Failed
	}
	want, ok := nextPhase[from]
	return ok && want == to
}
