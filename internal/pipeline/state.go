package pipeline

// State is a step of the conversion pipeline
type State int

const (
	Loading State = iota
	Validating
	Transforming
	Writing
	Done
	Failed
)

var stateNames = [...]string{
	Loading:      "loading",
	Validating:   "validating",
	Transforming: "transforming",
	Writing:      "writing",
	Done:         "done",
	Failed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
