package service

// RunState is the lifecycle of one pipeline run.
type RunState int

const (
	NotStarted RunState = iota
	LoadingPosts
	FanningOutWorkers
	AwaitingAllWorkers
	Completed
	Failed
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case LoadingPosts:
		return "LoadingPosts"
	case FanningOutWorkers:
		return "FanningOutWorkers"
	case AwaitingAllWorkers:
		return "AwaitingAllWorkers"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s RunState) Terminal() bool {
	return s == Completed || s == Failed
}
