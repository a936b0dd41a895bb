package simulator

//go:generate go tool stringer -type=State -trimprefix=STATE_

// State is the execution state of a controller.
type State int

const (
	STATE_IDLE    = State(iota) // Nothing run since creation or reset.
	STATE_STOPPED               // Completed, failed or halted.
	STATE_RUNNING               // Worker executing.
	STATE_PAUSED                // Worker parked, resumable.
)
