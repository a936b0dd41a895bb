package simulator

import (
	"log"
	"sync"
	"time"
)

const (
	POLL_INTERVAL = 50 * time.Millisecond  // Longest resume latency of a paused worker.
	JOIN_TIMEOUT  = 500 * time.Millisecond // Longest wait for a halted worker to exit.
	DEFAULT_DELAY = time.Duration(0)       // Pause between instructions.
)

// Controller runs a simulator on a background worker.
//
// Control requests may be issued from any goroutine. Only the worker, or a
// Step while no worker is executing, changes the machine.
type Controller struct {
	Verbose bool          // If set, logs state changes.
	Delay   time.Duration // Pause between instructions while running.

	sim *Simulator

	ctlMu sync.Mutex // Serializes control requests.

	execMu     sync.Mutex // Guards the fields below.
	state      State
	execActive bool
	execDone   chan struct{}
	execQuit   chan struct{}
	execErr    error

	machineMu sync.Mutex    // Held while an instruction executes.
	wake      chan struct{} // Nudges a paused worker.
}

// NewController creates an idle controller for a simulator.
func NewController(sim *Simulator, delay time.Duration) *Controller {
	return &Controller{
		Delay: delay,
		sim:   sim,
		wake:  make(chan struct{}, 1),
	}
}

// Simulator returns the controlled simulator.
func (ctl *Controller) Simulator() *Simulator {
	return ctl.sim
}

// State returns the current state.
func (ctl *Controller) State() State {
	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	return ctl.state
}

// Err returns the error that stopped the last run, if any.
func (ctl *Controller) Err() error {
	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	return ctl.execErr
}

// setState must be called with execMu held.
func (ctl *Controller) setState(state State) {
	if ctl.Verbose && ctl.state != state {
		log.Printf("controller: %v -> %v", ctl.state, state)
	}
	ctl.state = state
}

// spawn starts a worker. It must be called with execMu held.
func (ctl *Controller) spawn() {
	quit := make(chan struct{})
	done := make(chan struct{})

	ctl.execActive = true
	ctl.execQuit = quit
	ctl.execDone = done

	go func() {
		defer func() {
			ctl.execMu.Lock()
			if ctl.execDone == done {
				ctl.execActive = false
			}
			close(done)
			ctl.execMu.Unlock()
		}()
		ctl.run(quit)
	}()
}

// halt signals the worker to quit, and waits for it to exit.
func (ctl *Controller) halt() (err error) {
	ctl.execMu.Lock()
	if !ctl.execActive {
		ctl.execMu.Unlock()
		return
	}
	quit, done := ctl.execQuit, ctl.execDone
	select {
	case <-quit:
	default:
		close(quit)
	}
	ctl.execMu.Unlock()

	select {
	case <-done:
	case <-time.After(JOIN_TIMEOUT):
		err = ErrJoinTimeout
	}

	return
}

// finish records the end of a run, unless the worker was halted.
func (ctl *Controller) finish(quit chan struct{}, err error) {
	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	select {
	case <-quit:
		return
	default:
	}

	if ctl.Verbose {
		log.Printf("controller: finished: %v", err)
	}

	ctl.execErr = err
	ctl.setState(STATE_STOPPED)
}

// park blocks while paused. It returns false when the worker must exit.
func (ctl *Controller) park(quit chan struct{}) bool {
	for {
		select {
		case <-quit:
			return false
		default:
		}

		switch ctl.State() {
		case STATE_RUNNING:
			return true
		case STATE_PAUSED:
		default:
			return false
		}

		select {
		case <-quit:
			return false
		case <-ctl.wake:
		case <-time.After(POLL_INTERVAL):
		}
	}
}

// sleep waits out the instruction delay. It returns false when the worker
// must exit.
func (ctl *Controller) sleep(quit chan struct{}) bool {
	if ctl.Delay <= 0 {
		select {
		case <-quit:
			return false
		default:
			return true
		}
	}

	timer := time.NewTimer(ctl.Delay)
	defer timer.Stop()

	select {
	case <-quit:
		return false
	case <-timer.C:
		return true
	}
}

// tick executes one instruction. A sequence computed while the worker was
// being halted is discarded.
func (ctl *Controller) tick(quit chan struct{}) (done bool, err error) {
	ctl.machineMu.Lock()
	defer ctl.machineMu.Unlock()

	if ctl.sim.IsDone() {
		done = true
		return
	}

	lineno := ctl.sim.LineNo()
	seq, err := ctl.sim.Next()
	if err != nil {
		return
	}

	select {
	case <-quit:
		return
	default:
	}

	err = ctl.sim.ApplyTransformations(seq)
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
		return
	}

	done = ctl.sim.IsDone()
	return
}

// run is the worker loop.
func (ctl *Controller) run(quit chan struct{}) {
	for ctl.park(quit) {
		done, err := ctl.tick(quit)
		if done || err != nil {
			ctl.finish(quit, err)
			return
		}
		if !ctl.sleep(quit) {
			return
		}
	}
}

// prepare resets the machine for a fresh run of the loaded program.
func (ctl *Controller) prepare() (err error) {
	if ctl.sim.Program == nil {
		err = ErrProgramMissing
		return
	}

	err = ctl.halt()
	if err != nil {
		return
	}

	ctl.machineMu.Lock()
	defer ctl.machineMu.Unlock()

	return ctl.sim.Prepare()
}

// Start runs the loaded program from the beginning, halting any previous
// run first.
func (ctl *Controller) Start() (err error) {
	ctl.ctlMu.Lock()
	defer ctl.ctlMu.Unlock()

	err = ctl.prepare()
	if err != nil {
		return
	}

	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	ctl.execErr = nil
	ctl.setState(STATE_RUNNING)
	ctl.spawn()

	return
}

// Pause parks a running worker.
func (ctl *Controller) Pause() (err error) {
	ctl.ctlMu.Lock()
	defer ctl.ctlMu.Unlock()

	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	if ctl.state != STATE_RUNNING {
		err = &ErrState{Request: "pause", State: ctl.state}
		return
	}

	ctl.setState(STATE_PAUSED)
	return
}

// Resume continues a paused run.
func (ctl *Controller) Resume() (err error) {
	ctl.ctlMu.Lock()
	defer ctl.ctlMu.Unlock()

	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	if ctl.state != STATE_PAUSED {
		err = &ErrState{Request: "resume", State: ctl.state}
		return
	}

	ctl.setState(STATE_RUNNING)
	if !ctl.execActive {
		ctl.spawn()
	}

	select {
	case ctl.wake <- struct{}{}:
	default:
	}

	return
}

// Step executes exactly one instruction on the caller. From idle or
// stopped it starts a new run, paused after the first instruction. While
// paused on a completed program it stops the run. A Step issued right after
// Pause may follow the worker's in-flight instruction, so two instructions
// can complete between Pause and the Step returning.
func (ctl *Controller) Step() (err error) {
	ctl.ctlMu.Lock()
	defer ctl.ctlMu.Unlock()

	state := ctl.State()
	switch state {
	case STATE_RUNNING:
		err = &ErrState{Request: "step", State: state}
		return
	case STATE_PAUSED:
		ctl.machineMu.Lock()
		done := ctl.sim.IsDone()
		if !done {
			err = ctl.sim.ExecuteLineFromPC()
		}
		ctl.machineMu.Unlock()

		if !done && err == nil {
			return
		}

		ctl.execMu.Lock()
		ctl.execErr = err
		ctl.setState(STATE_STOPPED)
		ctl.execMu.Unlock()

		_ = ctl.halt()
		return
	}

	err = ctl.prepare()
	if err != nil {
		return
	}

	ctl.machineMu.Lock()
	if !ctl.sim.IsDone() {
		err = ctl.sim.ExecuteLineFromPC()
	}
	ctl.machineMu.Unlock()

	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	ctl.execErr = err
	if err != nil {
		ctl.setState(STATE_STOPPED)
		return
	}

	ctl.setState(STATE_PAUSED)
	ctl.spawn()

	return
}

// Stop halts the run, waiting at most JOIN_TIMEOUT for the worker to exit.
func (ctl *Controller) Stop() (err error) {
	ctl.ctlMu.Lock()
	defer ctl.ctlMu.Unlock()

	ctl.execMu.Lock()
	ctl.setState(STATE_STOPPED)
	ctl.execMu.Unlock()

	return ctl.halt()
}

// Reset halts the run and zeros the machine. If the worker does not exit
// in time the machine is left untouched and the controller stays stopped.
func (ctl *Controller) Reset() (err error) {
	ctl.ctlMu.Lock()
	defer ctl.ctlMu.Unlock()

	ctl.execMu.Lock()
	ctl.setState(STATE_STOPPED)
	ctl.execMu.Unlock()

	err = ctl.halt()
	if err != nil {
		return
	}

	ctl.machineMu.Lock()
	ctl.sim.ResetAll()
	ctl.machineMu.Unlock()

	ctl.execMu.Lock()
	defer ctl.execMu.Unlock()

	ctl.execErr = nil
	ctl.setState(STATE_IDLE)

	return
}

// Snapshot returns the register values between instructions.
func (ctl *Controller) Snapshot() []int64 {
	ctl.machineMu.Lock()
	defer ctl.machineMu.Unlock()

	return ctl.sim.Snapshot()
}

// Wait blocks until the current worker exits, and returns the error that
// stopped the run. A paused worker does not exit until resumed or stopped.
func (ctl *Controller) Wait() error {
	ctl.execMu.Lock()
	active, done := ctl.execActive, ctl.execDone
	ctl.execMu.Unlock()

	if active {
		<-done
	}

	return ctl.Err()
}
