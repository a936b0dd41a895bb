// Package simulator runs parsed EzASM programs.
//
// A Simulator owns one machine, one instruction dispatcher bound to it, and
// the terminal console. A Controller drives a Simulator through the
// run/pause/step/stop state machine on a background worker.
package simulator
