package simulator

import (
	"io"
	"os"
	"time"

	"github.com/ezrec/ezasm/machine"
)

// Config is the construction time configuration of a simulator.
type Config struct {
	WordSize    int           // Bytes per word, 1 to 8.
	MemoryWords int           // Words in each of the heap and stack segments.
	Delay       time.Duration // Pause between instructions of a running program.
	Input       io.Reader     // Terminal input.
	Output      io.Writer     // Terminal output.
}

// DefaultConfig returns the default configuration, attached to stdin and
// stdout.
func DefaultConfig() Config {
	return Config{
		WordSize:    machine.DEFAULT_WORD_SIZE,
		MemoryWords: machine.DEFAULT_MEMORY_WORDS,
		Delay:       DEFAULT_DELAY,
		Input:       os.Stdin,
		Output:      os.Stdout,
	}
}
