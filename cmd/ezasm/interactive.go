package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ezrec/ezasm/asm"
	"github.com/ezrec/ezasm/simulator"
	"github.com/ezrec/ezasm/translate"
)

// interactive executes each input line as it is read. Errors are reported
// and the session continues. Labels are not available.
func (opt *options) interactive(cmd *cobra.Command, sim *simulator.Simulator) (err error) {
	err = sim.Prepare()
	if err != nil {
		return
	}

	lexer := &asm.Lexer{
		Verbose:     opt.verbose,
		WordSize:    opt.config.WordSize,
		MemoryWords: opt.config.MemoryWords,
	}

	stdin := cmd.InOrStdin()
	stderr := cmd.ErrOrStderr()
	prompt := isTerminal(stdin) && isTerminal(stderr)

	// Typed lines share the console input with the program, unless the
	// program input was redirected to a file.
	readLine := sim.Console().Line
	if len(opt.input) > 0 && opt.input != "-" {
		scanner := bufio.NewScanner(stdin)
		readLine = func() (string, error) {
			if scanner.Scan() {
				return scanner.Text(), nil
			}
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
	}

	for lineNo := 1; ; lineNo++ {
		if prompt {
			_, _ = fmt.Fprint(stderr, "> ")
		}

		var text string
		text, err = readLine()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return
		}

		var line *asm.Line
		line, err = lexer.ParseLine(text, lineNo)
		if err == nil && line != nil {
			err = sim.Execute(line)
		}
		if err != nil {
			_ = translate.Fprintln(stderr, "%v", err)
			err = nil
		}
	}

	return
}
