// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command ezasm runs EzASM programs from the command line.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/ezasm/simulator"
	"github.com/ezrec/ezasm/translate"
)

const VERSION = "1.0.0"

// options are the command line settings.
type options struct {
	file       string
	input      string
	output     string
	config     simulator.Config
	verbose    bool
	dump       bool
	version    bool
	windowless bool
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// openIO resolves the input and output paths, with "-" or empty meaning
// the command streams.
func (opt *options) openIO(cmd *cobra.Command) (closers []io.Closer, err error) {
	opt.config.Input = cmd.InOrStdin()
	opt.config.Output = cmd.OutOrStdout()

	if len(opt.input) > 0 && opt.input != "-" {
		var inf *os.File
		inf, err = os.Open(opt.input)
		if err != nil {
			return
		}
		closers = append(closers, inf)
		opt.config.Input = inf
	}

	if len(opt.output) > 0 && opt.output != "-" {
		var ouf *os.File
		ouf, err = os.Create(opt.output)
		if err != nil {
			return
		}
		closers = append(closers, ouf)
		opt.config.Output = ouf
	}

	return
}

// run parses and runs the program file under a controller.
func (opt *options) run(cmd *cobra.Command, sim *simulator.Simulator) (err error) {
	inf, err := os.Open(opt.file)
	if err != nil {
		return
	}
	defer inf.Close()

	err = sim.Parse(inf)
	if err != nil {
		return
	}

	stderr := cmd.ErrOrStderr()

	if opt.dump {
		printer := pp.New()
		printer.SetOutput(stderr)
		printer.SetColoringEnabled(isTerminal(stderr))
		printer.Println(sim.Program)
	}

	ctl := simulator.NewController(sim, opt.config.Delay)
	ctl.Verbose = opt.verbose

	banner := isTerminal(stderr)
	if banner {
		_ = translate.Fprintln(stderr, "** Program starting **")
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer func() {
		signal.Stop(interrupt)
		close(interrupt)
	}()
	go func() {
		for range interrupt {
			if err := ctl.Stop(); err != nil {
				log.Printf("ezasm: %v", err)
			}
		}
	}()

	err = ctl.Start()
	if err != nil {
		return
	}
	err = ctl.Wait()

	if banner {
		_ = translate.Fprintln(stderr, "** Program terminated **")
	}

	return
}

func newRootCommand() *cobra.Command {
	opt := &options{
		config: simulator.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:   "ezasm [-f file.ez]",
		Short: "The EzASM assembly interpreter",
		Long: `Ezasm runs programs written in the EzASM assembly language.

With a program file the program runs to completion, reading and writing
the terminal streams, or the files named by --input and --output. Without
a program file each line read from the input is executed as it is entered.
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if opt.version {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "ezasm %v\n", VERSION)
				return
			}

			if len(args) == 1 {
				if len(opt.file) > 0 {
					return fmt.Errorf("%v", translate.From("program given twice: %v and %v", opt.file, args[0]))
				}
				opt.file = args[0]
			}

			closers, err := opt.openIO(cmd)
			defer func() {
				for _, closer := range closers {
					closer.Close()
				}
			}()
			if err != nil {
				return
			}

			sim, err := simulator.New(opt.config)
			if err != nil {
				return
			}
			sim.Verbose = opt.verbose

			if len(opt.file) == 0 {
				return opt.interactive(cmd, sim)
			}

			return opt.run(cmd, sim)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opt.version, "version", "v", false, "Print the program version and exit")
	flags.BoolVarP(&opt.windowless, "windowless", "w", true, "Run without a window (always set)")
	flags.StringVarP(&opt.file, "file", "f", "", "EzASM code file path to run")
	flags.IntVarP(&opt.config.MemoryWords, "memory", "m", opt.config.MemoryWords, "Words of memory in each of the heap and stack")
	flags.IntVarP(&opt.config.WordSize, "word-size", "s", opt.config.WordSize, "Size in bytes of a word")
	flags.StringVarP(&opt.input, "input", "i", "", "File to read terminal input from")
	flags.StringVarP(&opt.output, "output", "o", "", "File to send terminal output to")
	flags.DurationVarP(&opt.config.Delay, "delay", "d", opt.config.Delay, "Delay between instructions")
	flags.BoolVar(&opt.verbose, "verbose", false, "Log parsing and execution")
	flags.BoolVar(&opt.dump, "dump", false, "Print the parsed program before running it")

	return cmd
}

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err != nil {
		log.Fatalf("%v: %v", cmd.Name(), err)
	}
}
