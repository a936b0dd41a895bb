package instr

import (
	"math"
	"strconv"
	"strings"

	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

// Terminal implements console input and output.
type Terminal struct {
	host Host
}

var TerminalGroup = Group{
	Name: "terminal",
	New:  func(host Host) any { return &Terminal{host: host} },
	Overloads: []Overload{
		withIn("printi", (*Terminal).Printi),
		withIn("printf", (*Terminal).Printf),
		withIn("printc", (*Terminal).Printc),
		withInIn("prints", (*Terminal).Prints),
		withIn("prints", (*Terminal).PrintString),
		withOut("readi", (*Terminal).Readi),
		withOut("readf", (*Terminal).Readf),
		withOut("readc", (*Terminal).Readc),
		withInIn("reads", (*Terminal).Reads),
		withInIn("readln", (*Terminal).Readln),
		withInIn("readline", (*Terminal).Readln),
	},
}

func (term *Terminal) print(value any, what string) (err error) {
	err = term.host.Console().Print(value)
	if err != nil {
		err = ErrTerminal(f("writing %v to output", what))
	}
	return
}

func (term *Terminal) Printi(in operand.Input) (seq machine.Sequence, err error) {
	value, err := operand.Int(term.host, in)
	if err != nil {
		return
	}
	err = term.print(value, f("integer"))
	return
}

func (term *Terminal) Printf(in operand.Input) (seq machine.Sequence, err error) {
	value, err := operand.Float(term.host, in)
	if err != nil {
		return
	}
	err = term.print(FormatFloat(value), f("float"))
	return
}

// FormatFloat renders value in shortest round-trip form. Whole numbers keep
// a ".0" fraction. Magnitudes outside [1e-3, 1e7) use an "E" exponent.
func FormatFloat(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}

	magnitude := math.Abs(value)
	if magnitude == 0 || (magnitude >= 1e-3 && magnitude < 1e7) {
		text := strconv.FormatFloat(value, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return text
	}

	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(value, 'E', -1, 64), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	power, _ := strconv.Atoi(exponent)
	return mantissa + "E" + strconv.Itoa(power)
}

func (term *Terminal) Printc(in operand.Input) (seq machine.Sequence, err error) {
	value, err := operand.Int(term.host, in)
	if err != nil {
		return
	}
	err = term.print(string(rune(value)), f("character"))
	return
}

// Prints writes the NUL terminated string at address, reading at most max bytes.
func (term *Terminal) Prints(address, max operand.Input) (seq machine.Sequence, err error) {
	addr, err := operand.Int(term.host, address)
	if err != nil {
		return
	}
	size, err := operand.Int(term.host, max)
	if err != nil {
		return
	}
	text, err := term.host.ReadString(addr, int(size))
	if err != nil {
		return
	}
	err = term.print(text, f("string"))
	return
}

// PrintString writes the NUL terminated string at address, bounded by the
// end of memory.
func (term *Terminal) PrintString(address operand.Input) (seq machine.Sequence, err error) {
	addr, err := operand.Int(term.host, address)
	if err != nil {
		return
	}
	size := int64(term.host.Capacity()) - addr
	if size < 0 {
		size = 0
	}
	text, err := term.host.ReadString(addr, int(size))
	if err != nil {
		return
	}
	err = term.print(text, f("string"))
	return
}

func (term *Terminal) Readi(out operand.Output) (seq machine.Sequence, err error) {
	token, err := term.host.Console().Token()
	if err != nil {
		err = ErrTerminal(f("reading integer from input"))
		return
	}
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		err = ErrTerminal(f("reading integer from input"))
		return
	}
	return store(term.host, out, value)
}

func (term *Terminal) Readf(out operand.Output) (seq machine.Sequence, err error) {
	token, err := term.host.Console().Token()
	if err != nil {
		err = ErrTerminal(f("reading float from input"))
		return
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		err = ErrTerminal(f("reading float from input"))
		return
	}
	return storeFloat(term.host, out, value)
}

func (term *Terminal) Readc(out operand.Output) (seq machine.Sequence, err error) {
	r, err := term.host.Console().Rune()
	if err != nil {
		err = ErrTerminal(f("reading character from input"))
		return
	}
	return store(term.host, out, int64(r))
}

// storeString writes text, NUL padded to max bytes, at address.
func (term *Terminal) storeString(text string, address, max operand.Input) (seq machine.Sequence, err error) {
	size, err := operand.Int(term.host, max)
	if err != nil {
		return
	}
	addr, err := operand.Int(term.host, address)
	if err != nil {
		return
	}
	err = term.host.Check(addr, int(size))
	if err != nil {
		return
	}
	seq = seq.SetMemory(addr, machine.EncodeString(text, int(size)))
	return
}

// Reads stores the next whitespace delimited token at address.
func (term *Terminal) Reads(address, max operand.Input) (seq machine.Sequence, err error) {
	token, err := term.host.Console().Token()
	if err != nil {
		err = ErrTerminal(f("reading string from input"))
		return
	}
	return term.storeString(token, address, max)
}

// Readln stores the rest of the current input line at address.
func (term *Terminal) Readln(address, max operand.Input) (seq machine.Sequence, err error) {
	line, err := term.host.Console().Line()
	if err != nil {
		err = ErrTerminal(f("reading string from input"))
		return
	}
	return term.storeString(line, address, max)
}
