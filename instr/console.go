package instr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
)

// Console is the terminal used by the print and read instructions.
type Console struct {
	mutex  sync.Mutex
	input  io.Reader
	reader *bufio.Reader
	output io.Writer
}

// NewConsole creates a console. A nil input reads as empty, and a nil
// output discards.
func NewConsole(input io.Reader, output io.Writer) (con *Console) {
	con = &Console{}
	con.SetInput(input)
	con.SetOutput(output)
	return
}

// SetInput replaces the input, discarding any buffered text.
func (con *Console) SetInput(input io.Reader) {
	if input == nil {
		input = strings.NewReader("")
	}

	con.mutex.Lock()
	defer con.mutex.Unlock()

	con.input = input
	con.reader = bufio.NewReader(input)
}

// SetOutput replaces the output.
func (con *Console) SetOutput(output io.Writer) {
	if output == nil {
		output = io.Discard
	}

	con.mutex.Lock()
	defer con.mutex.Unlock()

	con.output = output
}

// Reset discards buffered input. Seekable input is rewound to its start.
func (con *Console) Reset() {
	con.mutex.Lock()
	defer con.mutex.Unlock()

	if seeker, ok := con.input.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}
	con.reader = bufio.NewReader(con.input)
}

func (con *Console) in() *bufio.Reader {
	con.mutex.Lock()
	defer con.mutex.Unlock()

	return con.reader
}

// skipSpace consumes leading whitespace.
func skipSpace(reader *bufio.Reader) (err error) {
	for {
		var r rune
		r, _, err = reader.ReadRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(r) {
			return reader.UnreadRune()
		}
	}
}

// Token reads the next whitespace delimited token.
func (con *Console) Token() (token string, err error) {
	reader := con.in()

	err = skipSpace(reader)
	if err != nil {
		return
	}

	var text strings.Builder
	for {
		var r rune
		r, _, err = reader.ReadRune()
		if err == io.EOF && text.Len() > 0 {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if unicode.IsSpace(r) {
			err = reader.UnreadRune()
			break
		}
		text.WriteRune(r)
	}

	token = text.String()
	return
}

// Line reads the rest of the current line, without its terminator.
func (con *Console) Line() (line string, err error) {
	reader := con.in()

	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	if err != nil {
		return
	}

	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	return
}

// Rune reads the next non-whitespace character.
func (con *Console) Rune() (r rune, err error) {
	reader := con.in()

	err = skipSpace(reader)
	if err != nil {
		return
	}

	r, _, err = reader.ReadRune()
	return
}

// Print writes formatted text to the output.
func (con *Console) Print(args ...any) (err error) {
	con.mutex.Lock()
	output := con.output
	con.mutex.Unlock()

	_, err = fmt.Fprint(output, args...)
	return
}
