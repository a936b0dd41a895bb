// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/ezasm/instr"
	"github.com/ezrec/ezasm/machine"
	"github.com/ezrec/ezasm/operand"
)

var (
	reLabel       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*:$`)
	reLabelRef    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	reRegister    = regexp.MustCompile(`^\$([A-Za-z0-9]+)$`)
	reDereference = regexp.MustCompile(`^([-+]?[0-9]+)?\(\$([A-Za-z0-9]+)\)$`)
	reImmediate   = regexp.MustCompile(`^[-+]?(0[xX]([0-9a-fA-F]+\.?[0-9a-fA-F]*|\.[0-9a-fA-F]+)|0[bB]([01]+\.?[01]*|\.[01]+)|([0-9]+\.?[0-9]*|\.[0-9]+))$`)
	reCharacter   = regexp.MustCompile(`'(\\.|[^'\\])'`)
	reExpression  = regexp.MustCompile(`\$\([^\$]*\)`)
	reSeparator   = regexp.MustCompile(`[\s,]+`)
)

// IsComment reports whether a line is a comment.
func IsComment(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t"), "#")
}

// IsLabel reports whether a line is a label definition.
func IsLabel(text string) bool {
	return reLabel.MatchString(strings.TrimSpace(text))
}

// IsRegister reports whether a token is a register reference.
func IsRegister(token string) bool {
	match := reRegister.FindStringSubmatch(token)
	if match == nil {
		return false
	}
	_, ok := machine.RegisterIndex(match[1])
	return ok
}

// IsDereference reports whether a token is a memory dereference.
func IsDereference(token string) bool {
	match := reDereference.FindStringSubmatch(token)
	if match == nil {
		return false
	}
	_, ok := machine.RegisterIndex(match[2])
	return ok
}

// IsImmediate reports whether a token is a numeric immediate.
func IsImmediate(token string) bool {
	return reImmediate.MatchString(token)
}

// Lexer turns source lines into instruction lines.
type Lexer struct {
	Verbose     bool            // If set, logs every parsed line.
	Registry    *instr.Registry // Instructions to recognize. Defaults to instr.Default.
	WordSize    int             // Immediate word size. Defaults to machine.DEFAULT_WORD_SIZE.
	MemoryWords int             // Exposed to expressions. Defaults to machine.DEFAULT_MEMORY_WORDS.
}

func (lex *Lexer) registry() *instr.Registry {
	if lex.Registry == nil {
		return instr.Default
	}
	return lex.Registry
}

func (lex *Lexer) wordSize() int {
	if lex.WordSize == 0 {
		return machine.DEFAULT_WORD_SIZE
	}
	return lex.WordSize
}

func (lex *Lexer) memoryWords() int {
	if lex.MemoryWords == 0 {
		return machine.DEFAULT_MEMORY_WORDS
	}
	return lex.MemoryWords
}

// IsInstruction reports whether a mnemonic is registered.
func (lex *Lexer) IsInstruction(name string) bool {
	return reLabelRef.MatchString(name) && lex.registry().Has(name)
}

// unescape maps a character literal body to its value.
func unescape(body string) (value rune, ok bool) {
	if body[0] != '\\' {
		value = []rune(body)[0]
		ok = true
		return
	}
	ok = true
	switch body[1] {
	case 'n':
		value = '\n'
	case 't':
		value = '\t'
	case 'r':
		value = '\r'
	case '0':
		value = 0
	case 'e':
		value = '\033'
	case '\\', '\'':
		value = rune(body[1])
	default:
		ok = false
	}
	return
}

// expand replaces character literals and constant expressions with
// decimal immediates, and strips any inline comment.
func (lex *Lexer) expand(text string, lineNo int) (line string, err error) {
	line = reCharacter.ReplaceAllStringFunc(text, func(word string) string {
		value, ok := unescape(word[1 : len(word)-1])
		if !ok {
			return word
		}
		return strconv.Itoa(int(value))
	})

	if n := strings.IndexByte(line, '#'); n >= 0 {
		line = line[:n]
	}

	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := lex.eval(str[2:len(str)-1], lineNo)
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// immediate converts an immediate token to a machine word. Integers must
// fit the word as either a signed or an unsigned value.
func (lex *Lexer) immediate(token string) (imm operand.Immediate, err error) {
	negative := false
	digits := token
	switch digits[0] {
	case '-':
		negative = true
		digits = digits[1:]
	case '+':
		digits = digits[1:]
	}

	base := 10
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
			digits = digits[2:]
		case 'b', 'B':
			base = 2
			digits = digits[2:]
		}
	}

	whole, fraction, isFloat := strings.Cut(digits, ".")

	if !isFloat {
		var value uint64
		value, err = strconv.ParseUint(whole, base, 64)
		if err != nil {
			err = fmt.Errorf("%v: %w", token, ErrImmediateRange)
			return
		}
		if !fitsWord(value, negative, lex.wordSize()) {
			err = fmt.Errorf("%v: %w", token, ErrImmediateRange)
			return
		}
		ivalue := int64(value)
		if negative {
			ivalue = -ivalue
		}
		imm = operand.Immediate(machine.IntWord(ivalue, lex.wordSize()))
		return
	}

	var value float64
	if base == 10 {
		value, err = strconv.ParseFloat(digits, 64)
		if err != nil {
			err = fmt.Errorf("%v: %w", token, ErrImmediateRange)
			return
		}
	} else {
		if len(whole) > 0 {
			var ivalue uint64
			ivalue, err = strconv.ParseUint(whole, base, 64)
			if err != nil {
				err = fmt.Errorf("%v: %w", token, ErrImmediateRange)
				return
			}
			value = float64(ivalue)
		}
		scale := 1.0
		for _, digit := range fraction {
			scale /= float64(base)
			d, _ := strconv.ParseUint(string(digit), base, 8)
			value += float64(d) * scale
		}
	}
	if negative {
		value = math.Copysign(value, -1)
	}

	word, err := machine.FloatWord(value, lex.wordSize())
	if err != nil {
		return
	}
	imm = operand.Immediate(word)
	return
}

// fitsWord reports whether a magnitude fits a word of size bytes.
func fitsWord(magnitude uint64, negative bool, size int) bool {
	bits := size * 8
	if negative {
		return bits > 64 || magnitude <= uint64(1)<<(bits-1)
	}
	return bits >= 64 || magnitude <= uint64(1)<<bits-1
}

// Operand parses a single operand token.
func (lex *Lexer) Operand(token string) (op operand.Operand, err error) {
	switch {
	case IsRegister(token):
		index, _ := machine.RegisterIndex(token[1:])
		op = operand.Register(index)
	case IsDereference(token):
		match := reDereference.FindStringSubmatch(token)
		index, _ := machine.RegisterIndex(match[2])
		var offset int64
		if match[1] != "" {
			offset, err = strconv.ParseInt(match[1], 10, 64)
			if err != nil {
				err = fmt.Errorf("%v: %w", token, ErrImmediateRange)
				return
			}
		}
		op = operand.Dereference{Register: index, Offset: offset}
	case IsImmediate(token):
		op, err = lex.immediate(token)
	case reLabelRef.MatchString(token):
		op = operand.Label{Name: token}
	default:
		err = ErrOperand(token)
	}
	return
}

// parse parses one source line. A label definition returns its name.
func (lex *Lexer) parse(text string, lineNo int) (line *Line, label string, err error) {
	defer func() {
		if err != nil {
			err = &ErrParse{LineNo: lineNo, Line: strings.TrimSpace(text), Err: err}
		}
	}()

	if IsComment(text) {
		return
	}

	expanded, err := lex.expand(text, lineNo)
	if err != nil {
		return
	}

	expanded = strings.TrimSpace(expanded)
	if IsLabel(expanded) {
		label = strings.TrimSuffix(expanded, ":")
		return
	}

	expanded = strings.TrimSpace(strings.TrimSuffix(expanded, ";"))
	if len(expanded) == 0 {
		return
	}

	tokens := reSeparator.Split(expanded, -1)
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		err = ErrOperand(expanded)
		return
	}

	name := strings.ToLower(tokens[0])
	if !lex.IsInstruction(name) {
		err = fmt.Errorf("%w '%v'", ErrInstructionUnknown, tokens[0])
		return
	}

	args := make([]operand.Operand, 0, len(tokens)-1)
	for _, token := range tokens[1:] {
		var op operand.Operand
		op, err = lex.Operand(token)
		if err != nil {
			return
		}
		args = append(args, op)
	}

	_, err = lex.registry().Resolve(name, operand.Capabilities(args))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSignature, err)
		return
	}

	line = &Line{Instruction: name, Args: args}

	if lex.Verbose {
		log.Printf("asm: %d: %v", lineNo, line)
	}

	return
}

// ParseLine parses one source line. Comments, blank lines and label
// definitions return a nil line.
func (lex *Lexer) ParseLine(text string, lineNo int) (line *Line, err error) {
	line, _, err = lex.parse(text, lineNo)
	return
}
