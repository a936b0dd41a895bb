package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// Register indexes.
const (
	REG_ZERO = 0  // Always zero.
	REG_PC   = 1  // Program counter, as a line index.
	REG_SP   = 2  // Stack pointer.
	REG_RA   = 3  // Return address.
	REG_A0   = 4  // Arguments a0-a2.
	REG_R0   = 7  // Return values r0-r2.
	REG_S0   = 10 // Saved s0-s9.
	REG_T0   = 20 // Temporaries t0-t9.
	REG_LO   = 30 // Low half of wide results.
	REG_HI   = 31 // High half of wide results.

	REGISTER_COUNT = 32
)

var registerNames = func() (names [REGISTER_COUNT]string) {
	names[REG_ZERO] = "zero"
	names[REG_PC] = "pc"
	names[REG_SP] = "sp"
	names[REG_RA] = "ra"
	for n := range 3 {
		names[REG_A0+n] = fmt.Sprintf("a%d", n)
		names[REG_R0+n] = fmt.Sprintf("r%d", n)
	}
	for n := range 10 {
		names[REG_S0+n] = fmt.Sprintf("s%d", n)
		names[REG_T0+n] = fmt.Sprintf("t%d", n)
	}
	names[REG_LO] = "lo"
	names[REG_HI] = "hi"
	return
}()

var registerIndex = func() map[string]int {
	index := make(map[string]int, REGISTER_COUNT)
	for n, name := range registerNames {
		index[name] = n
	}
	return index
}()

// RegisterName returns the canonical name of a register index.
func RegisterName(index int) string {
	if index < 0 || index >= REGISTER_COUNT {
		return ""
	}
	return registerNames[index]
}

// RegisterIndex finds a register by case-insensitive name or decimal index.
func RegisterIndex(name string) (index int, ok bool) {
	index, ok = registerIndex[strings.ToLower(name)]
	if ok {
		return
	}

	index, err := strconv.Atoi(name)
	if err != nil || index < 0 || index >= REGISTER_COUNT || name[0] == '+' || name[0] == '-' {
		return 0, false
	}

	ok = true
	return
}

// Registers is the register file. All registers share one word size.
type Registers struct {
	wordSize int
	word     [REGISTER_COUNT][]byte
}

// NewRegisters allocates a zeroed register file.
func NewRegisters(wordSize int) (regs *Registers, err error) {
	if wordSize < 1 || wordSize > 8 {
		err = ErrWordSize
		return
	}

	regs = &Registers{wordSize: wordSize}
	for n := range regs.word {
		regs.word[n] = make([]byte, wordSize)
	}

	return
}

// WordSize in bytes.
func (regs *Registers) WordSize() int {
	return regs.wordSize
}

// Count of registers.
func (regs *Registers) Count() int {
	return len(regs.word)
}

// Get returns a copy of a register word.
func (regs *Registers) Get(index int) (word []byte, err error) {
	if index < 0 || index >= len(regs.word) {
		err = ErrRegister(index)
		return
	}

	word = make([]byte, regs.wordSize)
	copy(word, regs.word[index])
	return
}

// Lookup returns a copy of a register word by name or index.
func (regs *Registers) Lookup(name string) (word []byte, err error) {
	index, ok := RegisterIndex(name)
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	return regs.Get(index)
}

// Int returns the signed integer view of a register.
func (regs *Registers) Int(index int) (value int64, err error) {
	word, err := regs.Get(index)
	if err != nil {
		return
	}
	value = Int(word)
	return
}

// Float returns the floating point view of a register.
func (regs *Registers) Float(index int) (value float64, err error) {
	word, err := regs.Get(index)
	if err != nil {
		return
	}
	return Float(word)
}

// Set writes a register. Writes to the zero register are discarded.
func (regs *Registers) Set(index int, word []byte) (err error) {
	err = regs.check(index, word)
	if err != nil {
		return
	}

	if index == REG_ZERO {
		return
	}

	copy(regs.word[index], word)
	return
}

// check validates a register write.
func (regs *Registers) check(index int, word []byte) (err error) {
	if index < 0 || index >= len(regs.word) {
		return ErrRegister(index)
	}
	if len(word) != regs.wordSize {
		return ErrValueLength
	}
	return
}

// Reset zeros all registers.
func (regs *Registers) Reset() {
	for _, word := range regs.word {
		clear(word)
	}
}

// Snapshot returns the signed integer view of every register.
func (regs *Registers) Snapshot() (values []int64) {
	values = make([]int64, len(regs.word))
	for n, word := range regs.word {
		values[n] = Int(word)
	}
	return
}

// String returns the register file as text.
func (regs *Registers) String() (text string) {
	for n, word := range regs.word {
		text += fmt.Sprintf("% 5s: %d\n", "$"+registerNames[n], Int(word))
	}
	return
}
