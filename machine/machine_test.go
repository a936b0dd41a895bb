package machine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWord(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		value int64
		size  int
		word  []byte
	}){
		{"zero", 0, 4, []byte{0, 0, 0, 0}},
		{"forty-two", 42, 4, []byte{0, 0, 0, 42}},
		{"minus-one", -1, 4, []byte{0xff, 0xff, 0xff, 0xff}},
		{"minus-two-wide", -2, 8, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}},
		{"byte", 0x7f, 1, []byte{0x7f}},
	}

	for _, entry := range table {
		word := IntWord(entry.value, entry.size)
		assert.Equal(entry.word, word, entry.name)
		assert.Equal(entry.value, Int(word), entry.name)
	}

	assert.Equal(int64(-1), Int(IntWord(0xffffffff, 4)))
}

func TestFloatWord(t *testing.T) {
	assert := assert.New(t)

	word, err := FloatWord(1.5, 4)
	assert.NoError(err)
	assert.Equal([]byte{0x3f, 0xc0, 0x00, 0x00}, word)
	value, err := Float(word)
	assert.NoError(err)
	assert.Equal(1.5, value)

	word, err = FloatWord(-0.25, 8)
	assert.NoError(err)
	value, err = Float(word)
	assert.NoError(err)
	assert.Equal(-0.25, value)

	_, err = FloatWord(1.0, 2)
	assert.ErrorIs(err, ErrFloatWordSize)
	assert.ErrorIs(err, ErrSimulation)
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	regs, err := NewRegisters(4)
	require.NoError(t, err)
	assert.Equal(REGISTER_COUNT, regs.Count())

	assert.NoError(regs.Set(REG_T0, IntWord(42, 4)))
	value, err := regs.Int(REG_T0)
	assert.NoError(err)
	assert.Equal(int64(42), value)

	word, err := regs.Lookup("T0")
	assert.NoError(err)
	assert.Equal(IntWord(42, 4), word)

	word, err = regs.Lookup("20")
	assert.NoError(err)
	assert.Equal(IntWord(42, 4), word)

	// Zero register discards writes.
	assert.NoError(regs.Set(REG_ZERO, IntWord(7, 4)))
	value, err = regs.Int(REG_ZERO)
	assert.NoError(err)
	assert.Equal(int64(0), value)

	assert.ErrorIs(regs.Set(REGISTER_COUNT, IntWord(1, 4)), ErrRegisterInvalid)
	assert.ErrorIs(regs.Set(REG_T0+1, IntWord(1, 8)), ErrValueLength)
	_, err = regs.Lookup("abc")
	assert.ErrorIs(err, ErrRegisterInvalid)

	regs.Reset()
	for _, v := range regs.Snapshot() {
		assert.Equal(int64(0), v)
	}

	_, err = NewRegisters(0)
	assert.ErrorIs(err, ErrWordSize)
}

func TestRegisterIndex(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		index int
		ok    bool
	}){
		{"zero", REG_ZERO, true},
		{"ZERO", REG_ZERO, true},
		{"pc", REG_PC, true},
		{"sp", REG_SP, true},
		{"a2", REG_A0 + 2, true},
		{"s9", REG_S0 + 9, true},
		{"t0", REG_T0, true},
		{"hi", REG_HI, true},
		{"0", 0, true},
		{"31", 31, true},
		{"32", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"ABC", 0, false},
		{"", 0, false},
	}

	for _, entry := range table {
		index, ok := RegisterIndex(entry.name)
		assert.Equal(entry.ok, ok, entry.name)
		if entry.ok {
			assert.Equal(entry.index, index, entry.name)
			assert.Equal(index, func() int { n, _ := RegisterIndex(RegisterName(index)); return n }(), entry.name)
		}
	}
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem, err := NewMemory(4, 16)
	require.NoError(t, err)
	assert.Equal(128, mem.Capacity())
	assert.Equal(int64(64), mem.StackStart())
	assert.Equal(int64(128), mem.InitialStackPointer())

	assert.NoError(mem.Write(100, []byte{1, 2, 3, 4}))
	data, err := mem.Read(100, 4)
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 4}, data)

	word, err := mem.ReadWord(100)
	assert.NoError(err)
	assert.Equal(int64(0x01020304), Int(word))

	var addrErr *ErrAddress
	err = mem.Write(126, []byte{1, 2, 3, 4})
	assert.ErrorIs(err, ErrOutOfBounds)
	assert.ErrorIs(err, ErrSimulation)
	assert.True(errors.As(err, &addrErr))
	assert.Equal(int64(126), addrErr.Address)

	_, err = mem.Read(-1, 1)
	assert.ErrorIs(err, ErrOutOfBounds)
	_, err = mem.Read(128, 0)
	assert.NoError(err)

	wrap := [](struct {
		name    string
		address int64
		length  int
	}){
		{"max address", math.MaxInt64, 4},
		{"max address less one", math.MaxInt64 - 1, 4},
		{"past end", 129, 0},
		{"length over capacity", 0, 129},
	}
	for _, entry := range wrap {
		_, err = mem.Read(entry.address, entry.length)
		assert.ErrorIs(err, ErrOutOfBounds, entry.name)
		err = mem.Write(entry.address, make([]byte, entry.length))
		assert.ErrorIs(err, ErrOutOfBounds, entry.name)
		_, err = mem.ReadString(entry.address, entry.length)
		assert.ErrorIs(err, ErrOutOfBounds, entry.name)
	}

	mem.Reset()
	data, err = mem.Read(100, 4)
	assert.NoError(err)
	assert.Equal([]byte{0, 0, 0, 0}, data)
}

func TestMemoryString(t *testing.T) {
	assert := assert.New(t)

	mem, err := NewMemory(4, 16)
	require.NoError(t, err)

	assert.NoError(mem.WriteString(8, "hello", 16))
	text, err := mem.ReadString(8, 16)
	assert.NoError(err)
	assert.Equal("hello", text)

	text, err = mem.ReadString(8, 3)
	assert.NoError(err)
	assert.Equal("hel", text)

	// Truncation keeps room for the terminator.
	assert.NoError(mem.WriteString(8, "truncated", 4))
	text, err = mem.ReadString(8, 16)
	assert.NoError(err)
	assert.Equal("tru", text)

	assert.Equal([]byte{'a', 'b', 0, 0}, EncodeString("ab", 4))
	assert.Equal([]byte{}, EncodeString("ab", 0))

	_, err = mem.ReadString(120, 16)
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestMemoryStack(t *testing.T) {
	assert := assert.New(t)

	mem, err := NewMemory(4, 16)
	require.NoError(t, err)

	assert.NoError(mem.CheckStack(124))
	assert.NoError(mem.CheckStack(64))

	err = mem.CheckStack(122)
	assert.Equal(ErrMisalignedStackPointer(122), err)
	assert.ErrorIs(err, ErrSimulation)
	assert.Equal("misaligned stack pointer (sp) value: 122", err.Error())

	// Stack overflow into the heap, and underflow past the top.
	assert.ErrorIs(mem.CheckStack(60), ErrOutOfBounds)
	assert.ErrorIs(mem.CheckStack(128), ErrOutOfBounds)
}

func TestApply(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(4, 64)
	require.NoError(t, err)

	bytes := []byte{0xde, 0xad, 0xbe, 0xef}
	seq := Sequence{}.SetRegister(3, IntWord(42, 4)).SetMemory(100, bytes)
	assert.True(seq.Writes(3))
	assert.False(seq.Writes(REG_PC))

	assert.NoError(m.Apply(seq))

	for n, v := range m.Registers.Snapshot() {
		if n == 3 {
			assert.Equal(int64(42), v)
		} else {
			assert.Equal(int64(0), v, RegisterName(n))
		}
	}

	data, err := m.Read(0, m.Capacity())
	assert.NoError(err)
	for n, b := range data {
		if n >= 100 && n < 104 {
			assert.Equal(bytes[n-100], b)
		} else {
			assert.Equal(byte(0), b)
		}
	}
}

func TestApplyOrder(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(4, 64)
	require.NoError(t, err)

	seq := Sequence{}.
		SetRegister(REG_T0, IntWord(1, 4)).
		SetRegister(REG_T0, IntWord(2, 4))
	assert.NoError(m.Apply(seq))
	value, _ := m.Registers.Int(REG_T0)
	assert.Equal(int64(2), value)
}

func TestApplyAtomic(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(4, 16)
	require.NoError(t, err)

	seq := Sequence{}.
		SetRegister(REG_T0, IntWord(1, 4)).
		SetMemory(int64(m.Capacity()), IntWord(1, 4))

	err = m.Apply(seq)
	assert.ErrorIs(err, ErrOutOfBounds)

	value, _ := m.Registers.Int(REG_T0)
	assert.Equal(int64(0), value)

	err = m.Apply(Sequence{{Target: MemoryRange{Address: 0, Length: 8}, Value: []byte{1}}})
	assert.ErrorIs(err, ErrValueLength)

	m.Registers.Set(REG_PC, IntWord(7, 4))
	assert.Equal(7, m.PC())
	m.Reset()
	assert.Equal(0, m.PC())
}
