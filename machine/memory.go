package machine

const (
	DEFAULT_WORD_SIZE    = 4     // Default bytes per word.
	DEFAULT_MEMORY_WORDS = 65536 // Default words per segment (heap and stack each).
)

// Memory is a flat byte store. The heap occupies the lower half and the
// stack the upper half; the stack grows down from Capacity().
type Memory struct {
	wordSize int
	words    int
	data     []byte
}

// NewMemory allocates a zeroed memory of words per segment.
func NewMemory(wordSize int, words int) (mem *Memory, err error) {
	if wordSize < 1 || wordSize > 8 || words < 1 {
		err = ErrWordSize
		return
	}

	mem = &Memory{
		wordSize: wordSize,
		words:    words,
		data:     make([]byte, 2*words*wordSize),
	}
	return
}

// WordSize in bytes.
func (mem *Memory) WordSize() int {
	return mem.wordSize
}

// Capacity in bytes.
func (mem *Memory) Capacity() int {
	return len(mem.data)
}

// HeapStart is the lowest heap address.
func (mem *Memory) HeapStart() int64 {
	return 0
}

// StackStart is the lowest address of the stack segment.
func (mem *Memory) StackStart() int64 {
	return int64(mem.words * mem.wordSize)
}

// InitialStackPointer is the stack pointer of an empty stack.
func (mem *Memory) InitialStackPointer() int64 {
	return int64(len(mem.data))
}

// Check validates that [address, address+length) is inside memory.
func (mem *Memory) Check(address int64, length int) (err error) {
	capacity := int64(len(mem.data))
	if address < 0 || length < 0 || address > capacity || int64(length) > capacity-address {
		err = &ErrAddress{Address: address, Length: length, Capacity: len(mem.data)}
	}
	return
}

// CheckStack validates a stack access of one word at sp.
func (mem *Memory) CheckStack(sp int64) (err error) {
	if sp%int64(mem.wordSize) != 0 {
		return ErrMisalignedStackPointer(sp)
	}
	if sp < mem.StackStart() {
		return &ErrAddress{Address: sp, Length: mem.wordSize, Capacity: len(mem.data)}
	}
	return mem.Check(sp, mem.wordSize)
}

// Read returns a copy of length bytes at address.
func (mem *Memory) Read(address int64, length int) (data []byte, err error) {
	err = mem.Check(address, length)
	if err != nil {
		return
	}

	data = make([]byte, length)
	copy(data, mem.data[address:])
	return
}

// ReadWord reads one word at address.
func (mem *Memory) ReadWord(address int64) (word []byte, err error) {
	return mem.Read(address, mem.wordSize)
}

// Write stores data at address.
func (mem *Memory) Write(address int64, data []byte) (err error) {
	err = mem.Check(address, len(data))
	if err != nil {
		return
	}

	copy(mem.data[address:], data)
	return
}

// ReadString reads bytes at address until a NUL or maxLength bytes.
func (mem *Memory) ReadString(address int64, maxLength int) (text string, err error) {
	if maxLength < 0 {
		maxLength = 0
	}
	err = mem.Check(address, maxLength)
	if err != nil {
		return
	}

	data := mem.data[address : address+int64(maxLength)]
	for n, b := range data {
		if b == 0 {
			data = data[:n]
			break
		}
	}

	text = string(data)
	return
}

// EncodeString returns text as exactly maxLength bytes: truncated to leave
// room for the NUL terminator and zero padded.
func EncodeString(text string, maxLength int) (data []byte) {
	if maxLength <= 0 {
		return []byte{}
	}

	data = make([]byte, maxLength)
	copy(data[:maxLength-1], text)
	return
}

// WriteString stores text at address as maxLength bytes.
func (mem *Memory) WriteString(address int64, text string, maxLength int) (err error) {
	return mem.Write(address, EncodeString(text, maxLength))
}

// Reset zeros all memory.
func (mem *Memory) Reset() {
	clear(mem.data)
}
