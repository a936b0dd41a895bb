package machine

import (
	"math"
)

// IntWord encodes value as a big-endian two's complement word of size bytes.
func IntWord(value int64, size int) (word []byte) {
	word = make([]byte, size)
	for n := size - 1; n >= 0; n-- {
		word[n] = byte(value)
		value >>= 8
	}
	return
}

// Int decodes a big-endian two's complement word, sign extending it.
func Int(word []byte) (value int64) {
	if len(word) == 0 {
		return
	}

	if word[0]&0x80 != 0 {
		value = -1
	}
	for _, b := range word {
		value = (value << 8) | int64(b)
	}
	return
}

// FloatWord encodes value as an IEEE-754 word of size 4 or 8.
func FloatWord(value float64, size int) (word []byte, err error) {
	switch size {
	case 4:
		word = IntWord(int64(math.Float32bits(float32(value))), 4)
	case 8:
		word = IntWord(int64(math.Float64bits(value)), 8)
	default:
		err = ErrFloatWordSize
	}
	return
}

// Float decodes an IEEE-754 word of size 4 or 8.
func Float(word []byte) (value float64, err error) {
	switch len(word) {
	case 4:
		value = float64(math.Float32frombits(uint32(Int(word))))
	case 8:
		value = math.Float64frombits(uint64(Int(word)))
	default:
		err = ErrFloatWordSize
	}
	return
}
