package huff

import (
	"io"
	"math/rand"
	"strings"
)

// bitString is an in-memory BitSource and BitSink that keeps bits as '0'
// and '1' characters, so tests can assert exact bit layouts.
type bitString struct {
	bits   []byte
	pos    int
	reads  int
	closes int
}

func bitsOf(s string) *bitString {
	return &bitString{bits: []byte(strings.ReplaceAll(s, " ", ""))}
}

func bytesSource(data []byte) *bitString {
	b := &bitString{}
	for _, c := range data {
		_ = b.WriteBits(uint64(c), 8)
	}
	return b
}

func (b *bitString) WriteBits(value uint64, n uint8) error {
	for i := int(n) - 1; i >= 0; i-- {
		if value>>uint(i)&1 == 1 {
			b.bits = append(b.bits, '1')
		} else {
			b.bits = append(b.bits, '0')
		}
	}
	return nil
}

func (b *bitString) Close() error {
	b.closes++
	return nil
}

func (b *bitString) ReadBits(n uint8) (uint64, error) {
	b.reads++
	if b.pos+int(n) > len(b.bits) {
		return 0, io.EOF
	}
	var v uint64
	for _, c := range b.bits[b.pos : b.pos+int(n)] {
		v <<= 1
		if c == '1' {
			v |= 1
		}
	}
	b.pos += int(n)
	return v, nil
}

func (b *bitString) Rewind() error {
	b.pos = 0
	return nil
}

func (b *bitString) String() string { return string(b.bits) }

// bytes packs the bits MSB-first, zero padding the last byte.
func (b *bitString) bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, c := range b.bits {
		if c == '1' {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

// failingSink fails every write after the first limit bits.
type failingSink struct {
	limit  int
	bits   int
	err    error
	closes int
}

func (f *failingSink) WriteBits(_ uint64, n uint8) error {
	if f.bits+int(n) > f.limit {
		return f.err
	}
	f.bits += int(n)
	return nil
}

func (f *failingSink) Close() error {
	f.closes++
	return nil
}

func randomBytes(seed int64, n, alphabet int) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Intn(alphabet))
	}
	return b
}

func allBytes() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
