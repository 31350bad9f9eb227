package huff

import (
	"fmt"
	"io"
)

// Weights holds the occurrence count of every symbol.
type Weights [AlphabetSize]uint64

// CountWeights reads src to its end one byte at a time and returns the
// weight of every symbol along with the number of bytes read. The EOF weight
// is always eofWeight. The caller must rewind src before reading it again.
func CountWeights(src BitSource) (Weights, int64, error) {
	var w Weights
	var n int64
	for {
		v, err := src.ReadBits(bitsPerByte)
		if err == io.EOF {
			break
		}
		if err != nil {
			return w, n, fmt.Errorf("count weights at byte %d: %w", n, err)
		}
		w[v]++
		n++
	}
	w[EOF] = eofWeight
	return w, n, nil
}

// Distinct reports how many symbols have a non-zero weight.
func (w *Weights) Distinct() int {
	n := 0
	for _, c := range w {
		if c > 0 {
			n++
		}
	}
	return n
}
