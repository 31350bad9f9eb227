package huff

import (
	"fmt"
	"io"
)

// EncodeStream reads src to its end, writing the code of every byte to dst,
// then writes the code of EOF. src must be positioned at the start of the
// same input the table was built from. It returns the number of bits
// written. No padding is added; that is left to dst.
func EncodeStream(table *CodeTable, src BitSource, dst BitSink) (int64, error) {
	codes, err := packTable(table)
	if err != nil {
		return 0, err
	}
	if len(codes[EOF]) == 0 {
		return 0, fmt.Errorf("encode: no code for %v", EOF)
	}

	var bits, pos int64
	for {
		v, err := src.ReadBits(bitsPerByte)
		if err == io.EOF {
			break
		}
		if err != nil {
			return bits, fmt.Errorf("encode: read byte %d: %w", pos, err)
		}
		code := codes[v]
		if len(code) == 0 {
			return bits, fmt.Errorf("encode: no code for %v at byte %d", Symbol(v), pos)
		}
		if err := code.writeTo(dst); err != nil {
			return bits, fmt.Errorf("encode: write byte %d: %w", pos, err)
		}
		bits += code.bitLen()
		pos++
	}

	if err := codes[EOF].writeTo(dst); err != nil {
		return bits, fmt.Errorf("encode: write %v: %w", EOF, err)
	}
	bits += codes[EOF].bitLen()
	return bits, nil
}
