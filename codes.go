package huff

import "fmt"

// Code is a root-to-leaf path written as '0' (left) and '1' (right).
type Code string

// CodeTable maps every symbol to its code. Symbols absent from the tree have
// an empty code.
type CodeTable [AlphabetSize]Code

// BuildCodeTable derives the code of every leaf under root. A root that is
// itself a leaf gets the code "0" so that each symbol still costs one bit.
func BuildCodeTable(root Node) CodeTable {
	var t CodeTable
	if l, ok := root.(*Leaf); ok {
		t[l.Symbol] = "0"
		return t
	}
	path := make([]byte, 0, maxCodeLen)
	fillCodes(&t, root, path)
	return t
}

func fillCodes(t *CodeTable, n Node, path []byte) {
	switch n := n.(type) {
	case *Leaf:
		t[n.Symbol] = Code(path)
	case *Internal:
		fillCodes(t, n.Left, append(path, '0'))
		fillCodes(t, n.Right, append(path, '1'))
	}
}

// Len reports how many symbols have a code.
func (t *CodeTable) Len() int {
	n := 0
	for _, c := range t {
		if c != "" {
			n++
		}
	}
	return n
}

// codeChunk is up to 64 bits of a code, ready for BitSink.WriteBits.
type codeChunk struct {
	bits uint64
	n    uint8
}

// packed is a code split into chunks.
type packed []codeChunk

func pack(c Code) packed {
	p := make(packed, 0, (len(c)+63)/64)
	for len(c) > 0 {
		k := len(c)
		if k > 64 {
			k = 64
		}
		var v uint64
		for i := 0; i < k; i++ {
			v <<= 1
			if c[i] == '1' {
				v |= 1
			}
		}
		p = append(p, codeChunk{bits: v, n: uint8(k)})
		c = c[k:]
	}
	return p
}

func (p packed) writeTo(dst BitSink) error {
	for _, ch := range p {
		if err := dst.WriteBits(ch.bits, ch.n); err != nil {
			return err
		}
	}
	return nil
}

func (p packed) bitLen() int64 {
	var n int64
	for _, ch := range p {
		n += int64(ch.n)
	}
	return n
}

func packTable(t *CodeTable) ([AlphabetSize]packed, error) {
	var out [AlphabetSize]packed
	for s, c := range t {
		for i := 0; i < len(c); i++ {
			if c[i] != '0' && c[i] != '1' {
				return out, fmt.Errorf("code for %v has invalid digit %q", Symbol(s), c[i])
			}
		}
		out[s] = pack(c)
	}
	return out, nil
}
