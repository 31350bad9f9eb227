package huff

import (
	"fmt"
	"io"
)

// WriteHeader writes root in pre-order: a 0 bit for an internal node
// followed by its left and right subtrees, or a 1 bit and the SymbolBits-wide
// symbol for a leaf.
func WriteHeader(dst BitSink, root Node) error {
	if err := writeNode(dst, root); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func writeNode(dst BitSink, n Node) error {
	switch n := n.(type) {
	case *Leaf:
		if err := dst.WriteBits(1, 1); err != nil {
			return err
		}
		return dst.WriteBits(uint64(n.Symbol), SymbolBits)
	case *Internal:
		if err := dst.WriteBits(0, 1); err != nil {
			return err
		}
		if err := writeNode(dst, n.Left); err != nil {
			return err
		}
		return writeNode(dst, n.Right)
	default:
		return fmt.Errorf("unknown node type %T", n)
	}
}

// ReadHeader reads a tree written by WriteHeader. Node weights are zero.
//
// Besides running out of input, a header is rejected as corrupt when a leaf
// holds a symbol outside the alphabet, a symbol appears twice, the tree is
// deeper than any tree over the alphabet can be, or it does not contain the
// EOF leaf.
func ReadHeader(src BitSource) (Node, error) {
	r := headerReader{src: src}
	root, err := r.node(0)
	if err != nil {
		return nil, err
	}
	if !r.seen[EOF] {
		return nil, fmt.Errorf("%w: no EOF leaf", ErrCorruptHeader)
	}
	return root, nil
}

type headerReader struct {
	src  BitSource
	bits int64
	seen [AlphabetSize]bool
}

func (r *headerReader) read(n uint8) (uint64, error) {
	v, err := r.src.ReadBits(n)
	if err == io.EOF {
		return 0, fmt.Errorf("%w: input ends after %d header bits", ErrCorruptHeader, r.bits)
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	r.bits += int64(n)
	return v, nil
}

func (r *headerReader) node(depth int) (Node, error) {
	if depth > maxCodeLen {
		return nil, fmt.Errorf("%w: tree deeper than %d", ErrCorruptHeader, maxCodeLen)
	}
	bit, err := r.read(1)
	if err != nil {
		return nil, err
	}
	if bit == 0 {
		left, err := r.node(depth + 1)
		if err != nil {
			return nil, err
		}
		right, err := r.node(depth + 1)
		if err != nil {
			return nil, err
		}
		n := newInternal(left, right)
		n.Count = 0
		return n, nil
	}

	v, err := r.read(SymbolBits)
	if err != nil {
		return nil, err
	}
	if v > uint64(EOF) {
		return nil, fmt.Errorf("%w: symbol %d out of range", ErrCorruptHeader, v)
	}
	s := Symbol(v)
	if r.seen[s] {
		return nil, fmt.Errorf("%w: duplicate leaf %v", ErrCorruptHeader, s)
	}
	r.seen[s] = true
	return &Leaf{Symbol: s}, nil
}
