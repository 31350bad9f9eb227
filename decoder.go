package huff

import (
	"fmt"
	"io"
)

type decodeState uint8

const (
	stateWalking decodeState = iota // descending from the root
	stateEmitted                    // a byte was written, cursor back at the root
	stateDone                       // EOF leaf reached
	stateError
)

func (s decodeState) terminal() bool {
	return s == stateDone || s == stateError
}

type decoder struct {
	root  Node
	cur   Node
	src   BitSource
	dst   BitSink
	state decodeState
	n     int64
}

// DecodeStream walks root one bit at a time, 0 to the left and 1 to the
// right, writing the symbol of every leaf it reaches to dst as a byte and
// starting over at the root, until it reaches the EOF leaf. It returns the
// number of bytes written. If src runs out first the error is
// ErrTruncatedBody.
//
// When root is itself a leaf every bit leads to it.
func DecodeStream(root Node, src BitSource, dst BitSink) (int64, error) {
	d := decoder{root: root, cur: root, src: src, dst: dst}
	for !d.state.terminal() {
		if err := d.step(); err != nil {
			d.state = stateError
			return d.n, err
		}
	}
	return d.n, nil
}

func (d *decoder) step() error {
	bit, err := d.src.ReadBits(1)
	if err == io.EOF {
		return fmt.Errorf("%w: input ends after %d bytes without %v", ErrTruncatedBody, d.n, EOF)
	}
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	next := d.cur
	if n, ok := d.cur.(*Internal); ok {
		if bit == 0 {
			next = n.Left
		} else {
			next = n.Right
		}
	}

	leaf, ok := next.(*Leaf)
	if !ok {
		d.cur = next
		d.state = stateWalking
		return nil
	}
	if leaf.Symbol == EOF {
		d.state = stateDone
		return nil
	}
	if err := d.dst.WriteBits(uint64(leaf.Symbol), bitsPerByte); err != nil {
		return fmt.Errorf("decode: write byte %d: %w", d.n, err)
	}
	d.n++
	d.cur = d.root
	d.state = stateEmitted
	return nil
}
