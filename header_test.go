package huff

import (
	"errors"
	"testing"
)

// aaabHeader is the header of the tree for "aaab": two internal nodes, then
// leaves b (98), EOF (256) and a (97).
const aaabHeader = "0 0 1001100010 1100000000 1001100001"

func TestWriteHeaderAAAB(t *testing.T) {
	out := &bitString{}
	if err := WriteHeader(out, BuildTree(weightsOf([]byte("aaab")))); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if want := bitsOf(aaabHeader).String(); out.String() != want {
		t.Errorf("expected header %s, got %s", want, out)
	}
}

func TestWriteHeaderLeafRoot(t *testing.T) {
	out := &bitString{}
	if err := WriteHeader(out, &Leaf{Symbol: EOF}); err != nil {
		t.Fatal(err)
	}
	if want := "1100000000"; out.String() != want {
		t.Errorf("expected %s, got %s", want, out)
	}
}

func TestReadHeaderRoundTrip(t *testing.T) {
	inputs := [][]byte{nil, []byte("aaab"), skewed(), allBytes(), randomBytes(9, 3000, 70)}
	for i, data := range inputs {
		root := BuildTree(weightsOf(data))
		buf := &bitString{}
		if err := WriteHeader(buf, root); err != nil {
			t.Fatal(err)
		}
		// Trailing bits must be left for the body.
		_ = buf.WriteBits(0b101, 3)

		got, err := ReadHeader(buf)
		if err != nil {
			t.Fatalf("input %d: ReadHeader: %v", i, err)
		}
		if BuildCodeTable(got) != BuildCodeTable(root) {
			t.Errorf("input %d: decoded tree has different codes", i)
		}
		if got.Weight() != 0 {
			t.Errorf("input %d: expected zero weight, got %d", i, got.Weight())
		}
		if buf.pos != len(buf.bits)-3 {
			t.Errorf("input %d: header reader consumed %d bits, want %d", i, buf.pos, len(buf.bits)-3)
		}
	}
}

func TestReadHeaderCorrupt(t *testing.T) {
	tests := []struct {
		name string
		bits string
	}{
		{"empty", ""},
		{"truncated symbol", "1 1000"},
		{"missing right subtree", "0 1100000000"},
		{"truncated mid tree", "0 0 1001100010 1100000000"},
		{"symbol out of range", "0 1100000001 1100000000"},
		{"no EOF leaf", "0 1001100001 1001100010"},
		{"duplicate leaf", "0 0 1001100001 1001100001 1100000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeader(bitsOf(tt.bits))
			if !errors.Is(err, ErrCorruptHeader) {
				t.Errorf("expected ErrCorruptHeader, got %v", err)
			}
		})
	}
}

func TestReadHeaderRejectsDeepTrees(t *testing.T) {
	// A run of internal-node bits longer than any valid tree can be deep.
	src := &bitString{}
	for i := 0; i < 10000; i++ {
		_ = src.WriteBits(0, 1)
	}
	_, err := ReadHeader(src)
	if !errors.Is(err, ErrCorruptHeader) {
		t.Fatalf("expected ErrCorruptHeader, got %v", err)
	}
	if src.pos > maxCodeLen+1 {
		t.Errorf("reader kept going for %d bits", src.pos)
	}
}

func TestReadHeaderPropagatesReadErrors(t *testing.T) {
	boom := errors.New("cable unplugged")
	_, err := ReadHeader(brokenSource{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped read error, got %v", err)
	}
	if errors.Is(err, ErrCorruptHeader) {
		t.Errorf("I/O failure reported as corrupt header: %v", err)
	}
}
