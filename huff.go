// Package huff implements a static Huffman compressor.
//
// Compression makes two passes over the input. The first pass counts byte
// frequencies, from which a prefix-code tree is built. The tree is written as
// a header and the second pass replaces every byte with its code, followed by
// the code of a synthetic end-of-stream symbol.
//
// Wire format:
//
//	magic  = 32 bits, 0xface8201
//	header = pre-order tree: internal node = 0, leaf = 1 + 9-bit symbol
//	body   = codes of the input bytes, then the end-of-stream code
//
// There are no length fields. Decoding stops at the end-of-stream leaf and
// any padding after it is ignored.
package huff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/seiflotfy/huff/bitstream"
	"github.com/seiflotfy/huff/logger"
)

// Symbol is a byte value (0-255) or EOF.
type Symbol uint16

const (
	// EOF is the end-of-stream symbol. It never occurs in input data.
	EOF Symbol = 256
	// AlphabetSize is the number of symbols including EOF.
	AlphabetSize = 257
	// SymbolBits is the width of a leaf symbol in the header.
	SymbolBits = 9
	// Magic identifies a compressed stream.
	Magic uint32 = 0xface8201

	bitsPerByte = 8
	magicBits   = 32
	eofWeight   = 1 // EOF is seeded once so it is never starved out of the tree
	maxCodeLen  = AlphabetSize - 1
)

func (s Symbol) String() string {
	switch {
	case s == EOF:
		return "EOF"
	case s > EOF:
		return fmt.Sprintf("Symbol(%d)", uint16(s))
	case s >= 0x20 && s < 0x7f:
		return fmt.Sprintf("%q", rune(s))
	default:
		return fmt.Sprintf("0x%02x", uint16(s))
	}
}

var (
	// ErrBadMagic indicates the input does not start with Magic.
	ErrBadMagic = errors.New("bad magic")
	// ErrCorruptHeader indicates the tree header is truncated or malformed.
	ErrCorruptHeader = errors.New("corrupt header")
	// ErrTruncatedBody indicates the body ended before the EOF code.
	ErrTruncatedBody = errors.New("truncated body")
)

// BitSource is the rewindable input of the codec.
type BitSource interface {
	// ReadBits returns the next n bits, or io.EOF when fewer than n remain.
	ReadBits(n uint8) (uint64, error)
	// Rewind restores the read position to the start of the input.
	Rewind() error
}

// BitSink is the output of the codec.
type BitSink interface {
	// WriteBits appends the low n bits of value.
	WriteBits(value uint64, n uint8) error
	// Close flushes and releases the sink.
	Close() error
}

// Debug levels for Config.DebugLevel.
const (
	DebugOff  = 0
	DebugLow  = 1 // per call summaries
	DebugHigh = 4 // weights, codes and the tree
)

// Config holds configuration for Compress and Decompress. It is only read
// during a call.
type Config struct {
	DebugLevel int
	Logger     logger.Logger
	// OnTree, if set, is called with the tree once it is built on compress
	// or read on decompress.
	OnTree func(Node)
}

// Option is a functional option for configuring the codec.
type Option func(*Config)

// WithDebugLevel sets the verbosity of diagnostic logging.
func WithDebugLevel(level int) Option {
	return func(c *Config) {
		c.DebugLevel = level
	}
}

// WithTreeHook sets Config.OnTree.
func WithTreeHook(fn func(Node)) Option {
	return func(c *Config) {
		c.OnTree = fn
	}
}

// WithLogger sets the logger used for diagnostics. The default discards
// everything.
func WithLogger(l logger.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return cfg
}

func (c Config) observe(root Node) {
	if c.OnTree != nil {
		c.OnTree(root)
	}
	if c.DebugLevel >= DebugHigh {
		logTree(c, root)
	}
}

func (c Config) debugf(level int, format string, v ...any) {
	if c.DebugLevel >= level {
		c.Logger.Infof(format, v...)
	}
}

// Stats describes a finished Compress or Decompress call.
type Stats struct {
	BytesIn    int64 // bytes scanned on compress, bytes of input consumed on decompress
	BytesOut   int64 // bytes decoded on decompress, bytes of output on compress
	Symbols    int   // leaves in the tree, EOF included
	HeaderBits int64
	BodyBits   int64
}

// TotalBits is the size of the compressed stream before byte padding.
func (s Stats) TotalBits() int64 {
	return magicBits + s.HeaderBits + s.BodyBits
}

// Compress encodes src into dst. src is read twice and rewound in between.
// dst is closed before Compress returns, on success and on failure.
func Compress(src BitSource, dst BitSink, opts ...Option) (stats Stats, err error) {
	cfg := newConfig(opts)
	out := &countingSink{sink: dst}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			cfg.Logger.Errorf("compress: %v", err)
		}
	}()

	weights, n, err := CountWeights(src)
	if err != nil {
		return stats, err
	}
	stats.BytesIn = n
	if err := src.Rewind(); err != nil {
		return stats, fmt.Errorf("rewind input: %w", err)
	}

	root := BuildTree(weights)
	table := BuildCodeTable(root)
	stats.Symbols = table.Len()
	if cfg.DebugLevel >= DebugHigh {
		logWeights(cfg, &weights)
		logCodes(cfg, &table)
	}
	cfg.observe(root)

	if err := out.WriteBits(uint64(Magic), magicBits); err != nil {
		return stats, fmt.Errorf("write magic: %w", err)
	}
	if err := WriteHeader(out, root); err != nil {
		return stats, err
	}
	stats.HeaderBits = out.bits - magicBits

	stats.BodyBits, err = EncodeStream(&table, src, out)
	if err != nil {
		return stats, err
	}
	stats.BytesOut = (out.bits + bitsPerByte - 1) / bitsPerByte

	cfg.debugf(DebugLow, "compress: %d bytes in, %d symbols, header %d bits, body %d bits, %d bytes out",
		stats.BytesIn, stats.Symbols, stats.HeaderBits, stats.BodyBits, stats.BytesOut)
	return stats, nil
}

// Decompress decodes src into dst. dst is closed before Decompress returns,
// on success and on failure. Output written before a failure is not valid.
func Decompress(src BitSource, dst BitSink, opts ...Option) (stats Stats, err error) {
	cfg := newConfig(opts)
	in := &countingSource{src: src}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			cfg.Logger.Errorf("decompress: %v", err)
		}
	}()

	magic, err := in.ReadBits(magicBits)
	if err != nil {
		if err == io.EOF {
			return stats, fmt.Errorf("%w: input shorter than %d bits", ErrBadMagic, magicBits)
		}
		return stats, fmt.Errorf("read magic: %w", err)
	}
	if uint32(magic) != Magic {
		return stats, fmt.Errorf("%w: got %#08x, want %#08x", ErrBadMagic, magic, Magic)
	}

	root, err := ReadHeader(in)
	if err != nil {
		return stats, err
	}
	stats.HeaderBits = in.bits - magicBits
	stats.Symbols = countLeaves(root)
	cfg.observe(root)

	stats.BytesOut, err = DecodeStream(root, in, dst)
	stats.BodyBits = in.bits - magicBits - stats.HeaderBits
	stats.BytesIn = (in.bits + bitsPerByte - 1) / bitsPerByte
	if err != nil {
		return stats, err
	}

	cfg.debugf(DebugLow, "decompress: header %d bits, body %d bits, %d bytes out",
		stats.HeaderBits, stats.BodyBits, stats.BytesOut)
	return stats, nil
}

// CompressStream compresses r into w. r must be seekable to its start.
func CompressStream(r io.ReadSeeker, w io.Writer, opts ...Option) (Stats, error) {
	return Compress(bitstream.NewReader(r), bitstream.NewWriter(w), opts...)
}

// DecompressStream decompresses r into w.
func DecompressStream(r io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	return Decompress(bitstream.NewReader(r), bitstream.NewWriter(w), opts...)
}

// CompressBytes returns the compressed form of data.
func CompressBytes(data []byte, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Compress(bitstream.NewBytesReader(data), bitstream.NewWriter(&buf), opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressBytes returns the original form of compressed data.
func DecompressBytes(data []byte, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Decompress(bitstream.NewBytesReader(data), bitstream.NewWriter(&buf), opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingSink struct {
	sink BitSink
	bits int64
}

func (c *countingSink) WriteBits(value uint64, n uint8) error {
	if err := c.sink.WriteBits(value, n); err != nil {
		return err
	}
	c.bits += int64(n)
	return nil
}

func (c *countingSink) Close() error { return c.sink.Close() }

type countingSource struct {
	src  BitSource
	bits int64
}

func (c *countingSource) ReadBits(n uint8) (uint64, error) {
	v, err := c.src.ReadBits(n)
	if err != nil {
		return 0, err
	}
	c.bits += int64(n)
	return v, nil
}

func (c *countingSource) Rewind() error {
	if err := c.src.Rewind(); err != nil {
		return err
	}
	c.bits = 0
	return nil
}
