// Command huff compresses and decompresses files with static Huffman coding.
//
//	huff [-c|-d] [-o out] [-p] [-v level] [file]
//
// Input defaults to stdin and output to stdout. Compressing stdin buffers it
// in memory since the input is read twice.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/seiflotfy/huff"
	"github.com/seiflotfy/huff/logger"
)

type Mode uint8

const (
	CompressMode Mode = iota
	DecompressMode
)

func main() {
	var (
		compress   = flag.Bool("c", false, "compress (default)")
		decompress = flag.Bool("d", false, "decompress")
		foutName   = flag.String("o", "", "output file (default stdout)")
		printTree  = flag.Bool("p", false, "print the code tree to stderr")
		debugLevel = flag.Int("v", huff.DebugOff, "debug level (1 summary, 4 weights, codes and tree)")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("huff: ")

	if *compress && *decompress {
		log.Fatal("-c and -d are mutually exclusive")
	}
	if flag.NArg() > 1 {
		log.Fatalf("expected at most one input file, got %d", flag.NArg())
	}
	mode := CompressMode
	if *decompress {
		mode = DecompressMode
	}

	opts := []huff.Option{
		huff.WithDebugLevel(*debugLevel),
		huff.WithLogger(logger.New()),
	}
	if *printTree {
		opts = append(opts, huff.WithTreeHook(func(root huff.Node) {
			if err := huff.PrintTree(os.Stderr, root); err != nil {
				log.Printf("print tree: %s", err)
			}
		}))
	}

	if err := run(mode, flag.Arg(0), *foutName, opts); err != nil {
		log.Fatal(err)
	}
}

func run(mode Mode, finName, foutName string, opts []huff.Option) (err error) {
	in, closeIn, err := openInput(finName, mode)
	if err != nil {
		return err
	}
	defer closeIn()

	var out io.Writer = os.Stdout
	if foutName != "" {
		f, ferr := os.Create(foutName)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
			// Partial output is never valid.
			if err != nil {
				os.Remove(foutName)
			}
		}()
		out = f
	}

	switch mode {
	case CompressMode:
		rs, ok := in.(io.ReadSeeker)
		if !ok {
			return errors.New("compress: input is not seekable")
		}
		_, err = huff.CompressStream(rs, out, opts...)
	case DecompressMode:
		_, err = huff.DecompressStream(in, out, opts...)
	}
	return describe(err)
}

// openInput opens finName, or stdin when it is empty. Compression needs to
// seek back to the start so stdin is read into memory first.
func openInput(finName string, mode Mode) (io.Reader, func(), error) {
	if finName != "" {
		f, err := os.Open(finName)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if mode == DecompressMode {
		return os.Stdin, func() {}, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	return bytes.NewReader(data), func() {}, nil
}

func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huff.ErrBadMagic):
		return fmt.Errorf("not a huff stream: %w", err)
	case errors.Is(err, huff.ErrCorruptHeader), errors.Is(err, huff.ErrTruncatedBody):
		return fmt.Errorf("damaged huff stream: %w", err)
	default:
		return err
	}
}
