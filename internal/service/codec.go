// Package service runs huff codec calls for the HTTP API.
package service

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/seiflotfy/huff"
	"github.com/seiflotfy/huff/bitstream"
	"github.com/seiflotfy/huff/logger"
)

// Result is the output of one codec call. Results may be shared through the
// cache and must not be modified.
type Result struct {
	Data  []byte
	Stats huff.Stats
}

// CodeEntry describes the code of one symbol.
type CodeEntry struct {
	Symbol int    `json:"symbol"`
	Label  string `json:"label"`
	Weight uint64 `json:"weight"`
	Code   string `json:"code"`
}

type CodecService struct {
	cache  *lru.Cache[[sha256.Size]byte, *Result]
	logger logger.Logger
	debug  int
}

// NewCodecService returns a service caching up to cacheSize compression
// results keyed by the digest of their input.
func NewCodecService(cacheSize int, l logger.Logger, debugLevel int) (*CodecService, error) {
	cache, err := lru.New[[sha256.Size]byte, *Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}
	return &CodecService{cache: cache, logger: l, debug: debugLevel}, nil
}

func (s *CodecService) options() []huff.Option {
	return []huff.Option{huff.WithLogger(s.logger), huff.WithDebugLevel(s.debug)}
}

// Compress returns the compressed form of data.
func (s *CodecService) Compress(data []byte) (*Result, error) {
	key := sha256.Sum256(data)
	if r, ok := s.cache.Get(key); ok {
		return r, nil
	}

	var out bytes.Buffer
	stats, err := huff.Compress(bitstream.NewBytesReader(data), bitstream.NewWriter(&out), s.options()...)
	if err != nil {
		return nil, err
	}
	r := &Result{Data: out.Bytes(), Stats: stats}
	s.cache.Add(key, r)
	s.logger.Infof("compressed %d bytes to %d", len(data), len(r.Data))
	return r, nil
}

// Decompress returns the original form of data.
func (s *CodecService) Decompress(data []byte) (*Result, error) {
	var out bytes.Buffer
	stats, err := huff.Decompress(bitstream.NewBytesReader(data), bitstream.NewWriter(&out), s.options()...)
	if err != nil {
		return nil, err
	}
	return &Result{Data: out.Bytes(), Stats: stats}, nil
}

// Codes returns the code table data would be compressed with, ordered by
// symbol.
func (s *CodecService) Codes(data []byte) ([]CodeEntry, error) {
	w, _, err := huff.CountWeights(bitstream.NewBytesReader(data))
	if err != nil {
		return nil, err
	}
	table := huff.BuildCodeTable(huff.BuildTree(w))

	out := make([]CodeEntry, 0, table.Len())
	for sym, code := range table {
		if code == "" {
			continue
		}
		out = append(out, CodeEntry{
			Symbol: sym,
			Label:  huff.Symbol(sym).String(),
			Weight: w[sym],
			Code:   string(code),
		})
	}
	return out, nil
}

// Cached reports how many compression results are cached.
func (s *CodecService) Cached() int {
	return s.cache.Len()
}
