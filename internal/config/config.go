// Package config loads huffd settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultAddr      = ":8080"
	defaultCacheSize = 128
	defaultMaxBody   = 32 << 20
)

type Config struct {
	Addr       string // HUFFD_ADDR
	CacheSize  int    // HUFFD_CACHE_SIZE, compressed results kept in memory
	DebugLevel int    // HUFFD_DEBUG
	MaxBody    int64  // HUFFD_MAX_BODY, request body limit in bytes
}

// Load reads the configuration, falling back to defaults for unset
// variables.
func Load() (Config, error) {
	cfg := Config{
		Addr:      defaultAddr,
		CacheSize: defaultCacheSize,
		MaxBody:   defaultMaxBody,
	}
	if v := os.Getenv("HUFFD_ADDR"); v != "" {
		cfg.Addr = v
	}

	var err error
	if cfg.CacheSize, err = intEnv("HUFFD_CACHE_SIZE", cfg.CacheSize); err != nil {
		return cfg, err
	}
	if cfg.DebugLevel, err = intEnv("HUFFD_DEBUG", cfg.DebugLevel); err != nil {
		return cfg, err
	}
	maxBody, err := intEnv("HUFFD_MAX_BODY", int(cfg.MaxBody))
	if err != nil {
		return cfg, err
	}
	cfg.MaxBody = int64(maxBody)

	if cfg.CacheSize <= 0 {
		return cfg, fmt.Errorf("HUFFD_CACHE_SIZE must be positive, got %d", cfg.CacheSize)
	}
	if cfg.MaxBody <= 0 {
		return cfg, fmt.Errorf("HUFFD_MAX_BODY must be positive, got %d", cfg.MaxBody)
	}
	return cfg, nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("parse %s: %w", name, err)
	}
	return n, nil
}
