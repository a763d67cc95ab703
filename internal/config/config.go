// Package config provides environment-driven configuration for the triage
// engine and its CLI, following the warn-and-clamp discipline used
// throughout the pipeline: an invalid or out-of-range value never aborts
// the run, it falls back to a documented default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// EnvTriageHome overrides the default triage home directory stored in
	// TriageConfig.HomeDir. No command writes files there; `triage run
	// --manifest` prints its summary to stdout.
	EnvTriageHome = "TRIAGE_HOME"

	// EnvSampleSize configures K, the number of offending samples a gate
	// check records per Finding, in Finding.sample.
	EnvSampleSize = "TRIAGE_SAMPLE_SIZE"

	// EnvStopshipTokens overrides the G1 stopship token set with a
	// comma-separated list.
	EnvStopshipTokens = "TRIAGE_STOPSHIP_TOKENS"

	// DefaultSampleSize caps each Finding at its first 10 offending samples.
	DefaultSampleSize = 10

	// MinSampleSize and MaxSampleSize bound TRIAGE_SAMPLE_SIZE.
	MinSampleSize = 1
	MaxSampleSize = 1000
)

// DefaultStopshipTokens is the G1 fixed token set.
var DefaultStopshipTokens = []string{"_xlfn.", "_xludf.", "_xlpm.", "AGGREGATE("}

// TriageConfig is the immutable parameter bundle threaded through one
// pipeline run. It is built once from flags/env and never mutated
// afterward.
type TriageConfig struct {
	SampleSize      int      // K: max samples recorded per Finding
	StopshipTokens  []string // G1 token set
	HomeDir         string   // $TRIAGE_HOME or ~/.triage; no file is read or written there
	ProjectConfFile string   // path to an optional .triage.toml, if present
}

// Default returns a TriageConfig populated from environment variables,
// falling back to spec-mandated defaults on missing or invalid values.
func Default() TriageConfig {
	cfg := TriageConfig{
		SampleSize:     GetSampleSize(),
		StopshipTokens: GetStopshipTokens(),
		HomeDir:        homeDir(),
	}
	if confPath, ok := findProjectConfig(cfg.HomeDir); ok {
		cfg.ProjectConfFile = confPath
		applyProjectConfig(&cfg, confPath)
	}
	return cfg
}

// GetSampleSize returns K from TRIAGE_SAMPLE_SIZE, clamped to
// [MinSampleSize, MaxSampleSize]. Falls back to DefaultSampleSize if unset
// or unparsable.
func GetSampleSize() int {
	envValue := os.Getenv(EnvSampleSize)
	if envValue == "" {
		return DefaultSampleSize
	}

	n, err := strconv.Atoi(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %d\n",
			EnvSampleSize, envValue, DefaultSampleSize)
		return DefaultSampleSize
	}

	if n < MinSampleSize {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%d), using minimum %d\n",
			EnvSampleSize, n, MinSampleSize)
		return MinSampleSize
	}
	if n > MaxSampleSize {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%d), using maximum %d\n",
			EnvSampleSize, n, MaxSampleSize)
		return MaxSampleSize
	}

	return n
}

// GetStopshipTokens returns the G1 token set from TRIAGE_STOPSHIP_TOKENS,
// or DefaultStopshipTokens if unset.
func GetStopshipTokens() []string {
	envValue := os.Getenv(EnvStopshipTokens)
	if envValue == "" {
		return append([]string(nil), DefaultStopshipTokens...)
	}

	parts := strings.Split(envValue, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: %s contained no usable tokens, using defaults\n", EnvStopshipTokens)
		return append([]string(nil), DefaultStopshipTokens...)
	}
	return tokens
}

func homeDir() string {
	if v := os.Getenv(EnvTriageHome); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".triage"
	}
	return filepath.Join(home, ".triage")
}

// projectConfig mirrors a subset of TriageConfig for TOML decoding into a
// dedicated struct rather than the domain type directly.
type projectConfig struct {
	SampleSize     int      `toml:"sample_size"`
	StopshipTokens []string `toml:"stopship_tokens"`
}

// findProjectConfig looks for ./.triage.toml relative to the working
// directory; it never searches parent directories or HomeDir for this file
// (project config is intentionally local-only).
func findProjectConfig(_ string) (string, bool) {
	const name = ".triage.toml"
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	return "", false
}

// applyProjectConfig overlays a .triage.toml onto cfg. A malformed file is a
// warning, not a fatal error, matching the env-var warn-and-fall-back
// discipline above.
func applyProjectConfig(cfg *TriageConfig, path string) {
	var pc projectConfig
	if _, err := toml.DecodeFile(path, &pc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to parse %s: %v\n", path, err)
		return
	}
	if pc.SampleSize > 0 {
		cfg.SampleSize = pc.SampleSize
	}
	if len(pc.StopshipTokens) > 0 {
		cfg.StopshipTokens = pc.StopshipTokens
	}
}
