package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSampleSizeDefault(t *testing.T) {
	t.Setenv(EnvSampleSize, "")
	assert.Equal(t, DefaultSampleSize, GetSampleSize())
}

func TestGetSampleSizeInvalid(t *testing.T) {
	t.Setenv(EnvSampleSize, "not-a-number")
	assert.Equal(t, DefaultSampleSize, GetSampleSize())
}

func TestGetSampleSizeClampLow(t *testing.T) {
	t.Setenv(EnvSampleSize, "0")
	assert.Equal(t, MinSampleSize, GetSampleSize())
}

func TestGetSampleSizeClampHigh(t *testing.T) {
	t.Setenv(EnvSampleSize, "5000")
	assert.Equal(t, MaxSampleSize, GetSampleSize())
}

func TestGetSampleSizeValid(t *testing.T) {
	t.Setenv(EnvSampleSize, "25")
	assert.Equal(t, 25, GetSampleSize())
}

func TestGetStopshipTokensDefault(t *testing.T) {
	t.Setenv(EnvStopshipTokens, "")
	assert.Equal(t, DefaultStopshipTokens, GetStopshipTokens())
}

func TestGetStopshipTokensCustom(t *testing.T) {
	t.Setenv(EnvStopshipTokens, "FOO(, BAR(")
	assert.Equal(t, []string{"FOO(", "BAR("}, GetStopshipTokens())
}

func TestGetStopshipTokensBlank(t *testing.T) {
	t.Setenv(EnvStopshipTokens, " , ,")
	assert.Equal(t, DefaultStopshipTokens, GetStopshipTokens())
}

func TestDefaultHomeDirFromEnv(t *testing.T) {
	t.Setenv(EnvTriageHome, "/tmp/triage-home")
	assert.Equal(t, "/tmp/triage-home", homeDir())
}

func TestApplyProjectConfigOverlays(t *testing.T) {
	dir := t.TempDir()
	confPath := dir + "/.triage.toml"
	require.NoError(t, os.WriteFile(confPath, []byte("sample_size = 3\nstopship_tokens = [\"CUSTOM(\"]\n"), 0o644))

	cfg := TriageConfig{SampleSize: DefaultSampleSize, StopshipTokens: DefaultStopshipTokens}
	applyProjectConfig(&cfg, confPath)

	assert.Equal(t, 3, cfg.SampleSize)
	assert.Equal(t, []string{"CUSTOM("}, cfg.StopshipTokens)
}

func TestApplyProjectConfigMalformedIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	confPath := dir + "/.triage.toml"
	require.NoError(t, os.WriteFile(confPath, []byte("not = [valid toml"), 0o644))

	cfg := TriageConfig{SampleSize: DefaultSampleSize, StopshipTokens: DefaultStopshipTokens}
	applyProjectConfig(&cfg, confPath)

	assert.Equal(t, DefaultSampleSize, cfg.SampleSize)
}
