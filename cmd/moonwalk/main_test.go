package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonwalk/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for raw, want := range tests {
		got, err := parseLogLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := parseLogLevel("trace")
	assert.Error(t, err)
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "auto", opts.backend)
	assert.Equal(t, slog.LevelInfo, opts.logLevel)
	assert.False(t, opts.configRequired)
	assert.False(t, opts.logFile)
	assert.Empty(t, opts.runAction)
}

func TestParseOptionsExplicitConfigIsRequired(t *testing.T) {
	opts, err := parseOptions([]string{"--config", "/tmp/m.toml", "--log-level", "debug", "--apply-hotkeys"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.configRequired)
	assert.Equal(t, "/tmp/m.toml", opts.configPath)
	assert.Equal(t, slog.LevelDebug, opts.logLevel)
	assert.True(t, opts.applyHotkeys)
}

func TestParseOptionsLogPathImpliesLogFile(t *testing.T) {
	opts, err := parseOptions([]string{"--logfile-path", "/tmp/moonwalk.log"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.logFile)
}

func TestParseOptionsRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"--run", "jump"},
		{"--log-level", "loud"},
		{"--backend", "carrier-pigeon"},
		{"extra"},
	} {
		_, err := parseOptions(args, io.Discard)
		assert.Error(t, err, "%v", args)
	}

	opts, err := parseOptions([]string{"--run", "clip"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "clip", opts.runAction)
}

func TestLineSinkWriterSplitsLines(t *testing.T) {
	var lines []string
	w := &lineSinkWriter{sink: func(line string) { lines = append(lines, line) }}

	n, err := w.Write([]byte("first\nsec"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	_, err = w.Write([]byte("ond\n\n  third  \n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestLoadStartupConfigUsesDefaultPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	dirs := appDirs{Config: "/home/u/.config/moonwalk", Log: "/home/u/.local/state/moonwalk"}
	require.NoError(t, afero.WriteFile(fs, dirs.defaultConfigPath(), []byte("gear_slot = \"7\"\n"), 0o600))

	cfg, err := loadStartupConfig(fs, options{}, dirs)
	require.NoError(t, err)
	assert.Equal(t, "7", cfg.GearSlot)
}

func TestLoadStartupConfigMissingDefaultIsFine(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := loadStartupConfig(fs, options{}, appDirs{Config: "/nowhere"})
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)

	_, err = loadStartupConfig(fs, options{configPath: "/nowhere/x.toml", configRequired: true}, appDirs{})
	assert.Error(t, err)
}

func TestAppDirsFallbackToWorkingDir(t *testing.T) {
	var dirs appDirs
	assert.Equal(t, "moonwalk.toml", dirs.defaultConfigPath())
	assert.Equal(t, "moonwalk.log", dirs.defaultLogPath())
}
