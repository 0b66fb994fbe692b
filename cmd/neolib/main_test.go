package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "neolib dev")
	assert.Contains(t, out, "Commit: unknown")
}

func TestInfoCommand(t *testing.T) {
	cfgPath := writeFile(t, "settings.yaml", "app:\n  company: Acme\n  settings_dir: /tmp/neolib-settings\n")

	out, _, err := execute(t, "info", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "name:        neolib")
	assert.Contains(t, out, "company:     Acme")
	assert.Contains(t, out, "settings:    /tmp/neolib-settings")
	assert.Contains(t, out, "data:        /tmp/neolib-settings")
	assert.Contains(t, out, "plugins:     *.plg")
	assert.Contains(t, out, "version:     0.0.0.0 dev")
}

func TestInfoCommandPocket(t *testing.T) {
	cfgPath := writeFile(t, "settings.yaml", "app:\n  settings_dir: /tmp/neolib-settings\n")
	wd, err := os.Getwd()
	require.NoError(t, err)

	out, _, err := execute(t, "info", "--pocket", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "application: "+wd+"\n")
	assert.Contains(t, out, "settings:    "+wd+"\n")
	assert.Contains(t, out, "data:        "+wd+"\n")
	assert.Contains(t, out, "pocket:      true")

	out, _, err = execute(t, "info", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "pocket:      false")
}

func TestBenchCommand(t *testing.T) {
	out, _, err := execute(t, "bench", "--size", "2000", "--ops", "2000", "--gap-size", "8", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "size: 2000, edits: 2000")
	assert.Contains(t, out, "edit speedup:")
	assert.Contains(t, out, "neolib_alloc_allocations_total")
	assert.Contains(t, out, `allocator="bench"`)
}

func TestBenchCommandPool(t *testing.T) {
	out, _, err := execute(t, "bench", "--size", "1000", "--ops", "1000", "--pool", "--nearness", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "gap vector:")
	assert.NotContains(t, out, "neolib_alloc")
}

func TestBenchCommandLimit(t *testing.T) {
	out, _, err := execute(t, "bench", "--size", "5000", "--ops", "10", "--limit", "1000", "--metrics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocation failed")
	assert.Contains(t, out, "neolib_alloc_allocation_failures_total")
}

func TestBenchCommandMetricsFromConfig(t *testing.T) {
	cfgPath := writeFile(t, "settings.toml", "[metrics]\nenabled = true\n[vector]\ngap_size = 32\n")
	out, _, err := execute(t, "bench", "--config", cfgPath, "--size", "500", "--ops", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "neolib_alloc_live_elements")
}

func TestRunCommand(t *testing.T) {
	path := writeFile(t, "work.lua", `
		for i = 1, 50 do vec.push(i) end
		vec.erase(1, 10)
		buf.insert(0, "a\nb")
		print(vec.len(), buf.line_count())
	`)

	out, _, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Equal(t, "40\t2\n", out)
}

func TestRunCommandOpLimit(t *testing.T) {
	path := writeFile(t, "loop.lua", `for i = 1, 100 do vec.push(i) end`)
	_, _, err := execute(t, "run", "--op-limit", "10", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation limit")
}

func TestRunCommandErrors(t *testing.T) {
	_, _, err := execute(t, "run")
	assert.Error(t, err)

	_, _, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestRunCommandWatchStopsOnCancel(t *testing.T) {
	path := writeFile(t, "w.lua", `vec.push(1)`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--watch", path})

	// The first run fails on the cancelled context, then Watch returns.
	assert.NoError(t, cmd.ExecuteContext(ctx))
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "version", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging")
}

func TestInvalidConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "bad.toml", "[vector\n")
	_, _, err := execute(t, "version", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestDebugLogging(t *testing.T) {
	path := writeFile(t, "work.lua", `vec.push(1)`)
	_, stderr, err := execute(t, "run", "--log-level", "debug", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "script finished")
}
