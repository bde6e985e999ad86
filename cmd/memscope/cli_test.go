package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memscope/memscope/internal/config"
	"github.com/memscope/memscope/internal/memory"
	"github.com/memscope/memscope/internal/offsets"
	"github.com/memscope/memscope/internal/projection"
	"github.com/memscope/memscope/internal/snapshot"
)

func TestParseAddress(t *testing.T) {
	const base = memory.Address(0x7FF600000000)

	tests := []struct {
		in      string
		want    memory.Address
		wantErr bool
	}{
		{"0x1000", 0x1000, false},
		{"4096", 0x1000, false},
		{"base", base, false},
		{"BASE+0x10", base + 0x10, false},
		{"base-0x10", base - 0x10, false},
		{" base+16 ", base + 16, false},
		{"base*2", 0, true},
		{"base+zz", 0, true},
		{"nope", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAddress(tt.in, base)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize(t *testing.T) {
	n, err := parseSize("0x40")
	require.NoError(t, err)
	assert.Equal(t, 64, n)

	for _, bad := range []string{"0", "4097", "-1", "big"} {
		_, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderProfile(t *testing.T) {
	var buf bytes.Buffer
	renderProfile(&buf, offsets.Builtin())

	out := buf.String()
	assert.Contains(t, out, "build builtin, module client.dll")
	assert.Contains(t, out, "client.dwentitylist")
	assert.Contains(t, out, "0x17CE6A0")
}

func TestRenderSnapshot(t *testing.T) {
	snap := &snapshot.Snapshot{
		Local: snapshot.LocalState{Team: 2},
		Players: []snapshot.PlayerSnapshot{{
			Slot:     3,
			Name:     "bot",
			Team:     3,
			Health:   80,
			Position: projection.Vector3{X: 100},
			Screen:   projection.Vector2{X: 1440.5, Y: 405.25},
			Pawn:     0x400000,
		}},
		Width:  1920,
		Height: 1080,
		Scan:   snapshot.ScanStats{Skipped: map[snapshot.SkipReason]int{snapshot.SkipLocal: 1, snapshot.SkipHealth: 2}},
	}

	var buf bytes.Buffer
	renderSnapshot(&buf, snap)

	out := buf.String()
	assert.Contains(t, out, "1 players (1 enemies), local team 2, 1920x1080")
	assert.Contains(t, out, "bot")
	assert.Contains(t, out, "100.0 0.0 0.0")
	assert.Contains(t, out, "0x400000")
	assert.Contains(t, strings.ToLower(out), "true")
	assert.Contains(t, out, "3", "skipped total")
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	body := `{"logsDir": "` + filepath.ToSlash(filepath.Join(dir, "logs")) + `", "target": {"process": "memscope-no-such-process.exe"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0644))
	return dir
}

func TestRun_Offsets(t *testing.T) {
	dir := writeTestConfig(t)

	var out bytes.Buffer
	code := run([]string{"--config-dir", dir, "offsets"}, strings.NewReader(""), &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "client.dwviewmatrix")

	logs, err := filepath.Glob(filepath.Join(dir, "logs", "memscope.*.log"))
	require.NoError(t, err)
	assert.Len(t, logs, 1, "a session log file is created")
}

func TestRun_Version(t *testing.T) {
	dir := writeTestConfig(t)

	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"--config-dir", dir, "version"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), CurrentVersion)
}

func TestRun_UnknownCommandPrompts(t *testing.T) {
	dir := writeTestConfig(t)

	var out bytes.Buffer
	code := run([]string{"--config-dir", dir, "frobnicate"}, strings.NewReader("\n"), &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)
	assert.Contains(t, out.String(), "Press Enter to exit")
}

func TestRun_AttachFailureNoPrompt(t *testing.T) {
	dir := writeTestConfig(t)

	var out bytes.Buffer
	code := run([]string{"--config-dir", dir, "--no-prompt", "snapshot"}, strings.NewReader(""), &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "memscope-no-such-process.exe")
	assert.NotContains(t, out.String(), "Press Enter")
}

func TestRun_BadProfile(t *testing.T) {
	dir := writeTestConfig(t)

	var out bytes.Buffer
	code := run([]string{"--config-dir", dir, "--no-prompt", "--profile", filepath.Join(dir, "missing.json"), "offsets"}, strings.NewReader(""), &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "error reading offset profile")
}

func TestRun_BadFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"--no-such-flag"}, strings.NewReader(""), &out))
}

func TestPause(t *testing.T) {
	var out bytes.Buffer
	pause(strings.NewReader("\n"), &out)
	assert.Equal(t, "Press Enter to exit...\n", out.String())
}
