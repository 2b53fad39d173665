package record

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"rec2txt/cmd/rec2txt/cmd/cli"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/config"
)

const fakePactl = `
case "$1" in
  get-default-sink) echo "alsa_output.pci" ;;
  list) printf '1\talsa_output.pci.monitor\tPipeWire\ts16le 2ch 48000Hz\tIDLE\n2\talsa_input.pci\tPipeWire\ts16le 2ch 48000Hz\tIDLE\n' ;;
  *) exit 1 ;;
esac
`

// installFakes puts fake pw-record and pactl binaries first on PATH and returns
// the file the fake recorder writes its arguments to.
func installFakes(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}

	bin := t.TempDir()
	argsFile := filepath.Join(t.TempDir(), "pw-record.args")
	pwRecord := `
echo "$@" > "` + argsFile + `"
for last; do :; done
trap 'exit 0' TERM
while true; do
  printf 'RIFF' >> "$last"
  sleep 0.05
done
`
	require.NoError(t, os.WriteFile(filepath.Join(bin, "pw-record"), []byte("#!/bin/sh\n"+pwRecord), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "pactl"), []byte("#!/bin/sh\n"+fakePactl), 0755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	return argsFile
}

type result struct {
	err    error
	logs   *observer.ObservedLogs
	stdout string
}

// execute runs the record command with args and stdin, stopping it after stopAfter.
func execute(t *testing.T, stdin string, stopAfter time.Duration, args ...string) result {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	rt := &cli.Runtime{Settings: config.DefaultSettings(), Logger: zap.New(core)}

	ctx, cancel := context.WithTimeout(cli.WithRuntime(context.Background(), rt), stopAfter)
	defer cancel()

	var stdout bytes.Buffer
	cmd := NewCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)

	err := cmd.ExecuteContext(ctx)
	return result{err: err, logs: logs, stdout: stdout.String()}
}

func recordings(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "recording_*.wav"))
	require.NoError(t, err)
	return matches
}

func TestRecord_ExplicitSourceStopsOnInterrupt(t *testing.T) {
	argsFile := installFakes(t)
	dir := filepath.Join(t.TempDir(), "Recordings")

	res := execute(t, "", 300*time.Millisecond, "-o", dir, "-s", "alsa_input.pci")
	require.NoError(t, res.err)

	files := recordings(t, dir)
	require.Len(t, files, 1)
	info, err := os.Stat(files[0])
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "--format s16 --rate 44100 --channels 2 --target alsa_input.pci "+files[0], strings.TrimSpace(string(args)))

	assert.Equal(t, 1, res.logs.FilterMessage("Recording finished").Len())
	assert.Equal(t, 1, res.logs.FilterMessage("Saved: "+files[0]).Len())
	assert.Equal(t, 1, res.logs.FilterMessage("Audio source: alsa_input.pci").Len())
	// No prompt without interactive selection.
	assert.Empty(t, res.stdout)
}

func TestRecord_InteractiveSelection(t *testing.T) {
	argsFile := installFakes(t)
	dir := t.TempDir()

	res := execute(t, "1\n\n", 500*time.Millisecond, "-o", dir)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "[0] System audio (output) (default)")
	assert.Contains(t, res.stdout, "[1] Microphone: alsa_input.pci")
	assert.Contains(t, res.stdout, "Recording length in minutes")

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "--target alsa_input.pci ")
	assert.Len(t, recordings(t, dir), 1)
}

func TestRecord_DurationFlagSkipsLimitPrompt(t *testing.T) {
	installFakes(t)
	dir := t.TempDir()

	res := execute(t, "\n", 300*time.Millisecond, "-o", dir, "-t", "5")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "Recording length in minutes")
	assert.Equal(t, 1, res.logs.FilterMessage("Time limit: 5 minutes 0 seconds").Len())
}

func TestRecord_EndOfInputAborts(t *testing.T) {
	installFakes(t)
	dir := t.TempDir()

	res := execute(t, "", 5*time.Second, "-o", dir)
	require.NoError(t, res.err)
	assert.Equal(t, 1, res.logs.FilterMessage("Aborted").Len())
	assert.Empty(t, recordings(t, dir))
}

func TestRecord_InvalidDuration(t *testing.T) {
	installFakes(t)

	res := execute(t, "", 5*time.Second, "-o", t.TempDir(), "-s", "mic", "-t", "0")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errors.ErrInvalidConfig))
}

func TestRecord_MissingRecorder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH lookup differs on windows")
	}
	t.Setenv("PATH", t.TempDir())

	res := execute(t, "", 5*time.Second, "-o", t.TempDir(), "-s", "mic")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errors.ErrMissingDependency))
	assert.Contains(t, errors.Hint(res.err), "sudo apt install")
}

func TestRecord_NoSources(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "pw-record"), []byte("#!/bin/sh\nexit 0\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "pactl"), []byte("#!/bin/sh\nexit 1\n"), 0755))
	t.Setenv("PATH", bin)

	res := execute(t, "", 5*time.Second, "-o", t.TempDir())
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errors.ErrNoAudioSources))
}
