package transcribe

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"rec2txt/cmd/rec2txt/cmd/cli"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/testutil"
	"rec2txt/internal/config"
)

// fakeAPI answers every transcription request with the uploaded file name.
type fakeAPI struct {
	mu        sync.Mutex
	uploads   []string
	languages []string
}

func (f *fakeAPI) handler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, header.Filename)
	f.languages = append(f.languages, r.FormValue("language"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"text": "transcript of ` + header.Filename + `"}`))
}

func (f *fakeAPI) Uploads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uploads...)
}

type result struct {
	err    error
	stdout string
	logs   *observer.ObservedLogs
	api    *fakeAPI
}

func execute(t *testing.T, settings *config.Settings, args ...string) result {
	t.Helper()

	api := &fakeAPI{}
	server := httptest.NewServer(http.HandlerFunc(api.handler))
	defer server.Close()
	settings.Transcription.BaseURL = server.URL + "/v1"

	core, logs := observer.New(zap.InfoLevel)
	rt := &cli.Runtime{Settings: settings, Logger: zap.New(core)}

	var stdout bytes.Buffer
	cmd := NewCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(cli.WithRuntime(context.Background(), rt))
	return result{err: err, stdout: stdout.String(), logs: logs, api: api}
}

func testSettings(t *testing.T, dir string) *config.Settings {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	settings := config.DefaultSettings()
	settings.RecordingsDir = dir
	return settings
}

func TestTranscribe_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateSizedFile(t, dir, "meeting.mp3", 64)

	res := execute(t, testSettings(t, t.TempDir()), input, "-l", "de")
	require.NoError(t, res.err)

	assert.Equal(t, []string{"meeting.mp3"}, res.api.Uploads())
	assert.Equal(t, []string{"de"}, res.api.languages)
	assert.Equal(t, "\ntranscript of meeting.mp3\n", res.stdout)

	saved, err := os.ReadFile(filepath.Join(dir, "meeting.txt"))
	require.NoError(t, err)
	assert.Equal(t, "transcript of meeting.mp3", string(saved))
	assert.Equal(t, 1, res.logs.FilterMessage("App finished").Len())
}

func TestTranscribe_LatestInDirectory(t *testing.T) {
	dir := t.TempDir()
	older := testutil.CreateSizedFile(t, dir, "recording_20240301_100000.wav", 64)
	newer := testutil.CreateSizedFile(t, dir, "recording_20240301_110000.wav", 64)
	testutil.SetModTime(t, older, time.Unix(1000, 0))
	testutil.SetModTime(t, newer, time.Unix(2000, 0))

	res := execute(t, testSettings(t, t.TempDir()), "--dir", dir)
	require.NoError(t, res.err)
	assert.Equal(t, []string{"recording_20240301_110000.wav"}, res.api.Uploads())
	assert.FileExists(t, filepath.Join(dir, "recording_20240301_110000.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "recording_20240301_100000.txt"))
}

func TestTranscribe_DefaultsFromSettings(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateSizedFile(t, dir, "a.wav", 64)
	settings := testSettings(t, dir)
	settings.Transcription.Language = "fr"

	res := execute(t, settings)
	require.NoError(t, res.err)
	assert.Equal(t, []string{"a.wav"}, res.api.Uploads())
	assert.Equal(t, []string{"fr"}, res.api.languages)
}

func TestTranscribe_All(t *testing.T) {
	dir := t.TempDir()
	first := testutil.CreateSizedFile(t, dir, "b.wav", 64)
	second := testutil.CreateSizedFile(t, dir, "a.wav", 64)
	empty := testutil.CreateEmptyFile(t, dir, "c.wav")
	done := testutil.CreateSizedFile(t, dir, "d.wav", 64)
	testutil.WriteTranscript(t, filepath.Join(dir, "d.txt"), "old")
	testutil.SetModTime(t, first, time.Unix(1000, 0))
	testutil.SetModTime(t, second, time.Unix(2000, 0))
	testutil.SetModTime(t, empty, time.Unix(3000, 0))
	testutil.SetModTime(t, done, time.Unix(4000, 0))

	res := execute(t, testSettings(t, dir), "--all")

	// A batch exits cleanly even when a file fails.
	require.NoError(t, res.err)
	assert.Equal(t, []string{"b.wav", "a.wav"}, res.api.Uploads())
	assert.Empty(t, res.stdout)
	assert.Equal(t, 1, res.logs.FilterMessage("Batch finished: 2 succeeded, 1 failed").Len())
}

func TestTranscribe_AllNothingToDo(t *testing.T) {
	res := execute(t, testSettings(t, t.TempDir()), "-a")
	require.NoError(t, res.err)
	assert.Empty(t, res.api.Uploads())
}

func TestTranscribe_Failures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, dir string) []string
		target error
	}{
		{
			name:   "missing file",
			setup:  func(t *testing.T, dir string) []string { return []string{filepath.Join(dir, "nope.wav")} },
			target: errors.ErrFileNotFound,
		},
		{
			name: "empty file",
			setup: func(t *testing.T, dir string) []string {
				return []string{testutil.CreateEmptyFile(t, dir, "empty.wav")}
			},
			target: errors.ErrEmptyFile,
		},
		{
			name: "unsupported format",
			setup: func(t *testing.T, dir string) []string {
				return []string{testutil.CreateSizedFile(t, dir, "a.ogg", 10)}
			},
			target: errors.ErrUnsupportedFormat,
		},
		{
			name:   "no audio in directory",
			setup:  func(t *testing.T, dir string) []string { return []string{"--dir", dir} },
			target: errors.ErrNoAudioFiles,
		},
		{
			name: "file with --all",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--all", testutil.CreateSizedFile(t, dir, "a.wav", 10)}
			},
			target: errors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			res := execute(t, testSettings(t, dir), tt.setup(t, dir)...)
			require.Error(t, res.err)
			assert.True(t, errors.Is(res.err, tt.target), "got %v", res.err)
			assert.Empty(t, res.api.Uploads())
		})
	}
}

func TestTranscribe_MissingAPIKey(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateSizedFile(t, dir, "a.wav", 10)
	settings := testSettings(t, dir)
	t.Setenv("OPENAI_API_KEY", "  ")

	res := execute(t, settings, input)
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errors.ErrMissingAPIKey))
	assert.Contains(t, errors.Hint(res.err), "export OPENAI_API_KEY")
	assert.Empty(t, res.api.Uploads())
}
