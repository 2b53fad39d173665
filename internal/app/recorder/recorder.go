package recorder

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/model"
)

// Fixed capture format: 16-bit signed PCM, 44.1 kHz, stereo.
const (
	SampleFormat = "s16"
	SampleRate   = 44100
	Channels     = 2

	pwRecordInstallHint = "Please install it: sudo apt install pipewire-audio-client-libraries"
)

// Recorder captures one RecordingSession with pw-record.
type Recorder struct {
	RecorderPath string

	active ActiveProcess
	now    func() time.Time
	logger *zap.Logger
}

// NewRecorder returns a Recorder using pw-record from PATH.
func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{
		RecorderPath: "pw-record",
		now:          time.Now,
		logger:       logger,
	}
}

// CheckAvailable fails with an install hint when the recorder binary is missing.
func (r *Recorder) CheckAvailable() error {
	if _, err := exec.LookPath(r.RecorderPath); err != nil {
		return errors.WithHint(errors.Wrap(errors.ErrMissingDependency, r.RecorderPath), pwRecordInstallHint)
	}
	return nil
}

// Args builds the recorder command line for session.
func (r *Recorder) Args(session model.RecordingSession) []string {
	return []string{
		"--format", SampleFormat,
		"--rate", strconv.Itoa(SampleRate),
		"--channels", strconv.Itoa(Channels),
		"--target", session.Source,
		session.OutputPath,
	}
}

// Record runs the recorder until ctx is cancelled, session.Limit elapses, or the
// child exits by itself. Either stop request sends the child SIGTERM so it can
// finalize the WAV header; Record then waits for it to exit.
func (r *Recorder) Record(ctx context.Context, session model.RecordingSession) (model.RecordingResult, error) {
	result := model.RecordingResult{Path: session.OutputPath}

	cmd := exec.Command(r.RecorderPath, r.Args(session)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.logger.Debug("starting recorder", zap.String("command", r.RecorderPath+" "+strings.Join(r.Args(session), " ")))

	start := r.now()
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return result, errors.WithHint(errors.Wrap(errors.ErrMissingDependency, r.RecorderPath), pwRecordInstallHint)
		}
		return result, errors.Wrapf(errors.ErrRecordingFailed, "failed to start %s: %v", r.RecorderPath, err)
	}
	r.active.Set(cmd.Process)
	defer r.active.Clear()

	stopOnCancel := context.AfterFunc(ctx, func() {
		r.logger.Info("Stopping recording...")
		r.active.Terminate()
	})
	defer stopOnCancel()

	if session.Limit > 0 {
		timer := time.AfterFunc(session.Limit, func() {
			r.logger.Info("Time limit reached, stopping recording...")
			r.active.Terminate()
		})
		defer timer.Stop()
	}

	waitErr := cmd.Wait()
	result.Duration = r.now().Sub(start)

	// A terminal Ctrl+C also reaches the child directly, so it may exit
	// before Terminate runs.
	stopRequested := r.active.Terminated() || ctx.Err() != nil
	if waitErr != nil && !stopRequested {
		r.logger.Warn("Recorder exited unexpectedly",
			zap.Error(waitErr),
			zap.String("stderr", strings.TrimSpace(stderr.String())))
	}

	if info, err := os.Stat(session.OutputPath); err == nil {
		result.Created = true
		result.Size = info.Size()
	}

	return result, nil
}
