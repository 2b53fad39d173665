package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"rec2txt/internal/app/api"
	"rec2txt/internal/app/audio"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/metrics"
	"rec2txt/internal/app/model"
	"rec2txt/internal/app/repository"
	"rec2txt/internal/app/util/files"
	"rec2txt/internal/app/utils"
)

// MaxFileSize is the upload ceiling of the transcription API (25 MiB).
// Files at or above it are transcoded before submission.
const MaxFileSize int64 = 25 * 1024 * 1024

// Converter runs transcription jobs: validate, transcode if oversized, submit, save.
type Converter struct {
	transcriber api.Transcriber
	transcoder  audio.Transcoder
	// db is optional; nil disables the history.
	db       repository.TranscriptionDAO
	metrics  *metrics.Metrics
	progress *ProgressManager
	logger   *zap.Logger

	MaxFileSize int64
	// TempDir holds transcoded files; empty means os.TempDir.
	TempDir string

	now   func() time.Time
	newID func() string
}

// BatchSummary counts the outcome of a batch run.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

func NewConverter(
	transcriber api.Transcriber,
	transcoder audio.Transcoder,
	transcriptionDAO repository.TranscriptionDAO,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Converter {
	if m == nil {
		m = metrics.NewMetrics("")
	}
	return &Converter{
		transcriber: transcriber,
		transcoder:  transcoder,
		db:          transcriptionDAO,
		metrics:     m,
		progress:    NewProgressManager(ProgressConfig{Enabled: false}),
		logger:      logger,
		MaxFileSize: MaxFileSize,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// SetProgress replaces the (disabled by default) batch progress display.
func (c *Converter) SetProgress(pm *ProgressManager) {
	c.progress = pm
}

func (c *Converter) Close() error {
	c.progress.Shutdown()
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// FlushMetrics writes the run metrics, if a textfile is configured.
func (c *Converter) FlushMetrics() error {
	return c.metrics.Flush(c.now())
}

// TranscribeFile transcribes one file, writes <input-without-ext>.txt next to it
// and returns the text.
func (c *Converter) TranscribeFile(ctx context.Context, inputPath, language string) (string, error) {
	job := model.TranscriptionJob{
		ID:        c.newID(),
		InputPath: inputPath,
		Language:  language,
	}

	start := c.now()
	text, err := c.convertToText(ctx, &job)
	c.recordResult(ctx, job, text, c.now().Sub(start), err)
	return text, err
}

// TranscribeLatest transcribes the most recently modified supported file in dir.
func (c *Converter) TranscribeLatest(ctx context.Context, dir, language string) (string, string, error) {
	latest, err := files.FindLatestAudioFile(dir)
	if err != nil {
		return "", "", err
	}
	c.logger.Info("Newest file found: " + latest.Name)

	text, err := c.TranscribeFile(ctx, latest.FullPath, language)
	return latest.FullPath, text, err
}

// TranscribeBatch transcribes every .wav in dir without a .txt sibling, oldest
// first. A failed file is logged and skipped; only listing errors are returned.
func (c *Converter) TranscribeBatch(ctx context.Context, dir, language string) (BatchSummary, error) {
	var summary BatchSummary

	pending, err := files.FindUntranscribedRecordings(dir)
	if err != nil {
		return summary, err
	}
	summary.Total = len(pending)
	if summary.Total == 0 {
		c.logger.Info("No untranscribed recordings found in: " + dir)
		return summary, nil
	}

	c.logger.Info(fmt.Sprintf("Found %d untranscribed recording(s)", summary.Total))

	bar := c.progress.CreateBar(summary.Total, "Transcribing")
	defer c.progress.Wait()
	defer bar.Complete()

	for i, file := range pending {
		if ctx.Err() != nil {
			c.logger.Warn("Batch interrupted", zap.Int("remaining", summary.Total-i))
			break
		}

		c.logger.Info(fmt.Sprintf("[%d/%d] %s", i+1, summary.Total, file.Name))
		if _, err := c.TranscribeFile(ctx, file.FullPath, language); err != nil {
			summary.Failed++
			c.logger.Error("Failed: "+file.Name, zap.Error(err))
		} else {
			summary.Succeeded++
		}
		bar.Increment()
	}

	c.logger.Info(fmt.Sprintf("Batch finished: %d succeeded, %d failed", summary.Succeeded, summary.Failed))
	return summary, nil
}

func (c *Converter) convertToText(ctx context.Context, job *model.TranscriptionJob) (string, error) {
	logger := c.logger.With(zap.String("job", job.ID))

	info, err := os.Stat(job.InputPath)
	if err != nil || info.IsDir() {
		return "", errors.Wrap(errors.ErrFileNotFound, job.InputPath)
	}

	if !files.IsSupportedAudio(job.InputPath) {
		return "", errors.WithHint(
			errors.Wrap(errors.ErrUnsupportedFormat, filepath.Ext(job.InputPath)),
			"Supported: "+strings.Join(files.SupportedExtensions, ", "))
	}

	job.Size = info.Size()
	logger.Info("Transcribing: " + filepath.Base(job.InputPath))
	logger.Info("File size: " + utils.FormatSize(job.Size))

	if job.Size == 0 {
		return "", errors.Wrap(errors.ErrEmptyFile, job.InputPath)
	}

	if job.Language != "" {
		logger.Info("Language: " + job.Language)
	} else {
		logger.Info("Language: auto-detect")
	}
	c.logDuration(ctx, logger, job.InputPath)

	job.SubmittedPath = job.InputPath
	if job.Size >= c.MaxFileSize {
		cleanup, err := c.transcode(ctx, logger, job)
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	logger.Info("Sending to OpenAI Whisper API...")
	apiStart := c.now()
	text, err := c.transcriber.Transcript(ctx, api.TranscriptionRequest{
		InputFilePath: job.SubmittedPath,
		Language:      job.Language,
	})
	elapsed := c.now().Sub(apiStart)
	c.metrics.ObserveAPILatency(elapsed)
	if err != nil {
		if errors.Is(err, errors.ErrTranscriptionFailed) {
			return "", err
		}
		return "", errors.Wrapf(errors.ErrTranscriptionFailed, "%v", err)
	}
	logger.Info(fmt.Sprintf("Transcription succeeded (%.1f s)", elapsed.Seconds()))

	outputPath := job.OutputPath()
	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return "", errors.Wrapf(errors.ErrFileWriteFailed, "%s: %v", outputPath, err)
	}
	logger.Info("Transcript saved: " + outputPath)

	return text, nil
}

// logDuration probes the audio length in verbose mode only; failures are ignored.
func (c *Converter) logDuration(ctx context.Context, logger *zap.Logger, path string) {
	prober, ok := c.transcoder.(audio.DurationProber)
	if !ok || !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	if seconds, err := prober.GetAudioDuration(ctx, path); err == nil {
		logger.Debug("Audio duration: " + utils.FormatDuration(time.Duration(seconds)*time.Second))
	}
}

// transcode converts job.InputPath into a temporary MP3 and points
// job.SubmittedPath at it. The returned cleanup removes the temp file; on
// error it has already been removed.
func (c *Converter) transcode(ctx context.Context, logger *zap.Logger, job *model.TranscriptionJob) (func(), error) {
	logger.Warn(fmt.Sprintf("File too large (%s), converting to MP3 automatically...", utils.FormatSize(job.Size)))

	tmp, err := os.CreateTemp(c.TempDir, "rec2txt-*.mp3")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTranscodeFailed, "failed to create temp file: %v", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove temp file", zap.String("path", tmpPath), zap.Error(err))
		}
	}

	if err := c.transcoder.ConvertToMp3(ctx, job.InputPath, tmpPath); err != nil {
		cleanup()
		return nil, err
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		cleanup()
		return nil, errors.Wrapf(errors.ErrTranscodeFailed, "converted file missing: %v", err)
	}
	logger.Info("Converted: " + utils.FormatSize(info.Size()))

	if info.Size() >= c.MaxFileSize {
		cleanup()
		return nil, errors.Wrapf(errors.ErrFileTooLarge, "converted file still too large (%s)", utils.FormatSize(info.Size()))
	}

	c.metrics.Transcodes.Inc()
	job.SubmittedPath = tmpPath
	job.Transcoded = true
	return cleanup, nil
}

func (c *Converter) recordResult(ctx context.Context, job model.TranscriptionJob, text string, elapsed time.Duration, jobErr error) {
	status := metrics.StatusSuccess
	if jobErr != nil {
		status = metrics.StatusFailure
	}
	c.metrics.ObserveTranscription(status)

	if c.db == nil {
		return
	}

	row := model.Transcription{
		JobID:              job.ID,
		FileName:           filepath.Base(job.InputPath),
		InputPath:          job.InputPath,
		FileSize:           job.Size,
		Transcoded:         job.Transcoded,
		Language:           job.Language,
		ProcessingTime:     elapsed,
		Transcription:      text,
		LastConversionTime: c.now(),
	}
	if jobErr != nil {
		row.HasError = true
		row.ErrorMessage = jobErr.Error()
	}

	// Recorded even when ctx was cancelled.
	if err := c.db.RecordTranscription(context.WithoutCancel(ctx), row); err != nil {
		c.logger.Warn("Failed to record transcription history", zap.String("job", job.ID), zap.Error(err))
	}
}
