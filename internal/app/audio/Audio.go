package audio

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"rec2txt/internal/app/errors"
)

const (
	// DefaultMp3Bitrate is 64 kbit/s; one hour of audio comes to about 28.8 MB.
	DefaultMp3Bitrate = "64k"

	ffmpegInstallHint = "Please install it: sudo apt install ffmpeg"
)

// Transcoder converts an audio file into a smaller compressed file.
type Transcoder interface {
	ConvertToMp3(ctx context.Context, inputPath, outputPath string) error
}

// DurationProber reports the length of an audio file in whole seconds.
type DurationProber interface {
	GetAudioDuration(ctx context.Context, filePath string) (int, error)
}

var _ DurationProber = (*FFmpeg)(nil)

// FFmpeg shells out to the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
	Bitrate     string
	logger      *zap.Logger
}

// NewFFmpeg returns an FFmpeg using the binaries found on PATH.
func NewFFmpeg(logger *zap.Logger) *FFmpeg {
	return &FFmpeg{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Bitrate:     DefaultMp3Bitrate,
		logger:      logger,
	}
}

// ConvertToMp3 encodes inputPath as MP3 at the configured bitrate, overwriting outputPath.
func (f *FFmpeg) ConvertToMp3(ctx context.Context, inputPath, outputPath string) error {
	f.logger.Info(fmt.Sprintf("Converting to MP3 (%s)...", f.Bitrate))

	cmd := exec.CommandContext(ctx, f.FFmpegPath, "-i", inputPath, "-b:a", f.Bitrate, "-y", outputPath)

	// capture stderr so the failure reason ends up in the error
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return errors.WithHint(errors.Wrap(errors.ErrMissingDependency, f.FFmpegPath), ffmpegInstallHint)
		}
		return errors.Wrapf(errors.ErrTranscodeFailed, "ffmpeg error: %v, stderr: %s", err, lastLine(stderr.String()))
	}

	f.logger.Debug("MP3 conversion completed", zap.String("output", outputPath))
	return nil
}

// GetAudioDuration asks ffprobe for the duration of filePath in whole seconds.
func (f *FFmpeg) GetAudioDuration(ctx context.Context, filePath string) (int, error) {
	cmd := exec.CommandContext(ctx, f.FFprobePath, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return parseDurationOutput(string(output))
}

func parseDurationOutput(output string) (int, error) {
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}

// lastLine keeps the final non-empty line of ffmpeg's chatty stderr.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
