package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"rec2txt/internal/app/model"
)

const (
	defaultQueryTimeout = 5 * time.Second

	// SystemAudioDescription labels the monitor of the default sink.
	SystemAudioDescription = "System audio (output)"
)

// SourceLister enumerates capture sources through pactl, which works against
// both PulseAudio and PipeWire's pulse server.
type SourceLister struct {
	PactlPath string
	Timeout   time.Duration
	logger    *zap.Logger
}

// NewSourceLister returns a SourceLister using pactl from PATH.
func NewSourceLister(logger *zap.Logger) *SourceLister {
	return &SourceLister{
		PactlPath: "pactl",
		Timeout:   defaultQueryTimeout,
		logger:    logger,
	}
}

// DefaultMonitor returns the monitor source of the default sink.
func (l *SourceLister) DefaultMonitor(ctx context.Context) (string, bool) {
	output, err := l.query(ctx, "get-default-sink")
	if err != nil {
		l.logger.Debug("default sink lookup failed", zap.Error(err))
		return "", false
	}
	sink := strings.TrimSpace(output)
	if sink == "" {
		return "", false
	}
	return sink + ".monitor", true
}

// ListSources returns the default monitor first, followed by every other source
// pactl reports. Query failures shrink the list rather than failing it.
func (l *SourceLister) ListSources(ctx context.Context) []model.AudioSource {
	var sources []model.AudioSource

	monitor, ok := l.DefaultMonitor(ctx)
	if ok {
		sources = append(sources, model.AudioSource{Name: monitor, Description: SystemAudioDescription})
	}

	output, err := l.query(ctx, "list", "sources", "short")
	if err != nil {
		l.logger.Debug("source listing failed", zap.Error(err))
		return sources
	}

	sources = append(sources, parseSourcesShort(output, monitor)...)
	return lo.UniqBy(sources, func(s model.AudioSource) string { return s.Name })
}

func (l *SourceLister) query(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, l.PactlPath, args...).Output()
	if err != nil {
		return "", fmt.Errorf("pactl %s: %w", strings.Join(args, " "), err)
	}
	return string(output), nil
}

// parseSourcesShort reads `pactl list sources short` output
// (index, name, driver, sample format, state; tab separated) and skips the given name.
func parseSourcesShort(output, skip string) []model.AudioSource {
	var sources []model.AudioSource
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[1])
		if name == "" || (skip != "" && name == skip) {
			continue
		}
		sources = append(sources, model.AudioSource{Name: name, Description: describeSource(name)})
	}
	return sources
}

func describeSource(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "monitor"):
		return "Monitor: " + name
	case strings.Contains(lower, "input"), strings.Contains(lower, "mic"):
		return "Microphone: " + name
	default:
		return name
	}
}
