package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/model"
)

// SupportedExtensions are the audio formats accepted by the transcription API.
var SupportedExtensions = []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm"}

// IsSupportedAudio reports whether path has a supported extension, ignoring case.
func IsSupportedAudio(path string) bool {
	return lo.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// IsWav reports whether path is a .wav file, ignoring case.
func IsWav(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".wav"
}

// CheckAndCreateDirectory creates dir (and parents) if it does not exist yet.
func CheckAndCreateDirectory(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// GetAllFiles lists the regular files in inputDir accepted by keep, oldest first.
func GetAllFiles(inputDir string, keep func(name string) bool) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", inputDir, err)
	}

	var fileInfos []model.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		fileInfos = append(fileInfos, model.FileInfo{
			FullPath: filepath.Join(inputDir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
			Size:     info.Size(),
		})
	}

	sort.SliceStable(fileInfos, func(i, j int) bool {
		if fileInfos[i].ModTime.Equal(fileInfos[j].ModTime) {
			return fileInfos[i].Name < fileInfos[j].Name
		}
		return fileInfos[i].ModTime.Before(fileInfos[j].ModTime)
	})

	return fileInfos, nil
}

// FindLatestAudioFile returns the most recently modified supported audio file in dir.
func FindLatestAudioFile(dir string) (model.FileInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return model.FileInfo{}, errors.Wrapf(errors.ErrFileNotFound, "directory not found: %s", dir)
	}

	audioFiles, err := GetAllFiles(dir, IsSupportedAudio)
	if err != nil {
		return model.FileInfo{}, err
	}
	if len(audioFiles) == 0 {
		return model.FileInfo{}, errors.Wrapf(errors.ErrNoAudioFiles, "no audio files found in: %s", dir)
	}

	// GetAllFiles sorts oldest first.
	return audioFiles[len(audioFiles)-1], nil
}

// FindUntranscribedRecordings returns the .wav files in dir that have no sibling
// .txt transcript, oldest first.
func FindUntranscribedRecordings(dir string) ([]model.FileInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrapf(errors.ErrFileNotFound, "directory not found: %s", dir)
	}

	recordings, err := GetAllFiles(dir, IsWav)
	if err != nil {
		return nil, err
	}

	return lo.Filter(recordings, func(f model.FileInfo, _ int) bool {
		return !HasTranscript(f.FullPath)
	}), nil
}

// HasTranscript reports whether the sibling .txt of audioPath exists.
func HasTranscript(audioPath string) bool {
	_, err := os.Stat(model.TranscriptPath(audioPath))
	return err == nil
}

// ReadOutputFile reads the specified output file and returns its text content.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}
