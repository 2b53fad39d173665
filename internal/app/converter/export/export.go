package export

import (
	"fmt"
	"os"
	"time"

	"github.com/tealeg/xlsx"
	"rec2txt/internal/app/model"
	"rec2txt/internal/app/util/files"
	"rec2txt/internal/app/utils"
)

const timeLayout = "2006-01-02 15:04:05"

// RecordingRow is one audio file of the recordings directory.
type RecordingRow struct {
	Name        string
	ModTime     time.Time
	Size        int64
	Transcribed bool
	Transcript  string
}

// CollectRecordings lists the supported audio files in dir, oldest first, with
// their transcripts when a .txt sibling exists.
func CollectRecordings(dir string) ([]RecordingRow, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("directory not found: %s", dir)
	}

	audioFiles, err := files.GetAllFiles(dir, files.IsSupportedAudio)
	if err != nil {
		return nil, err
	}

	rows := make([]RecordingRow, 0, len(audioFiles))
	for _, f := range audioFiles {
		row := RecordingRow{Name: f.Name, ModTime: f.ModTime, Size: f.Size}
		if text, err := files.ReadOutputFile(model.TranscriptPath(f.FullPath)); err == nil {
			row.Transcribed = true
			row.Transcript = text
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ToExcel writes recordings to a "Recordings" sheet and, when history is not
// nil, the job history to a "History" sheet.
func ToExcel(recordings []RecordingRow, history []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Recordings")
	if err != nil {
		return err
	}

	addHeader(sheet, "File Name", "Modified", "Size", "Size (bytes)", "Transcribed", "Transcript")
	for _, r := range recordings {
		row := sheet.AddRow()
		row.AddCell().Value = r.Name
		row.AddCell().Value = r.ModTime.Format(timeLayout)
		row.AddCell().Value = utils.FormatSize(r.Size)
		row.AddCell().SetInt64(r.Size)
		row.AddCell().Value = yesNo(r.Transcribed)
		row.AddCell().Value = r.Transcript
	}

	if history != nil {
		if err := addHistorySheet(file, history); err != nil {
			return err
		}
	}

	return file.Save(outputFilePath)
}

func addHistorySheet(file *xlsx.File, history []model.Transcription) error {
	sheet, err := file.AddSheet("History")
	if err != nil {
		return err
	}

	addHeader(sheet, "ID", "Job", "Last Conversion Time", "File Name", "Size", "Transcoded",
		"Language", "Processing Time", "Transcription", "Error Message")
	for _, t := range history {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(t.ID)
		row.AddCell().Value = t.JobID
		row.AddCell().Value = t.LastConversionTime.Format(time.RFC3339)
		row.AddCell().Value = t.FileName
		row.AddCell().Value = utils.FormatSize(t.FileSize)
		row.AddCell().Value = yesNo(t.Transcoded)
		row.AddCell().Value = t.Language
		row.AddCell().Value = fmt.Sprintf("%.1f s", t.ProcessingTime.Seconds())
		row.AddCell().Value = t.Transcription
		row.AddCell().Value = t.ErrorMessage
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, titles ...string) {
	headerRow := sheet.AddRow()
	for _, title := range titles {
		headerRow.AddCell().Value = title
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
