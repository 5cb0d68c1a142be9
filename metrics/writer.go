package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const generationRecordsFile = "generation_records.csv"

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteGenerationRecords rewrites the generation records file with every
// record collected so far.
func (w *Writer) WriteGenerationRecords(records []GenerationMetric) error {
	path := filepath.Join(w.baseDir, generationRecordsFile)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create generation records file")
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"generation", "workers", "population", "games", "black_wins", "white_wins", "draws", "passes", "start_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "failed to write generation records header")
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.Workers),
			strconv.Itoa(record.Population),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.BlackWins),
			strconv.Itoa(record.WhiteWins),
			strconv.Itoa(record.Draws),
			strconv.Itoa(record.Passes),
			record.StartTime.UTC().Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return errors.Wrap(err, "failed to write generation record row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush generation records")
}
