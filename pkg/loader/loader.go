package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xhad/vecseed/internal/models"
	"github.com/xhad/vecseed/pkg/seeder"
)

// FileLoader reads a JSON array of sample records from disk. Field names
// are matched case-insensitively and unknown fields are ignored, both
// per encoding/json semantics. An empty array is valid and yields zero
// records.
type FileLoader struct{}

func New() *FileLoader {
	return &FileLoader{}
}

func (l *FileLoader) Load(path string) ([]models.SourceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, seeder.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	var records []models.SourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, seeder.ErrMalformed)
	}

	return records, nil
}
