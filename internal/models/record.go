package models

import "fmt"

// SourceRecord is one pre-embedded sample document as it appears in the
// seed file. Vector fields are optional in the input; encoding/json
// matches field names case-insensitively.
type SourceRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	TitleVector   []float32 `json:"titleVector"`
	ContentVector []float32 `json:"contentVector"`
}

// StorageRecord is the shape written to the document store. PartitionKey
// is always a copy of Category, so records sharing a category land in the
// same logical partition.
type StorageRecord struct {
	SourceRecord
	PartitionKey string
}

// SearchResult is a single hit from a similarity search over the
// seeded container.
type SearchResult struct {
	ID       string
	Title    string
	Category string
}

// Progress is a post-batch snapshot emitted by the seeder.
type Progress struct {
	Processed int
	Total     int
	Uploaded  int
	Skipped   int
	Errors    int
}

func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Processed) / float64(p.Total) * 100
}

func (p Progress) String() string {
	return fmt.Sprintf("processed %d/%d (%.0f%%): %d uploaded, %d skipped, %d errors",
		p.Processed, p.Total, p.Percent(), p.Uploaded, p.Skipped, p.Errors)
}

// Summary holds the final tallies of a seeding run. Verified is the
// container count observed after upload; VerifyErr carries a read-back
// failure, which never fails the run itself.
type Summary struct {
	Uploaded  int
	Skipped   int
	Errors    int
	Total     int
	Verified  int64
	VerifyErr error
}

func (s Summary) String() string {
	return fmt.Sprintf("%d uploaded, %d skipped, %d errors (%d total)",
		s.Uploaded, s.Skipped, s.Errors, s.Total)
}
