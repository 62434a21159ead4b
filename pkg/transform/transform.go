package transform

import "github.com/xhad/vecseed/internal/models"

// Apply converts one source record into its storage shape. It is pure
// and total: every input yields exactly one output, the partition key is
// a copy of the category, and vectors are carried over numerically
// untouched. A missing vector becomes an empty slice, never nil.
func Apply(rec models.SourceRecord) models.StorageRecord {
	rec.TitleVector = copyVector(rec.TitleVector)
	rec.ContentVector = copyVector(rec.ContentVector)

	return models.StorageRecord{
		SourceRecord: rec,
		PartitionKey: rec.Category,
	}
}

// ApplyAll maps Apply over a slice, preserving order and length.
func ApplyAll(recs []models.SourceRecord) []models.StorageRecord {
	out := make([]models.StorageRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Apply(rec))
	}
	return out
}

func copyVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
