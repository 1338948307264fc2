package model

import "time"

// CorrectionRecord is a user-confirmed category assignment for a normalized
// description. Exactly one record exists per normalized key; later corrections
// overwrite earlier ones.
type CorrectionRecord struct {
	UpdatedAt             time.Time
	KeyHash               string
	NormalizedDescription string
	OriginalDescription   string
	Category              string
	Subcategory           string
}
