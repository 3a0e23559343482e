package entities

// ReadingProgress is a remotely persisted per-(user, certification) reading
// position, as a whole percentage of the study guide scrolled. One record
// per pair, upserted on every debounced update.
type ReadingProgress struct {
	UserID          string `json:"userId"`
	CertificationID string `json:"certificationId"`
	Percentage      int    `json:"percentage"`
}

// NewReadingProgress creates a progress record clamped to the 0-100 range.
func NewReadingProgress(userID, certificationID string, percentage int) *ReadingProgress {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	return &ReadingProgress{
		UserID:          userID,
		CertificationID: certificationID,
		Percentage:      percentage,
	}
}
