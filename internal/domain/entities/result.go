package entities

import "time"

// TestResult is a remotely persisted record of one completed test
// submission. Records are append-only and never updated; the "best result"
// for a certification is derived transiently as the maximum of
// score/totalQuestions over all records.
type TestResult struct {
	TestID          string    `json:"testId"`
	UserID          string    `json:"userId"`
	CertificationID string    `json:"certificationId"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"totalQuestions"`
	Timestamp       time.Time `json:"timestamp"`
}

// Ratio returns the fraction of questions answered correctly.
func (r *TestResult) Ratio() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions)
}
