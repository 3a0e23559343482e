package entities

// GeneratedQuestion is an ephemeral multiple-choice question produced by
// the content generator. Options always holds exactly four entries with
// the correct answer at CorrectIndex; the invariant is established by the
// generator before the question is ever shown.
type GeneratedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Domain       string   `json:"domain"`
}

// StoredQuestion is a remotely persisted question record. The interface is
// part of the persistence surface but the generator path never reads it:
// question generation is local.
type StoredQuestion struct {
	ID              int64  `json:"id"`
	CertificationID string `json:"certificationId"`
	Domain          string `json:"domain"`
	QuestionText    string `json:"questionText"`
	CorrectAnswer   string `json:"correctAnswer"`
}
