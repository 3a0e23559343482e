package entities

// GeneratedFlashcard is an ephemeral front/back pair derived from catalog
// content. It only becomes a persisted Flashcard when the deck is saved.
type GeneratedFlashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Flashcard is a remotely persisted card. The correct/incorrect counters
// are maintained server-side when a saved deck is studied.
type Flashcard struct {
	ID              int64  `json:"id"`
	CertificationID string `json:"certificationId"`
	Front           string `json:"front"`
	Back            string `json:"back"`
	TimesCorrect    int    `json:"timesCorrect"`
	TimesIncorrect  int    `json:"timesIncorrect"`
}
