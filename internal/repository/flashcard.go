package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studylab/certprep/internal/domain/entities"
)

type FlashcardRepository struct {
	db *pgxpool.Pool
}

func NewFlashcardRepository(db *pgxpool.Pool) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

// Add persists one generated card for a user and certification.
func (r *FlashcardRepository) Add(ctx context.Context, userID, certificationID, front, back string) error {
	query := `
		INSERT INTO flashcards (user_id, certification_id, front, back)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, userID, certificationID, front, back)
	if err != nil {
		return fmt.Errorf("add flashcard: %w", err)
	}

	return nil
}

// GetByCertification retrieves all saved cards for a user and
// certification, oldest first.
func (r *FlashcardRepository) GetByCertification(ctx context.Context, userID, certificationID string) ([]*entities.Flashcard, error) {
	query := `
		SELECT id, certification_id, front, back, times_correct, times_incorrect
		FROM flashcards
		WHERE user_id = $1 AND certification_id = $2
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, userID, certificationID)
	if err != nil {
		return nil, fmt.Errorf("get flashcards: %w", err)
	}
	defer rows.Close()

	var cards []*entities.Flashcard
	for rows.Next() {
		var c entities.Flashcard
		err = rows.Scan(
			&c.ID,
			&c.CertificationID,
			&c.Front,
			&c.Back,
			&c.TimesCorrect,
			&c.TimesIncorrect,
		)
		if err != nil {
			return nil, fmt.Errorf("get flashcards: %w", err)
		}
		cards = append(cards, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("get flashcards: %w", err)
	}

	return cards, nil
}

// RecordOutcome increments the correct or incorrect counter of a saved
// card after it was answered in a study session.
func (r *FlashcardRepository) RecordOutcome(ctx context.Context, cardID int64, known bool) error {
	query := `
		UPDATE flashcards
		SET times_correct = times_correct + $2,
		    times_incorrect = times_incorrect + $3
		WHERE id = $1
	`

	correct, incorrect := 0, 1
	if known {
		correct, incorrect = 1, 0
	}

	_, err := r.db.Exec(ctx, query, cardID, correct, incorrect)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}

	return nil
}
