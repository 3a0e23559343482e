package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studylab/certprep/internal/domain/entities"
)

// QuestionRepository stores community-added questions. It is part of the
// persistence surface only; the generator path never reads from it.
type QuestionRepository struct {
	db *pgxpool.Pool
}

func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Add persists one question for a certification.
func (r *QuestionRepository) Add(ctx context.Context, certificationID, domain, questionText, correctAnswer string) (int64, error) {
	query := `
		INSERT INTO questions (certification_id, domain, question_text, correct_answer)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, certificationID, domain, questionText, correctAnswer).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add question: %w", err)
	}

	return id, nil
}

// GetByCertification retrieves all stored questions for a certification.
func (r *QuestionRepository) GetByCertification(ctx context.Context, certificationID string) ([]*entities.StoredQuestion, error) {
	query := `
		SELECT id, certification_id, domain, question_text, correct_answer
		FROM questions
		WHERE certification_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, certificationID)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	var questions []*entities.StoredQuestion
	for rows.Next() {
		var q entities.StoredQuestion
		err = rows.Scan(
			&q.ID,
			&q.CertificationID,
			&q.Domain,
			&q.QuestionText,
			&q.CorrectAnswer,
		)
		if err != nil {
			return nil, fmt.Errorf("get questions: %w", err)
		}
		questions = append(questions, &q)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}

	return questions, nil
}
