package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studylab/certprep/internal/domain/entities"
)

type ResultRepository struct {
	db *pgxpool.Pool
}

func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// Submit stores one completed test submission and returns its generated
// test id. Records are append-only; nothing ever updates them.
func (r *ResultRepository) Submit(ctx context.Context, userID, certificationID string, score, totalQuestions int) (string, error) {
	query := `
		INSERT INTO test_results (test_id, user_id, certification_id, score, total_questions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	testID := uuid.New().String()
	_, err := r.db.Exec(ctx, query, testID, userID, certificationID, score, totalQuestions, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("submit result: %w", err)
	}

	return testID, nil
}

// GetByCertification retrieves all test results for a user and
// certification, newest first.
func (r *ResultRepository) GetByCertification(ctx context.Context, userID, certificationID string) ([]*entities.TestResult, error) {
	query := `
		SELECT test_id, user_id, certification_id, score, total_questions, created_at
		FROM test_results
		WHERE user_id = $1 AND certification_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, certificationID)
	if err != nil {
		return nil, fmt.Errorf("get results: %w", err)
	}
	defer rows.Close()

	var results []*entities.TestResult
	for rows.Next() {
		var res entities.TestResult
		err = rows.Scan(
			&res.TestID,
			&res.UserID,
			&res.CertificationID,
			&res.Score,
			&res.TotalQuestions,
			&res.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("get results: %w", err)
		}
		results = append(results, &res)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("get results: %w", err)
	}

	return results, nil
}
