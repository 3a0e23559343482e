package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studylab/certprep/internal/domain/entities"
)

var ErrProgressNotFound = errors.New("progress not found")

type ProgressRepository struct {
	db *pgxpool.Pool
}

func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert creates or overwrites the reading-progress record for a
// (user, certification) pair. The store itself does not enforce
// monotonicity; the reading tracker does.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *entities.ReadingProgress) error {
	query := `
		INSERT INTO reading_progress (user_id, certification_id, percentage, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, certification_id)
		DO UPDATE SET
			percentage = excluded.percentage,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(
		ctx, query,
		progress.UserID,
		progress.CertificationID,
		progress.Percentage,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	return nil
}

// Get retrieves the saved percentage for a (user, certification) pair.
// Returns ErrProgressNotFound when the user has never opened the guide.
func (r *ProgressRepository) Get(ctx context.Context, userID, certificationID string) (*entities.ReadingProgress, error) {
	query := `
		SELECT user_id, certification_id, percentage
		FROM reading_progress
		WHERE user_id = $1 AND certification_id = $2
	`

	var progress entities.ReadingProgress
	err := r.db.QueryRow(ctx, query, userID, certificationID).Scan(
		&progress.UserID,
		&progress.CertificationID,
		&progress.Percentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}

		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &progress, nil
}

// GetByUserID retrieves all reading-progress records for a user.
func (r *ProgressRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.ReadingProgress, error) {
	query := `
		SELECT user_id, certification_id, percentage
		FROM reading_progress
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress by user id: %w", err)
	}
	defer rows.Close()

	var records []*entities.ReadingProgress
	for rows.Next() {
		var p entities.ReadingProgress
		if err = rows.Scan(&p.UserID, &p.CertificationID, &p.Percentage); err != nil {
			return nil, fmt.Errorf("get progress by user id: %w", err)
		}
		records = append(records, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("get progress by user id: %w", err)
	}

	return records, nil
}
