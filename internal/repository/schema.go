package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS flashcards (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    user_id TEXT NOT NULL,
    certification_id TEXT NOT NULL,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    times_correct INT NOT NULL DEFAULT 0,
    times_incorrect INT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS flashcards_user_cert_idx
    ON flashcards (user_id, certification_id);

CREATE TABLE IF NOT EXISTS questions (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    certification_id TEXT NOT NULL,
    domain TEXT NOT NULL,
    question_text TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS questions_cert_idx ON questions (certification_id);

CREATE TABLE IF NOT EXISTS test_results (
    test_id UUID PRIMARY KEY,
    user_id TEXT NOT NULL,
    certification_id TEXT NOT NULL,
    score INT NOT NULL,
    total_questions INT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS test_results_user_cert_idx
    ON test_results (user_id, certification_id);

CREATE TABLE IF NOT EXISTS reading_progress (
    user_id TEXT NOT NULL,
    certification_id TEXT NOT NULL,
    percentage INT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, certification_id)
);
`

// ApplySchema creates the persistence tables if they do not exist yet.
func ApplySchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
