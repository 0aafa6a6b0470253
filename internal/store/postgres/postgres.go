package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QueryTimeoutDuration bounds every statement issued by this package.
var QueryTimeoutDuration = time.Second * 5

const schema = `
	CREATE TABLE IF NOT EXISTS questions (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		tags TEXT[]
	);
	CREATE TABLE IF NOT EXISTS answers (
		id SERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		question_id INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_answers_question_id ON answers(question_id);
`

// CreateSchema creates the questions and answers tables when they are missing.
func CreateSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}
