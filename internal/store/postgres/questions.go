package postgres

import (
	"context"
	"errors"

	"questionnaire/internal/fault"
	"questionnaire/internal/model"
	"questionnaire/internal/params"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Questions runs one statement per operation against the pool. Ids must be
// 32-bit integers.
type Questions struct {
	db *pgxpool.Pool
}

func NewQuestions(db *pgxpool.Pool) *Questions {
	return &Questions{db: db}
}

// List returns questions ordered by id. A nil page means LIMIT ALL.
func (s *Questions) List(ctx context.Context, page *params.Pagination) ([]model.Question, error) {
	query := `
		SELECT id, title, content, tags
		FROM questions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	var (
		limit  *int64
		offset int64
	)
	if page != nil {
		o, l := page.SQLWindow()
		offset = int64(o)
		lv := int64(l)
		limit = &lv
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fault.Query("questions.list", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fault.Query("questions.list", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Query("questions.list", err)
	}
	return questions, nil
}

func (s *Questions) Get(ctx context.Context, id model.QuestionID) (*model.Question, error) {
	key, err := id.Int32()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, content, tags
		FROM questions
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	q, err := scanQuestion(s.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fault.New(fault.KindQuestionNotFound, "questions.get", nil)
		}
		return nil, fault.Query("questions.get", err)
	}
	return &q, nil
}

// Add inserts q and returns the stored row. Without an id the database sequence
// assigns one; with an id an existing row is overwritten.
func (s *Questions) Add(ctx context.Context, q model.Question) (*model.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var row pgx.Row
	if q.ID == "" {
		query := `
			INSERT INTO questions (title, content, tags)
			VALUES ($1, $2, $3)
			RETURNING id, title, content, tags
		`
		row = s.db.QueryRow(ctx, query, q.Title, q.Content, q.Tags)
	} else {
		key, err := q.ID.Int32()
		if err != nil {
			return nil, err
		}
		// The sequence is moved past explicit ids so generated ids never collide with them.
		query := `
			WITH upserted AS (
				INSERT INTO questions (id, title, content, tags)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO UPDATE
				SET title = EXCLUDED.title, content = EXCLUDED.content, tags = EXCLUDED.tags
				RETURNING id, title, content, tags
			), advanced AS (
				SELECT setval(s.seq, GREATEST(u.id, pg_sequence_last_value(s.seq), 1))
				FROM upserted u, (SELECT pg_get_serial_sequence('questions', 'id')::regclass AS seq) s
			)
			SELECT u.id, u.title, u.content, u.tags
			FROM upserted u, advanced
		`
		row = s.db.QueryRow(ctx, query, key, q.Title, q.Content, q.Tags)
	}

	stored, err := scanQuestion(row)
	if err != nil {
		return nil, fault.Query("questions.add", err)
	}
	return &stored, nil
}

func (s *Questions) Update(ctx context.Context, id model.QuestionID, q model.Question) (*model.Question, error) {
	key, err := id.Int32()
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE questions
		SET title = $1, content = $2, tags = $3
		WHERE id = $4
		RETURNING id, title, content, tags
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	stored, err := scanQuestion(s.db.QueryRow(ctx, query, q.Title, q.Content, q.Tags, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fault.New(fault.KindQuestionNotFound, "questions.update", nil)
		}
		return nil, fault.Query("questions.update", err)
	}
	return &stored, nil
}

func (s *Questions) Delete(ctx context.Context, id model.QuestionID) error {
	key, err := id.Int32()
	if err != nil {
		return err
	}

	query := `
		DELETE FROM questions
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, query, key)
	if err != nil {
		return fault.Query("questions.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fault.New(fault.KindQuestionNotFound, "questions.delete", nil)
	}
	return nil
}

func (s *Questions) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fault.Query("questions.count", err)
	}
	return int(n), nil
}

func scanQuestion(row pgx.Row) (model.Question, error) {
	var (
		q  model.Question
		id int32
	)
	if err := row.Scan(&id, &q.Title, &q.Content, &q.Tags); err != nil {
		return model.Question{}, err
	}
	q.ID = model.QuestionIDFromInt32(id)
	return q, nil
}
