package postgres

import (
	"context"

	"questionnaire/internal/fault"
	"questionnaire/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Answers leaves referential integrity to whatever constraints the schema declares.
type Answers struct {
	db *pgxpool.Pool
}

func NewAnswers(db *pgxpool.Pool) *Answers {
	return &Answers{db: db}
}

func (s *Answers) Add(ctx context.Context, a model.NewAnswer) (*model.Answer, error) {
	questionID, err := a.QuestionID.Int32()
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO answers (content, question_id)
		VALUES ($1, $2)
		RETURNING id, content, question_id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	answer, err := scanAnswer(s.db.QueryRow(ctx, query, a.Content, questionID))
	if err != nil {
		return nil, fault.Query("answers.add", err)
	}
	return &answer, nil
}

func (s *Answers) ListByQuestion(ctx context.Context, id model.QuestionID) ([]model.Answer, error) {
	questionID, err := id.Int32()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, content, question_id
		FROM answers
		WHERE question_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, fault.Query("answers.list", err)
	}
	defer rows.Close()

	answers := []model.Answer{}
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, fault.Query("answers.list", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Query("answers.list", err)
	}
	return answers, nil
}

func (s *Answers) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM answers`).Scan(&n); err != nil {
		return 0, fault.Query("answers.count", err)
	}
	return int(n), nil
}

func scanAnswer(row pgx.Row) (model.Answer, error) {
	var (
		a          model.Answer
		id         int32
		questionID int32
	)
	if err := row.Scan(&id, &a.Content, &questionID); err != nil {
		return model.Answer{}, err
	}
	a.ID = model.AnswerIDFromInt32(id)
	a.QuestionID = model.QuestionIDFromInt32(questionID)
	return a, nil
}
