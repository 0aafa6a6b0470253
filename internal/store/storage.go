package store

import (
	"context"

	"questionnaire/internal/model"
	"questionnaire/internal/params"
	"questionnaire/internal/store/memory"
	"questionnaire/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	KindMemory   = "memory"
	KindPostgres = "postgres"
)

// Questions is the question collection. Every failure is a *fault.Error.
type Questions interface {
	// List returns every question when page is nil, otherwise the requested window.
	List(ctx context.Context, page *params.Pagination) ([]model.Question, error)
	Get(ctx context.Context, id model.QuestionID) (*model.Question, error)
	// Add inserts q, overwriting any question with the same id. An empty id is
	// assigned by the store.
	Add(ctx context.Context, q model.Question) (*model.Question, error)
	// Update replaces the whole record stored under id.
	Update(ctx context.Context, id model.QuestionID, q model.Question) (*model.Question, error)
	Delete(ctx context.Context, id model.QuestionID) error
	Count(ctx context.Context) (int, error)
}

// Answers is the answer collection. Answer ids are always assigned by the store.
type Answers interface {
	Add(ctx context.Context, a model.NewAnswer) (*model.Answer, error)
	ListByQuestion(ctx context.Context, id model.QuestionID) ([]model.Answer, error)
	Count(ctx context.Context) (int, error)
}

type Storage struct {
	Kind      string
	Questions Questions
	Answers   Answers
}

// NewMemoryStorage keeps everything in process memory for the process lifetime,
// starting from the given seed questions.
func NewMemoryStorage(seed []model.Question) (Storage, error) {
	questions, err := memory.NewQuestionsFromSeed(seed)
	if err != nil {
		return Storage{}, err
	}
	answers, err := memory.NewAnswers()
	if err != nil {
		return Storage{}, err
	}

	return Storage{
		Kind:      KindMemory,
		Questions: questions,
		Answers:   answers,
	}, nil
}

// NewPostgresStorage delegates persistence to the database behind pool.
// The pool is owned by the caller.
func NewPostgresStorage(pool *pgxpool.Pool) Storage {
	return Storage{
		Kind:      KindPostgres,
		Questions: postgres.NewQuestions(pool),
		Answers:   postgres.NewAnswers(pool),
	}
}
