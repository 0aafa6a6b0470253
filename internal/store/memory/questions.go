package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"questionnaire/internal/fault"
	"questionnaire/internal/model"
	"questionnaire/internal/params"

	"github.com/google/uuid"
)

// Questions is an in-memory question collection guarded by a single RWMutex.
// Records are copied in and out so callers never share tag slices with the map.
type Questions struct {
	mu        sync.RWMutex
	questions map[model.QuestionID]model.Question
}

func NewQuestions() *Questions {
	return &Questions{questions: make(map[model.QuestionID]model.Question)}
}

// NewQuestionsFromSeed builds a collection holding the given fixtures.
// Later entries overwrite earlier ones with the same id.
func NewQuestionsFromSeed(seed []model.Question) (*Questions, error) {
	s := NewQuestions()
	for i, q := range seed {
		if q.ID == "" {
			return nil, fault.New(fault.KindInvalidID, "memory.NewQuestionsFromSeed",
				fmt.Errorf("seed entry %d has no id", i))
		}
		s.questions[q.ID] = clone(q)
	}
	return s, nil
}

func (s *Questions) List(ctx context.Context, page *params.Pagination) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		data = append(data, clone(q))
	}
	slices.SortFunc(data, func(a, b model.Question) int {
		return a.ID.Compare(b.ID)
	})

	if page == nil {
		return data, nil
	}

	lo, hi := page.Bounds(len(data))
	return data[lo:hi], nil
}

func (s *Questions) Get(ctx context.Context, id model.QuestionID) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, fault.New(fault.KindQuestionNotFound, "questions.get", nil)
	}
	q = clone(q)
	return &q, nil
}

func (s *Questions) Add(ctx context.Context, q model.Question) (*model.Question, error) {
	if q.ID == "" {
		q.ID = model.QuestionID(uuid.NewString())
	}
	q = clone(q)

	s.mu.Lock()
	s.questions[q.ID] = q
	s.mu.Unlock()

	out := clone(q)
	return &out, nil
}

func (s *Questions) Update(ctx context.Context, id model.QuestionID, q model.Question) (*model.Question, error) {
	q.ID = id
	q = clone(q)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return nil, fault.New(fault.KindQuestionNotFound, "questions.update", nil)
	}
	s.questions[id] = q

	out := clone(q)
	return &out, nil
}

func (s *Questions) Delete(ctx context.Context, id model.QuestionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return fault.New(fault.KindQuestionNotFound, "questions.delete", nil)
	}
	delete(s.questions, id)
	return nil
}

func (s *Questions) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}

func clone(q model.Question) model.Question {
	q.Tags = slices.Clone(q.Tags)
	return q
}
