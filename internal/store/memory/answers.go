package memory

import (
	"context"
	"fmt"
	"sync"

	"questionnaire/internal/fault"
	"questionnaire/internal/model"

	hashids "github.com/speps/go-hashids/v2"
)

const (
	answerIDSalt      = "questionnaire/answers"
	answerIDMinLength = 8
)

// Answers is an in-memory, append-only answer collection. Ids are hashids of a
// monotonic sequence, so they are unique for the lifetime of the collection.
type Answers struct {
	mu      sync.RWMutex
	answers []model.Answer
	seq     int64
	ids     *hashids.HashID
}

func NewAnswers() (*Answers, error) {
	hd := hashids.NewData()
	hd.Salt = answerIDSalt
	hd.MinLength = answerIDMinLength

	ids, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Answers{ids: ids}, nil
}

func (s *Answers) Add(ctx context.Context, a model.NewAnswer) (*model.Answer, error) {
	if a.QuestionID == "" {
		return nil, fault.New(fault.KindInvalidID, "answers.add", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	raw, err := s.ids.EncodeInt64([]int64{s.seq})
	if err != nil {
		s.seq--
		// A storage failure like any other: the store could not assign an id.
		return nil, fault.New(fault.KindDatabaseQuery, "answers.add", fmt.Errorf("assign answer id %d: hashids: %w", s.seq+1, err))
	}

	answer := model.Answer{
		ID:         model.AnswerID(raw),
		Content:    a.Content,
		QuestionID: a.QuestionID,
	}
	s.answers = append(s.answers, answer)
	return &answer, nil
}

// ListByQuestion returns the answers of a question in insertion order.
func (s *Answers) ListByQuestion(ctx context.Context, id model.QuestionID) ([]model.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Answer{}
	for _, a := range s.answers {
		if a.QuestionID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Answers) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.answers), nil
}
