package model

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"questionnaire/internal/fault"
)

// QuestionID identifies a question. It is immutable once parsed.
type QuestionID string

// ParseQuestionID builds an id from raw path or form input.
func ParseQuestionID(raw string) (QuestionID, error) {
	if raw == "" {
		return "", fault.New(fault.KindInvalidID, "model.ParseQuestionID", errors.New("no id provided"))
	}
	return QuestionID(raw), nil
}

// QuestionIDFromInt32 converts a database-generated key.
func QuestionIDFromInt32(v int32) QuestionID {
	return QuestionID(strconv.FormatInt(int64(v), 10))
}

func (id QuestionID) String() string {
	return string(id)
}

// Int32 returns the integer form of the id used by integer-keyed stores.
func (id QuestionID) Int32() (int32, error) {
	return parseInt32("model.QuestionID.Int32", string(id))
}

// Compare orders integer ids numerically ahead of all other ids, which are ordered
// lexically. It returns 0 only for identical ids.
func (id QuestionID) Compare(other QuestionID) int {
	return compareKeys(string(id), string(other))
}

// Question is a question posted in the system.
type Question struct {
	ID      QuestionID `json:"id" yaml:"id"`
	Title   string     `json:"title" yaml:"title"`
	Content string     `json:"content" yaml:"content"`
	Tags    []string   `json:"tags" yaml:"tags,omitempty"`
}

func (q Question) String() string {
	return fmt.Sprintf("id: %s, title: %s, content: %s, tags: %v", q.ID, q.Title, q.Content, q.Tags)
}

// NewQuestion is a question whose id is assigned by the store.
type NewQuestion struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"omitempty,dive,required"`
}

// WithID turns the new question into a stored record.
func (n NewQuestion) WithID(id QuestionID) Question {
	return Question{
		ID:      id,
		Title:   n.Title,
		Content: n.Content,
		Tags:    n.Tags,
	}
}

func parseInt32(op, raw string) (int32, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fault.New(fault.KindInvalidID, op, fmt.Errorf("id is not an integer: %w", err))
	}
	return int32(v), nil
}

func compareKeys(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		if c := cmp.Compare(ai, bi); c != 0 {
			return c
		}
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	// "1", "01" and "+1" are distinct keys; keep them in a fixed order.
	return strings.Compare(a, b)
}
