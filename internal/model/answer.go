package model

import (
	"errors"
	"fmt"
	"strconv"

	"questionnaire/internal/fault"
)

// AnswerID identifies an answer.
type AnswerID string

func ParseAnswerID(raw string) (AnswerID, error) {
	if raw == "" {
		return "", fault.New(fault.KindInvalidID, "model.ParseAnswerID", errors.New("no id provided"))
	}
	return AnswerID(raw), nil
}

func AnswerIDFromInt32(v int32) AnswerID {
	return AnswerID(strconv.FormatInt(int64(v), 10))
}

func (id AnswerID) String() string {
	return string(id)
}

func (id AnswerID) Int32() (int32, error) {
	return parseInt32("model.AnswerID.Int32", string(id))
}

func (id AnswerID) Compare(other AnswerID) int {
	return compareKeys(string(id), string(other))
}

// Answer is an answer to a question. The referenced question is not checked.
type Answer struct {
	ID         AnswerID   `json:"id" yaml:"id"`
	Content    string     `json:"content" yaml:"content"`
	QuestionID QuestionID `json:"question_id" yaml:"question_id"`
}

func (a Answer) String() string {
	return fmt.Sprintf("id: %s, content: %s, question_id: %s", a.ID, a.Content, a.QuestionID)
}

// NewAnswer carries the caller-supplied fields of an answer.
type NewAnswer struct {
	Content    string     `json:"content" validate:"required"`
	QuestionID QuestionID `json:"question_id" validate:"required"`
}
