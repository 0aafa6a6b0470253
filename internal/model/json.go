package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ids are written as strings. They are read from either a JSON string or a JSON
// integer, so clients of integer-keyed stores can send numeric ids.

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	raw, err := decodeKey(data)
	if err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	*id = QuestionID(raw)
	return nil
}

func (id *AnswerID) UnmarshalJSON(data []byte) error {
	raw, err := decodeKey(data)
	if err != nil {
		return fmt.Errorf("answer id: %w", err)
	}
	*id = AnswerID(raw)
	return nil
}

func decodeKey(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	if _, err := n.Int64(); err != nil {
		return "", fmt.Errorf("%s is not an integer", n)
	}
	return n.String(), nil
}
