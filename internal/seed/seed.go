// Package seed decodes the fixture questions an in-memory store starts with.
//
// Input is YAML or JSON, either a list of questions or an object keyed by question id:
//
//	{"1": {"id": "1", "title": "First question", "content": "Content", "tags": ["faq"]}}
package seed

import (
	"fmt"
	"os"
	"slices"

	"questionnaire/internal/model"

	"gopkg.in/yaml.v3"
)

// Load reads and decodes the seed file at path.
func Load(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed content. Entries of an id-keyed object without their own id take
// the key as id; they are returned ordered by id.
func Parse(data []byte) ([]model.Question, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var list []model.Question
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("parse seed: %w", err)
		}
		return list, nil

	case yaml.MappingNode:
		var byID map[string]model.Question
		if err := root.Decode(&byID); err != nil {
			return nil, fmt.Errorf("parse seed: %w", err)
		}
		list := make([]model.Question, 0, len(byID))
		for key, q := range byID {
			if q.ID == "" {
				q.ID = model.QuestionID(key)
			}
			list = append(list, q)
		}
		slices.SortFunc(list, func(a, b model.Question) int {
			return a.ID.Compare(b.ID)
		})
		return list, nil
	}

	return nil, fmt.Errorf("parse seed: expected a list or an object of questions, got %s", kindName(root.Kind))
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "a document"
	}
	return "unknown node"
}
