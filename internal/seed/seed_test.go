package seed

import (
	"os"
	"path/filepath"
	"testing"

	"questionnaire/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONObject(t *testing.T) {
	data := []byte(`{
  "2": {"id": "2", "title": "Second", "content": "B", "tags": ["faq"]},
  "1": {"title": "First", "content": "A"}
}`)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []model.Question{
		{ID: "1", Title: "First", Content: "A"},
		{ID: "2", Title: "Second", Content: "B", Tags: []string{"faq"}},
	}, got)
}

func TestParseYAMLList(t *testing.T) {
	data := []byte(`
- id: 10
  title: Ten
  content: X
  tags: [a, b]
- id: abc
  title: Letters
  content: Y
`)

	got, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.QuestionID("10"), got[0].ID)
	assert.Equal(t, []string{"a", "b"}, got[0].Tags)
	assert.Equal(t, model.QuestionID("abc"), got[1].ID)
}

func TestParseEmptyAndInvalid(t *testing.T) {
	got, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Parse([]byte(`just a string`))
	assert.ErrorContains(t, err, "expected a list or an object")

	_, err = Parse([]byte(`[{"title": [1, 2]}]`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: \"1\"\n  title: T\n  content: C\n"), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Question{{ID: "1", Title: "T", Content: "C"}}, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read seed file")
}
