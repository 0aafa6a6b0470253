package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"questionnaire/internal/fault"
	"questionnaire/internal/model"
	"questionnaire/internal/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures(n int) []model.Question {
	out := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		out = append(out, model.Question{
			ID:      model.QuestionID(id),
			Title:   "Question " + id,
			Content: "Content " + id,
			Tags:    []string{"general"},
		})
	}
	return out
}

func TestQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Add and Get", func(t *testing.T) {
		store := NewQuestions()
		q := model.Question{ID: "1", Title: "First", Content: "How?", Tags: []string{"faq", "rust"}}

		stored, err := store.Add(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, q, *stored)

		got, err := store.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, q, *got)
	})

	t.Run("Add assigns an id when none is given", func(t *testing.T) {
		store := NewQuestions()

		stored, err := store.Add(ctx, model.NewQuestion{Title: "t", Content: "c"}.WithID(""))
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)

		_, err = store.Get(ctx, stored.ID)
		assert.NoError(t, err)
	})

	t.Run("Add overwrites an existing id", func(t *testing.T) {
		store := NewQuestions()
		_, err := store.Add(ctx, model.Question{ID: "1", Title: "old"})
		require.NoError(t, err)
		_, err = store.Add(ctx, model.Question{ID: "1", Title: "new"})
		require.NoError(t, err)

		all, err := store.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "new", all[0].Title)
	})

	t.Run("Get Not Found", func(t *testing.T) {
		_, err := NewQuestions().Get(ctx, "missing")
		assert.ErrorIs(t, err, fault.ErrQuestionNotFound)
	})

	t.Run("Update replaces the record", func(t *testing.T) {
		store := NewQuestions()
		_, err := store.Add(ctx, model.Question{ID: "1", Title: "t1", Content: "c1", Tags: []string{"a"}})
		require.NoError(t, err)

		updated, err := store.Update(ctx, "1", model.Question{ID: "ignored", Title: "t2", Content: "c2"})
		require.NoError(t, err)
		assert.Equal(t, model.Question{ID: "1", Title: "t2", Content: "c2"}, *updated)

		got, err := store.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, *updated, *got)
	})

	t.Run("Update Not Found leaves the store unchanged", func(t *testing.T) {
		store, err := NewQuestionsFromSeed(fixtures(2))
		require.NoError(t, err)
		before, err := store.List(ctx, nil)
		require.NoError(t, err)

		_, err = store.Update(ctx, "99", model.Question{Title: "x"})
		assert.ErrorIs(t, err, fault.ErrQuestionNotFound)

		after, err := store.List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Delete", func(t *testing.T) {
		store, err := NewQuestionsFromSeed(fixtures(3))
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, "2"))
		assert.ErrorIs(t, store.Delete(ctx, "2"), fault.ErrQuestionNotFound)

		all, err := store.List(ctx, nil)
		require.NoError(t, err)
		for _, q := range all {
			assert.NotEqual(t, model.QuestionID("2"), q.ID)
		}
		assert.Len(t, all, 2)
	})

	t.Run("returned records do not alias stored tags", func(t *testing.T) {
		store := NewQuestions()
		tags := []string{"a"}
		_, err := store.Add(ctx, model.Question{ID: "1", Tags: tags})
		require.NoError(t, err)
		tags[0] = "mutated"

		got, err := store.Get(ctx, "1")
		require.NoError(t, err)
		got.Tags[0] = "also mutated"

		again, err := store.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, again.Tags)
	})
}

func TestQuestionsList(t *testing.T) {
	ctx := context.Background()
	store, err := NewQuestionsFromSeed(fixtures(10))
	require.NoError(t, err)

	ids := func(qs []model.Question) []model.QuestionID {
		out := make([]model.QuestionID, len(qs))
		for i, q := range qs {
			out[i] = q.ID
		}
		return out
	}

	t.Run("unpaginated is ordered by id", func(t *testing.T) {
		all, err := store.List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []model.QuestionID{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, ids(all))
	})

	t.Run("range is 1-based and inclusive", func(t *testing.T) {
		got, err := store.List(ctx, &params.Pagination{Mode: params.ModeRange, Start: 1, End: 3})
		require.NoError(t, err)
		assert.Equal(t, []model.QuestionID{"1", "2", "3"}, ids(got))
	})

	t.Run("reversed range", func(t *testing.T) {
		got, err := store.List(ctx, &params.Pagination{Mode: params.ModeRange, Start: 5, End: 2})
		require.NoError(t, err)
		assert.Equal(t, []model.QuestionID{"2", "3", "4", "5"}, ids(got))
	})

	t.Run("range clamped to listing", func(t *testing.T) {
		got, err := store.List(ctx, &params.Pagination{Mode: params.ModeRange, Start: 0, End: 1000})
		require.NoError(t, err)
		assert.Len(t, got, 10)
	})

	t.Run("range past the end is empty", func(t *testing.T) {
		got, err := store.List(ctx, &params.Pagination{Mode: params.ModeRange, Start: 20, End: 30})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("offset window", func(t *testing.T) {
		got, err := store.List(ctx, &params.Pagination{Mode: params.ModeOffset, Offset: 8, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, []model.QuestionID{"9", "10"}, ids(got))
	})
}

func TestQuestionsListOrderIsStable(t *testing.T) {
	ctx := context.Background()
	store, err := NewQuestionsFromSeed([]model.Question{
		{ID: "1", Title: "plain"},
		{ID: "01", Title: "zero padded"},
		{ID: "+1", Title: "signed"},
		{ID: "2", Title: "two"},
	})
	require.NoError(t, err)

	want := []model.QuestionID{"+1", "01", "1", "2"}
	for i := 0; i < 200; i++ {
		all, err := store.List(ctx, nil)
		require.NoError(t, err)
		got := make([]model.QuestionID, len(all))
		for j, q := range all {
			got[j] = q.ID
		}
		require.Equal(t, want, got, "call %d", i)

		first, err := store.List(ctx, &params.Pagination{Mode: params.ModeRange, Start: 1, End: 1})
		require.NoError(t, err)
		require.Len(t, first, 1)
		require.Equal(t, model.QuestionID("+1"), first[0].ID, "call %d", i)
	}
}

func TestNewQuestionsFromSeed(t *testing.T) {
	_, err := NewQuestionsFromSeed([]model.Question{{ID: "1"}, {Title: "no id"}})
	assert.ErrorIs(t, err, fault.ErrInvalidID)

	store, err := NewQuestionsFromSeed(nil)
	require.NoError(t, err)
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQuestionsConcurrentAdd(t *testing.T) {
	const n = 200
	ctx := context.Background()
	store := NewQuestions()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := strconv.Itoa(i)
			_, err := store.Add(ctx, model.Question{ID: model.QuestionID(id), Title: "t" + id, Content: "c" + id})
			assert.NoError(t, err)
			_, _ = store.List(ctx, nil)
		}(i)
	}
	wg.Wait()

	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, n)
	for _, q := range all {
		assert.Equal(t, "t"+q.ID.String(), q.Title)
		assert.Equal(t, "c"+q.ID.String(), q.Content)
	}
}

func TestAnswers(t *testing.T) {
	ctx := context.Background()

	t.Run("Add assigns unique ids", func(t *testing.T) {
		store, err := NewAnswers()
		require.NoError(t, err)

		a1, err := store.Add(ctx, model.NewAnswer{Content: "one", QuestionID: "1"})
		require.NoError(t, err)
		a2, err := store.Add(ctx, model.NewAnswer{Content: "two", QuestionID: "1"})
		require.NoError(t, err)

		assert.NotEqual(t, a1.ID, a2.ID)
		assert.GreaterOrEqual(t, len(a1.ID), answerIDMinLength)
		assert.Equal(t, model.QuestionID("1"), a1.QuestionID)
	})

	t.Run("question is not required to exist", func(t *testing.T) {
		store, err := NewAnswers()
		require.NoError(t, err)

		a, err := store.Add(ctx, model.NewAnswer{Content: "orphan", QuestionID: "does-not-exist"})
		require.NoError(t, err)
		assert.Equal(t, "orphan", a.Content)
	})

	t.Run("ListByQuestion keeps insertion order", func(t *testing.T) {
		store, err := NewAnswers()
		require.NoError(t, err)

		for _, c := range []string{"a", "b", "c"} {
			_, err := store.Add(ctx, model.NewAnswer{Content: c, QuestionID: "1"})
			require.NoError(t, err)
		}
		_, err = store.Add(ctx, model.NewAnswer{Content: "other", QuestionID: "2"})
		require.NoError(t, err)

		got, err := store.ListByQuestion(ctx, "1")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "a", got[0].Content)
		assert.Equal(t, "c", got[2].Content)

		none, err := store.ListByQuestion(ctx, "3")
		require.NoError(t, err)
		assert.Empty(t, none)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("id assignment failure is a storage fault", func(t *testing.T) {
		store, err := NewAnswers()
		require.NoError(t, err)
		store.seq = -2 // hashids cannot encode negative numbers

		_, err = store.Add(ctx, model.NewAnswer{Content: "c", QuestionID: "1"})
		assert.ErrorIs(t, err, fault.ErrDatabaseQuery)
		assert.ErrorContains(t, err, "assign answer id -1")
		assert.Equal(t, int64(-2), store.seq, "the sequence is rolled back")

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("concurrent adds never collide", func(t *testing.T) {
		store, err := NewAnswers()
		require.NoError(t, err)

		const n = 100
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[model.AnswerID]struct{})
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				a, err := store.Add(ctx, model.NewAnswer{Content: "x", QuestionID: "1"})
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[a.ID] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Len(t, seen, n)
	})
}
