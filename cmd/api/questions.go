package main

import (
	"net/http"

	"questionnaire/internal/model"
	"questionnaire/internal/params"

	"github.com/go-chi/chi/v5"
)

// questionPayload is the body of add and update. The id is optional on add and
// ignored on update, where the path id wins.
type questionPayload struct {
	ID model.QuestionID `json:"id"`
	model.NewQuestion
}

// GetQuestions godoc
//
//	@Summary		List questions
//	@Description	Returns all questions, or one window of them when start and end (1-based, inclusive) or offset and limit are given.
//	@Tags			questions
//	@Produce		json
//	@Param			start	query		int	false	"First position, 1-based"
//	@Param			end		query		int	false	"Last position, inclusive"
//	@Param			offset	query		int	false	"Number of questions to skip"
//	@Param			limit	query		int	false	"Maximum number of questions"
//	@Success		200		{array}		model.Question
//	@Failure		400		{object}	error	"Missing or unparseable pagination parameter"
//	@Failure		500		{object}	error	"Cannot process the request"
//	@Router			/questions [get]
func (app *application) getQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := params.ParsePagination(r.URL.Query())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	questions, err := app.store.Questions.List(r.Context(), page)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, questions)
}

// GetQuestion godoc
//
//	@Summary		Fetch a question
//	@Tags			questions
//	@Produce		json
//	@Param			questionID	path		string	true	"Question ID"
//	@Success		200			{object}	model.Question
//	@Failure		400			{object}	error	"Invalid ID"
//	@Failure		404			{object}	error	"Question not found"
//	@Router			/questions/{questionID} [get]
func (app *application) getQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseQuestionID(chi.URLParam(r, "questionID"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	question, err := app.store.Questions.Get(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, question)
}

// AddQuestion godoc
//
//	@Summary		Add a question
//	@Description	Stores a question. Without an id the store assigns one; an existing id is overwritten.
//	@Tags			questions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		questionPayload	true	"Question"
//	@Success		201		{object}	model.Question
//	@Failure		422		{object}	error	"Malformed request body"
//	@Failure		500		{object}	error	"Cannot process the request"
//	@Router			/questions [post]
func (app *application) addQuestionHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := app.readQuestion(w, r, "questions.add")
	if !ok {
		return
	}

	question, err := app.store.Questions.Add(r.Context(), payload.WithID(payload.ID))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, question)
}

// UpdateQuestion godoc
//
//	@Summary		Replace a question
//	@Description	Replaces title, content and tags of the question at the path id. An id in the body is ignored.
//	@Tags			questions
//	@Accept			json
//	@Produce		json
//	@Param			questionID	path		string			true	"Question ID"
//	@Param			payload		body		questionPayload	true	"Question"
//	@Success		200			{object}	model.Question
//	@Failure		400			{object}	error	"Invalid ID"
//	@Failure		404			{object}	error	"Question not found"
//	@Failure		422			{object}	error	"Malformed request body"
//	@Router			/questions/{questionID} [put]
func (app *application) updateQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseQuestionID(chi.URLParam(r, "questionID"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	payload, ok := app.readQuestion(w, r, "questions.update")
	if !ok {
		return
	}

	question, err := app.store.Questions.Update(r.Context(), id, payload.WithID(id))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, question)
}

// DeleteQuestion godoc
//
//	@Summary	Delete a question
//	@Tags		questions
//	@Param		questionID	path	string	true	"Question ID"
//	@Success	204
//	@Failure	400	{object}	error	"Invalid ID"
//	@Failure	404	{object}	error	"Question not found"
//	@Router		/questions/{questionID} [delete]
func (app *application) deleteQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseQuestionID(chi.URLParam(r, "questionID"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.store.Questions.Delete(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) readQuestion(w http.ResponseWriter, r *http.Request, op string) (questionPayload, bool) {
	var payload questionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.malformedBodyResponse(w, r, op, err)
		return payload, false
	}
	if err := Validate.Struct(payload); err != nil {
		app.malformedBodyResponse(w, r, op, err)
		return payload, false
	}
	return payload, true
}
