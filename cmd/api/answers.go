package main

import (
	"errors"
	"mime"
	"net/http"

	"questionnaire/internal/fault"
	"questionnaire/internal/model"

	"github.com/go-chi/chi/v5"
)

// AddAnswer godoc
//
//	@Summary		Answer a question
//	@Description	Stores an answer with a store-assigned id. The body is a form or JSON with content and question_id.
//	@Tags			answers
//	@Accept			x-www-form-urlencoded
//	@Accept			json
//	@Produce		json
//	@Param			content		formData	string	true	"Answer text"
//	@Param			question_id	formData	string	true	"Question ID"
//	@Success		201			{object}	model.Answer
//	@Failure		400			{object}	error	"Missing parameter or invalid ID"
//	@Failure		422			{object}	error	"Malformed request body"
//	@Router			/answers [post]
func (app *application) addAnswerHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := app.readAnswer(w, r)
	if !ok {
		return
	}

	answer, err := app.store.Answers.Add(r.Context(), payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, answer)
}

// GetAnswers godoc
//
//	@Summary	List the answers of a question
//	@Tags		answers
//	@Produce	json
//	@Param		questionID	path	string	true	"Question ID"
//	@Success	200			{array}	model.Answer
//	@Failure	400			{object}	error	"Invalid ID"
//	@Router		/questions/{questionID}/answers [get]
func (app *application) getAnswersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseQuestionID(chi.URLParam(r, "questionID"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	answers, err := app.store.Answers.ListByQuestion(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, answers)
}

func (app *application) readAnswer(w http.ResponseWriter, r *http.Request) (model.NewAnswer, bool) {
	const op = "answers.add"
	var payload model.NewAnswer

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := readJSON(w, r, &payload); err != nil {
			app.malformedBodyResponse(w, r, op, err)
			return payload, false
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			app.malformedBodyResponse(w, r, op, err)
			return payload, false
		}
		if !r.PostForm.Has("content") || !r.PostForm.Has("question_id") {
			app.errorResponse(w, r, fault.New(fault.KindMissingParameters, op, errors.New("content and question_id are required")))
			return payload, false
		}

		questionID, err := model.ParseQuestionID(r.PostForm.Get("question_id"))
		if err != nil {
			app.errorResponse(w, r, err)
			return payload, false
		}
		payload = model.NewAnswer{Content: r.PostForm.Get("content"), QuestionID: questionID}
	}

	if err := Validate.Struct(payload); err != nil {
		app.malformedBodyResponse(w, r, op, err)
		return payload, false
	}
	return payload, true
}
