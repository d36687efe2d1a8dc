package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const createdMessage = "Question have been created successfully"

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the routes under prefix ("" or e.g. "/api"). Known paths hit
// with an unsupported method answer 405 with the JSON envelope.
func (h *HTTPHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/categories", h.GetCategories)
	mux.HandleFunc("GET "+prefix+"/categories/{id}/questions", h.GetCategoryQuestions)
	mux.HandleFunc("GET "+prefix+"/questions", h.GetQuestions)
	mux.HandleFunc("POST "+prefix+"/questions", h.PostQuestions)
	mux.HandleFunc("DELETE "+prefix+"/questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST "+prefix+"/quizzes", h.PostQuizzes)

	for _, path := range []string{"/categories", "/categories/{id}/questions", "/questions", "/questions/{id}", "/quizzes"} {
		mux.HandleFunc(prefix+path, func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondMethodNotAllowed(w)
		})
	}
}

// GetCategories handles GET /categories
func (h *HTTPHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       categories,
		"total_categories": len(categories),
	})
}

// GetQuestions handles GET /questions?page=N
func (h *HTTPHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListQuestions(r.Context(), ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"categories":       page.Categories,
		"current_category": nil,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.svc.DeleteQuestion(r.Context(), id, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         result.Deleted,
		"questions":       result.Questions,
		"total_questions": result.Total,
	})
}

// PostQuestions handles POST /questions: a search when searchTerm is present,
// otherwise a create.
func (h *HTTPHandler) PostQuestions(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	if raw, ok := body["searchTerm"]; ok && !isNull(raw) {
		var term string
		if err := json.Unmarshal(raw, &term); err != nil {
			h.fail(w, r, fieldErr("searchTerm", "must be a string"))
			return
		}
		h.search(w, r, term)
		return
	}

	in, err := decodeNewQuestion(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	created, err := h.svc.CreateQuestion(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  createdMessage,
		"question": created,
	})
}

func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, term string) {
	page, err := h.svc.SearchQuestions(r.Context(), term, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       page.Questions,
		"total_questions": page.Total,
	})
}

// GetCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandler) GetCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	page, err := h.svc.QuestionsByCategory(r.Context(), id, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       page.Questions,
		"totalQuestions":  page.Total,
		"currentCategory": page.Category,
	})
}

// PostQuizzes handles POST /quizzes
func (h *HTTPHandler) PostQuizzes(w http.ResponseWriter, r *http.Request) {
	var payload quizPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	req, err := payload.toRequest()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	round, err := h.svc.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"question":           round.Question,
		"previous_questions": round.Previous,
	})
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var fe *FieldError
	switch {
	case errors.As(err, &fe):
		httperrors.RespondValidationError(w, fe.Field, fe.Reason)
	case errors.Is(err, ErrBadRequest):
		httperrors.RespondBadRequest(w)
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrUnprocessable):
		httperrors.RespondUnprocessable(w)
	default:
		logger := logging.Ctx(r.Context(), h.logger)
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

// quizPayload mirrors the POST /quizzes body. Pointers distinguish absent or null
// fields from empty ones.
type quizPayload struct {
	PreviousQuestions *[]flexInt    `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

func (p quizPayload) toRequest() (QuizRequest, error) {
	if p.PreviousQuestions == nil {
		return QuizRequest{}, fieldErr("previous_questions", "is required")
	}
	if p.QuizCategory == nil {
		return QuizRequest{}, fieldErr("quiz_category", "is required")
	}
	if p.QuizCategory.ID == nil {
		return QuizRequest{}, fieldErr("quiz_category.id", "is required")
	}

	previous := make([]int32, 0, len(*p.PreviousQuestions))
	for _, id := range *p.PreviousQuestions {
		previous = append(previous, int32(id))
	}
	return QuizRequest{CategoryID: int32(*p.QuizCategory.ID), Previous: previous}, nil
}

// quizCategory accepts {"id": N, "type": "..."} or a bare id.
type quizCategory struct {
	ID *flexInt `json:"id"`
}

func (c *quizCategory) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		type plain quizCategory
		return json.Unmarshal(trimmed, (*plain)(c))
	}
	var id flexInt
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	c.ID = &id
	return nil
}

// flexInt is an integer sent either as a JSON number or a numeric string.
type flexInt int32

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = flexInt(n)
	return nil
}

func decodeNewQuestion(body map[string]json.RawMessage) (NewQuestion, error) {
	var (
		in  NewQuestion
		err error
	)
	if in.Question, err = stringField(body, "question"); err != nil {
		return NewQuestion{}, err
	}
	if in.Answer, err = stringField(body, "answer"); err != nil {
		return NewQuestion{}, err
	}
	if in.Category, err = intField(body, "category"); err != nil {
		return NewQuestion{}, err
	}
	if in.Difficulty, err = intField(body, "difficulty"); err != nil {
		return NewQuestion{}, err
	}
	return in, nil
}

func stringField(body map[string]json.RawMessage, name string) (string, error) {
	raw, ok := body[name]
	if !ok || isNull(raw) {
		return "", fieldErr(name, "is required")
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fieldErr(name, "must be a string")
	}
	return v, nil
}

func intField(body map[string]json.RawMessage, name string) (int32, error) {
	raw, ok := body[name]
	if !ok || isNull(raw) {
		return 0, fieldErr(name, "is required")
	}
	var v flexInt
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fieldErr(name, "must be an integer")
	}
	return int32(v), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func pathID(r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(id), true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
