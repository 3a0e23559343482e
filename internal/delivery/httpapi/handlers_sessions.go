package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studylab/certprep/internal/domain/entities"
	"github.com/studylab/certprep/internal/repository"
	"github.com/studylab/certprep/internal/service"
)

func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, repository.ErrCertificationNotFound),
		errors.Is(err, repository.ErrDomainNotFound):
		respondError(w, http.StatusNotFound, "certification not found")
	case errors.Is(err, service.ErrNoCards),
		errors.Is(err, service.ErrNoQuestionsAvailable):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrSessionNotActive),
		errors.Is(err, service.ErrNotFlipped),
		errors.Is(err, service.ErrNoSelection),
		errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrNotSubmitted):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidOption):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseFilter(r *http.Request) entities.ReviewFilter {
	switch r.URL.Query().Get("filter") {
	case "correct":
		return entities.FilterCorrect
	case "incorrect":
		return entities.FilterIncorrect
	default:
		return entities.FilterAll
	}
}

type flashcardSessionResponse struct {
	SessionID string                     `json:"sessionId"`
	Phase     entities.SessionPhase      `json:"phase"`
	Card      entities.GeneratedFlashcard `json:"card"`
	Index     int                        `json:"index"`
	Total     int                        `json:"total"`
	Flipped   bool                       `json:"flipped"`
	Known     int                        `json:"known"`
	Missed    int                        `json:"missed"`
}

func flashcardView(s *service.FlashcardSession) flashcardSessionResponse {
	card, index, total, flipped := s.Current()
	known, missed := s.Summary()
	resp := flashcardSessionResponse{
		SessionID: s.ID,
		Phase:     s.Phase(),
		Index:     index,
		Total:     total,
		Flipped:   flipped,
		Known:     known,
		Missed:    missed,
	}
	resp.Card = card
	if !flipped {
		resp.Card.Back = ""
	}
	return resp
}

type startFlashcardsRequest struct {
	Saved bool `json:"saved"`
}

// StartFlashcards opens a flashcard session, either over a fresh
// generated deck or over the caller's saved deck.
func (h *Handler) StartFlashcards(w http.ResponseWriter, r *http.Request) {
	var req startFlashcardsRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	certID := mux.Vars(r)["id"]
	uid := userID(r)

	var (
		session *service.FlashcardSession
		err     error
	)
	if req.Saved {
		session, err = h.study.StartSavedDeck(r.Context(), uid, certID)
	} else {
		session, err = h.study.StartFlashcards(r.Context(), uid, certID)
	}
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, flashcardView(session))
}

// GetFlashcardSession returns the current state of a flashcard session.
func (h *Handler) GetFlashcardSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Flashcards(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flashcardView(session))
}

// FlipCard reveals the back of the current card.
func (h *Handler) FlipCard(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Flashcards(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	if err := session.Flip(); err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flashcardView(session))
}

type markCardRequest struct {
	Known bool `json:"known"`
}

// MarkCard records the outcome for the current card and advances.
func (h *Handler) MarkCard(w http.ResponseWriter, r *http.Request) {
	var req markCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.study.MarkCard(r.Context(), mux.Vars(r)["sid"], req.Known); err != nil {
		sessionError(w, err)
		return
	}

	session, err := h.study.Flashcards(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flashcardView(session))
}

// ReviewFlashcards returns attempts filtered by outcome.
func (h *Handler) ReviewFlashcards(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Flashcards(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Review(parseFilter(r)))
}

// RestartFlashcards reruns the same deck from the top.
func (h *Handler) RestartFlashcards(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Flashcards(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	session.StudyAgain()
	respondJSON(w, http.StatusOK, flashcardView(session))
}

// DiscardFlashcards drops a flashcard session.
func (h *Handler) DiscardFlashcards(w http.ResponseWriter, r *http.Request) {
	h.study.DiscardFlashcards(mux.Vars(r)["sid"])
	w.WriteHeader(http.StatusNoContent)
}

type practiceSessionResponse struct {
	SessionID string                     `json:"sessionId"`
	Phase     entities.SessionPhase      `json:"phase"`
	Question  entities.GeneratedQuestion `json:"question"`
	Index     int                        `json:"index"`
	Total     int                        `json:"total"`
	Selected  int                        `json:"selected"`
	Submitted bool                       `json:"submitted"`
	Correct   int                        `json:"correct"`
	Incorrect int                        `json:"incorrect"`
}

func practiceView(s *service.PracticeSession) practiceSessionResponse {
	q, index, total, selected, submitted := s.Current()
	correct, incorrect := s.Summary()
	if !submitted {
		// hide the answer until the attempt is locked in
		q.CorrectIndex = -1
		q.Explanation = ""
	}
	return practiceSessionResponse{
		SessionID: s.ID,
		Phase:     s.Phase(),
		Question:  q,
		Index:     index,
		Total:     total,
		Selected:  selected,
		Submitted: submitted,
		Correct:   correct,
		Incorrect: incorrect,
	}
}

type startPracticeRequest struct {
	Domain string `json:"domain"`
}

// StartPractice opens a practice session, optionally over one domain.
func (h *Handler) StartPractice(w http.ResponseWriter, r *http.Request) {
	var req startPracticeRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.study.StartPractice(userID(r), mux.Vars(r)["id"], req.Domain)
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, practiceView(session))
}

// GetPracticeSession returns the current state of a practice session.
func (h *Handler) GetPracticeSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Practice(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, practiceView(session))
}

type selectOptionRequest struct {
	Option int `json:"option"`
}

// SelectPracticeOption picks an option for the current question.
func (h *Handler) SelectPracticeOption(w http.ResponseWriter, r *http.Request) {
	var req selectOptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.study.Practice(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	if err := session.Select(req.Option); err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, practiceView(session))
}

// SubmitPracticeAnswer locks the selection and reveals feedback.
func (h *Handler) SubmitPracticeAnswer(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Practice(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	attempt, err := session.Submit()
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, attempt)
}

// NextPracticeQuestion advances past a submitted question.
func (h *Handler) NextPracticeQuestion(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Practice(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	if err := session.Next(); err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, practiceView(session))
}

// ReviewPractice returns attempts filtered by outcome.
func (h *Handler) ReviewPractice(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Practice(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Review(parseFilter(r)))
}

// DiscardPractice drops a practice session.
func (h *Handler) DiscardPractice(w http.ResponseWriter, r *http.Request) {
	h.study.DiscardPractice(mux.Vars(r)["sid"])
	w.WriteHeader(http.StatusNoContent)
}

type testQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Domain   string   `json:"domain"`
}

type testSessionResponse struct {
	SessionID        string                 `json:"sessionId"`
	Phase            entities.SessionPhase  `json:"phase"`
	Questions        []testQuestionView     `json:"questions"`
	Answers          []int                  `json:"answers"`
	AnsweredCount    int                    `json:"answeredCount"`
	RemainingSeconds int                    `json:"remainingSeconds"`
	Outcome          *entities.TestOutcome  `json:"outcome,omitempty"`
}

func testView(s *service.TestSession) testSessionResponse {
	state := s.State()

	questions := make([]testQuestionView, len(state.Questions))
	for i, q := range state.Questions {
		questions[i] = testQuestionView{Question: q.Question, Options: q.Options, Domain: q.Domain}
	}

	resp := testSessionResponse{
		SessionID:        s.ID,
		Phase:            state.Phase,
		Questions:        questions,
		Answers:          state.Answers,
		AnsweredCount:    state.AnsweredCount,
		RemainingSeconds: int(state.Remaining.Seconds()),
	}
	if outcome, ok := s.Outcome(); ok {
		resp.Outcome = &outcome
	}
	return resp
}

// StartTest opens a timed test session.
func (h *Handler) StartTest(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.StartTest(userID(r), mux.Vars(r)["id"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, testView(session))
}

// GetTestSession returns the current state of a test session.
func (h *Handler) GetTestSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Test(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, testView(session))
}

type answerTestRequest struct {
	Question int `json:"question"`
	Option   int `json:"option"`
}

// AnswerTestQuestion records or overwrites an answer.
func (h *Handler) AnswerTestQuestion(w http.ResponseWriter, r *http.Request) {
	var req answerTestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.study.Test(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	if err := session.SelectAnswer(req.Question, req.Option); err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, testView(session))
}

// SubmitTest grades the test and records the result. Repeat submissions
// return the original outcome.
func (h *Handler) SubmitTest(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.study.SubmitTest(r.Context(), mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// ReviewTest returns the graded attempts filtered by outcome. Before
// grading the answers stay hidden and the request is refused.
func (h *Handler) ReviewTest(w http.ResponseWriter, r *http.Request) {
	session, err := h.study.Test(mux.Vars(r)["sid"])
	if err != nil {
		sessionError(w, err)
		return
	}
	attempts, err := session.Review(parseFilter(r))
	if err != nil {
		sessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, attempts)
}

// DiscardTest drops a test session and cancels its timer.
func (h *Handler) DiscardTest(w http.ResponseWriter, r *http.Request) {
	h.study.DiscardTest(mux.Vars(r)["sid"])
	w.WriteHeader(http.StatusNoContent)
}
