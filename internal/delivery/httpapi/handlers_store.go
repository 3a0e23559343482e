package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
)

// GetFlashcards returns the caller's saved flashcards for a certification.
// Anonymous callers and read failures get an empty list.
func (h *Handler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondJSON(w, http.StatusOK, []*entities.Flashcard{})
		return
	}

	cards, err := h.flashcards.GetByCertification(r.Context(), uid, mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("failed to load flashcards", zap.Error(err))
		cards = nil
	}
	if cards == nil {
		cards = []*entities.Flashcard{}
	}
	respondJSON(w, http.StatusOK, cards)
}

type addFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// AddFlashcard saves a flashcard for the caller. Anonymous writes are
// skipped silently.
func (h *Handler) AddFlashcard(w http.ResponseWriter, r *http.Request) {
	var req addFlashcardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Front == "" || req.Back == "" {
		respondError(w, http.StatusBadRequest, "front and back are required")
		return
	}

	uid := userID(r)
	if uid == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.flashcards.Add(r.Context(), uid, mux.Vars(r)["id"], req.Front, req.Back); err != nil {
		h.logger.Warn("failed to save flashcard", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save flashcard")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GetQuestions returns community questions for a certification.
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.GetByCertification(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("failed to load questions", zap.Error(err))
		questions = nil
	}
	if questions == nil {
		questions = []*entities.StoredQuestion{}
	}
	respondJSON(w, http.StatusOK, questions)
}

type addQuestionRequest struct {
	Domain        string `json:"domain"`
	QuestionText  string `json:"questionText"`
	CorrectAnswer string `json:"correctAnswer"`
}

// AddQuestion stores a community question.
func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req addQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionText == "" || req.CorrectAnswer == "" {
		respondError(w, http.StatusBadRequest, "questionText and correctAnswer are required")
		return
	}

	id, err := h.questions.Add(r.Context(), mux.Vars(r)["id"], req.Domain, req.QuestionText, req.CorrectAnswer)
	if err != nil {
		h.logger.Warn("failed to save question", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save question")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// GetResults returns the caller's test history for a certification.
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.History(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("failed to load test results", zap.Error(err))
		results = nil
	}
	if results == nil {
		results = []*entities.TestResult{}
	}
	respondJSON(w, http.StatusOK, results)
}

// GetBestResult returns the caller's highest scoring result, or 404 when
// there is none.
func (h *Handler) GetBestResult(w http.ResponseWriter, r *http.Request) {
	best := h.results.BestResult(r.Context(), userID(r), mux.Vars(r)["id"])
	if best == nil {
		respondError(w, http.StatusNotFound, "no results")
		return
	}
	respondJSON(w, http.StatusOK, best)
}

// ListProgress returns all of the caller's reading-progress records.
func (h *Handler) ListProgress(w http.ResponseWriter, r *http.Request) {
	records, err := h.reading.Records(r.Context(), userID(r))
	if err != nil {
		h.logger.Warn("failed to load progress records", zap.Error(err))
		records = nil
	}
	if records == nil {
		records = []*entities.ReadingProgress{}
	}
	respondJSON(w, http.StatusOK, records)
}

// GetProgress returns the saved reading percentage for a certification.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	pct := h.reading.Restore(r.Context(), userID(r), mux.Vars(r)["id"])
	respondJSON(w, http.StatusOK, map[string]int{"percentage": pct})
}

type observeProgressRequest struct {
	ScrollTop    float64 `json:"scrollTop"`
	ScrollHeight float64 `json:"scrollHeight"`
	ClientHeight float64 `json:"clientHeight"`
}

// ObserveProgress feeds a scroll observation into the caller's tracker.
// The tracker debounces and pushes only the running maximum.
func (h *Handler) ObserveProgress(w http.ResponseWriter, r *http.Request) {
	var req observeProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tracker := h.reading.Tracker(userID(r), mux.Vars(r)["id"])
	max := tracker.Observe(req.ScrollTop, req.ScrollHeight, req.ClientHeight)
	respondJSON(w, http.StatusOK, map[string]int{"percentage": max})
}

// CloseProgress closes the caller's tracker, cancelling any pending save.
func (h *Handler) CloseProgress(w http.ResponseWriter, r *http.Request) {
	h.reading.CloseTracker(userID(r), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}
