// Package httpapi exposes the study core over a JSON HTTP API.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	study      *service.StudyService
	results    *service.ResultsService
	reading    *service.ReadingService
	instructor *service.InstructorService
	flashcards service.FlashcardStore
	questions  service.QuestionStore

	logger *zap.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	study *service.StudyService,
	results *service.ResultsService,
	reading *service.ReadingService,
	instructor *service.InstructorService,
	flashcards service.FlashcardStore,
	questions service.QuestionStore,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		study:      study,
		results:    results,
		reading:    reading,
		instructor: instructor,
		flashcards: flashcards,
		questions:  questions,
		logger:     logger,
	}
}

// NewRouter builds the route table.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	// catalog
	r.HandleFunc("/certifications", h.ListCertifications).Methods("GET")
	r.HandleFunc("/certifications/{id}", h.GetCertification).Methods("GET")

	// remote store surface
	r.HandleFunc("/certifications/{id}/flashcards", h.GetFlashcards).Methods("GET")
	r.HandleFunc("/certifications/{id}/flashcards", h.AddFlashcard).Methods("POST")
	r.HandleFunc("/certifications/{id}/questions", h.GetQuestions).Methods("GET")
	r.HandleFunc("/certifications/{id}/questions", h.AddQuestion).Methods("POST")
	r.HandleFunc("/certifications/{id}/results", h.GetResults).Methods("GET")
	r.HandleFunc("/certifications/{id}/results/best", h.GetBestResult).Methods("GET")
	r.HandleFunc("/certifications/{id}/results/export", h.ExportResults).Methods("GET")
	r.HandleFunc("/certifications/{id}/progress", h.GetProgress).Methods("GET")
	r.HandleFunc("/certifications/{id}/progress", h.ObserveProgress).Methods("PUT")
	r.HandleFunc("/certifications/{id}/progress", h.CloseProgress).Methods("DELETE")
	r.HandleFunc("/progress", h.ListProgress).Methods("GET")

	// flashcard sessions
	r.HandleFunc("/certifications/{id}/flashcard-sessions", h.StartFlashcards).Methods("POST")
	r.HandleFunc("/flashcard-sessions/{sid}", h.GetFlashcardSession).Methods("GET")
	r.HandleFunc("/flashcard-sessions/{sid}/flip", h.FlipCard).Methods("POST")
	r.HandleFunc("/flashcard-sessions/{sid}/mark", h.MarkCard).Methods("POST")
	r.HandleFunc("/flashcard-sessions/{sid}/review", h.ReviewFlashcards).Methods("GET")
	r.HandleFunc("/flashcard-sessions/{sid}/restart", h.RestartFlashcards).Methods("POST")
	r.HandleFunc("/flashcard-sessions/{sid}", h.DiscardFlashcards).Methods("DELETE")

	// practice sessions
	r.HandleFunc("/certifications/{id}/practice-sessions", h.StartPractice).Methods("POST")
	r.HandleFunc("/practice-sessions/{sid}", h.GetPracticeSession).Methods("GET")
	r.HandleFunc("/practice-sessions/{sid}/select", h.SelectPracticeOption).Methods("POST")
	r.HandleFunc("/practice-sessions/{sid}/submit", h.SubmitPracticeAnswer).Methods("POST")
	r.HandleFunc("/practice-sessions/{sid}/next", h.NextPracticeQuestion).Methods("POST")
	r.HandleFunc("/practice-sessions/{sid}/review", h.ReviewPractice).Methods("GET")
	r.HandleFunc("/practice-sessions/{sid}", h.DiscardPractice).Methods("DELETE")

	// test sessions
	r.HandleFunc("/certifications/{id}/test-sessions", h.StartTest).Methods("POST")
	r.HandleFunc("/test-sessions/{sid}", h.GetTestSession).Methods("GET")
	r.HandleFunc("/test-sessions/{sid}/answers", h.AnswerTestQuestion).Methods("POST")
	r.HandleFunc("/test-sessions/{sid}/submit", h.SubmitTest).Methods("POST")
	r.HandleFunc("/test-sessions/{sid}/review", h.ReviewTest).Methods("GET")
	r.HandleFunc("/test-sessions/{sid}", h.DiscardTest).Methods("DELETE")

	// instructor chat
	r.HandleFunc("/instructor/intro", h.InstructorIntro).Methods("POST")
	r.HandleFunc("/instructor/ask", h.InstructorAsk).Methods("POST")

	return r
}
