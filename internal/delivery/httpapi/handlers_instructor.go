package httpapi

import (
	"errors"
	"net/http"

	"github.com/studylab/certprep/internal/repository"
)

type instructorRequest struct {
	CertificationID string `json:"certificationId"`
	Domain          string `json:"domain"`
	Question        string `json:"question"`
}

type instructorResponse struct {
	Message string `json:"message"`
}

func instructorError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrCertificationNotFound) || errors.Is(err, repository.ErrDomainNotFound) {
		respondError(w, http.StatusNotFound, "certification or domain not found")
		return
	}
	respondError(w, http.StatusInternalServerError, "internal error")
}

// InstructorIntro returns the opening message for a domain study session.
func (h *Handler) InstructorIntro(w http.ResponseWriter, r *http.Request) {
	var req instructorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.instructor.Intro(req.CertificationID, req.Domain)
	if err != nil {
		instructorError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instructorResponse{Message: msg})
}

// InstructorAsk answers a free-form question about a domain.
func (h *Handler) InstructorAsk(w http.ResponseWriter, r *http.Request) {
	var req instructorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	msg, err := h.instructor.Respond(req.CertificationID, req.Domain, req.Question)
	if err != nil {
		instructorError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instructorResponse{Message: msg})
}
