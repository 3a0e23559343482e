package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studylab/certprep/internal/repository"
)

// ListCertifications returns the whole catalog.
func (h *Handler) ListCertifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.study.Certifications())
}

// GetCertification returns one catalog entry.
func (h *Handler) GetCertification(w http.ResponseWriter, r *http.Request) {
	cert, err := h.study.Certification(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repository.ErrCertificationNotFound) {
			respondError(w, http.StatusNotFound, "certification not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, cert)
}
