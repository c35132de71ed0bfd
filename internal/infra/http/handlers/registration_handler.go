package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/mjacademy/registration-service/internal/entity"
	"github.com/mjacademy/registration-service/internal/infra/http/middleware"
	"github.com/mjacademy/registration-service/internal/usecase"
)

type RegistrationHandler struct {
	SaveStepUC *usecase.SaveStepUseCase
	HydrateUC  *usecase.HydrateUseCase
}

func NewRegistrationHandler(saveStepUC *usecase.SaveStepUseCase, hydrateUC *usecase.HydrateUseCase) *RegistrationHandler {
	return &RegistrationHandler{
		SaveStepUC: saveStepUC,
		HydrateUC:  hydrateUC,
	}
}

// HandleSaveStep is the advance() endpoint: one step submission per call.
// Validation failures come back 422 with field details; a failed auto-save
// still returns 200 with saved=false so the client keeps moving.
func (h *RegistrationHandler) HandleSaveStep(w http.ResponseWriter, r *http.Request) {
	var input usecase.SaveStepInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	output, err := h.SaveStepUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeErrorResponse(w, http.StatusUnprocessableEntity, err.(*usecase.DomainError).Code, err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	middleware.CountProspectSave(output.Saved)
	writeJSON(w, http.StatusOK, output)
}

// HandleGetProspect is the hydrate() endpoint. The client debounces; we
// just answer. 404 when there is nothing (or nothing non-completed) to
// resume.
func (h *RegistrationHandler) HandleGetProspect(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_EMAIL", "email is not valid")
		return
	}

	prospect, err := h.HydrateUC.Execute(r.Context(), email)
	if err != nil {
		if errors.Is(err, entity.ErrProspectNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no registration in progress for this email")
			return
		}
		if usecase.IsDomainError(err) {
			writeErrorResponse(w, http.StatusBadRequest, err.(*usecase.DomainError).Code, err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, prospect)
}

// HandleListStudents backs the admin dashboard roster.
func (h *RegistrationHandler) HandleListStudents(studentRepo entity.StudentRepositoryInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := studentRepo.FindAll(r.Context())
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list students")
			return
		}

		if students == nil {
			students = []*entity.Student{}
		}
		writeJSON(w, http.StatusOK, students)
	}
}
