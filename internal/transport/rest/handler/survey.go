package handler

import (
	"net/http"

	"surveyhub/internal/model"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest/envelope"
	"surveyhub/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// Create godoc
// @Summary  Create a survey
// @Tags     surveys
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body model.SurveyDraft true "Title, questions and optional owner"
// @Success  201 {object} envelope.Response
// @Failure  400,401,403 {object} envelope.Response
// @Router   /surveys [post]
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.SurveyDraft
	if err := decode(w, r, &draft); err != nil {
		envelope.Error(w, r, err)
		return
	}

	id, err := h.surveySvc.Create(r.Context(), middleware.GetPrincipal(r.Context()), draft)
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusCreated, map[string]string{"surveyId": id})
}

// List godoc
// @Summary  List survey summaries, newest first
// @Tags     surveys
// @Produce  json
// @Param    ownerId query string false "Only surveys of this user"
// @Success  200 {object} envelope.Response
// @Failure  400 {object} envelope.Response
// @Router   /surveys [get]
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("ownerId"))
}

// ListByOwner handles GET /v1/users/{id}/surveys
func (h *SurveyHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, mux.Vars(r)["id"])
}

func (h *SurveyHandler) list(w http.ResponseWriter, r *http.Request, ownerID string) {
	surveys, err := h.surveySvc.List(r.Context(), ownerID)
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, surveys)
}

// Get godoc
// @Summary  Fetch a survey; responses only for its owner or an admin
// @Tags     surveys
// @Produce  json
// @Param    id path string true "Survey id"
// @Success  200 {object} envelope.Response
// @Failure  400,404 {object} envelope.Response
// @Router   /surveys/{id} [get]
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.Get(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, survey)
}

// Delete handles DELETE /v1/surveys/{id}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.Delete(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"]); err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, nil)
}
