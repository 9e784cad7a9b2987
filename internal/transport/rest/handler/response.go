package handler

import (
	"net/http"

	"surveyhub/internal/model"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest/envelope"
	"surveyhub/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ResponseHandler handles response submission and review endpoints
type ResponseHandler struct {
	responseSvc  *service.ResponseService
	analyticsSvc *service.AnalyticsService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService, analyticsSvc *service.AnalyticsService) *ResponseHandler {
	return &ResponseHandler{
		responseSvc:  responseSvc,
		analyticsSvc: analyticsSvc,
	}
}

// Submit godoc
// @Summary  Submit a response
// @Description Answers match questions by position. Each answer is a string, an array of strings for checkbox questions, or {"question", "answer"}.
// @Tags     responses
// @Accept   json
// @Produce  json
// @Param    id path string true "Survey id"
// @Param    request body model.ResponseSubmission true "Respondent and answers"
// @Success  201 {object} envelope.Response
// @Failure  400,404 {object} envelope.Response
// @Router   /surveys/{id}/responses [post]
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub model.ResponseSubmission
	if err := decode(w, r, &sub); err != nil {
		envelope.Error(w, r, err)
		return
	}

	id, err := h.responseSvc.Submit(r.Context(), mux.Vars(r)["id"], sub)
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusCreated, map[string]string{"responseId": id})
}

// List handles GET /v1/surveys/{id}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	responses, err := h.responseSvc.List(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, responses)
}

// Results handles GET /v1/surveys/{id}/results
func (h *ResponseHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.analyticsSvc.Results(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, results)
}

// Delete handles DELETE /v1/responses/{id}
func (h *ResponseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.responseSvc.Delete(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"]); err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, nil)
}
