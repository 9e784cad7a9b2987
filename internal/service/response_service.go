package service

import (
	"context"
	"strings"
	"time"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"
	"surveyhub/internal/repository"
	"surveyhub/internal/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResponseService handles response submission, listing and deletion
type ResponseService struct {
	surveyRepo  repository.SurveyRepo
	surveys     *SurveyService
	broadcaster Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(surveyRepo repository.SurveyRepo, surveys *SurveyService) *ResponseService {
	return &ResponseService{
		surveyRepo:  surveyRepo,
		surveys:     surveys,
		broadcaster: nopBroadcaster{},
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates the answers against the survey's questions and appends
// the response. A rejected submission leaves the survey untouched.
func (s *ResponseService) Submit(ctx context.Context, surveyID string, sub model.ResponseSubmission) (string, error) {
	oid, err := validate.ObjectID("id", surveyID)
	if err != nil {
		return "", err
	}
	survey, err := s.surveys.load(ctx, oid)
	if err != nil {
		return "", err
	}

	answers, err := validate.Submission(survey.Questions, &sub)
	if err != nil {
		return "", err
	}

	resp := &model.Response{
		ID:          primitive.NewObjectID(),
		Respondent:  strings.TrimSpace(sub.Respondent),
		Answers:     answers,
		SubmittedAt: time.Now().UTC(),
	}
	ok, err := s.surveyRepo.AppendResponse(ctx, oid, resp)
	if err != nil {
		return "", apperr.Store("append response", err)
	}
	if !ok {
		// deleted between the read and the push
		return "", apperr.NotFound("survey")
	}

	s.broadcaster.BroadcastToSurvey(surveyID, EventResponseSubmitted, map[string]interface{}{
		"surveyId": surveyID,
		"response": resp,
	})
	return resp.ID.Hex(), nil
}

// List returns the responses of a survey in submission order. Owner or admin only.
func (s *ResponseService) List(ctx context.Context, p *model.Principal, surveyID string) ([]model.Response, error) {
	survey, err := s.ownedSurvey(ctx, p, surveyID)
	if err != nil {
		return nil, err
	}
	return survey.Responses, nil
}

// Delete removes one response from whichever survey holds it. Owner of that
// survey or admin only.
func (s *ResponseService) Delete(ctx context.Context, p *model.Principal, responseID string) error {
	rid, err := validate.ObjectID("id", responseID)
	if err != nil {
		return err
	}

	survey, err := s.surveyRepo.FindByResponseID(ctx, rid)
	if err != nil {
		return apperr.Store("find response", err)
	}
	if survey == nil {
		return apperr.NotFound("response")
	}
	if err := authorizeOwner(p, survey); err != nil {
		return err
	}

	ok, err := s.surveyRepo.PullResponse(ctx, survey.ID, rid)
	if err != nil {
		return apperr.Store("delete response", err)
	}
	if !ok {
		return apperr.NotFound("response")
	}

	surveyID := survey.ID.Hex()
	s.broadcaster.BroadcastToSurvey(surveyID, EventResponseDeleted, map[string]string{
		"surveyId":   surveyID,
		"responseId": responseID,
	})
	return nil
}

func (s *ResponseService) ownedSurvey(ctx context.Context, p *model.Principal, surveyID string) (*model.Survey, error) {
	oid, err := validate.ObjectID("id", surveyID)
	if err != nil {
		return nil, err
	}
	survey, err := s.surveys.load(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, survey); err != nil {
		return nil, err
	}
	return survey, nil
}
