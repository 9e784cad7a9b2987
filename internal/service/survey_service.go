package service

import (
	"context"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"
	"surveyhub/internal/repository"
	"surveyhub/internal/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyService handles survey CRUD operations
type SurveyService struct {
	surveyRepo  repository.SurveyRepo
	userRepo    repository.AccountRepo
	minOptions  int
	broadcaster Broadcaster
}

// NewSurveyService creates a new survey service. minOptions is the smallest
// option set accepted for multiple-choice and checkbox questions.
func NewSurveyService(surveyRepo repository.SurveyRepo, userRepo repository.AccountRepo, minOptions int) *SurveyService {
	if minOptions < 1 {
		minOptions = 1
	}
	return &SurveyService{
		surveyRepo:  surveyRepo,
		userRepo:    userRepo,
		minOptions:  minOptions,
		broadcaster: nopBroadcaster{},
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SurveyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create validates the draft and stores a new survey with no responses.
// Users create surveys for themselves; admins may name any existing user as
// the owner. The owner's current name is snapshotted when none is given.
func (s *SurveyService) Create(ctx context.Context, p *model.Principal, draft model.SurveyDraft) (string, error) {
	if p == nil {
		return "", apperr.Unauthenticated("login required")
	}
	if err := validate.SurveyDraft(&draft, s.minOptions); err != nil {
		return "", err
	}

	if draft.OwnerID == "" {
		if p.Role != model.RoleUser {
			return "", apperr.Validation("ownerId", "is required")
		}
		draft.OwnerID = p.ID
	}
	if !p.IsAdmin() && draft.OwnerID != p.ID {
		return "", apperr.Forbidden("you can only create surveys you own")
	}

	ownerID, err := validate.ObjectID("ownerId", draft.OwnerID)
	if err != nil {
		return "", err
	}
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return "", apperr.Store("find survey owner", err)
	}
	if owner == nil {
		return "", apperr.InvalidReference("ownerId", "user")
	}
	if draft.OwnerName == "" {
		draft.OwnerName = owner.Name
	}

	survey := &model.Survey{
		Title:     draft.Title,
		OwnerID:   ownerID,
		OwnerName: draft.OwnerName,
		Questions: canonicalQuestions(draft.Questions),
		Responses: []model.Response{},
	}
	id, err := s.surveyRepo.Create(ctx, survey)
	if err != nil {
		return "", apperr.Store("create survey", err)
	}
	return id.Hex(), nil
}

// canonicalQuestions copies qs, dropping the empty option list a text
// question may arrive with so it is stored and returned without the key.
func canonicalQuestions(qs []model.Question) []model.Question {
	out := make([]model.Question, len(qs))
	copy(out, qs)
	for i := range out {
		if !out[i].Type.HasOptions() {
			out[i].Options = nil
		}
	}
	return out
}

// List returns survey summaries, newest first. An empty ownerID lists all.
func (s *SurveyService) List(ctx context.Context, ownerID string) ([]*model.SurveySummary, error) {
	var filter model.SurveyFilter
	if ownerID != "" {
		oid, err := validate.ObjectID("ownerId", ownerID)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = &oid
	}

	summaries, err := s.surveyRepo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Store("list surveys", err)
	}
	if summaries == nil {
		summaries = []*model.SurveySummary{}
	}
	return summaries, nil
}

// Get returns a survey. Anyone may read the questions; the responses are
// only included for the owner or an admin. p may be nil.
func (s *SurveyService) Get(ctx context.Context, p *model.Principal, id string) (*model.Survey, error) {
	oid, err := validate.ObjectID("id", id)
	if err != nil {
		return nil, err
	}
	survey, err := s.load(ctx, oid)
	if err != nil {
		return nil, err
	}
	if authorizeOwner(p, survey) != nil {
		survey.Responses = []model.Response{}
	}
	return survey, nil
}

// Delete removes a survey with all of its responses. Owner or admin only.
func (s *SurveyService) Delete(ctx context.Context, p *model.Principal, id string) error {
	oid, err := validate.ObjectID("id", id)
	if err != nil {
		return err
	}
	survey, err := s.load(ctx, oid)
	if err != nil {
		return err
	}
	if err := authorizeOwner(p, survey); err != nil {
		return err
	}

	ok, err := s.surveyRepo.Delete(ctx, oid)
	if err != nil {
		return apperr.Store("delete survey", err)
	}
	if !ok {
		return apperr.NotFound("survey")
	}

	s.broadcaster.BroadcastToSurvey(id, EventSurveyDeleted, map[string]string{"surveyId": id})
	s.broadcaster.DisconnectSurvey(id)
	return nil
}

// Authorize checks that p may see the responses of survey id
func (s *SurveyService) Authorize(ctx context.Context, p *model.Principal, id string) error {
	oid, err := validate.ObjectID("id", id)
	if err != nil {
		return err
	}
	survey, err := s.load(ctx, oid)
	if err != nil {
		return err
	}
	return authorizeOwner(p, survey)
}

func (s *SurveyService) load(ctx context.Context, id primitive.ObjectID) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("find survey", err)
	}
	if survey == nil {
		return nil, apperr.NotFound("survey")
	}
	survey.Normalize()
	return survey, nil
}

// authorizeOwner lets the survey's owner and any admin through.
func authorizeOwner(p *model.Principal, survey *model.Survey) error {
	if p == nil {
		return apperr.Unauthenticated("login required")
	}
	if p.IsAdmin() {
		return nil
	}
	if p.Role == model.RoleUser && p.ID == survey.OwnerID.Hex() {
		return nil
	}
	return apperr.Forbidden("only the survey owner or an admin can do this")
}
