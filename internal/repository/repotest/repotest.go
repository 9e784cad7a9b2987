// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"surveyhub/internal/model"
	"surveyhub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accounts is an in-memory repository.AccountRepo. Setting Err makes every
// call fail with it.
type Accounts struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]model.Account
	Err   error
}

var _ repository.AccountRepo = (*Accounts)(nil)

func NewAccounts() *Accounts {
	return &Accounts{items: make(map[primitive.ObjectID]model.Account)}
}

func (a *Accounts) Create(_ context.Context, account *model.Account) (primitive.ObjectID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return primitive.NilObjectID, a.Err
	}
	for _, existing := range a.items {
		if existing.Email == account.Email {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	account.ID = primitive.NewObjectID()
	account.CreatedAt = now
	account.UpdatedAt = now
	a.items[account.ID] = *account
	return account.ID, nil
}

func (a *Accounts) GetByID(_ context.Context, id primitive.ObjectID) (*model.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	acc, ok := a.items[id]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (a *Accounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	for _, acc := range a.items {
		if acc.Email == email {
			acc := acc
			return &acc, nil
		}
	}
	return nil, nil
}

func (a *Accounts) List(_ context.Context) ([]*model.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	out := make([]*model.Account, 0, len(a.items))
	for _, acc := range a.items {
		acc := acc
		out = append(out, &acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (a *Accounts) Update(_ context.Context, account *model.Account) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return false, a.Err
	}
	existing, ok := a.items[account.ID]
	if !ok {
		return false, nil
	}
	for id, other := range a.items {
		if id != account.ID && other.Email == account.Email {
			return false, repository.ErrDuplicateEmail
		}
	}
	existing.Name = account.Name
	existing.Email = account.Email
	existing.PasswordHash = account.PasswordHash
	existing.UpdatedAt = time.Now().UTC()
	a.items[account.ID] = existing
	return true, nil
}

func (a *Accounts) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return false, a.Err
	}
	if _, ok := a.items[id]; !ok {
		return false, nil
	}
	delete(a.items, id)
	return true, nil
}

// Len returns the number of stored accounts.
func (a *Accounts) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// Surveys is an in-memory repository.SurveyRepo. Setting Err makes every call
// fail with it.
type Surveys struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*model.Survey
	seq   int
	Err   error
}

var _ repository.SurveyRepo = (*Surveys)(nil)

func NewSurveys() *Surveys {
	return &Surveys{items: make(map[primitive.ObjectID]*model.Survey)}
}

func (s *Surveys) Create(_ context.Context, survey *model.Survey) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}

	// strictly increasing timestamps keep newest-first ordering deterministic
	s.seq++
	now := time.Now().UTC().Add(time.Duration(s.seq) * time.Millisecond)
	survey.ID = primitive.NewObjectID()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	survey.Normalize()
	s.items[survey.ID] = clone(survey)
	return survey.ID, nil
}

func (s *Surveys) GetByID(_ context.Context, id primitive.ObjectID) (*model.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sv, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return clone(sv), nil
}

func (s *Surveys) List(_ context.Context, filter model.SurveyFilter) ([]*model.SurveySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := []*model.SurveySummary{}
	for _, sv := range s.items {
		if filter.OwnerID != nil && sv.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, &model.SurveySummary{
			ID:        sv.ID,
			Title:     sv.Title,
			OwnerID:   sv.OwnerID,
			OwnerName: sv.OwnerName,
			CreatedAt: sv.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Surveys) AppendResponse(_ context.Context, surveyID primitive.ObjectID, resp *model.Response) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	sv, ok := s.items[surveyID]
	if !ok {
		return false, nil
	}
	r := *resp
	r.Answers = append([]model.Answer(nil), resp.Answers...)
	sv.Responses = append(sv.Responses, r)
	return true, nil
}

func (s *Surveys) FindByResponseID(_ context.Context, responseID primitive.ObjectID) (*model.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, sv := range s.items {
		for _, r := range sv.Responses {
			if r.ID == responseID {
				return clone(sv), nil
			}
		}
	}
	return nil, nil
}

func (s *Surveys) PullResponse(_ context.Context, surveyID, responseID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	sv, ok := s.items[surveyID]
	if !ok {
		return false, nil
	}
	for i, r := range sv.Responses {
		if r.ID == responseID {
			sv.Responses = append(sv.Responses[:i:i], sv.Responses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Surveys) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func clone(sv *model.Survey) *model.Survey {
	c := *sv
	c.Questions = make([]model.Question, len(sv.Questions))
	for i, q := range sv.Questions {
		q.Options = append([]string(nil), q.Options...)
		c.Questions[i] = q
	}
	c.Responses = make([]model.Response, len(sv.Responses))
	for i, r := range sv.Responses {
		r.Answers = append([]model.Answer{}, r.Answers...)
		c.Responses[i] = r
	}
	return &c
}
