package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"surveyhub/internal/app"
	"surveyhub/internal/apperr"
	"surveyhub/internal/log"
	"surveyhub/internal/model"
	"surveyhub/internal/repository/repotest"
	"surveyhub/internal/service"
)

type noRevocations struct{}

func (noRevocations) Revoke(context.Context, string, time.Time) error { return nil }
func (noRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type stores struct {
	users   *repotest.Accounts
	admins  *repotest.Accounts
	surveys *repotest.Surveys
}

func newSeedApp(t *testing.T) (*app.App, stores) {
	t.Helper()
	log.SetOutput(io.Discard)

	st := stores{users: repotest.NewAccounts(), admins: repotest.NewAccounts(), surveys: repotest.NewSurveys()}
	a := &app.App{UserRepo: st.users, AdminRepo: st.admins, SurveyRepo: st.surveys}
	a.Tokens = service.NewTokenService("test-secret", time.Hour, noRevocations{})
	a.Accounts = service.NewAccountService(st.users, st.admins, a.Tokens)
	a.Surveys = service.NewSurveyService(st.surveys, st.users, 1)
	a.Responses = service.NewResponseService(st.surveys, a.Surveys)
	return a, st
}

func TestSeedIsRepeatable(t *testing.T) {
	a, st := newSeedApp(t)
	ctx := context.Background()

	for run := 1; run <= 2; run++ {
		if err := seed(ctx, a); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}
	if st.users.Len() != 1 || st.admins.Len() != 1 {
		t.Fatalf("accounts = %d users, %d admins, want 1 each", st.users.Len(), st.admins.Len())
	}

	summaries, err := a.Surveys.List(ctx, "")
	if err != nil || len(summaries) != 2 {
		t.Fatalf("List = %d, %v", len(summaries), err)
	}
	p := &model.Principal{ID: summaries[0].OwnerID.Hex(), Role: model.RoleUser}
	survey, err := a.Surveys.Get(ctx, p, summaries[0].ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(survey.Responses) != 2 {
		t.Fatalf("responses = %d, want 2", len(survey.Responses))
	}
}

func TestSeedReturnsStoreErrors(t *testing.T) {
	a, st := newSeedApp(t)
	st.admins.Err = errors.New("connection refused")

	err := seed(context.Background(), a)
	if !apperr.Is(err, apperr.KindStoreUnavailable) {
		t.Fatalf("seed error = %v, want StoreUnavailable", err)
	}
}
