package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"surveyhub/internal/app"
	"surveyhub/internal/apperr"
	"surveyhub/internal/config"
	"surveyhub/internal/log"
	"surveyhub/internal/model"
)

// Command seed fills a fresh database with demo data.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}

	err = seed(ctx, a)
	if cerr := a.Close(context.Background()); cerr != nil {
		log.Errorf("close: %v", cerr)
	}
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Infof("seed complete, log in as alice@example.com or admin@example.com")
}

// seed creates a demo admin, a demo user and one survey owned by the user
// with a few responses. Accounts that already exist are reused.
func seed(ctx context.Context, a *app.App) error {
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	if err := signup(ctx, a, model.RoleAdmin, model.SignupRequest{Name: "Admin", Email: "admin@example.com", Password: password}); err != nil {
		return err
	}
	if err := signup(ctx, a, model.RoleUser, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: password}); err != nil {
		return err
	}

	session, err := a.Accounts.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: password})
	if err != nil {
		return fmt.Errorf("login alice: %w", err)
	}
	p, err := a.Tokens.Verify(ctx, session.Token)
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}

	surveyID, err := a.Surveys.Create(ctx, p, model.SurveyDraft{
		Title: "Lunch poll",
		Questions: []model.Question{
			{Text: "Pizza or salad?", Type: model.QuestionMultipleChoice, Options: []string{"Pizza", "Salad"}},
			{Text: "Which drinks?", Type: model.QuestionCheckbox, Options: []string{"Water", "Soda", "Coffee"}},
			{Text: "Anything else?", Type: model.QuestionText},
		},
	})
	if err != nil {
		return fmt.Errorf("create survey: %w", err)
	}
	log.Infof("created survey %s", surveyID)

	submissions := []model.ResponseSubmission{
		{Respondent: "Bob", Answers: []model.AnswerInput{
			{Values: []string{"Pizza"}},
			{Values: []string{"Water", "Coffee"}, Multi: true},
			{Values: []string{"Extra cheese"}},
		}},
		{Respondent: "Carol", Answers: []model.AnswerInput{
			{Values: []string{"Salad"}},
			{Values: []string{"Soda"}, Multi: true},
			{},
		}},
	}
	for _, sub := range submissions {
		id, err := a.Responses.Submit(ctx, surveyID, sub)
		if err != nil {
			return fmt.Errorf("submit response of %s: %w", sub.Respondent, err)
		}
		log.Infof("  response %s from %s", id, sub.Respondent)
	}
	return nil
}

func signup(ctx context.Context, a *app.App, role model.Role, req model.SignupRequest) error {
	profile, err := a.Accounts.Signup(ctx, role, req)
	switch {
	case apperr.Is(err, apperr.KindDuplicateEmail):
		log.Infof("%s %s already exists", role, req.Email)
	case err != nil:
		return fmt.Errorf("signup %s %s: %w", role, req.Email, err)
	default:
		log.Infof("created %s %s (%s)", role, profile.Email, profile.ID)
	}
	return nil
}
