package service

import (
	"context"
	"reflect"
	"testing"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"
)

func TestResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.login(t, model.RoleUser, "Alice", "alice@example.com")
	bob := f.login(t, model.RoleUser, "Bob", "bob@example.com")

	id, err := f.surveySvc.Create(ctx, alice, model.SurveyDraft{
		Title: "Offsite",
		Questions: []model.Question{
			{Text: "Where?", Type: model.QuestionMultipleChoice, Options: []string{"Beach", "Mountains"}},
			{Text: "Activities", Type: model.QuestionCheckbox, Options: []string{"Hiking", "Kayak"}},
			{Text: "Notes", Type: model.QuestionText},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	subs := [][]model.AnswerInput{
		{{Values: []string{"Beach"}}, {Values: []string{"Hiking", "Kayak"}, Multi: true}, {Values: []string{"vegan"}}},
		{{Values: []string{"Beach"}}, {Values: []string{"Kayak"}, Multi: true}, {}},
		{{}, {}, {Values: []string{"none"}}},
	}
	for i, answers := range subs {
		if _, err := f.responses.Submit(ctx, id, model.ResponseSubmission{Respondent: "r", Answers: answers}); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}

	res, err := f.analytics.Results(ctx, alice, id)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if res.Responses != 3 || len(res.Questions) != 3 {
		t.Fatalf("unexpected totals %+v", res)
	}

	where := res.Questions[0]
	if where.Answered != 2 || !reflect.DeepEqual(where.Counts, map[string]int{"Beach": 2, "Mountains": 0}) {
		t.Fatalf("where = %+v", where)
	}
	acts := res.Questions[1]
	if acts.Answered != 2 || !reflect.DeepEqual(acts.Counts, map[string]int{"Hiking": 1, "Kayak": 2}) {
		t.Fatalf("activities = %+v", acts)
	}
	notes := res.Questions[2]
	if notes.Answered != 2 || !reflect.DeepEqual(notes.TextAnswers, []string{"vegan", "none"}) || notes.Counts != nil {
		t.Fatalf("notes = %+v", notes)
	}

	_, err = f.analytics.Results(ctx, bob, id)
	expectKind(t, err, apperr.KindForbidden)
}
