package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"surveyhub/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func testDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri, 5*time.Second)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	db := client.Database("surveyhub_test_" + time.Now().UTC().Format("20060102150405"))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	return db
}

func TestAccountRepoDuplicateEmail(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	admins := NewAdminRepo(db)

	if _, err := users.Create(ctx, &model.Account{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := users.Create(ctx, &model.Account{Name: "Alice 2", Email: "alice@example.com", PasswordHash: "h"}); err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	// the admin namespace is separate
	if _, err := admins.Create(ctx, &model.Account{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("admin Create failed: %v", err)
	}

	got, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil || got == nil || got.Name != "Alice" {
		t.Fatalf("GetByEmail = %+v, %v", got, err)
	}
	missing, err := users.GetByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for missing account, got %+v, %v", missing, err)
	}
}

func TestSurveyRepoResponses(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewSurveyRepo(db)

	owner := primitive.NewObjectID()
	survey := &model.Survey{
		Title:     "Lunch poll",
		OwnerID:   owner,
		OwnerName: "Alice",
		Questions: []model.Question{{Text: "Pizza or salad?", Type: model.QuestionMultipleChoice, Options: []string{"Pizza", "Salad"}}},
	}
	id, err := repo.Create(ctx, survey)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resp := &model.Response{
		ID:          primitive.NewObjectID(),
		Respondent:  "Bob",
		Answers:     []model.Answer{{Question: "Pizza or salad?", Answer: "Pizza"}},
		SubmittedAt: time.Now().UTC(),
	}
	ok, err := repo.AppendResponse(ctx, id, resp)
	if err != nil || !ok {
		t.Fatalf("AppendResponse = %v, %v", ok, err)
	}
	if ok, _ := repo.AppendResponse(ctx, primitive.NewObjectID(), resp); ok {
		t.Fatal("AppendResponse matched a survey that does not exist")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	if len(got.Responses) != 1 || got.Responses[0].Answers[0].Answer != "Pizza" {
		t.Fatalf("unexpected responses %+v", got.Responses)
	}

	holder, err := repo.FindByResponseID(ctx, resp.ID)
	if err != nil || holder == nil || holder.ID != id {
		t.Fatalf("FindByResponseID = %+v, %v", holder, err)
	}

	summaries, err := repo.List(ctx, model.SurveyFilter{OwnerID: &owner})
	if err != nil || len(summaries) != 1 || summaries[0].Title != "Lunch poll" {
		t.Fatalf("List = %+v, %v", summaries, err)
	}

	if ok, err := repo.PullResponse(ctx, id, resp.ID); err != nil || !ok {
		t.Fatalf("PullResponse = %v, %v", ok, err)
	}
	if ok, _ := repo.PullResponse(ctx, id, resp.ID); ok {
		t.Fatal("second PullResponse should change nothing")
	}

	if ok, err := repo.Delete(ctx, id); err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	if got, _ := repo.GetByID(ctx, id); got != nil {
		t.Fatal("survey still present after Delete")
	}
}
