package service

import (
	"context"
	"errors"
	"testing"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"
)

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := model.SignupRequest{Name: "Alice", Email: "Alice@Example.com ", Password: "secret1"}
	profile, err := f.accounts.Signup(ctx, model.RoleUser, req)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if profile.Email != "alice@example.com" || profile.ID == "" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	_, err = f.accounts.Signup(ctx, model.RoleUser, model.SignupRequest{Name: "Other", Email: "alice@example.com", Password: "secret2"})
	expectKind(t, err, apperr.KindDuplicateEmail)
	if n := f.users.Len(); n != 1 {
		t.Fatalf("store holds %d users after duplicate signup, want 1", n)
	}

	// admins are a separate namespace
	if _, err := f.accounts.Signup(ctx, model.RoleAdmin, req); err != nil {
		t.Fatalf("admin Signup with a user's email: %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.Signup(context.Background(), model.RoleUser, model.SignupRequest{Name: "  ", Email: "a@b.co", Password: "secret1"})
	expectKind(t, err, apperr.KindValidation)
	if f.users.Len() != 0 {
		t.Fatal("invalid signup stored an account")
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.accounts.Signup(ctx, model.RoleUser, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	resp, err := f.accounts.Login(ctx, model.LoginRequest{Email: " ALICE@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Name != "Alice" || resp.Role != model.RoleUser || resp.Token == "" {
		t.Fatalf("unexpected login response %+v", resp)
	}

	_, err = f.accounts.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "wrong-pw"})
	expectKind(t, err, apperr.KindInvalidCredential)

	_, err = f.accounts.Login(ctx, model.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	expectKind(t, err, apperr.KindNotFound)

	// a user cannot log into the admin namespace
	_, err = f.accounts.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "secret1", Kind: model.RoleAdmin})
	expectKind(t, err, apperr.KindNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.login(t, model.RoleUser, "Alice", "alice@example.com")

	if err := f.accounts.Logout(ctx, p); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if ok, _ := f.sessions.IsRevoked(ctx, p.TokenID); !ok {
		t.Fatal("token id not revoked")
	}
}

func TestManageUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.login(t, model.RoleUser, "Alice", "alice@example.com")
	bob := f.login(t, model.RoleUser, "Bob", "bob@example.com")
	admin := f.login(t, model.RoleAdmin, "Root", "root@example.com")

	_, err := f.accounts.ListUsers(ctx, alice)
	expectKind(t, err, apperr.KindForbidden)
	users, err := f.accounts.ListUsers(ctx, admin)
	if err != nil || len(users) != 2 {
		t.Fatalf("ListUsers = %v, %v", users, err)
	}

	_, err = f.accounts.UpdateUser(ctx, bob, alice.ID, model.AccountUpdate{Name: "Mallory"})
	expectKind(t, err, apperr.KindForbidden)

	updated, err := f.accounts.UpdateUser(ctx, alice, alice.ID, model.AccountUpdate{Name: "Alice B."})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Alice B." || updated.Email != "alice@example.com" {
		t.Fatalf("unexpected profile after partial update %+v", updated)
	}
	// password untouched by a name-only update
	if _, err := f.accounts.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Login after update: %v", err)
	}

	_, err = f.accounts.UpdateUser(ctx, admin, alice.ID, model.AccountUpdate{Email: "bob@example.com"})
	expectKind(t, err, apperr.KindDuplicateEmail)

	_, err = f.accounts.GetUser(ctx, admin, "not-an-id")
	expectKind(t, err, apperr.KindValidation)
}

func TestDeleteUserKeepsSurveys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.login(t, model.RoleUser, "Alice", "alice@example.com")

	id, err := f.surveySvc.Create(ctx, alice, lunchPoll())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.accounts.DeleteUser(ctx, alice, alice.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := f.surveySvc.Get(ctx, nil, id); err != nil {
		t.Fatalf("survey gone after owner deletion: %v", err)
	}

	err = f.accounts.DeleteUser(ctx, alice, alice.ID)
	expectKind(t, err, apperr.KindNotFound)
}

func TestStoreFailureIsStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.users.Err = errors.New("connection refused")

	_, err := f.accounts.Signup(context.Background(), model.RoleUser, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	expectKind(t, err, apperr.KindStoreUnavailable)
}
