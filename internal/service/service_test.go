package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"
	"surveyhub/internal/repository/repotest"
)

// memSessions is an in-memory cache.SessionCache
type memSessions struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemSessions() *memSessions {
	return &memSessions{revoked: make(map[string]time.Time)}
}

func (m *memSessions) Revoke(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = until
	return nil
}

func (m *memSessions) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok, nil
}

type event struct {
	surveyID string
	msgType  string
}

// recorder is a Broadcaster that remembers what was sent
type recorder struct {
	mu           sync.Mutex
	events       []event
	disconnected []string
}

func (r *recorder) BroadcastToSurvey(surveyID, msgType string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{surveyID, msgType})
}

func (r *recorder) DisconnectSurvey(surveyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disconnected = append(r.disconnected, surveyID)
}

type fixture struct {
	users     *repotest.Accounts
	admins    *repotest.Accounts
	surveys   *repotest.Surveys
	sessions  *memSessions
	tokens    *TokenService
	accounts  *AccountService
	surveySvc *SurveyService
	responses *ResponseService
	analytics *AnalyticsService
	events    *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    repotest.NewAccounts(),
		admins:   repotest.NewAccounts(),
		surveys:  repotest.NewSurveys(),
		sessions: newMemSessions(),
		events:   &recorder{},
	}
	f.tokens = NewTokenService("test-secret", time.Hour, f.sessions)
	f.accounts = NewAccountService(f.users, f.admins, f.tokens)
	f.surveySvc = NewSurveyService(f.surveys, f.users, 1)
	f.responses = NewResponseService(f.surveys, f.surveySvc)
	f.analytics = NewAnalyticsService(f.responses)
	f.surveySvc.SetBroadcaster(f.events)
	f.responses.SetBroadcaster(f.events)
	return f
}

// login signs up an account and returns the principal of its token
func (f *fixture) login(t *testing.T, role model.Role, name, email string) *model.Principal {
	t.Helper()
	ctx := context.Background()
	if _, err := f.accounts.Signup(ctx, role, model.SignupRequest{Name: name, Email: email, Password: "secret1"}); err != nil {
		t.Fatalf("Signup(%s): %v", email, err)
	}
	resp, err := f.accounts.Login(ctx, model.LoginRequest{Email: email, Password: "secret1", Kind: role})
	if err != nil {
		t.Fatalf("Login(%s): %v", email, err)
	}
	p, err := f.tokens.Verify(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return p
}

func expectKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, got, err)
	}
}
