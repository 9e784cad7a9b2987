package service

import (
	"context"
	"errors"
	"strings"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"
	"surveyhub/internal/normalize"
	"surveyhub/internal/repository"
	"surveyhub/internal/validate"
)

// AccountService handles signup, login and management of user and admin
// accounts. The two roles live in separate namespaces.
type AccountService struct {
	users  repository.AccountRepo
	admins repository.AccountRepo
	tokens *TokenService
}

// NewAccountService creates a new account service
func NewAccountService(users, admins repository.AccountRepo, tokens *TokenService) *AccountService {
	return &AccountService{
		users:  users,
		admins: admins,
		tokens: tokens,
	}
}

func (s *AccountService) repo(role model.Role) repository.AccountRepo {
	if role == model.RoleAdmin {
		return s.admins
	}
	return s.users
}

// Signup creates an account in the role's namespace and returns its profile
func (s *AccountService) Signup(ctx context.Context, role model.Role, req model.SignupRequest) (model.Profile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalize.Email(req.Email)
	if err := validate.Struct(&req); err != nil {
		return model.Profile{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return model.Profile{}, apperr.Internal("hash password", err)
	}

	account := &model.Account{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if _, err := s.repo(role).Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.Profile{}, apperr.DuplicateEmail()
		}
		return model.Profile{}, apperr.Store("create "+string(role), err)
	}
	return account.Profile(), nil
}

// Login verifies the credentials and issues a token. An unknown email is
// NotFound, a wrong password InvalidCredential.
func (s *AccountService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = normalize.Email(req.Email)
	if req.Kind == "" {
		req.Kind = model.RoleUser
	}
	if err := validate.Struct(&req); err != nil {
		return nil, err
	}

	account, err := s.repo(req.Kind).GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Store("find "+string(req.Kind), err)
	}
	if account == nil {
		return nil, apperr.NotFound(string(req.Kind))
	}
	if err := CheckPassword(account.PasswordHash, req.Password); err != nil {
		return nil, apperr.InvalidCredential()
	}

	token, expiresAt, err := s.tokens.Issue(account, req.Kind)
	if err != nil {
		return nil, apperr.Internal("sign token", err)
	}
	return &model.LoginResponse{
		Profile:   account.Profile(),
		Role:      req.Kind,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the caller's token
func (s *AccountService) Logout(ctx context.Context, p *model.Principal) error {
	return s.tokens.Revoke(ctx, p)
}

// ListUsers returns every user profile. Admin only.
func (s *AccountService) ListUsers(ctx context.Context, p *model.Principal) ([]model.Profile, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("only admins can list users")
	}
	accounts, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Store("list users", err)
	}
	profiles := make([]model.Profile, 0, len(accounts))
	for _, a := range accounts {
		profiles = append(profiles, a.Profile())
	}
	return profiles, nil
}

// GetUser returns one user profile to an admin or to the user themself.
func (s *AccountService) GetUser(ctx context.Context, p *model.Principal, id string) (model.Profile, error) {
	account, err := s.loadManagedUser(ctx, p, id)
	if err != nil {
		return model.Profile{}, err
	}
	return account.Profile(), nil
}

// UpdateUser applies the non-empty fields of upd
func (s *AccountService) UpdateUser(ctx context.Context, p *model.Principal, id string, upd model.AccountUpdate) (model.Profile, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = normalize.Email(upd.Email)
	if err := validate.Struct(&upd); err != nil {
		return model.Profile{}, err
	}

	account, err := s.loadManagedUser(ctx, p, id)
	if err != nil {
		return model.Profile{}, err
	}

	if upd.Name != "" {
		account.Name = upd.Name
	}
	if upd.Email != "" {
		account.Email = upd.Email
	}
	if upd.Password != "" {
		hash, err := HashPassword(upd.Password)
		if err != nil {
			return model.Profile{}, apperr.Internal("hash password", err)
		}
		account.PasswordHash = hash
	}

	ok, err := s.users.Update(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.Profile{}, apperr.DuplicateEmail()
		}
		return model.Profile{}, apperr.Store("update user", err)
	}
	if !ok {
		return model.Profile{}, apperr.NotFound("user")
	}
	return account.Profile(), nil
}

// DeleteUser removes the account. Surveys owned by the user are kept.
func (s *AccountService) DeleteUser(ctx context.Context, p *model.Principal, id string) error {
	account, err := s.loadManagedUser(ctx, p, id)
	if err != nil {
		return err
	}
	ok, err := s.users.Delete(ctx, account.ID)
	if err != nil {
		return apperr.Store("delete user", err)
	}
	if !ok {
		return apperr.NotFound("user")
	}
	return nil
}

func (s *AccountService) loadManagedUser(ctx context.Context, p *model.Principal, id string) (*model.Account, error) {
	oid, err := validate.ObjectID("id", id)
	if err != nil {
		return nil, err
	}
	if !canManageUser(p, id) {
		return nil, apperr.Forbidden("you can only manage your own account")
	}

	account, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return nil, apperr.Store("find user", err)
	}
	if account == nil {
		return nil, apperr.NotFound("user")
	}
	return account, nil
}

func canManageUser(p *model.Principal, id string) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || (p.Role == model.RoleUser && p.ID == id)
}
