package service

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/validate"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/policy"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

// dummyPassword is hashed once so unknown emails cost the same bcrypt
// comparison as known ones.
const dummyPassword = "jobboard-login-timing"

var (
	errInvalidCredentials = apperrors.New(apperrors.CodeAuthInvalidCredentials, "invalid credentials")
	errNoSessions         = errors.New("session issuer is not configured")
)

// RegisterInput is a self-registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// AuthSession is a signed session for a logged-in user.
type AuthSession struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

// Register creates a CANDIDATE account.
func (s *Service) Register(ctx context.Context, principal identity.Principal, input RegisterInput) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "Register", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionRegister, policy.ResourceAccount, policy.Target{}); err != nil {
		return user.User{}, err
	}
	created, err := user.CreateUser(user.CreateUserInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  input.Password,
		Role:      identity.RoleCandidate.String(),
	}, user.MinRegisterPasswordLength, s.hasher.Hash, s.clock, s.idGenerator)
	if err != nil {
		return user.User{}, err
	}
	if err := s.store.CreateUser(ctx, created); err != nil {
		return user.User{}, storageError("register", err, apperrors.CodeUserNotFound)
	}
	return created, nil
}

// Login verifies credentials and issues a session. Unknown emails and wrong
// passwords fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (_ AuthSession, err error) {
	ctx, finish := s.start(ctx, "Login", identity.Anonymous())
	defer finish(&err)

	if s.sessions == nil {
		return AuthSession{}, apperrors.Internal("login", errNoSessions)
	}
	account, err := s.store.GetUserByEmail(ctx, validate.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return AuthSession{}, storageError("login", err, apperrors.CodeUserNotFound)
		}
		s.verifyDummy(password)
		return AuthSession{}, errInvalidCredentials
	}
	ok, err := s.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		return AuthSession{}, apperrors.Internal("login: verify password", err)
	}
	if !ok {
		return AuthSession{}, errInvalidCredentials
	}
	session, err := s.sessions.Issue(account.Principal())
	if err != nil {
		return AuthSession{}, apperrors.Internal("login: issue session", err)
	}
	return AuthSession{Token: session.Token, ExpiresAt: session.ExpiresAt, User: account}, nil
}

func (s *Service) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(dummyPassword)
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(s.dummyHash, password)
	}
}

// Me returns the account behind principal.
func (s *Service) Me(ctx context.Context, principal identity.Principal) (_ user.WithCompany, err error) {
	ctx, finish := s.start(ctx, "Me", principal)
	defer finish(&err)

	if !principal.Authenticated() {
		return user.WithCompany{}, apperrors.New(apperrors.CodeAuthRequired, "authentication required")
	}
	account, err := s.store.GetUserWithCompany(ctx, principal.UserID)
	if err != nil {
		// A valid token for a deleted account.
		return user.WithCompany{}, storageError("me", err, apperrors.CodeAuthInvalidToken)
	}
	return account, nil
}
