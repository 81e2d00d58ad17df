package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nsitapara/stellarcare/internal/platform/auth"
	"github.com/nsitapara/stellarcare/internal/platform/validation"
)

// Sentinel errors the handler maps to 401.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account is not active")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

type Service struct {
	repo   Repository
	issuer *auth.TokenIssuer
	logger zerolog.Logger
}

func NewService(repo Repository, issuer *auth.TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, logger: logger}
}

// Register creates a new account. Registration is open but accounts start
// inactive; an operator activates them out of band, so a fresh signup can
// not log in yet.
func (s *Service) Register(ctx context.Context, in *RegisterInput) (*User, error) {
	v := validation.New()
	if in.Username == "" {
		v.Add("username", "this field is required")
	}
	if in.Email == "" {
		v.Add("email", "this field is required")
	}
	if in.Password != in.PasswordRetype {
		v.Add("password_retype", "passwords do not match")
	} else if err := auth.ValidatePassword(in.Password); err != nil {
		v.Add("password", err.Error())
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, validation.Single("username", "a user with that username already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     false,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}
	return u, nil
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in *ProfileInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, validation.Single("email", "this field may not be blank")
		}
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword rotates the bearer's password. The current password must
// verify, the new one must match its retype, differ from the current and
// pass the strength rules.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, in *ChangePasswordInput) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, in.CurrentPassword) {
		return validation.Single("current_password", "current password is incorrect")
	}
	if in.NewPassword != in.NewPasswordRetype {
		return validation.Single("new_password_retype", "passwords do not match")
	}
	if in.NewPassword == in.CurrentPassword {
		return validation.Single("new_password", "new password must differ from the current password")
	}
	if err := auth.ValidatePassword(in.NewPassword); err != nil {
		return validation.Single("new_password", err.Error())
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// DeleteAccount removes the account; assignment rows cascade away with it.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Login exchanges credentials for a token pair. Lookup failures and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in *LoginInput) (*auth.TokenPair, error) {
	u, err := s.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}
	return s.issuer.IssuePair(u.ID.String(), u.Username)
}

// Refresh trades a valid refresh token for a fresh access token. The
// account must still exist and be active at refresh time.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil || !u.IsActive {
		return "", ErrInvalidToken
	}
	return s.issuer.IssueAccess(u.ID.String(), u.Username)
}
