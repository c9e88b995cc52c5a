// Package services contains server-side business logic. Handlers call these
// services with already-authenticated user ids; services validate input,
// enforce ownership and translate storage outcomes into common sentinels.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
)

const (
	maxUsernameLen = 64
	maxEmailLen    = 254
)

// UserService handles registration, login and profile management.
type UserService struct {
	repos   repomanager.RepositoryManager
	tokens  auth.TokenService
	loginBy string
}

// NewUserService constructs a UserService. cfg.LoginIdentifier decides
// whether Login looks accounts up by username or by email.
func NewUserService(m repomanager.RepositoryManager, tokens auth.TokenService, cfg *config.Config) *UserService {
	return &UserService{repos: m, tokens: tokens, loginBy: cfg.LoginIdentifier}
}

// LoginIdentifier returns the field Login matches against.
func (s *UserService) LoginIdentifier() string {
	return s.loginBy
}

func validateUsername(username string) error {
	if username == "" {
		return common.NewValidationError("username", "required")
	}
	if len(username) > maxUsernameLen {
		return common.NewValidationError("username", "too long")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return common.NewValidationError("email", "required")
	}
	if len(email) > maxEmailLen {
		return common.NewValidationError("email", "too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return common.NewValidationError("email", "invalid address")
	}
	return nil
}

func validatePassword(field, password string) error {
	if password == "" {
		return common.NewValidationError(field, "required")
	}
	if len(password) > auth.MaxPasswordLen {
		return common.NewValidationError(field, "too long")
	}
	return nil
}

// conflictError names the field already held by another account.
func conflictError(found []*models.User, username, email string) error {
	for _, u := range found {
		if u.UserName == username {
			return fmt.Errorf("username taken: %w", common.ErrorAlreadyExists)
		}
		if u.Email == email {
			return fmt.Errorf("email taken: %w", common.ErrorAlreadyExists)
		}
	}
	return nil
}

// Register creates an account. Username and email must both be free; a
// concurrent insert that slips past the lookup is still rejected by the
// store's unique constraints.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = common.NormalizeEmail(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword("password", password); err != nil {
		return nil, err
	}

	repo := s.repos.Users()

	found, err := repo.FindConflicts(ctx, username, email, "")
	if err != nil {
		return nil, fmt.Errorf("error checking user conflicts: %w", err)
	}
	if err := conflictError(found, username, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *UserService) lookup(ctx context.Context, identifier string) (*models.User, error) {
	if s.loginBy == config.LoginByEmail {
		return s.repos.Users().GetByEmail(ctx, common.NormalizeEmail(identifier))
	}
	return s.repos.Users().GetByUsername(ctx, strings.TrimSpace(identifier))
}

// Login checks credentials and issues an access token. Unknown accounts and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	if identifier == "" || password == "" {
		return "", nil, common.ErrInvalidCredentials
	}

	user, err := s.lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing token: %w", err)
	}
	return token, user, nil
}

// Profile returns the account for userID.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// ProfileUpdate carries the fields of a profile change. Empty Username and
// Email keep the stored values; an empty NewPassword keeps the stored hash.
type ProfileUpdate struct {
	Username    string
	Email       string
	OldPassword string
	NewPassword string
}

// UpdateProfile applies upd after the current password has been re-proved.
// A wrong old password yields a validation error.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.User, error) {
	if upd.OldPassword == "" {
		return nil, common.NewValidationError("oldPassword", "required")
	}

	username := strings.TrimSpace(upd.Username)
	email := common.NormalizeEmail(upd.Email)

	if username != "" {
		if err := validateUsername(username); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if upd.NewPassword != "" {
		if err := validatePassword("newPassword", upd.NewPassword); err != nil {
			return nil, err
		}
	}

	var updated *models.User
	err := s.repos.WithinTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		repo := repos.Users()

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !auth.CheckPassword(user.PasswordHash, upd.OldPassword) {
			return common.NewValidationError("oldPassword", "does not match")
		}

		if username != "" {
			user.UserName = username
		}
		if email != "" {
			user.Email = email
		}

		found, err := repo.FindConflicts(ctx, user.UserName, user.Email, user.ID)
		if err != nil {
			return fmt.Errorf("error checking user conflicts: %w", err)
		}
		if err := conflictError(found, user.UserName, user.Email); err != nil {
			return err
		}

		if upd.NewPassword != "" {
			hash, err := auth.HashPassword(upd.NewPassword)
			if err != nil {
				return fmt.Errorf("error hashing password: %w", err)
			}
			user.PasswordHash = hash
		}

		updated, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAccount removes userID and every review it owns.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.repos.WithinTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if _, err := repos.Reviews().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting reviews: %w", err)
		}
		return repos.Users().Delete(ctx, userID)
	})
}
