package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/utils"
	"github.com/google/uuid"
)

const (
	defaultCurrency = "USD"
	// attempts at finding a free username for a new Google user
	usernameAttempts = 3
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(repo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: repo, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := strings.TrimSpace(req.FullName)
	businessName := strings.TrimSpace(req.BusinessName)
	if businessName == "" {
		businessName = fullName + "'s Business"
	}
	now := s.now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     fullName,
		BusinessName: businessName,
		Currency:     defaultCurrency,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogFailure(ctx, err, "Failed to register user", slog.String("username", user.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User registered successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login attempt for unknown user")
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.IsEmpty() {
		return nil, fmt.Errorf("%w: no valid fields to update", apperrors.ErrValidation)
	}
	if upd.FullName != nil && len([]rune(*upd.FullName)) < 2 {
		return nil, fmt.Errorf("%w: full name must be at least 2 characters", apperrors.ErrValidation)
	}
	if upd.Currency != nil && !slices.Contains(domain.SupportedCurrencies, *upd.Currency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, *upd.Currency)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find user for profile update", slog.String("user_id", userID))
		return nil, err
	}

	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&user.FullName, upd.FullName)
	apply(&user.BusinessName, upd.BusinessName)
	apply(&user.Phone, upd.Phone)
	apply(&user.Address, upd.Address)
	apply(&user.TaxID, upd.TaxID)
	apply(&user.Currency, upd.Currency)
	user.UpdatedAt = s.now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Profile updated successfully", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find user for password change", slog.String("user_id", userID))
		return err
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		s.LogInfo(ctx, "Password change with wrong current password", slog.String("user_id", userID))
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrUnauthorized)
	}
	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = s.now().UTC()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to save new password", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Password changed successfully", slog.String("user_id", userID))
	return nil
}

func (s *userService) FindOrCreateOAuthUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error) {
	if identity.Subject == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: google identity lacks subject or email", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByProvider(ctx, domain.ProviderGoogle, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up Google user")
		return nil, err
	}

	email := strings.ToLower(identity.Email)
	existing, err := s.userRepo.FindUserByUsernameOrEmail(ctx, email)
	switch {
	case err == nil:
		if !identity.EmailVerified {
			s.LogInfo(ctx, "Refusing to link unverified Google email to existing user", slog.String("user_id", existing.UserID))
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, email)
		}
		if existing.ProviderUserID != identity.Subject {
			existing.ProviderUserID = identity.Subject
			existing.UpdatedAt = s.now().UTC()
			if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
				s.LogError(ctx, err, "Failed to link Google account", slog.String("user_id", existing.UserID))
				return nil, err
			}
			s.LogInfo(ctx, "Linked Google account to existing user", slog.String("user_id", existing.UserID))
		}
		return existing, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, err
	}

	return s.createGoogleUser(ctx, identity, email)
}

func (s *userService) createGoogleUser(ctx context.Context, identity domain.GoogleIdentity, email string) (*domain.User, error) {
	fullName := strings.TrimSpace(identity.Name)
	base, _, _ := strings.Cut(email, "@")
	if fullName == "" {
		fullName = base
	}
	now := s.now().UTC()
	user := domain.User{
		UserID:         uuid.NewString(),
		Email:          email,
		FullName:       fullName,
		BusinessName:   fullName + "'s Business",
		Currency:       defaultCurrency,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: identity.Subject,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var err error
	for attempt := range usernameAttempts {
		user.Username = base
		if attempt > 0 {
			user.Username = fmt.Sprintf("%s-%s", base, uuid.NewString()[:6])
		}
		err = s.userRepo.SaveUser(ctx, user)
		if !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create Google user")
		return nil, err
	}
	s.LogInfo(ctx, "Created user from Google sign-in", slog.String("user_id", user.UserID))
	return &user, nil
}
