package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hotelworks/hotel-api/internal/email"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	"github.com/hotelworks/hotel-api/pkg/auth"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
	"github.com/hotelworks/hotel-api/pkg/security"
)

const resetTokenExpiry = 1 * time.Hour

type Service struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
	logger   zerolog.Logger
}

func NewService(users repository.UserRepository, profiles repository.ProfileRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized(fmt.Errorf("account is inactive"))
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	resp := &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	// Not every account has a profile yet; the login still succeeds.
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err == nil {
		resp.Profile = profile
	}

	return resp, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*model.LoginResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("user not found"))
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefresh, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

// ForgotPassword issues a single-use reset token. An unknown username
// returns success so the endpoint cannot be used to probe accounts.
func (s *Service) ForgotPassword(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil
	}

	reset := &model.PasswordReset{
		Username:     user.Username,
		UserID:       user.ID,
		Token:        uuid.New().String(),
		ResetChannel: "email",
		ExpiryDate:   time.Now().Add(resetTokenExpiry),
	}
	if err := s.users.StoreResetToken(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil || profile.Email == "" {
		s.logger.Warn().Str("username", username).Msg("no email on file for password reset")
		return nil
	}

	if err := s.emailSvc.SendPasswordReset(profile.Email, reset.Token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.users.GetResetToken(ctx, token)
	if err != nil {
		return apperrors.BadRequest("invalid or expired reset token", err)
	}
	if reset.Expired(time.Now()) {
		return apperrors.BadRequest("invalid or expired reset token", nil)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.BadRequest("password does not meet requirements", err)
	}

	if err := s.users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return s.users.MarkResetTokenUsed(ctx, reset.ID)
}
