package service

import (
	"context"
	"errors"

	"storeminds/internal/model"
	"storeminds/internal/repository"
	"storeminds/pkg/jwt"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*model.User, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
}

// LoginResponse flattens the user next to the token, the shape the browser
// client stores after sign-in.
type LoginResponse struct {
	model.UserResponse
	Token string `json:"token"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, classify(err)
	}

	if !user.CheckPassword(password) {
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{UserResponse: user.ToResponse(), Token: token}, nil
}

// ValidateToken checks the signature and that the account still exists.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, classify(err)
	}
	return user, nil
}

// ResetPassword sets a new password without knowing the old one. It backs the
// operator CLI and is not exposed over HTTP.
func (s *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return validationError(errors.New("password must not be empty"))
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return classify(err)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return classify(err)
	}
	return nil
}
