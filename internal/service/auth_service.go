package service

import (
	"errors"

	"github.com/google/uuid"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
	ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error
}

type LoginResponse struct {
	Token         string             `json:"token"`
	User          model.UserResponse `json:"user"`
	ResetPassword bool               `json:"reset_password"` // Forced password change pending
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a fresh token version invalidates older tokens
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}
	if err := s.userRepo.UpdateLastSeen(user.ID); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Name, string(user.Role), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:         token,
		User:          user.ToResponse(),
		ResetPassword: user.ResetPassword,
	}, nil
}

// Logout bumps the token version, so the session token held by the client
// stops validating
func (s *authService) Logout(userID uuid.UUID) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	user.ResetPassword = false

	return s.userRepo.Update(user)
}
