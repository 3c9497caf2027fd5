package service

import (
	"errors"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrUsernameExists   = errors.New("username already exists")
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	ErrSelfModification = errors.New("you cannot deactivate or delete your own account")
)

type CreateUserRequest struct {
	Username        string     `json:"username" validate:"required"`
	Password        string     `json:"password" validate:"required,min=8"`
	ConfirmPassword string     `json:"confirm_password" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	Role            model.Role `json:"role" validate:"required,oneof=admin warehouse_staff production_staff director"`
	IsActive        *bool      `json:"is_active"`
}

type UpdateUserRequest struct {
	Username string     `json:"username" validate:"required"`
	Name     string     `json:"name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=admin warehouse_staff production_staff director"`
	IsActive *bool      `json:"is_active"`
}

type ResetUserPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	RequireReset    bool   `json:"require_reset"`
}

// UserService is the admin-only account management surface
type UserService interface {
	CreateUser(req *CreateUserRequest, actor model.Actor) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor model.Actor) (*model.User, error)
	DeleteUser(userID uuid.UUID, actor model.Actor) error
	ToggleActive(userID uuid.UUID, actor model.Actor) (*model.User, error)
	ResetUserPassword(userID uuid.UUID, req *ResetUserPasswordRequest, actor model.Actor) error
	GetAllUsers(filter repository.UserFilter) ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor model.Actor) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	existing, _ := s.userRepo.FindByUsername(req.Username)
	if existing != nil {
		return nil, ErrUsernameExists
	}

	user := &model.User{
		Username: req.Username,
		Name:     req.Name,
		Role:     req.Role,
		IsActive: true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.CreatedBy = actor.AuditID()
	user.UpdatedBy = actor.AuditID()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor model.Actor) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Username != user.Username {
		existing, _ := s.userRepo.FindByUsername(req.Username)
		if existing != nil {
			return nil, ErrUsernameExists
		}
	}

	// Deactivating your own account locks you out mid-session
	if req.IsActive != nil && !*req.IsActive && userID == actor.ID {
		return nil, ErrSelfModification
	}

	user.Username = req.Username
	user.Name = req.Name
	user.Role = req.Role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = actor.AuditID()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deactivates the account rather than removing the row, so audit
// references on transactions stay resolvable
func (s *userService) DeleteUser(userID uuid.UUID, actor model.Actor) error {
	if userID == actor.ID {
		return ErrSelfModification
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	user.IsActive = false
	user.UpdatedBy = actor.AuditID()
	return s.userRepo.Update(user)
}

func (s *userService) ToggleActive(userID uuid.UUID, actor model.Actor) (*model.User, error) {
	if userID == actor.ID {
		return nil, ErrSelfModification
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.IsActive = !user.IsActive
	user.UpdatedBy = actor.AuditID()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ResetUserPassword(userID uuid.UUID, req *ResetUserPasswordRequest, actor model.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return errors.New("failed to hash password")
	}
	user.ResetPassword = req.RequireReset
	user.UpdatedBy = actor.AuditID()

	return s.userRepo.Update(user)
}

func (s *userService) GetAllUsers(filter repository.UserFilter) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}
