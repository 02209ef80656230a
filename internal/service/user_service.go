package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Username string
	Email    string
	Password string
	Bio      string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	var fields []models.FieldError
	if err := validation.ValidateUsername(in.Username); err != nil {
		fields = append(fields, models.FieldError{Field: "username", Message: err.Error()})
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields = append(fields, models.FieldError{Field: "password", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid signup request", fields...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		Bio:      in.Bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("Username or email is already taken")
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials. Both an unknown email and a wrong password
// produce the same error so the endpoint does not leak which emails exist.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthenticatedError("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError("Invalid profile",
				models.FieldError{Field: "username", Message: err.Error()})
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Invalid profile",
				models.FieldError{Field: "bio", Message: "Bio too long (max 500 characters)"})
		}
		user.Bio = in.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("Username or email is already taken")
		}
		return nil, err
	}

	return user, nil
}

// IsAdmin reports whether the user has admin privileges. Wired into other
// services as their admin check.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}
