package service

import (
	"errors"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// CreateUserInput is the admin-provisioning payload.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      string
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserService interface {
	List(search string, page, pageSize int) ([]models.User, int64, error)
	Create(input CreateUserInput) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(username string, patch UserPatch) (*models.User, error)
	Delete(username string) error
	UpdateSelf(userID string, patch UserPatch) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(search, page, pageSize)
}

// Create provisions a user directly; admin-created accounts skip the
// confirmation flow and start active.
func (s *userService) Create(input CreateUserInput) (*models.User, error) {
	fieldErrs := FieldErrors{}
	if msg := validateProfileUsername(input.Username); msg != "" {
		fieldErrs["username"] = msg
	}
	if msg := validateEmail(input.Email); msg != "" {
		fieldErrs["email"] = msg
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if msg := validateRole(role); msg != "" {
		fieldErrs["role"] = msg
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, FieldErrors{"email": "email already in use"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, FieldErrors{"username": "username already in use"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
		Active:    true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(username string, patch UserPatch) (*models.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.apply(user, patch)
}

func (s *userService) Delete(username string) error {
	if err := s.userRepo.Delete(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UpdateSelf applies a partial update on the caller's own profile. The role
// field is force-preserved regardless of the payload, so users cannot
// escalate themselves.
func (s *userService) UpdateSelf(userID string, patch UserPatch) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	patch.Role = nil
	return s.apply(user, patch)
}

func (s *userService) apply(user *models.User, patch UserPatch) (*models.User, error) {
	fieldErrs := FieldErrors{}

	if patch.Username != nil && *patch.Username != user.Username {
		if msg := validateProfileUsername(*patch.Username); msg != "" {
			fieldErrs["username"] = msg
		} else if _, err := s.userRepo.FindByUsername(*patch.Username); err == nil {
			fieldErrs["username"] = "username already in use"
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if msg := validateEmail(*patch.Email); msg != "" {
			fieldErrs["email"] = msg
		} else if _, err := s.userRepo.FindByEmail(*patch.Email); err == nil {
			fieldErrs["email"] = "email already in use"
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if patch.Role != nil {
		if msg := validateRole(*patch.Role); msg != "" {
			fieldErrs["role"] = msg
		}
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}
