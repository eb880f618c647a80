package service

import (
	"context"
	"strings"

	"github.com/tawseel-next/internal/cache"
	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/repository"
)

// RoleSyncer keeps the authorization store in line with user roles
type RoleSyncer interface {
	SyncUserRole(userID uint, role string) error
	RemoveUser(userID uint) error
}

// UserService staff account management
type UserService struct {
	userRepo repository.UserRepository
	roles    RoleSyncer
	policy   config.PasswordPolicyConfig
}

// NewUserService creates the user service
func NewUserService(userRepo repository.UserRepository, roles RoleSyncer, policy config.PasswordPolicyConfig) *UserService {
	return &UserService{userRepo: userRepo, roles: roles, policy: policy}
}

// UserInput create/update payload; an empty password on update keeps the current one
type UserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// NormalizeUserRole validates a role; the generic "user" role maps to order_search
func NormalizeUserRole(raw string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(raw))
	if role == constants.RoleLegacyUser {
		return constants.RoleOrderSearch, nil
	}
	for _, known := range constants.StaffRoles {
		if role == known {
			return role, nil
		}
	}
	if role == "" {
		return "", requiredField("role")
	}
	return "", ErrInvalidRole
}

// CreateUser validates, hashes the password and stores a new account
func (s *UserService) CreateUser(input UserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	switch {
	case username == "":
		return nil, requiredField("username")
	case email == "":
		return nil, requiredField("email")
	case input.Password == "":
		return nil, requiredField("password")
	}
	role, err := NormalizeUserRole(input.Role)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.policy, input.Password); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserEmailExists
	}
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserEmailExists
		}
		return nil, err
	}
	s.syncRole(user)
	return user, nil
}

// GetUser loads a user by id
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List paginated users
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// UpdateUser changes profile, role and optionally password. Role or password changes revoke tokens.
func (s *UserService) UpdateUser(id uint, input UserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(input.Username); username != "" {
		user.Username = username
	}
	if email := strings.TrimSpace(input.Email); email != "" && email != user.Email {
		existing, err := s.userRepo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrUserEmailExists
		}
		user.Email = email
	}

	revoke := false
	if strings.TrimSpace(input.Role) != "" {
		role, err := NormalizeUserRole(input.Role)
		if err != nil {
			return nil, err
		}
		if role != user.Role {
			if user.Role == constants.RoleAdmin {
				if err := s.ensureAnotherAdmin(); err != nil {
					return nil, err
				}
			}
			user.Role = role
			revoke = true
		}
	}
	if input.Password != "" {
		if err := validatePassword(s.policy, input.Password); err != nil {
			return nil, err
		}
		hashed, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
		revoke = true
	}
	if revoke {
		user.TokenVersion++
	}

	if err := s.userRepo.Update(user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserEmailExists
		}
		return nil, err
	}
	s.syncRole(user)
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// DeleteUser removes an account; the caller cannot delete itself or the last admin
func (s *UserService) DeleteUser(id uint, actorID uint) error {
	if id == actorID {
		return ErrCannotDeleteSelf
	}
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if user.Role == constants.RoleAdmin {
		if err := s.ensureAnotherAdmin(); err != nil {
			return err
		}
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	if s.roles != nil {
		if err := s.roles.RemoveUser(id); err != nil {
			logger.Warnw("user_role_remove_failed", "user_id", id, "error", err)
		}
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	return nil
}

// EnsureAdmin creates the bootstrap admin when no account holds the email yet
func (s *UserService) EnsureAdmin(email, password string) (*models.User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, false, requiredField("email")
	}
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Username:     strings.SplitN(email, "@", 2)[0],
		Email:        email,
		PasswordHash: hashed,
		Role:         constants.RoleAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, err
	}
	s.syncRole(user)
	return user, true, nil
}

// SyncAllRoles rewrites authorization roles for every user
func (s *UserService) SyncAllRoles() error {
	if s.roles == nil {
		return nil
	}
	users, err := s.userRepo.ListAll()
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := s.roles.SyncUserRole(user.ID, user.Role); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserService) ensureAnotherAdmin() error {
	admins, err := s.userRepo.CountByRole(constants.RoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func (s *UserService) syncRole(user *models.User) {
	if s.roles == nil || user == nil {
		return
	}
	if err := s.roles.SyncUserRole(user.ID, user.Role); err != nil {
		logger.Warnw("user_role_sync_failed", "user_id", user.ID, "role", user.Role, "error", err)
	}
}
