package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"recipeapp.com/internal/constants"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/event"
	"recipeapp.com/internal/model"
)

const (
	MinPasswordLength = 5
	maxEmailLength    = 122
	maxNameLength     = 122

	invalidCredentialsMsg = "Unable to authenticate with provided credentials"
)

// UserServiceImpl implements domain.UserService.
type UserServiceImpl struct {
	db       *gorm.DB
	bus      *event.Bus
	hashCost int
}

// NewUserService creates the account manager.
func NewUserService(db *gorm.DB, bus *event.Bus) *UserServiceImpl {
	return &UserServiceImpl{
		db:       db,
		bus:      bus,
		hashCost: bcrypt.DefaultCost,
	}
}

// NormalizeEmail trims and lowercases the whole address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.NewBadRequestError("Password must be at least 5 characters")
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) > maxNameLength {
		return domain.NewBadRequestError("Name must be at most 122 characters")
	}
	return nil
}

// validateRequiredName checks a replacement name.
func validateRequiredName(name string) error {
	if name == "" {
		return domain.NewBadRequestError("Name may not be blank")
	}
	return validateName(name)
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", domain.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

// CreateUser validates and persists a normal, active account.
func (s *UserServiceImpl) CreateUser(ctx context.Context, email, password string, fields domain.UserFields) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewBadRequestError("User must have an email address")
	}
	if len(email) > maxEmailLength {
		return nil, domain.NewBadRequestError("Email must be at most 122 characters")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, domain.NewBadRequestError("Enter a valid email address")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	fields.Name = strings.TrimSpace(fields.Name)
	if err := validateName(fields.Name); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, domain.NewInternalError("failed to check email", err)
	}
	if count > 0 {
		return nil, domain.NewDuplicateError("User with this email already exists")
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Name:     fields.Name,
		Password: hashed,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// a concurrent registration can still win the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewDuplicateError("User with this email already exists")
		}
		return nil, domain.NewInternalError("failed to create user", err)
	}

	slog.Info("UserService: user created", "user_id", user.ID)
	s.bus.Publish(event.Event{Type: constants.EventUserCreated, ActorID: user.ID, SubjectID: user.ID})
	return user, nil
}

// CreateSuperuser creates the account and then grants staff and superuser.
func (s *UserServiceImpl) CreateSuperuser(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.CreateUser(ctx, email, password, domain.UserFields{})
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"is_staff":     true,
		"is_superuser": true,
	}).Error; err != nil {
		return nil, domain.NewInternalError("failed to promote user", err)
	}

	slog.Info("UserService: superuser created", "user_id", user.ID)
	return user, nil
}

// Authenticate returns the active account matching the credentials. Every
// failure produces the same error so callers cannot probe for accounts.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewAuthenticationError(invalidCredentialsMsg)
	}

	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewAuthenticationError(invalidCredentialsMsg)
		}
		return nil, domain.NewInternalError("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.NewAuthenticationError(invalidCredentialsMsg)
	}
	if !user.IsActive {
		return nil, domain.NewAuthenticationError(invalidCredentialsMsg)
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		slog.Warn("UserService: failed to record login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}
	return &user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User not found")
		}
		return nil, domain.NewInternalError("failed to load user", err)
	}
	return &user, nil
}

// UpdateProfile changes the caller's own name and/or password.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (*model.User, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validateRequiredName(name); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if update.Password != nil {
		if err := validatePassword(*update.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}

	return s.applyUpdates(ctx, id, updates)
}

// ListUsers pages through all accounts in id order.
func (s *UserServiceImpl) ListUsers(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := s.db.WithContext(ctx).Model(&model.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count users", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to fetch users", err)
	}
	return users, total, nil
}

// AdminUpdateUser applies staff-only account changes.
func (s *UserServiceImpl) AdminUpdateUser(ctx context.Context, id uint, update domain.AdminUserUpdate) (*model.User, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validateRequiredName(name); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if update.IsStaff != nil {
		updates["is_staff"] = *update.IsStaff
	}

	return s.applyUpdates(ctx, id, updates)
}

func (s *UserServiceImpl) applyUpdates(ctx context.Context, id uint, updates map[string]interface{}) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, domain.NewInternalError("failed to update user", err)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the account and, in the same transaction, its recipes.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Recipe{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("User not found")
		}
		return nil
	})
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return domain.NewInternalError("failed to delete user", err)
	}

	slog.Info("UserService: user deleted", "user_id", id)
	s.bus.Publish(event.Event{Type: constants.EventUserDeleted, SubjectID: id})
	return nil
}

var _ domain.UserService = (*UserServiceImpl)(nil)
