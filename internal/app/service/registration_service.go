package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"signup_portal/internal/common"
	"signup_portal/internal/common/security"
	"signup_portal/internal/domain/model"
	"signup_portal/internal/domain/repository"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

type RegistrationRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,printascii,email,dotted_domain"`
	Phone     string `json:"phone" validate:"len=10,number"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Normalize trims every field except the password.
func (r *RegistrationRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

type RegistrationService struct {
	userRepo     repository.UserRepository
	hasher       *security.PasswordHasher
	rolePolicy   RolePolicy
	storeTimeout time.Duration
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewRegistrationService(
	userRepo repository.UserRepository,
	hasher *security.PasswordHasher,
	rolePolicy RolePolicy,
	storeTimeout time.Duration,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		userRepo:     userRepo,
		hasher:       hasher,
		rolePolicy:   rolePolicy,
		storeTimeout: storeTimeout,
		validate:     newValidator(),
		logger:       logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The stock email rule accepts dotless domains such as "a@localhost".
	_ = v.RegisterValidation("dotted_domain", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		at := strings.LastIndexByte(s, '@')
		return at >= 0 && strings.Contains(s[at+1:], ".")
	})
	return v
}

// Register validates req, hashes the password, rejects a duplicate email
// and stores the new user. The returned error is always nil or one of the
// Err* values in this package; store diagnostics are logged, not returned.
func (s *RegistrationService) Register(ctx context.Context, req RegistrationRequest) (*model.User, error) {
	req.Normalize()

	if err := s.validateFields(req); err != nil {
		return nil, err
	}
	if len(req.Password) == 0 || len(req.Password) > maxPasswordBytes {
		return nil, ErrInvalidPassword
	}

	role, err := s.rolePolicy.Authorize(ctx, req.Role)
	if err != nil {
		s.logger.Warn("signup role rejected", zap.String("email", req.Email), zap.String("role", req.Role))
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.String("email", req.Email), zap.Error(err))
		return nil, ErrPersistence
	}

	if err := s.ensureEmailAvailable(ctx, req.Email); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		HashedPassword: hashedPassword,
		Role:           role,
		Handle:         slug.Make(req.FirstName + " " + req.LastName),
	}

	createCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.userRepo.Create(createCtx, user); err != nil {
		// The unique constraint closes the window between the lookup and the insert.
		if errors.Is(err, common.ErrConflict) {
			s.logger.Info("signup lost duplicate email race", zap.String("email", req.Email))
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, ErrPersistence
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role),
	)
	return user, nil
}

// validateFields reports the first failing field in declaration order, so
// a bad email wins over a bad phone.
func (s *RegistrationService) validateFields(req RegistrationRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		s.logger.Error("request validation failed unexpectedly", zap.Error(err))
		return ErrPersistence
	}
	switch verrs[0].StructField() {
	case "Email":
		return ErrInvalidEmail
	case "Phone":
		return ErrInvalidPhone
	default:
		return ErrPersistence
	}
}

func (s *RegistrationService) ensureEmailAvailable(ctx context.Context, email string) error {
	findCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	_, err := s.userRepo.FindByEmail(findCtx, email)
	switch {
	case err == nil:
		s.logger.Info("signup rejected, email already registered", zap.String("email", email))
		return ErrDuplicateEmail
	case errors.Is(err, common.ErrNotFound):
		return nil
	default:
		s.logger.Error("failed to look up email", zap.String("email", email), zap.Error(err))
		return ErrPersistence
	}
}
