package services

import (
	"context"
	"fmt"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/auth"
	"github.com/okandemir/schoolhub/internal/pkg/dberrors"
	"github.com/okandemir/schoolhub/internal/pkg/logger"
)

// AuthService handles registration, login and profile management
type AuthService struct {
	userRepo      *repositories.UserRepository
	studentRepo   *repositories.StudentRepository
	jwtService    *auth.JWTService
	notifications *NotificationService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	jwtService *auth.JWTService,
	notifications *NotificationService,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		jwtService:    jwtService,
		notifications: notifications,
	}
}

// Register creates an account with its role profile and returns a signed
// token. The role defaults to STUDENT when omitted. Student registrations
// may name a parent account by email to link the profiles.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Role:     role,
	}
	profileID, err := s.userRepo.CreateWithProfile(ctx, user)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	if role == models.RoleStudent && req.ParentEmail != "" {
		s.linkParent(ctx, profileID, req.ParentEmail)
	}

	s.notifications.NotifyAdmins(ctx, "New registration",
		fmt.Sprintf("%s registered as %s", user.FullName, user.Role),
		models.NotificationGeneral)

	return s.authResponse(user, profileID, "Registration successful")
}

// linkParent attaches the new student to the parent named at registration.
// A missing parent account is not fatal to registration.
func (s *AuthService) linkParent(ctx context.Context, studentProfileID int64, parentEmail string) {
	parentID, err := s.userRepo.GetParentProfileIDByEmail(ctx, parentEmail)
	if err != nil {
		logger.Warn().Err(err).Str("parentEmail", parentEmail).Msg("Parent linking skipped")
		return
	}
	if err := s.studentRepo.LinkParent(ctx, studentProfileID, parentID); err != nil {
		logger.Error().Err(err).Int64("studentId", studentProfileID).Msg("Parent linking failed")
	}
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	profileID, err := s.profileID(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.authResponse(user, profileID, "Login successful")
}

// GetProfile retrieves the caller's account with its role profile id
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.AuthUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profileID, err := s.profileID(ctx, user)
	if err != nil {
		return nil, err
	}

	authUser := &dto.AuthUser{User: *user}
	if profileID != 0 {
		authUser.ProfileID = &profileID
	}
	return authUser, nil
}

// UpdateProfile changes the caller's display fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.AuthUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fullName := user.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	avatar := user.Avatar
	if req.Avatar != nil {
		avatar = req.Avatar
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, fullName, avatar); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// profileID resolves the role profile id matching the user's role, 0 for
// admins.
func (s *AuthService) profileID(ctx context.Context, user *models.User) (int64, error) {
	caller, err := s.userRepo.ResolveCaller(ctx, user.ID)
	if err != nil {
		return 0, err
	}

	switch user.Role {
	case models.RoleStudent:
		if id, ok := caller.StudentProfileID(); ok {
			return id, nil
		}
	case models.RoleTeacher:
		if id, ok := caller.TeacherProfileID(); ok {
			return id, nil
		}
	case models.RoleParent:
		if id, ok := caller.ParentProfileID(); ok {
			return id, nil
		}
	}
	return 0, nil
}

func (s *AuthService) authResponse(user *models.User, profileID int64, message string) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	authUser := dto.AuthUser{User: *user}
	if profileID != 0 {
		authUser.ProfileID = &profileID
	}

	return &dto.AuthResponse{
		Message:   message,
		Token:     token,
		ExpiresIn: expiresIn,
		User:      authUser,
	}, nil
}
