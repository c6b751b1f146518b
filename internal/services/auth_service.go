package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"room-inventory/internal/authz"
	"room-inventory/internal/dto"
	"room-inventory/internal/entities"
	"room-inventory/internal/repositories"
	"room-inventory/pkg/config"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/service"
	"room-inventory/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context) (*dto.ProfileDTO, error)
}

type AuthService struct {
	txManager   repositories.TxManagerInterface
	userRepo    repositories.UserRepositoryInterface
	profileRepo repositories.ProfileRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	jwtService  service.JWTService
	logger      *zap.Logger
	cfg         config.AuthConfig
}

func NewAuthService(
	txManager repositories.TxManagerInterface,
	userRepo repositories.UserRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		txManager:   txManager,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cacheRepo:   cacheRepo,
		jwtService:  jwtService,
		logger:      logger,
		cfg:         cfg,
	}
}

func profileToDTO(profile entities.Profile, email string) dto.ProfileDTO {
	granted := authz.PermissionsFor(profile.Role)
	permissions := make([]string, 0, len(granted))
	for p := range granted {
		permissions = append(permissions, p)
	}
	sort.Strings(permissions)

	return dto.ProfileDTO{
		ID:          profile.ID,
		Email:       email,
		Username:    profile.Username,
		AvatarURL:   profile.AvatarURL,
		Role:        profile.Role,
		Permissions: permissions,
		UpdatedAt:   profile.UpdatedAt,
	}
}

// Register creates the user and its profile together. Admin cannot be self-assigned.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	role := entities.RoleFaculty
	if payload.Role != "" {
		role = entities.Role(payload.Role)
	}
	if !role.Valid() || role == entities.RoleAdmin {
		return nil, apperrors.NewInvalidInputError("role %q cannot be chosen at registration", payload.Role)
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" {
		return nil, apperrors.NewInvalidInputError("username is required")
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	var (
		user    *entities.User
		profile *entities.Profile
	)
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		user, err = s.userRepo.CreateUser(ctx, tx, entities.User{Email: payload.Email, PasswordHash: hash})
		if err != nil {
			return err
		}
		profile, err = s.profileRepo.CreateProfile(ctx, tx, entities.Profile{ID: user.ID, Username: username, Role: role})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("userID", user.ID.String()), zap.String("role", string(role)))
	return s.issueTokens(*profile, user.Email)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	profile, err := s.profileRepo.FindProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(*profile, user.Email)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	profile, err := s.profileRepo.FindProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(*profile, user.Email)
}

func (s *AuthService) Me(ctx context.Context) (*dto.ProfileDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := profileToDTO(*profile, user.Email)
	return &result, nil
}

func (s *AuthService) issueTokens(profile entities.Profile, email string) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         profileToDTO(profile, email),
	}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.cacheRepo.Get(ctx, fmt.Sprintf("lockout:%s", userID)); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uuid.UUID) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", userID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("failed to count login attempt", zap.String("userID", userID.String()), zap.Error(err))
		return
	}
	if attempts == 1 {
		_ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		s.logger.Warn("account locked", zap.String("userID", userID.String()), zap.Int64("attempts", attempts))
		_ = s.cacheRepo.Set(ctx, fmt.Sprintf("lockout:%s", userID), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uuid.UUID) {
	_ = s.cacheRepo.Del(ctx, fmt.Sprintf("login_attempts:%s", userID), fmt.Sprintf("lockout:%s", userID))
}
