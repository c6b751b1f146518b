package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	"room-inventory/internal/repositories"
)

// SessionServiceInterface resolves the role behind an authenticated user id.
// It satisfies middleware.RoleResolver.
type SessionServiceInterface interface {
	ResolveRole(ctx context.Context, userID uuid.UUID) (entities.Role, error)
	InvalidateRole(ctx context.Context, userID uuid.UUID) error
}

type SessionService struct {
	profileRepo repositories.ProfileRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	logger      *zap.Logger
	cacheTTL    time.Duration
}

func NewSessionService(
	profileRepo repositories.ProfileRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) SessionServiceInterface {
	return &SessionService{
		profileRepo: profileRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

func roleCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("auth:role:user:%s", userID)
}

func (s *SessionService) ResolveRole(ctx context.Context, userID uuid.UUID) (entities.Role, error) {
	cacheKey := roleCacheKey(userID)

	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if role := entities.Role(cached); role.Valid() {
			return role, nil
		}
		s.logger.Warn("cached role is not recognised", zap.String("key", cacheKey), zap.String("value", cached))
	} else {
		s.logger.Debug("role not cached, reading profile", zap.String("userID", userID.String()), zap.Error(errGet))
	}

	profile, err := s.profileRepo.FindProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	if errSet := s.cacheRepo.Set(ctx, cacheKey, string(profile.Role), s.cacheTTL); errSet != nil {
		s.logger.Error("failed to cache role", zap.String("userID", userID.String()), zap.Error(errSet))
	}
	return profile.Role, nil
}

func (s *SessionService) InvalidateRole(ctx context.Context, userID uuid.UUID) error {
	if err := s.cacheRepo.Del(ctx, roleCacheKey(userID)); err != nil {
		s.logger.Error("failed to invalidate cached role", zap.String("userID", userID.String()), zap.Error(err))
		return err
	}
	return nil
}
