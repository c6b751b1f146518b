package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/internal/authz"
	"room-inventory/internal/dto"
	"room-inventory/internal/entities"
	"room-inventory/internal/repositories"
	"room-inventory/pkg/config"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/filestorage"
	"room-inventory/pkg/utils"
)

const avatarUploadContext = "avatar"

type ProfileServiceInterface interface {
	UpdateProfile(ctx context.Context, payload dto.UpdateProfileDTO) (*dto.ProfileDTO, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, payload dto.UpdateRoleDTO) (*dto.ProfileDTO, error)
	ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error
	UploadAvatar(ctx context.Context, file *multipart.FileHeader) (*dto.ProfileDTO, error)
}

type ProfileService struct {
	userRepo    repositories.UserRepositoryInterface
	profileRepo repositories.ProfileRepositoryInterface
	sessions    SessionServiceInterface
	storage     filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewProfileService(
	userRepo repositories.UserRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	sessions SessionServiceInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) ProfileServiceInterface {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessions:    sessions,
		storage:     storage,
		logger:      logger,
	}
}

func (s *ProfileService) UpdateProfile(ctx context.Context, payload dto.UpdateProfileDTO) (*dto.ProfileDTO, error) {
	session := authz.FromContext(ctx)
	if !session.Has(authz.ProfileUpdate) {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if payload.Username.Valid {
		username := strings.TrimSpace(payload.Username.String)
		if len(username) < 3 || len(username) > 50 {
			return nil, apperrors.NewInvalidInputError("username must be between 3 and 50 characters")
		}
		profile.Username = username
	}

	updated, err := s.profileRepo.UpdateProfile(ctx, *profile)
	if err != nil {
		return nil, err
	}
	result := profileToDTO(*updated, "")
	return &result, nil
}

// UpdateRole lets an admin change another user's role. The cached role is dropped
// so the next request of that user sees the change.
func (s *ProfileService) UpdateRole(ctx context.Context, userID uuid.UUID, payload dto.UpdateRoleDTO) (*dto.ProfileDTO, error) {
	session := authz.FromContext(ctx)
	if !authz.CanAssignRoles(session) {
		return nil, apperrors.ErrForbidden
	}

	role := entities.Role(payload.Role)
	if !role.Valid() {
		return nil, apperrors.NewInvalidInputError("unknown role %q", payload.Role)
	}
	if userID == session.UserID && role != entities.RoleAdmin {
		return nil, apperrors.NewInvalidInputError("admins cannot remove their own admin role")
	}

	profile, err := s.profileRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Role = role

	updated, err := s.profileRepo.UpdateProfile(ctx, *profile)
	if err != nil {
		return nil, err
	}
	_ = s.sessions.InvalidateRole(ctx, userID)

	s.logger.Info("role changed",
		zap.String("userID", userID.String()),
		zap.String("role", string(role)),
		zap.String("changedBy", session.UserID.String()),
	)
	result := profileToDTO(*updated, "")
	return &result, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	session := authz.FromContext(ctx)
	if !session.Has(authz.PasswordUpdate) {
		return apperrors.ErrForbidden
	}
	if len(payload.NewPassword) < 6 {
		return apperrors.NewInvalidInputError("password must be at least 6 characters")
	}
	if payload.NewPassword != payload.ConfirmPassword {
		return apperrors.NewInvalidInputError("passwords do not match")
	}

	user, err := s.userRepo.FindUserByID(ctx, session.UserID)
	if err != nil {
		return err
	}
	if err := utils.ComparePasswords(user.PasswordHash, payload.CurrentPassword); err != nil {
		return apperrors.NewInvalidInputError("current password is incorrect")
	}

	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("userID", user.ID.String()))
	return nil
}

func (s *ProfileService) UploadAvatar(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ProfileDTO, error) {
	session := authz.FromContext(ctx)
	if !session.Has(authz.ProfileUpdate) {
		return nil, apperrors.ErrForbidden
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewInvalidInputError("could not read uploaded file")
	}
	defer src.Close()

	if err := utils.ValidateFile(fileHeader, src, avatarUploadContext); err != nil {
		return nil, err
	}

	current, err := s.profileRepo.FindProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(src, fileHeader.Filename, config.UploadContexts[avatarUploadContext].PathPrefix)
	if err != nil {
		return nil, err
	}
	url := "/uploads/" + stored

	updated, err := s.profileRepo.UpdateAvatar(ctx, session.UserID, &url)
	if err != nil {
		_ = s.storage.Delete(stored)
		return nil, err
	}

	if current.AvatarURL != nil {
		if err := s.storage.Delete(*current.AvatarURL); err != nil {
			s.logger.Warn("failed to remove previous avatar", zap.String("path", *current.AvatarURL), zap.Error(err))
		}
	}

	result := profileToDTO(*updated, "")
	return &result, nil
}
