package service

import (
	"context"
	"io"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

const profilePictureDir = "profile-pictures"

// ProfileService manages the caller's own record and profile picture.
type ProfileService struct {
	accounts store.AccountStore
	files    utils.FileStore
	log      *zap.Logger
}

func NewProfileService(accounts store.AccountStore, files utils.FileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{accounts: accounts, files: files, log: logger}
}

// View returns the caller's profile with the picture key resolved to a URL.
func (s *ProfileService) View(ctx context.Context, a *models.Account) map[string]any {
	v := a.Profile()
	if a.ProfilePictureURL != "" {
		if url, err := s.files.URL(ctx, a.ProfilePictureURL); err == nil {
			v["profilePictureUrl"] = url
		} else {
			s.log.Warn("resolve profile picture url", zap.String("id", a.ID), zap.Error(err))
		}
	}
	return v
}

// SetPicture stores a new picture and removes the previous one.
func (s *ProfileService) SetPicture(ctx context.Context, a *models.Account, filename string, r io.Reader) (string, error) {
	key, err := s.files.SaveFile(ctx, profilePictureDir, filename, r)
	if err != nil {
		return "", internal(err, "save profile picture")
	}
	if err := s.accounts.SetProfilePicture(ctx, a.ID, key); err != nil {
		_ = s.files.DeleteFile(ctx, key)
		return "", internal(err, "update profile picture")
	}
	if a.ProfilePictureURL != "" {
		if err := s.files.DeleteFile(ctx, a.ProfilePictureURL); err != nil {
			s.log.Warn("failed to clean up old profile picture", zap.String("key", a.ProfilePictureURL), zap.Error(err))
		}
	}
	url, err := s.files.URL(ctx, key)
	if err != nil {
		return "", internal(err, "resolve profile picture url")
	}
	return url, nil
}

func (s *ProfileService) DeletePicture(ctx context.Context, a *models.Account) error {
	if a.ProfilePictureURL == "" {
		return newError(KindNotFound, "No profile picture to delete")
	}
	if err := s.accounts.SetProfilePicture(ctx, a.ID, ""); err != nil {
		return internal(err, "clear profile picture")
	}
	if err := s.files.DeleteFile(ctx, a.ProfilePictureURL); err != nil {
		s.log.Warn("failed to delete profile picture file", zap.String("key", a.ProfilePictureURL), zap.Error(err))
	}
	return nil
}
