package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"task-api/internal/dto"
	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/internal/utils"
	"task-api/pkg/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const profileImageDir = "profiles"

// allowed image extensions and the content types they must sniff as
var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// ProfileService user profiles and profile images
type ProfileService struct {
	profileRepo  *repository.ProfileRepository
	userRepo     *repository.UserRepository
	storage      storage.Storage
	maxImageSize int64
	logger       *logrus.Logger
}

// NewProfileService creates a ProfileService
func NewProfileService(
	profileRepo *repository.ProfileRepository,
	userRepo *repository.UserRepository,
	store storage.Storage,
	maxImageSize int64,
	logger *logrus.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		storage:      store,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

// Show returns the profile of userID
func (s *ProfileService) Show(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound, "get profile")
	}
	return s.toResponse(profile), nil
}

// GetByUser returns the profile of an existing user, or nil when the user
// has not created one.
func (s *ProfileService) GetByUser(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, notFound(err, ErrUserNotFound, "get user")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return s.toResponse(profile), nil
}

// Create stores the optional image and creates the caller's profile
func (s *ProfileService) Create(ctx context.Context, userID uint, req *dto.CreateProfileRequest, image *multipart.FileHeader) (*dto.ProfileResponse, error) {
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile := &models.Profile{
		UserID:      userID,
		Bio:         req.Bio,
		Phone:       req.Phone,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
	}

	if image != nil {
		path, err := s.storeImage(ctx, userID, image)
		if err != nil {
			return nil, err
		}
		profile.Image = &path
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.discardImage(ctx, profile.Image)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return s.toResponse(profile), nil
}

// Update applies the present fields to the profile of targetUserID
func (s *ProfileService) Update(ctx context.Context, targetUserID uint, req *dto.UpdateProfileRequest, image *multipart.FileHeader) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound, "get profile")
	}

	updates := req.Updates()
	var previous *string
	if image != nil {
		path, err := s.storeImage(ctx, targetUserID, image)
		if err != nil {
			return nil, err
		}
		updates["image"] = path
		// the reload below overwrites profile.Image
		if profile.Image != nil {
			old := *profile.Image
			previous = &old
		}
	}

	if err := s.profileRepo.Update(ctx, profile, updates); err != nil {
		if path, ok := updates["image"].(string); ok {
			s.discardImage(ctx, &path)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.discardImage(ctx, previous)

	return s.toResponse(profile), nil
}

// storeImage validates and writes the uploaded image, returning its path
func (s *ProfileService) storeImage(ctx context.Context, userID uint, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	expected, ok := imageTypes[ext]
	if !ok {
		return "", utils.NewValidationError("image", "The image must be a file of type: png, jpg, jpeg, gif.")
	}
	if s.maxImageSize > 0 && header.Size > s.maxImageSize {
		return "", utils.NewValidationError("image", fmt.Sprintf("The image may not be greater than %d kilobytes.", s.maxImageSize>>10))
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read image: %w", err)
	}
	if http.DetectContentType(head[:n]) != expected {
		return "", utils.NewValidationError("image", "The image must be an image.")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind image: %w", err)
	}

	path := fmt.Sprintf("%s/%s%s", profileImageDir, uuid.NewString(), ext)
	stored, err := s.storage.Upload(ctx, path, file, header.Size, expected)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"path":     stored,
		"provider": s.storage.Name(),
	}).Info("profile image stored")
	return stored, nil
}

func (s *ProfileService) discardImage(ctx context.Context, path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := s.storage.Delete(ctx, *path); err != nil {
		s.logger.WithError(err).WithField("path", *path).Warn("failed to delete profile image")
	}
}

func (s *ProfileService) toResponse(p *models.Profile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Bio:         p.Bio,
		Phone:       p.Phone,
		Address:     p.Address,
		DateOfBirth: p.DateOfBirth,
		Image:       p.Image,
	}
	if p.Image != nil {
		url := s.storage.URL(*p.Image)
		resp.ImageURL = &url
	}
	return resp
}
