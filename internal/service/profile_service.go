package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/repository"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/storage"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNotAdminAccount   = errors.New("practice branding fields are admin-only")
	ErrImageUploadFailed = errors.New("failed to upload profile image")
)

// ProfileService lets the authenticated user manage their own profile:
// display name, the practice name admins show to their clients, and the
// avatar/logo images stored in the blob store.
type ProfileService interface {
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, practiceName string) (*domain.User, error)
	UploadAvatar(ctx context.Context, userID primitive.ObjectID, contentType string, image io.Reader) (*domain.User, error)
	UploadLogo(ctx context.Context, userID primitive.ObjectID, contentType string, image io.Reader) (*domain.User, error)
}

// profileService implements the ProfileService interface.
type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// UpdateProfile edits the user's display name and, for admins, the practice
// name. A client sending a practice name is rejected rather than silently
// ignored.
func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, practiceName string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if practiceName != "" && !user.IsAdmin() {
		return nil, ErrNotAdminAccount
	}

	if name != "" {
		user.Name = name
	}
	if user.IsAdmin() {
		user.PracticeName = practiceName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UploadAvatar stores a new avatar image and points the user's profile at it.
// The image is uploaded before the record is touched; a failed upload leaves
// the profile unchanged.
func (s *profileService) UploadAvatar(ctx context.Context, userID primitive.ObjectID, contentType string, image io.Reader) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.uploadImage(ctx, "avatars", userID, contentType, image)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = url

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UploadLogo stores a new practice logo. Only admin accounts carry one.
func (s *profileService) UploadLogo(ctx context.Context, userID primitive.ObjectID, contentType string, image io.Reader) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdminAccount
	}

	url, err := s.uploadImage(ctx, "logos", userID, contentType, image)
	if err != nil {
		return nil, err
	}
	user.LogoURL = url

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// uploadImage validates the content type and writes the image to the blob
// store, returning its public URL.
func (s *profileService) uploadImage(ctx context.Context, prefix string, userID primitive.ObjectID, contentType string, image io.Reader) (string, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", ErrInvalidImageType
	}

	ext := "bin"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join(prefix, userID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	if err := s.fileStorage.Upload(ctx, objectKey, contentType, image); err != nil {
		return "", ErrImageUploadFailed
	}
	return s.fileStorage.PublicURL(objectKey), nil
}

func (s *profileService) getUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	if userID == primitive.NilObjectID {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
