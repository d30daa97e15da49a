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
	ErrVideoNotFound        = errors.New("video not found")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNoInstructions       = errors.New("exercise requires at least one non-blank instruction")
	ErrDocumentUploadFailed = errors.New("failed to upload document file")
)

// LibraryService manages the admin content library (videos, exercises,
// documents) that tasks link to. Edits here never propagate to tasks that
// were already assigned: their content snapshot is fixed at assignment time.
type LibraryService interface {
	// Videos
	CreateVideo(ctx context.Context, adminID primitive.ObjectID, title, description, youtubeURL string, duration int) (*domain.Video, error)
	GetVideos(ctx context.Context) ([]domain.Video, error)
	UpdateVideo(ctx context.Context, videoID primitive.ObjectID, title, description, youtubeURL string, duration int) (*domain.Video, error)
	DeleteVideo(ctx context.Context, videoID primitive.ObjectID) error

	// Exercises
	CreateExercise(ctx context.Context, adminID primitive.ObjectID, title, description string, instructions []string, estimatedTime int) (*domain.Exercise, error)
	GetExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, title, description string, instructions []string, estimatedTime int) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error

	// Documents
	UploadDocument(ctx context.Context, adminID primitive.ObjectID, title, description, fileName, contentType string, size int64, file io.Reader) (*domain.Document, error)
	GetDocuments(ctx context.Context) ([]domain.Document, error)
	UpdateDocument(ctx context.Context, documentID primitive.ObjectID, title, description string) (*domain.Document, error)
	DeleteDocument(ctx context.Context, documentID primitive.ObjectID) error
}

// libraryService implements the LibraryService interface.
type libraryService struct {
	videoRepo    repository.VideoRepository
	exerciseRepo repository.ExerciseRepository
	documentRepo repository.DocumentRepository
	fileStorage  storage.FileStorage
}

// NewLibraryService creates a new instance of libraryService.
func NewLibraryService(
	videoRepo repository.VideoRepository,
	exerciseRepo repository.ExerciseRepository,
	documentRepo repository.DocumentRepository,
	fileStorage storage.FileStorage,
) LibraryService {
	return &libraryService{
		videoRepo:    videoRepo,
		exerciseRepo: exerciseRepo,
		documentRepo: documentRepo,
		fileStorage:  fileStorage,
	}
}

// === Videos ===

func (s *libraryService) CreateVideo(ctx context.Context, adminID primitive.ObjectID, title, description, youtubeURL string, duration int) (*domain.Video, error) {
	if title == "" || youtubeURL == "" {
		return nil, ErrValidationFailed
	}

	video := &domain.Video{
		AdminID:     adminID,
		Title:       title,
		Description: description,
		YouTubeURL:  youtubeURL,
		Duration:    duration,
	}

	videoID, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		return nil, err
	}
	video.ID = videoID
	return video, nil
}

func (s *libraryService) GetVideos(ctx context.Context) ([]domain.Video, error) {
	return s.videoRepo.GetAll(ctx)
}

func (s *libraryService) UpdateVideo(ctx context.Context, videoID primitive.ObjectID, title, description, youtubeURL string, duration int) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if title != "" {
		video.Title = title
	}
	video.Description = description
	if youtubeURL != "" {
		video.YouTubeURL = youtubeURL
	}
	if duration > 0 {
		video.Duration = duration
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *libraryService) DeleteVideo(ctx context.Context, videoID primitive.ObjectID) error {
	err := s.videoRepo.Delete(ctx, videoID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

// === Exercises ===

// CreateExercise validates that at least one non-blank instruction remains
// after normalization before persisting anything.
func (s *libraryService) CreateExercise(ctx context.Context, adminID primitive.ObjectID, title, description string, instructions []string, estimatedTime int) (*domain.Exercise, error) {
	if title == "" {
		return nil, ErrValidationFailed
	}
	steps := domain.NormalizeInstructions(instructions)
	if len(steps) == 0 {
		return nil, ErrNoInstructions
	}

	exercise := &domain.Exercise{
		AdminID:       adminID,
		Title:         title,
		Description:   description,
		Instructions:  steps,
		EstimatedTime: estimatedTime,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

func (s *libraryService) GetExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

func (s *libraryService) UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, title, description string, instructions []string, estimatedTime int) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	steps := domain.NormalizeInstructions(instructions)
	if len(steps) == 0 {
		return nil, ErrNoInstructions
	}

	if title != "" {
		exercise.Title = title
	}
	exercise.Description = description
	exercise.Instructions = steps
	if estimatedTime > 0 {
		exercise.EstimatedTime = estimatedTime
	}

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *libraryService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	err := s.exerciseRepo.Delete(ctx, exerciseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

// === Documents ===

// UploadDocument stores the file first and only persists the metadata record
// once a public URL exists; a failed upload leaves no partial record.
func (s *libraryService) UploadDocument(ctx context.Context, adminID primitive.ObjectID, title, description, fileName, contentType string, size int64, file io.Reader) (*domain.Document, error) {
	if title == "" || fileName == "" {
		return nil, ErrValidationFailed
	}

	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	objectKey := path.Join("documents", adminID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	if err := s.fileStorage.Upload(ctx, objectKey, contentType, file); err != nil {
		return nil, ErrDocumentUploadFailed
	}

	document := &domain.Document{
		AdminID:     adminID,
		Title:       title,
		Description: description,
		FileURL:     s.fileStorage.PublicURL(objectKey),
		FileSize:    size,
	}

	documentID, err := s.documentRepo.Create(ctx, document)
	if err != nil {
		return nil, err
	}
	document.ID = documentID
	return document, nil
}

func (s *libraryService) GetDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.documentRepo.GetAll(ctx)
}

func (s *libraryService) UpdateDocument(ctx context.Context, documentID primitive.ObjectID, title, description string) (*domain.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	if title != "" {
		document.Title = title
	}
	document.Description = description

	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *libraryService) DeleteDocument(ctx context.Context, documentID primitive.ObjectID) error {
	err := s.documentRepo.Delete(ctx, documentID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDocumentNotFound
	}
	return err
}
