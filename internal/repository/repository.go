package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetClients(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TaskRepository defines the interface for interacting with task data.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error)
	GetAll(ctx context.Context) ([]domain.Task, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByClientID(ctx context.Context, clientID primitive.ObjectID) error
}

// VideoRepository defines the interface for interacting with the video library.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	GetAll(ctx context.Context) ([]domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DocumentRepository defines the interface for interacting with the document library.
type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Document, error)
	GetAll(ctx context.Context) ([]domain.Document, error)
	Update(ctx context.Context, document *domain.Document) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PhotoSubmissionRepository defines the interface for photo submission records.
// Upsert enforces the at-most-one-record-per-(task, client) invariant.
type PhotoSubmissionRepository interface {
	Upsert(ctx context.Context, submission *domain.PhotoSubmission) (*domain.PhotoSubmission, error)
	GetByTaskAndClient(ctx context.Context, taskID, clientID primitive.ObjectID) (*domain.PhotoSubmission, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.PhotoSubmission, error)
	DeleteByTaskID(ctx context.Context, taskID primitive.ObjectID) error
}
