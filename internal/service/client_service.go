package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/analytics"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/repository"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/storage"
)

// --- Error Definitions ---
var (
	ErrTaskNotBelongToClient = errors.New("task does not belong to this client")
	ErrNotPhotoTask          = errors.New("task does not accept photo submissions")
	ErrPhotoUploadFailed     = errors.New("failed to upload photo")
	ErrInvalidImageType      = errors.New("invalid or missing image content type")
)

// TaskView is a task enriched with its derived display status.
type TaskView struct {
	domain.Task
	Status domain.TaskStatus `json:"status"`
}

// ProgressReport is the client progress screen payload. CompletionRate is
// rounded half-up for display.
type ProgressReport struct {
	TotalTasks     int                     `json:"totalTasks"`
	CompletedTasks int                     `json:"completedTasks"`
	PendingTasks   int                     `json:"pendingTasks"`
	OverdueTasks   int                     `json:"overdueTasks"`
	CompletionRate int                     `json:"completionRate"`
	Weekly         []analytics.WeekBucket  `json:"weekly"`
	ByType         map[domain.TaskType]int `json:"byType"`
}

// ClientService covers the client-facing screens: task list with derived
// status, task detail, completion toggling, and photo submission.
type ClientService interface {
	GetMyTasks(ctx context.Context, clientID primitive.ObjectID, filter analytics.CompletionFilter, now time.Time) ([]TaskView, error)
	GetTask(ctx context.Context, clientID, taskID primitive.ObjectID, now time.Time) (*TaskView, error)
	ToggleTaskCompleted(ctx context.Context, clientID, taskID primitive.ObjectID) (*domain.Task, error)
	SubmitPhoto(ctx context.Context, clientID, taskID primitive.ObjectID, contentType, notes string, photo io.Reader) (*domain.PhotoSubmission, error)
	GetProgress(ctx context.Context, clientID primitive.ObjectID, now time.Time) (*ProgressReport, error)
}

// clientService implements the ClientService interface.
type clientService struct {
	taskRepo    repository.TaskRepository
	photoRepo   repository.PhotoSubmissionRepository
	fileStorage storage.FileStorage
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	taskRepo repository.TaskRepository,
	photoRepo repository.PhotoSubmissionRepository,
	fileStorage storage.FileStorage,
) ClientService {
	return &clientService{
		taskRepo:    taskRepo,
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
	}
}

// GetMyTasks retrieves the client's tasks with derived statuses, optionally
// narrowed by completion state. Store order (newest assignment first) is
// preserved through the filter.
func (s *clientService) GetMyTasks(ctx context.Context, clientID primitive.ObjectID, filter analytics.CompletionFilter, now time.Time) ([]TaskView, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}

	tasks, err := s.taskRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	tasks = analytics.ByCompletion(tasks, filter)

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{Task: t, Status: t.StatusAt(now)})
	}
	return views, nil
}

// GetTask retrieves one task, verifying ownership. A missing task is a
// terminal not-found for the detail screen.
func (s *clientService) GetTask(ctx context.Context, clientID, taskID primitive.ObjectID, now time.Time) (*TaskView, error) {
	task, err := s.getOwnedTask(ctx, clientID, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskView{Task: *task, Status: task.StatusAt(now)}, nil
}

// ToggleTaskCompleted flips the task's completed flag. The operation is its
// own inverse and has no side effects on photo submissions.
func (s *clientService) ToggleTaskCompleted(ctx context.Context, clientID, taskID primitive.ObjectID) (*domain.Task, error) {
	task, err := s.getOwnedTask(ctx, clientID, taskID)
	if err != nil {
		return nil, err
	}

	task.ToggleCompleted()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// SubmitPhoto uploads the photo and upserts the submission record for
// (taskID, clientID). Re-submitting overwrites the previous photo URL and
// notes. This never marks the task completed; that stays a separate,
// explicit action.
func (s *clientService) SubmitPhoto(ctx context.Context, clientID, taskID primitive.ObjectID, contentType, notes string, photo io.Reader) (*domain.PhotoSubmission, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}

	task, err := s.getOwnedTask(ctx, clientID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Type != domain.TaskTypePhotoSubmission {
		return nil, ErrNotPhotoTask
	}

	// Upload first; the record is only written once a public URL exists.
	ext := "bin"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join("photos", clientID.Hex(), taskID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	if err := s.fileStorage.Upload(ctx, objectKey, contentType, photo); err != nil {
		return nil, ErrPhotoUploadFailed
	}

	submission := &domain.PhotoSubmission{
		TaskID:      taskID,
		ClientID:    clientID,
		PhotoURL:    s.fileStorage.PublicURL(objectKey),
		Notes:       notes,
		SubmittedAt: time.Now().UTC(),
	}
	return s.photoRepo.Upsert(ctx, submission)
}

// GetProgress computes the client's progress summary over their tasks.
func (s *clientService) GetProgress(ctx context.Context, clientID primitive.ObjectID, now time.Time) (*ProgressReport, error) {
	tasks, err := s.taskRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		TotalTasks:     len(tasks),
		CompletedTasks: len(analytics.ByCompletion(tasks, analytics.FilterCompleted)),
		PendingTasks:   len(analytics.ByCompletion(tasks, analytics.FilterPending)),
		OverdueTasks:   len(analytics.Overdue(tasks, now)),
		CompletionRate: analytics.RoundRate(analytics.CompletionRate(tasks)),
		Weekly:         analytics.WeeklyRollup(tasks),
		ByType:         analytics.CountsByType(tasks),
	}, nil
}

// getOwnedTask fetches a task and verifies it belongs to the client.
func (s *clientService) getOwnedTask(ctx context.Context, clientID, taskID primitive.ObjectID) (*domain.Task, error) {
	if clientID == primitive.NilObjectID || taskID == primitive.NilObjectID {
		return nil, errors.New("client ID and task ID are required")
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.ClientID != clientID {
		return nil, ErrTaskNotBelongToClient
	}
	return task, nil
}
