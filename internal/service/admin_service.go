package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/analytics"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/repository"
)

// --- Error Definitions ---
var (
	ErrClientNotFound   = errors.New("client user not found")
	ErrClientNotRole    = errors.New("user found but is not a client")
	ErrTaskNotFound     = errors.New("task not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrLinkedEntity     = errors.New("linked library entity not found")
)

// AssignTaskInput carries everything an admin provides when assigning a task.
// Content is NOT part of the input: it is resolved once from the linked
// entity (or the free text) at assignment time and snapshotted on the task.
type AssignTaskInput struct {
	ClientID    primitive.ObjectID
	Title       string
	Description string
	Type        domain.TaskType
	Text        string // free text for reading/reflection/photo_submission tasks
	Duration    int
	DueDate     *time.Time
	VideoID     *primitive.ObjectID
	ExerciseID  *primitive.ObjectID
	DocumentID  *primitive.ObjectID
}

// AnalyticsReport is the admin dashboard payload: practice-wide stats,
// per-type completion, engagement ranking, and the weekly trend. Rates are
// rounded half-up here at the display boundary; ranking and any comparisons
// happen on the unrounded values first.
type AnalyticsReport struct {
	Overall    analytics.OverallStats `json:"overall"`
	TypeRates  []TypeRate             `json:"typeRates"`
	Engagement []EngagementRow        `json:"engagement"`
	Weekly     []analytics.WeekBucket `json:"weekly"`
}

// TypeRate is one per-type row of the analytics report.
type TypeRate struct {
	Type      domain.TaskType `json:"type"`
	Total     int             `json:"total"`
	Completed int             `json:"completed"`
	Rate      int             `json:"rate"`
}

// EngagementRow is one client row of the engagement ranking, in rank order.
type EngagementRow struct {
	ClientID       string `json:"clientId"`
	Name           string `json:"name"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	Rate           int    `json:"rate"`
}

// AdminService covers the admin portal: client roster management, task
// assignment/removal, and dashboard analytics.
type AdminService interface {
	// Client Management
	CreateClient(ctx context.Context, name, email, password, therapistNotes string) (*domain.User, error)
	GetClients(ctx context.Context, search string) ([]domain.User, error)
	GetClient(ctx context.Context, clientID primitive.ObjectID) (*domain.User, error)
	UpdateClient(ctx context.Context, clientID primitive.ObjectID, name, therapistNotes string) (*domain.User, error)
	DeleteClient(ctx context.Context, clientID primitive.ObjectID) error

	// Task Management
	AssignTask(ctx context.Context, adminID primitive.ObjectID, input AssignTaskInput) (*domain.Task, error)
	GetTasks(ctx context.Context, clientID *primitive.ObjectID, filter analytics.CompletionFilter) ([]domain.Task, error)
	ToggleTaskCompleted(ctx context.Context, taskID primitive.ObjectID) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID primitive.ObjectID) error

	// Analytics
	GetAnalytics(ctx context.Context, now time.Time) (*AnalyticsReport, error)
}

// adminService implements the AdminService interface.
type adminService struct {
	userRepo     repository.UserRepository
	taskRepo     repository.TaskRepository
	videoRepo    repository.VideoRepository
	exerciseRepo repository.ExerciseRepository
	documentRepo repository.DocumentRepository
	photoRepo    repository.PhotoSubmissionRepository
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	videoRepo repository.VideoRepository,
	exerciseRepo repository.ExerciseRepository,
	documentRepo repository.DocumentRepository,
	photoRepo repository.PhotoSubmissionRepository,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		taskRepo:     taskRepo,
		videoRepo:    videoRepo,
		exerciseRepo: exerciseRepo,
		documentRepo: documentRepo,
		photoRepo:    photoRepo,
	}
}

// === Client Management ===

// CreateClient registers a new client account on behalf of the practice.
func (s *adminService) CreateClient(ctx context.Context, name, email, password, therapistNotes string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrValidationFailed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	client := &domain.User{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Role:           domain.RoleClient,
		TherapistNotes: therapistNotes,
	}

	clientID, err := s.userRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	client.ID = clientID
	client.PasswordHash = ""
	return client, nil
}

// GetClients returns the client roster, optionally narrowed by a
// case-insensitive name/email search.
func (s *adminService) GetClients(ctx context.Context, search string) ([]domain.User, error) {
	clients, err := s.userRepo.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	clients = analytics.BySearchText(clients, search)
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}

// GetClient fetches a single client by ID.
func (s *adminService) GetClient(ctx context.Context, clientID primitive.ObjectID) (*domain.User, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, ErrClientNotRole
	}
	client.PasswordHash = ""
	return client, nil
}

// UpdateClient edits a client's name and therapist notes.
func (s *adminService) UpdateClient(ctx context.Context, clientID primitive.ObjectID, name, therapistNotes string) (*domain.User, error) {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		client.Name = name
	}
	client.TherapistNotes = therapistNotes

	if err := s.userRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// DeleteClient removes a client and cascades to their tasks.
func (s *adminService) DeleteClient(ctx context.Context, clientID primitive.ObjectID) error {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteByClientID(ctx, clientID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}

// === Task Management ===

// AssignTask creates a task for a client, resolving the content snapshot
// from the linked library entity once. Later edits to that entity do not
// change the task.
func (s *adminService) AssignTask(ctx context.Context, adminID primitive.ObjectID, input AssignTaskInput) (*domain.Task, error) {
	if input.Title == "" || input.ClientID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	if !input.Type.Valid() {
		return nil, ErrValidationFailed
	}

	// Verify the client exists before writing anything.
	if _, err := s.GetClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	content, err := s.resolveContent(ctx, input)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:        input.Title,
		Description:  input.Description,
		Type:         input.Type,
		Content:      content,
		Duration:     input.Duration,
		AssignedDate: time.Now().UTC(),
		DueDate:      input.DueDate,
		ClientID:     input.ClientID,
		AdminID:      adminID,
		VideoID:      input.VideoID,
		ExerciseID:   input.ExerciseID,
		DocumentID:   input.DocumentID,
	}

	taskID, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = taskID
	return task, nil
}

// resolveContent fetches the linked entity for the task type and derives the
// content snapshot via the exhaustive type dispatch in the domain layer.
func (s *adminService) resolveContent(ctx context.Context, input AssignTaskInput) (string, error) {
	var (
		video    *domain.Video
		exercise *domain.Exercise
		document *domain.Document
		err      error
	)

	switch input.Type {
	case domain.TaskTypeVideo:
		if input.VideoID == nil {
			return "", ErrValidationFailed
		}
		video, err = s.videoRepo.GetByID(ctx, *input.VideoID)
	case domain.TaskTypeExercise:
		if input.ExerciseID == nil {
			return "", ErrValidationFailed
		}
		exercise, err = s.exerciseRepo.GetByID(ctx, *input.ExerciseID)
	case domain.TaskTypeDocument:
		if input.DocumentID == nil {
			return "", ErrValidationFailed
		}
		document, err = s.documentRepo.GetByID(ctx, *input.DocumentID)
	case domain.TaskTypeReading, domain.TaskTypeReflection, domain.TaskTypePhotoSubmission:
		// No linked entity; free text (or the description, for photo tasks)
		// is the content.
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrLinkedEntity
		}
		return "", err
	}

	text := input.Text
	if input.Type == domain.TaskTypePhotoSubmission && text == "" {
		text = input.Description
	}
	return domain.ResolveContent(input.Type, text, video, exercise, document)
}

// GetTasks returns tasks, optionally narrowed to one client and a
// completion state.
func (s *adminService) GetTasks(ctx context.Context, clientID *primitive.ObjectID, filter analytics.CompletionFilter) ([]domain.Task, error) {
	var (
		tasks []domain.Task
		err   error
	)
	if clientID != nil {
		tasks, err = s.taskRepo.GetByClientID(ctx, *clientID)
	} else {
		tasks, err = s.taskRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return analytics.ByCompletion(tasks, filter), nil
}

// ToggleTaskCompleted flips a task's completed flag on behalf of an admin.
func (s *adminService) ToggleTaskCompleted(ctx context.Context, taskID primitive.ObjectID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
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

// DeleteTask removes a task and any photo submissions attached to it.
func (s *adminService) DeleteTask(ctx context.Context, taskID primitive.ObjectID) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return s.photoRepo.DeleteByTaskID(ctx, taskID)
}

// === Analytics ===

// GetAnalytics fetches the full client and task collections and computes
// the dashboard report in memory.
func (s *adminService) GetAnalytics(ctx context.Context, now time.Time) (*AnalyticsReport, error) {
	clients, err := s.userRepo.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := analytics.CountsByType(tasks)
	completedCounts := analytics.CompletedCountsByType(tasks)
	typeRates := make([]TypeRate, 0, len(domain.TaskTypes))
	for _, tt := range domain.TaskTypes {
		total := counts[tt]
		if total == 0 {
			continue
		}
		typeRates = append(typeRates, TypeRate{
			Type:      tt,
			Total:     total,
			Completed: completedCounts[tt],
			Rate:      analytics.RoundRate(analytics.PerTypeRate(tasks, tt)),
		})
	}

	// Rank on the unrounded rates, then round for display.
	ranked := analytics.RankClientEngagement(clients, tasks)
	engagement := make([]EngagementRow, 0, len(ranked))
	for _, e := range ranked {
		engagement = append(engagement, EngagementRow{
			ClientID:       e.ClientID,
			Name:           e.Name,
			TotalTasks:     e.TotalTasks,
			CompletedTasks: e.CompletedTasks,
			Rate:           analytics.RoundRate(e.CompletionRate),
		})
	}

	return &AnalyticsReport{
		Overall:    analytics.Summarize(clients, tasks),
		TypeRates:  typeRates,
		Engagement: engagement,
		Weekly:     analytics.WeeklyRollup(tasks),
	}, nil
}
