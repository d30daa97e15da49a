package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/repository"
)

// In-memory repository fakes. They honor the same error contracts as the
// Mongo implementations (repository.ErrNotFound, repository.ErrDuplicate)
// so the services under test exercise their real error mapping.

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	user.ID = id
	r.users[id] = *user
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) GetClients(_ context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.users {
		if u.Role == domain.RoleClient {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeTaskRepo struct {
	tasks map[primitive.ObjectID]domain.Task
	order []primitive.ObjectID
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[primitive.ObjectID]domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	task.ID = id
	r.tasks[id] = *task
	r.order = append(r.order, id)
	return id, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (r *fakeTaskRepo) GetAll(_ context.Context) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, id := range r.order {
		if t, ok := r.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, id := range r.order {
		if t, ok := r.tasks[id]; ok && t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) DeleteByClientID(_ context.Context, clientID primitive.ObjectID) error {
	for id, t := range r.tasks {
		if t.ClientID == clientID {
			delete(r.tasks, id)
		}
	}
	return nil
}

type fakeVideoRepo struct {
	videos map[primitive.ObjectID]domain.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[primitive.ObjectID]domain.Video)}
}

func (r *fakeVideoRepo) Create(_ context.Context, video *domain.Video) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	video.ID = id
	r.videos[id] = *video
	return id, nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := v
	return &copied, nil
}

func (r *fakeVideoRepo) GetAll(_ context.Context) ([]domain.Video, error) {
	out := []domain.Video{}
	for _, v := range r.videos {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video *domain.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return repository.ErrNotFound
	}
	r.videos[video.ID] = *video
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	exercise.ID = id
	r.exercises[id] = *exercise
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := e
	return &copied, nil
}

func (r *fakeExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakeDocumentRepo struct {
	documents map[primitive.ObjectID]domain.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: make(map[primitive.ObjectID]domain.Document)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, document *domain.Document) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	document.ID = id
	r.documents[id] = *document
	return id, nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Document, error) {
	d, ok := r.documents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := d
	return &copied, nil
}

func (r *fakeDocumentRepo) GetAll(_ context.Context) ([]domain.Document, error) {
	out := []domain.Document{}
	for _, d := range r.documents {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, document *domain.Document) error {
	if _, ok := r.documents[document.ID]; !ok {
		return repository.ErrNotFound
	}
	r.documents[document.ID] = *document
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.documents[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.documents, id)
	return nil
}

type photoKey struct {
	taskID   primitive.ObjectID
	clientID primitive.ObjectID
}

type fakePhotoRepo struct {
	submissions map[photoKey]domain.PhotoSubmission
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{submissions: make(map[photoKey]domain.PhotoSubmission)}
}

func (r *fakePhotoRepo) Upsert(_ context.Context, submission *domain.PhotoSubmission) (*domain.PhotoSubmission, error) {
	key := photoKey{taskID: submission.TaskID, clientID: submission.ClientID}
	existing, ok := r.submissions[key]
	if ok {
		existing.PhotoURL = submission.PhotoURL
		existing.Notes = submission.Notes
		existing.SubmittedAt = submission.SubmittedAt
		existing.UpdatedAt = time.Now().UTC()
		r.submissions[key] = existing
		copied := existing
		return &copied, nil
	}
	submission.ID = primitive.NewObjectID()
	submission.CreatedAt = time.Now().UTC()
	submission.UpdatedAt = submission.CreatedAt
	r.submissions[key] = *submission
	copied := *submission
	return &copied, nil
}

func (r *fakePhotoRepo) GetByTaskAndClient(_ context.Context, taskID, clientID primitive.ObjectID) (*domain.PhotoSubmission, error) {
	s, ok := r.submissions[photoKey{taskID: taskID, clientID: clientID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (r *fakePhotoRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.PhotoSubmission, error) {
	out := []domain.PhotoSubmission{}
	for key, s := range r.submissions {
		if key.clientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) DeleteByTaskID(_ context.Context, taskID primitive.ObjectID) error {
	for key := range r.submissions {
		if key.taskID == taskID {
			delete(r.submissions, key)
		}
	}
	return nil
}

// fakeFileStorage records uploads in memory. Set failUpload to simulate a
// provider outage.
type fakeFileStorage struct {
	uploads    map[string]string // objectKey -> contentType
	failUpload bool
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{uploads: make(map[string]string)}
}

func (s *fakeFileStorage) Upload(_ context.Context, objectKey, contentType string, body io.Reader) error {
	if s.failUpload {
		return errors.New("storage unavailable")
	}
	if _, err := io.ReadAll(body); err != nil {
		return err
	}
	s.uploads[objectKey] = contentType
	return nil
}

func (s *fakeFileStorage) PublicURL(objectKey string) string {
	return "https://files.test/" + objectKey
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://files.test/presigned/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.uploads, objectKey)
	return nil
}

// seedClient inserts a client user directly into the fake repo.
func seedClient(repo *fakeUserRepo, name, email string) domain.User {
	id := primitive.NewObjectID()
	user := domain.User{ID: id, Name: name, Email: email, Role: domain.RoleClient}
	repo.users[id] = user
	return user
}
