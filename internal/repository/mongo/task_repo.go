package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/repository"
)

const taskCollectionName = "tasks"

// mongoTaskRepository implements repository.TaskRepository
type mongoTaskRepository struct {
	collection *mongo.Collection
}

// NewMongoTaskRepository creates a new Task repository backed by MongoDB.
func NewMongoTaskRepository(db *mongo.Database) repository.TaskRepository {
	return &mongoTaskRepository{
		collection: db.Collection(taskCollectionName),
	}
}

// Create inserts a new task into the database.
func (r *mongoTaskRepository) Create(ctx context.Context, task *domain.Task) (primitive.ObjectID, error) {
	if task.ClientID == primitive.NilObjectID || task.Title == "" || !task.Type.Valid() {
		return primitive.NilObjectID, errors.New("task requires clientId, title, and a valid type")
	}

	task.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if task.AssignedDate.IsZero() {
		task.AssignedDate = now
	}
	task.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted task ID")
	}

	return insertedID, nil
}

// GetByID retrieves a task by its ID.
func (r *mongoTaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error) {
	var task domain.Task
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// GetAll retrieves every task, newest assignment first.
func (r *mongoTaskRepository) GetAll(ctx context.Context) ([]domain.Task, error) {
	return r.find(ctx, bson.M{})
}

// GetByClientID retrieves all tasks assigned to a specific client.
func (r *mongoTaskRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

func (r *mongoTaskRepository) find(ctx context.Context, filter bson.M) ([]domain.Task, error) {
	var tasks []domain.Task
	findOptions := options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update modifies an existing task's mutable fields. Content is included:
// it is a snapshot owned by the task, not re-derived from the linked entity.
func (r *mongoTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task.ID == primitive.NilObjectID {
		return errors.New("task ID is required for update")
	}

	filter := bson.M{"_id": task.ID}
	updateFields := bson.M{
		"title":       task.Title,
		"description": task.Description,
		"content":     task.Content,
		"duration":    task.Duration,
		"completed":   task.Completed,
		"updatedAt":   time.Now().UTC(),
	}
	if task.DueDate != nil {
		updateFields["dueDate"] = *task.DueDate
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": updateFields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a task by ID.
func (r *mongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByClientID removes all tasks assigned to a client. Used by the
// client-deletion cascade; deleting zero tasks is not an error.
func (r *mongoTaskRepository) DeleteByClientID(ctx context.Context, clientID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"clientId": clientID})
	return err
}

// EnsureTaskIndexes creates necessary indexes for the tasks collection.
func EnsureTaskIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "assignedDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "completed", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
