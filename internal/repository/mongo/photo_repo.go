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

const photoSubmissionCollectionName = "photo_submissions"

// mongoPhotoSubmissionRepository implements repository.PhotoSubmissionRepository
type mongoPhotoSubmissionRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoSubmissionRepository creates a new PhotoSubmission repository backed by MongoDB.
func NewMongoPhotoSubmissionRepository(db *mongo.Database) repository.PhotoSubmissionRepository {
	return &mongoPhotoSubmissionRepository{
		collection: db.Collection(photoSubmissionCollectionName),
	}
}

// Upsert inserts or replaces the photo submission for (taskId, clientId).
// A second submission for the same pair overwrites photoUrl, notes, and
// submittedAt in place; the unique compound index guarantees at most one
// record per pair even under concurrent submissions.
func (r *mongoPhotoSubmissionRepository) Upsert(ctx context.Context, submission *domain.PhotoSubmission) (*domain.PhotoSubmission, error) {
	if submission.TaskID == primitive.NilObjectID || submission.ClientID == primitive.NilObjectID {
		return nil, errors.New("photo submission requires taskId and clientId")
	}
	if submission.PhotoURL == "" {
		return nil, errors.New("photo submission requires photoUrl")
	}

	now := time.Now().UTC()
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = now
	}

	filter := bson.M{"taskId": submission.TaskID, "clientId": submission.ClientID}
	update := bson.M{
		"$set": bson.M{
			"photoUrl":    submission.PhotoURL,
			"notes":       submission.Notes,
			"submittedAt": submission.SubmittedAt,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"taskId":    submission.TaskID,
			"clientId":  submission.ClientID,
			"createdAt": now,
		},
	}

	findOptions := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.PhotoSubmission
	err := r.collection.FindOneAndUpdate(ctx, filter, update, findOptions).Decode(&saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetByTaskAndClient retrieves the single submission for a (task, client) pair.
func (r *mongoPhotoSubmissionRepository) GetByTaskAndClient(ctx context.Context, taskID, clientID primitive.ObjectID) (*domain.PhotoSubmission, error) {
	var submission domain.PhotoSubmission
	filter := bson.M{"taskId": taskID, "clientId": clientID}

	err := r.collection.FindOne(ctx, filter).Decode(&submission)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// GetByClientID retrieves all of a client's submissions, newest first.
func (r *mongoPhotoSubmissionRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.PhotoSubmission, error) {
	var submissions []domain.PhotoSubmission
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

// DeleteByTaskID removes submissions belonging to a deleted task.
func (r *mongoPhotoSubmissionRepository) DeleteByTaskID(ctx context.Context, taskID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"taskId": taskID})
	return err
}

// EnsurePhotoSubmissionIndexes creates necessary indexes for the
// photo_submissions collection.
func EnsurePhotoSubmissionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One submission per (task, client) pair
			Keys:    bson.D{{Key: "taskId", Value: 1}, {Key: "clientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "submittedAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
