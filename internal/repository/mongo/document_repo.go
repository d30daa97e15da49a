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

const documentCollectionName = "documents"

// mongoDocumentRepository implements repository.DocumentRepository
type mongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new Document repository backed by MongoDB.
func NewMongoDocumentRepository(db *mongo.Database) repository.DocumentRepository {
	return &mongoDocumentRepository{
		collection: db.Collection(documentCollectionName),
	}
}

// Create inserts a new document library entry. FileURL must already point at
// the uploaded object; a record is never persisted before its upload.
func (r *mongoDocumentRepository) Create(ctx context.Context, document *domain.Document) (primitive.ObjectID, error) {
	if document.Title == "" || document.FileURL == "" {
		return primitive.NilObjectID, errors.New("document requires title and fileUrl")
	}

	document.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	document.CreatedAt = now
	document.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, document)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted document ID")
	}

	return insertedID, nil
}

// GetByID retrieves a document by its ID.
func (r *mongoDocumentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Document, error) {
	var document domain.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &document, nil
}

// GetAll retrieves the full document library, newest first.
func (r *mongoDocumentRepository) GetAll(ctx context.Context) ([]domain.Document, error) {
	var documents []domain.Document
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &documents); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return documents, nil
}

// Update modifies an existing document library entry's metadata.
func (r *mongoDocumentRepository) Update(ctx context.Context, document *domain.Document) error {
	if document.ID == primitive.NilObjectID {
		return errors.New("document ID is required for update")
	}

	filter := bson.M{"_id": document.ID}
	update := bson.M{"$set": bson.M{
		"title":       document.Title,
		"description": document.Description,
		"updatedAt":   time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a document library entry by ID.
func (r *mongoDocumentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
