package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhotoSubmission is a client's photo evidence for a photo_submission task.
// At most one record exists per (TaskID, ClientID) pair; re-submitting
// overwrites the photo URL and notes in place.
type PhotoSubmission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID      primitive.ObjectID `bson:"taskId" json:"taskId"`
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	PhotoURL    string             `bson:"photoUrl" json:"photoUrl"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
