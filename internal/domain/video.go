package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video represents a single entry in the practice's video library,
// referenced by zero or more tasks.
type Video struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID      primitive.ObjectID `bson:"adminId" json:"adminId"` // Admin who created/owns this entry
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	YouTubeURL   string             `bson:"youtubeUrl" json:"youtubeUrl"`
	Duration     int                `bson:"duration" json:"duration"` // minutes
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
