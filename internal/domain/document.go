package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document stores metadata about a file in the document library.
// The actual file resides in object storage; FileURL is its public URL.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID     primitive.ObjectID `bson:"adminId" json:"adminId"` // Admin who uploaded this document
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	FileURL     string             `bson:"fileUrl" json:"fileUrl"`
	FileSize    int64              `bson:"fileSize" json:"fileSize"` // bytes
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
