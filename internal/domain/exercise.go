package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the library.
// Instructions is an ordered list of steps; an exercise must keep at least
// one non-blank step after normalization.
type Exercise struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID       primitive.ObjectID `bson:"adminId" json:"adminId"` // Admin who created/owns this exercise
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Instructions  []string           `bson:"instructions" json:"instructions"`
	EstimatedTime int                `bson:"estimatedTime" json:"estimatedTime"` // minutes
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeInstructions trims each step and drops blank ones, preserving
// order. The result may be empty; callers reject that before persisting.
func NormalizeInstructions(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
