package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// User represents a user in the system (either an Admin or a Client).
// Clients carry the therapist-facing fields; admins carry the practice
// branding fields shown on their profile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Client-specific ---
	// Free-text notes kept by the practice about this client. Only ever
	// returned on admin-facing endpoints.
	TherapistNotes string `bson:"therapistNotes,omitempty" json:"therapistNotes,omitempty"`

	// --- Admin-specific ---
	AvatarURL    string `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	LogoURL      string `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	PracticeName string `bson:"practiceName,omitempty" json:"practiceName,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
