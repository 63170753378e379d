package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Petition represents a petition stored in MongoDB. Comments live as embedded
// subdocuments because they are never queried apart from their petition.
type Petition struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title            string             `json:"title" bson:"title"`
	Content          string             `json:"content" bson:"content"`
	Secret           string             `json:"-" bson:"secret"` // write password, never serialized to clients
	Image            string             `json:"image,omitempty" bson:"image,omitempty"`
	TargetSignatures int                `json:"targetSignatures" bson:"target_signatures"`
	SignatureCount   int                `json:"signatureCount" bson:"signature_count"`
	IsSuccessful     bool               `json:"isSuccessful" bson:"is_successful"`
	SignedBy         []string           `json:"signedBy" bson:"signed_by"`
	CreatorEmail     string             `json:"creatorEmail,omitempty" bson:"creator_email,omitempty"`
	Comments         []Comment          `json:"comments" bson:"comments"`
	CreatedAt        time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Comment is an embedded comment on a petition. Reaction counters are not
// deduplicated per user, unlike petition signatures.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Text      string             `json:"text" bson:"text"`
	Likes     int                `json:"likes" bson:"likes"`
	Dislikes  int                `json:"dislikes" bson:"dislikes"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// CreatePetitionRequest defines the request body for creating a new petition
type CreatePetitionRequest struct {
	Title            string `json:"title" validate:"required,min=1,max=200"`
	Content          string `json:"content" validate:"required,min=1"`
	Secret           string `json:"secret" validate:"required,min=1"`
	TargetSignatures int    `json:"targetSignatures" validate:"required,min=1"`
	CreatorEmail     string `json:"creatorEmail" validate:"omitempty,email"`
	Image            string `json:"image"`
}

// UpdatePetitionRequest defines the request body for editing a petition.
// The secret must match the one set at creation.
type UpdatePetitionRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
	Secret  string `json:"secret" validate:"required"`
	Image   string `json:"image"`
}

// DeletePetitionRequest defines the request body for deleting a petition
type DeletePetitionRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// AddCommentRequest defines the request body for commenting on a petition
type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// SignResult is the response body for the like (sign) endpoint
type SignResult struct {
	SignatureCount   int  `json:"signatureCount"`
	TargetSignatures int  `json:"targetSignatures"`
	IsSuccessful     bool `json:"isSuccessful"`
	Liked            bool `json:"liked"`
}
