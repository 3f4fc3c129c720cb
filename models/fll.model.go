package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FLL describes a FIRST LEGO League program entry
type FLL struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Logo        string             `bson:"logo" json:"logo"`
	MapURL      string             `bson:"mapUrl,omitempty" json:"mapUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
