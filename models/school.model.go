package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// School represents a participating FTC school
type School struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Img       string             `bson:"img" json:"img"` // relative URL, may be empty
	Location  string             `bson:"location" json:"location"`
	Website   string             `bson:"website" json:"website"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
