package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BannerKey is the fixed value of Banner.Key. A unique index on the field
// keeps the collection at one document.
const BannerKey = "banner"

// Default banner colors applied when the banner is first created
const (
	DefaultPrimaryColor    = "rgb(23, 207, 220)"
	DefaultSecondaryColor  = "#ffffff"
	DefaultBackgroundColor = "#000000"
)

// Banner is the singleton hero banner of the home page
type Banner struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Key             string             `bson:"key" json:"-"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	PrimaryColor    string             `bson:"primaryColor" json:"primaryColor"`
	SecondaryColor  string             `bson:"secondaryColor" json:"secondaryColor"`
	BackgroundColor string             `bson:"backgroundColor" json:"backgroundColor"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"` // mirrors the first champion's image
}

// BannerUpdate carries the fields of a banner edit. Empty fields keep
// their current value.
type BannerUpdate struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
}
