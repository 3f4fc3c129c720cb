package models

import "time"

// Patch types hold partial updates. Nil fields are left untouched; the
// bson tags let a repository pass them straight to $set.

// ChampionPatch is a partial Champion update
type ChampionPatch struct {
	Title         *string    `bson:"title,omitempty"`
	Season        *string    `bson:"season,omitempty"`
	Year          *int       `bson:"year,omitempty"`
	Description   *string    `bson:"description,omitempty"`
	RoadToVictory *string    `bson:"roadToVictory,omitempty"`
	Image         *string    `bson:"image,omitempty"`
	Alt           *string    `bson:"alt,omitempty"`
	ShowHeader    *bool      `bson:"showHeader,omitempty"`
	UpdatedAt     *time.Time `bson:"updatedAt,omitempty"`
}

// SchoolPatch is a partial School update
type SchoolPatch struct {
	Name      *string    `bson:"name,omitempty"`
	Img       *string    `bson:"img,omitempty"`
	Location  *string    `bson:"location,omitempty"`
	Website   *string    `bson:"website,omitempty"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty"`
}

// FLLPatch is a partial FLL update
type FLLPatch struct {
	Title       *string    `bson:"title,omitempty"`
	Description *string    `bson:"description,omitempty"`
	Logo        *string    `bson:"logo,omitempty"`
	MapURL      *string    `bson:"mapUrl,omitempty"`
	UpdatedAt   *time.Time `bson:"updatedAt,omitempty"`
}
