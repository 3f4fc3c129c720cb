package models

import (
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Champion is a season winner shown on the showcase site
type Champion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Season        string             `bson:"season" json:"season"`
	Year          int                `bson:"year" json:"year"`
	Description   string             `bson:"description" json:"description"`
	RoadToVictory string             `bson:"roadToVictory" json:"roadToVictory"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Alt           string             `bson:"alt,omitempty" json:"alt,omitempty"`
	ShowHeader    bool               `bson:"showHeader" json:"showHeader"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var seasonYear = regexp.MustCompile(`(\d{4})$`)

// YearFromSeason extracts the trailing four-digit year of a season label,
// e.g. "Submerged – 2025" yields 2025. ok is false when there is none.
func YearFromSeason(season string) (year int, ok bool) {
	m := seasonYear.FindStringSubmatch(season)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}
