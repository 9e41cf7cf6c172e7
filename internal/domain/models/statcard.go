// internal/domain/models/statcard.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatCard is a saved donut card definition. Values are pointers so an
// absent count survives the round trip through MongoDB as null.
type StatCard struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"` // ← always stored

	Labels []string   `bson:"labels" json:"labels"`
	Values []*float64 `bson:"values" json:"dataValues"`

	HighlightLabel string  `bson:"highlight_label" json:"activePrLabel"`
	HighlightSum   float64 `bson:"highlight_sum" json:"sumLabel"`

	BackgroundURL string `bson:"background_url" json:"graphbgurl"`
	Interactive   bool   `bson:"interactive" json:"interactive"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
