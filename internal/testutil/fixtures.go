package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/statcard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCard inserts a stat card directly, bypassing the store.
func (f *Fixtures) CreateCard(ctx context.Context, title string, labels []string, values []*float64) models.StatCard {
	f.t.Helper()

	now := time.Now().UTC()
	card := models.StatCard{
		ID:             primitive.NewObjectID(),
		Title:          title,
		TitleCI:        text.Fold(title),
		Labels:         labels,
		Values:         values,
		HighlightLabel: "# Invoice",
		HighlightSum:   747,
		BackgroundURL:  "https://example.com/bg.svg",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("stat_cards").InsertOne(ctx, card); err != nil {
		f.t.Fatalf("failed to create test card: %v", err)
	}
	return card
}
