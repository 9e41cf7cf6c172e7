// internal/app/store/cards/cardstore.go
package cardstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/statcard/internal/app/system/htmlsanitize"
	"github.com/dalemusser/statcard/internal/app/system/paging"
	"github.com/dalemusser/statcard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no card matches the given ID.
var ErrNotFound = errors.New("stat card not found")

// Store provides access to the stat_cards collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new card store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("stat_cards")}
}

// EnsureIndexes creates the indexes the store relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_stat_cards_title_ci__id"),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure stat_cards indexes: %w", err)
	}
	return nil
}

// Create stores a new card. Title and labels are reduced to plain text.
func (s *Store) Create(ctx context.Context, card models.StatCard) (models.StatCard, error) {
	now := time.Now().UTC()
	card.ID = primitive.NewObjectID()
	card.Title = htmlsanitize.PlainText(card.Title)
	card.TitleCI = text.Fold(card.Title)
	card.Labels = htmlsanitize.PlainTexts(card.Labels)
	card.HighlightLabel = htmlsanitize.PlainText(card.HighlightLabel)
	card.CreatedAt = now
	card.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, card); err != nil {
		return models.StatCard{}, err
	}
	return card, nil
}

// Get returns the card with the given ID.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (models.StatCard, error) {
	var card models.StatCard
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StatCard{}, ErrNotFound
	}
	if err != nil {
		return models.StatCard{}, err
	}
	return card, nil
}

// ListPage returns one page of cards ordered by title.
func (s *Store) ListPage(ctx context.Context, ks paging.Keyset) (paging.Page[models.StatCard], error) {
	cur, err := s.c.Find(ctx, ks.Filter("title_ci"), ks.FindOptions("title_ci"))
	if err != nil {
		return paging.Page[models.StatCard]{}, err
	}
	defer cur.Close(ctx)

	var rows []models.StatCard
	if err := cur.All(ctx, &rows); err != nil {
		return paging.Page[models.StatCard]{}, err
	}
	return paging.Build(ks, rows,
		func(c models.StatCard) string { return c.TitleCI },
		func(c models.StatCard) primitive.ObjectID { return c.ID },
	), nil
}

// Delete removes the card with the given ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
