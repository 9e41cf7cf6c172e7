// internal/app/system/paging/paging.go
package paging

import (
	"net/http"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the number of cards returned per list page.
const PageSize = 50

// LimitPlusOne returns PageSize+1 for look-ahead pagination
// (fetch one extra document to detect hasNext).
func LimitPlusOne() int64 { return int64(PageSize + 1) }

// Direction indicates the pagination direction.
type Direction int

const (
	Forward  Direction = iota // sort ascending, "gt" cursor
	Backward                  // sort descending, "lt" cursor
)

// Keyset describes one page request over a (sortField, _id) index.
type Keyset struct {
	Before    string
	After     string
	Direction Direction
	SortOrder int
	Cursor    *wafflemongo.Cursor
}

// FromRequest reads the before/after cursors from the query string.
// before wins when both are present.
func FromRequest(r *http.Request) Keyset {
	return Configure(query.Get(r, "before"), query.Get(r, "after"))
}

// Configure determines the direction and decodes the cursor. An undecodable
// cursor starts from the first page in that direction.
func Configure(before, after string) Keyset {
	ks := Keyset{Direction: Forward, SortOrder: 1}
	if before != "" {
		ks.Before = before
		ks.Direction = Backward
		ks.SortOrder = -1
		if c, ok := wafflemongo.DecodeCursor(before); ok {
			ks.Cursor = &c
		}
		return ks
	}
	if after != "" {
		ks.After = after
		if c, ok := wafflemongo.DecodeCursor(after); ok {
			ks.Cursor = &c
		}
	}
	return ks
}

// Filter returns the cursor condition for the query filter, or an empty
// filter when there is no cursor.
func (ks Keyset) Filter(sortField string) bson.M {
	if ks.Cursor == nil {
		return bson.M{}
	}
	dir := "gt"
	if ks.Direction == Backward {
		dir = "lt"
	}
	return wafflemongo.KeysetWindow(sortField, dir, ks.Cursor.CI, ks.Cursor.ID)
}

// FindOptions sorts by sortField then _id and fetches one extra row.
func (ks Keyset) FindOptions(sortField string) *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: sortField, Value: ks.SortOrder},
		{Key: "_id", Value: ks.SortOrder},
	}).SetLimit(LimitPlusOne())
}

// Page is one window of rows plus the cursors for its neighbours.
type Page[T any] struct {
	Rows    []T    `json:"rows"`
	HasPrev bool   `json:"hasPrev"`
	HasNext bool   `json:"hasNext"`
	Prev    string `json:"prev,omitempty"`
	Next    string `json:"next,omitempty"`
}

// Build trims rows fetched with FindOptions into a page in display order.
// keyFn and idFn extract the sort key and ObjectID used for cursors.
func Build[T any](ks Keyset, rows []T, keyFn func(T) string, idFn func(T) primitive.ObjectID) Page[T] {
	var p Page[T]
	if ks.Direction == Backward {
		if len(rows) > PageSize {
			rows = rows[:PageSize]
			p.HasPrev = true
		}
		Reverse(rows)
		p.HasNext = true
	} else {
		if len(rows) > PageSize {
			rows = rows[:PageSize]
			p.HasNext = true
		}
		p.HasPrev = ks.After != ""
	}

	if rows == nil {
		rows = []T{}
	}
	p.Rows = rows
	if len(rows) > 0 {
		first, last := rows[0], rows[len(rows)-1]
		if p.HasPrev {
			p.Prev = wafflemongo.EncodeCursor(keyFn(first), idFn(first))
		}
		if p.HasNext {
			p.Next = wafflemongo.EncodeCursor(keyFn(last), idFn(last))
		}
	}
	return p
}

// Reverse reverses a slice in place.
func Reverse[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
