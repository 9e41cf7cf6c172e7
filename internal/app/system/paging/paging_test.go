package paging

import (
	"net/http/httptest"
	"net/url"
	"testing"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type row struct {
	Key string
	ID  primitive.ObjectID
}

func rowKey(r row) string            { return r.Key }
func rowID(r row) primitive.ObjectID { return r.ID }

func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{Key: string(rune('a' + i%26)), ID: primitive.NewObjectID()}
	}
	return rows
}

func TestLimitPlusOne(t *testing.T) {
	if got, want := LimitPlusOne(), int64(PageSize+1); got != want {
		t.Errorf("LimitPlusOne() = %d, want %d", got, want)
	}
}

func TestConfigure(t *testing.T) {
	cursor := wafflemongo.EncodeCursor("orders", primitive.NewObjectID())
	tests := []struct {
		name       string
		before     string
		after      string
		wantDir    Direction
		wantOrder  int
		wantCursor bool
	}{
		{"first page", "", "", Forward, 1, false},
		{"after cursor", "", cursor, Forward, 1, true},
		{"before cursor", cursor, "", Backward, -1, true},
		{"before takes precedence", cursor, cursor, Backward, -1, true},
		{"garbage cursor", "", "%%%", Forward, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Configure(tt.before, tt.after)
			if got.Direction != tt.wantDir {
				t.Errorf("Direction = %v, want %v", got.Direction, tt.wantDir)
			}
			if got.SortOrder != tt.wantOrder {
				t.Errorf("SortOrder = %v, want %v", got.SortOrder, tt.wantOrder)
			}
			if (got.Cursor != nil) != tt.wantCursor {
				t.Errorf("Cursor set = %v, want %v", got.Cursor != nil, tt.wantCursor)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	cursor := wafflemongo.EncodeCursor("orders", primitive.NewObjectID())
	req := httptest.NewRequest("GET", "/cards?after="+url.QueryEscape(cursor), nil)
	ks := FromRequest(req)
	if ks.After != cursor || ks.Cursor == nil {
		t.Errorf("FromRequest did not pick up the after cursor: %+v", ks)
	}
}

func TestFilter(t *testing.T) {
	if f := Configure("", "").Filter("title_ci"); len(f) != 0 {
		t.Errorf("first page filter = %v, want empty", f)
	}
	cursor := wafflemongo.EncodeCursor("orders", primitive.NewObjectID())
	if f := Configure("", cursor).Filter("title_ci"); len(f) == 0 {
		t.Error("cursor page filter should not be empty")
	}
}

func TestBuild_Forward(t *testing.T) {
	p := Build(Configure("", ""), makeRows(PageSize+1), rowKey, rowID)
	if len(p.Rows) != PageSize {
		t.Fatalf("rows = %d, want %d", len(p.Rows), PageSize)
	}
	if p.HasPrev || !p.HasNext {
		t.Errorf("HasPrev/HasNext = %v/%v, want false/true", p.HasPrev, p.HasNext)
	}
	if p.Prev != "" || p.Next == "" {
		t.Errorf("Prev/Next = %q/%q", p.Prev, p.Next)
	}
}

func TestBuild_ForwardLastPage(t *testing.T) {
	cursor := wafflemongo.EncodeCursor("a", primitive.NewObjectID())
	p := Build(Configure("", cursor), makeRows(3), rowKey, rowID)
	if len(p.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(p.Rows))
	}
	if !p.HasPrev || p.HasNext {
		t.Errorf("HasPrev/HasNext = %v/%v, want true/false", p.HasPrev, p.HasNext)
	}
}

func TestBuild_BackwardRestoresOrder(t *testing.T) {
	cursor := wafflemongo.EncodeCursor("z", primitive.NewObjectID())
	rows := []row{{Key: "c"}, {Key: "b"}, {Key: "a"}}
	p := Build(Configure(cursor, ""), rows, rowKey, rowID)

	if p.Rows[0].Key != "a" || p.Rows[2].Key != "c" {
		t.Errorf("rows not in display order: %v", p.Rows)
	}
	if p.HasPrev || !p.HasNext {
		t.Errorf("HasPrev/HasNext = %v/%v, want false/true", p.HasPrev, p.HasNext)
	}
}

func TestBuild_Empty(t *testing.T) {
	p := Build(Configure("", ""), nil, rowKey, rowID)
	if p.Rows == nil || len(p.Rows) != 0 {
		t.Errorf("Rows = %#v, want empty non-nil", p.Rows)
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []int
	}{
		{"empty", []int{}, []int{}},
		{"single", []int{1}, []int{1}},
		{"three", []int{1, 2, 3}, []int{3, 2, 1}},
		{"four", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := append([]int{}, tt.input...)
			Reverse(rows)
			for i, v := range rows {
				if v != tt.want[i] {
					t.Errorf("Reverse() got %v, want %v", rows, tt.want)
					break
				}
			}
		})
	}
}
