package filterexpr

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var lessonSchema = Schema{
	Fields: map[string]Field{
		"level":      {Column: "level", Kind: KindString, Ops: []Op{OpEQ, OpIN}},
		"origin":     {Column: "origin", Kind: KindString, Ops: []Op{OpEQ}},
		"title":      {Column: "title_en", Kind: KindString, Ops: []Op{OpEQ, OpSW}, Fold: true},
		"created_at": {Column: "created_at", Kind: KindTimestamp, Ops: []Op{OpGTE, OpLTE}},
	},
	OrderKeys: map[string]string{
		"created_at": "created_at",
		"title":      "title_en",
		"id":         "id",
	},
	DefaultOrder: []OrderTerm{{Key: "created_at"}, {Key: "id"}},
}

type filterQuery struct{ filter, orderBy string }

func (f filterQuery) GetFilter() string  { return f.filter }
func (f filterQuery) GetOrderBy() string { return f.orderBy }

func TestCompile_Conjunction(t *testing.T) {
	q, err := CompileMsg(filterQuery{
		filter:  "level == 'A1' && title.startsWith('Gr') && created_at >= timestamp('2025-01-01T00:00:00Z')",
		orderBy: "title desc",
	}, lessonSchema)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(q.Conditions) != 3 {
		t.Fatalf("expected 3 conditions, got %d", len(q.Conditions))
	}
	if c := q.Conditions[1]; c.Op != OpSW || c.Value != "gr" || c.Column != "title_en" {
		t.Fatalf("unexpected startsWith condition: %+v", c)
	}
	wantOrder := []OrderTerm{{Key: "title", Column: "title_en", Desc: true}, {Key: "id", Column: "id"}}
	if !reflect.DeepEqual(q.Order, wantOrder) {
		t.Fatalf("order = %+v, want %+v", q.Order, wantOrder)
	}
}

func TestCompile_DefaultOrder(t *testing.T) {
	q, err := Compile("", "", lessonSchema)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(q.Conditions) != 0 {
		t.Fatalf("expected no conditions")
	}
	if len(q.Order) != 2 || q.Order[0].Key != "created_at" || q.Order[1].Key != "id" {
		t.Fatalf("unexpected default order: %+v", q.Order)
	}
}

func TestCompile_In(t *testing.T) {
	q, err := Compile("level in ['A1', 'A2']", "", lessonSchema)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c := q.Conditions[0]
	if c.Op != OpIN || !reflect.DeepEqual(c.Value, []string{"A1", "A2"}) {
		t.Fatalf("unexpected condition: %+v", c)
	}
	if !c.Match("A2") || c.Match("B1") {
		t.Fatalf("in condition matched wrongly")
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		orderBy string
		want    string
	}{
		{name: "unknown field", filter: "author == 'x'", want: "not allowed"},
		{name: "operator not allowed", filter: "origin.startsWith('a')", want: "not allowed"},
		{name: "or", filter: "level == 'A1' || level == 'A2'", want: "only AND"},
		{name: "negation", filter: "!(level == 'A1')", want: "only AND"},
		{name: "number literal", filter: "level == 1", want: "not supported"},
		{name: "empty list", filter: "level in []", want: "non-empty"},
		{name: "syntax", filter: "level ==", want: "invalid filter"},
		{name: "bad order key", orderBy: "level", want: "cannot be used"},
		{name: "bad direction", orderBy: "title up", want: "invalid direction"},
		{name: "duplicate key", orderBy: "title, title desc", want: "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.filter, tt.orderBy, lessonSchema)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestQuery_MatchAll(t *testing.T) {
	q, err := Compile("level == 'A1' && title.startsWith('GREET') && created_at <= timestamp('2025-06-01T00:00:00Z')", "", lessonSchema)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	row := map[string]any{
		"level":      "A1",
		"title":      "Greetings & Introductions",
		"created_at": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if !q.MatchAll(func(f string) any { return row[f] }) {
		t.Fatalf("expected row to match")
	}
	row["created_at"] = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if q.MatchAll(func(f string) any { return row[f] }) {
		t.Fatalf("expected later row to be rejected")
	}
	var nilQuery *Query
	if !nilQuery.MatchAll(func(string) any { return nil }) {
		t.Fatalf("nil query should match everything")
	}
}

func TestQuery_SQL(t *testing.T) {
	q, err := Compile("level in ['A1','A2'] && title.startsWith('50%') && origin == 'ai'", "created_at desc", lessonSchema)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	where, args, orderBy := q.SQL(DollarPlaceholder)
	wantWhere := `level IN ($1, $2) AND LOWER(title_en) LIKE $3 ESCAPE '\' AND origin = $4`
	if where != wantWhere {
		t.Fatalf("where = %q, want %q", where, wantWhere)
	}
	wantArgs := []any{"A1", "A2", `50\%%`, "ai"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
	if orderBy != "created_at DESC, id ASC" {
		t.Fatalf("orderBy = %q", orderBy)
	}

	where, _, _ = q.SQL(QuestionPlaceholder)
	if strings.Contains(where, "$") || strings.Count(where, "?") != 4 {
		t.Fatalf("unexpected sqlite where: %q", where)
	}
}
