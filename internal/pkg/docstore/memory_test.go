package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathValidate(t *testing.T) {
	assert.NoError(t, Path("users").Validate())
	assert.NoError(t, Collection("courses", "abc", "lectures").Validate())

	for _, p := range []Path{"", "courses/abc", "courses//lectures", "a$b", "users/"} {
		assert.ErrorIs(t, p.Validate(), ErrInvalidPath, "path %q", p)
	}
	assert.Equal(t, "courses", Collection("courses", "abc", "lectures").Root())
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Create(ctx, "post", map[string]any{"title": "A", "tags": []string{"x"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, "post", id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "A", doc.Data["title"])
	assert.Equal(t, []any{"x"}, doc.Data["tags"])

	require.NoError(t, s.Update(ctx, "post", id, map[string]any{"content": "body"}))
	doc, err = s.Get(ctx, "post", id)
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Data["title"])
	assert.Equal(t, "body", doc.Data["content"])

	require.NoError(t, s.Delete(ctx, "post", id))
	_, err = s.Get(ctx, "post", id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "post", id), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "post", id, map[string]any{"x": 1}), ErrNotFound)
}

func TestMemoryStoreIDsNotReused(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, err := s.Create(ctx, "courses", map[string]any{"n": i})
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
		require.NoError(t, s.Delete(ctx, "courses", id))
	}
}

func TestMemoryStoreDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	input := map[string]any{"nested": map[string]any{"k": "v"}}
	id, err := s.Create(ctx, "users", input)
	require.NoError(t, err)

	input["nested"].(map[string]any)["k"] = "changed"
	doc, err := s.Get(ctx, "users", id)
	require.NoError(t, err)
	assert.Equal(t, "v", doc.Data["nested"].(map[string]any)["k"])

	doc.Data["nested"].(map[string]any)["k"] = "again"
	doc, err = s.Get(ctx, "users", id)
	require.NoError(t, err)
	assert.Equal(t, "v", doc.Data["nested"].(map[string]any)["k"])
}

func TestMemoryStoreListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, typ := range []string{"Student", "Admin", "Student"} {
		_, err := s.Create(ctx, "users", map[string]any{
			"user_type": typ,
			"phone":     int64(i),
			"postDate":  base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	students, err := s.List(ctx, "users", Query{}.Eq("user_type", "Student"))
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.EqualValues(t, 0, students[0].Data["phone"])
	assert.EqualValues(t, 2, students[1].Data["phone"])

	desc, err := s.List(ctx, "users", Query{}.Order("postDate", true))
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.EqualValues(t, 2, desc[0].Data["phone"])
	assert.EqualValues(t, 0, desc[2].Data["phone"])

	// numeric filters match across Go types
	byPhone, err := s.List(ctx, "users", Query{}.Eq("phone", 1.0))
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)

	empty, err := s.List(ctx, "nothing", Query{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.List(ctx, "users", Query{}.Order("data->x", false))
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestMemoryStoreSubCollections(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := Collection("courses", "a", "lectures")
	b := Collection("courses", "b", "lectures")

	_, err := s.Create(ctx, a, map[string]any{"title": "one"})
	require.NoError(t, err)

	docs, err := s.List(ctx, b, Query{})
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = s.Create(ctx, "courses/a", map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().List(ctx, "users", Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	ops []string
	err []error
}

func (r *recordingObserver) ObserveStoreOp(op, collection string, err error, _ time.Duration) {
	r.ops = append(r.ops, op+":"+collection)
	r.err = append(r.err, err)
}

func TestObserve(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	s := Observe(NewMemoryStore(), obs)

	id, err := s.Create(ctx, Collection("courses", "c1", "lectures"), map[string]any{})
	require.NoError(t, err)
	_, err = s.Get(ctx, Collection("courses", "c1", "lectures"), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, s.Delete(ctx, Collection("courses", "c1", "lectures"), id))

	assert.Equal(t, []string{"create:courses", "get:courses", "delete:courses"}, obs.ops)
	assert.NoError(t, obs.err[0])
	assert.ErrorIs(t, obs.err[1], ErrNotFound)
}

func TestPostgresValueRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 30, 0, 0, time.FixedZone("x", 3600))
	encoded, err := encodePostgres(map[string]any{
		"date_posted": ts,
		"access_by":   []string{"Online"},
		"title":       "intro",
	})
	require.NoError(t, err)

	decoded, err := decodePostgres([]byte(encoded))
	require.NoError(t, err)
	assert.True(t, ts.Equal(decoded["date_posted"].(time.Time)))
	assert.Equal(t, []any{"Online"}, decoded["access_by"])
	assert.Equal(t, "intro", decoded["title"])
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, compareValues(nil, "a"))
	assert.Equal(t, 1, compareValues(int64(3), 2.5))
	assert.Equal(t, 0, compareValues(int(2), float64(2)))
	assert.Equal(t, -1, compareValues(false, true))
	assert.Equal(t, -1, compareValues("a", "b"))
}

func TestSortDocumentsKeepsMissingField(t *testing.T) {
	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	docs := func() []Document {
		return []Document{
			{ID: "undated", Data: map[string]any{"title": "no date"}},
			{ID: "old", Data: map[string]any{"postDate": day}},
			{ID: "new", Data: map[string]any{"postDate": day.Add(24 * time.Hour)}},
		}
	}
	ids := func(ds []Document) []string {
		out := make([]string, len(ds))
		for i, d := range ds {
			out[i] = d.ID
		}
		return out
	}

	desc := docs()
	sortDocuments(desc, Query{}.Order("postDate", true))
	assert.Equal(t, []string{"new", "old", "undated"}, ids(desc))

	asc := docs()
	sortDocuments(asc, Query{}.Order("postDate", false))
	assert.Equal(t, []string{"undated", "old", "new"}, ids(asc))

	unordered := docs()
	sortDocuments(unordered, Query{})
	assert.Equal(t, []string{"undated", "old", "new"}, ids(unordered))
}
