package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
)

// harness wires an editor for courses straight onto a memory store.
type harness struct {
	store      *docstore.MemoryStore
	saves      int
	reloads    int
	failSave   bool
	failReload bool
	ed         *Editor[*models.CourseDraft]
}

func newHarness() *harness {
	h := &harness{store: docstore.NewMemoryStore()}
	h.ed = New[*models.CourseDraft](
		func(ctx context.Context, d *models.CourseDraft) (string, error) {
			h.saves++
			if h.failSave {
				return "", errors.New("write refused")
			}
			if d.ID != "" {
				return d.ID, h.store.Update(ctx, "courses", d.ID, d.Fields())
			}
			return h.store.Create(ctx, "courses", d.Fields())
		},
		func(ctx context.Context, d *models.CourseDraft) error {
			return h.store.Delete(ctx, "courses", d.ID)
		},
		func(ctx context.Context, d *models.CourseDraft) error {
			h.reloads++
			if h.failReload {
				return errors.New("list unavailable")
			}
			return nil
		},
	)
	return h
}

func (h *harness) count(t *testing.T) int {
	docs, err := h.store.List(context.Background(), "courses", docstore.Query{})
	require.NoError(t, err)
	return len(docs)
}

func TestSaveEmptyTitleIsNoOp(t *testing.T) {
	h := newHarness()
	h.ed.Open(&models.CourseDraft{})

	_, err := h.ed.Save(context.Background())
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.Zero(t, h.saves)
	assert.Zero(t, h.reloads)
	assert.Zero(t, h.count(t))
	_, open := h.ed.Current()
	assert.True(t, open)
	assert.ErrorIs(t, h.ed.Err(), apperrors.ErrValidationFailed)
}

func TestSaveCreatesClosesAndReloads(t *testing.T) {
	h := newHarness()
	h.ed.Open(&models.CourseDraft{})
	require.NoError(t, h.ed.Update(func(d *models.CourseDraft) {
		d.Title = "Go"
		d.Category = "Dev"
	}))

	id, err := h.ed.Save(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, h.reloads)

	_, open := h.ed.Current()
	assert.False(t, open)
	assert.NoError(t, h.ed.Err())

	doc, err := h.store.Get(context.Background(), "courses", id)
	require.NoError(t, err)
	assert.Equal(t, "Go", doc.Data["title"])
	assert.Equal(t, "Dev", doc.Data["category"])
}

func TestSaveFailureKeepsDraftOpen(t *testing.T) {
	h := newHarness()
	h.failSave = true
	h.ed.Open(&models.CourseDraft{Title: "Go"})

	_, err := h.ed.Save(context.Background())
	require.ErrorIs(t, err, apperrors.ErrMutationFailed)
	assert.Zero(t, h.reloads)

	d, open := h.ed.Current()
	require.True(t, open)
	assert.Equal(t, "Go", d.Title)
	assert.ErrorIs(t, h.ed.Err(), apperrors.ErrMutationFailed)

	h.failSave = false
	_, err = h.ed.Save(context.Background())
	require.NoError(t, err)
}

func TestSaveReloadFailureIsReported(t *testing.T) {
	h := newHarness()
	h.failReload = true
	h.ed.Open(&models.CourseDraft{Title: "Go"})

	id, err := h.ed.Save(context.Background())
	require.ErrorIs(t, err, apperrors.ErrReloadFailed)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, h.count(t))
	_, open := h.ed.Current()
	assert.False(t, open)
}

func TestSaveUpdateOfMissingRecord(t *testing.T) {
	h := newHarness()
	h.ed.Open(&models.CourseDraft{ID: "gone", Title: "Go"})

	_, err := h.ed.Save(context.Background())
	require.Error(t, err)
	_, open := h.ed.Current()
	assert.True(t, open)
}

func TestSaveAndUpdateWhenClosed(t *testing.T) {
	h := newHarness()
	_, err := h.ed.Save(context.Background())
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, h.ed.Update(func(*models.CourseDraft) {}), ErrNotOpen)
}

func TestCancel(t *testing.T) {
	h := newHarness()
	h.ed.Open(&models.CourseDraft{Title: "Go"})
	h.ed.Cancel()
	_, open := h.ed.Current()
	assert.False(t, open)
	assert.Zero(t, h.count(t))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	id, err := h.store.Create(ctx, "courses", map[string]any{"title": "Go"})
	require.NoError(t, err)

	err = h.ed.Delete(ctx, &models.CourseDraft{ID: id}, false)
	require.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
	assert.Equal(t, 1, h.count(t))
	assert.Zero(t, h.reloads)

	h.ed.Open(&models.CourseDraft{ID: id, Title: "Go"})
	require.NoError(t, h.ed.Delete(ctx, &models.CourseDraft{ID: id}, true))
	assert.Zero(t, h.count(t))
	assert.Equal(t, 1, h.reloads)
	_, open := h.ed.Current()
	assert.False(t, open)

	err = h.ed.Delete(ctx, &models.CourseDraft{ID: id}, true)
	assert.ErrorIs(t, err, apperrors.ErrMutationFailed)
}

func TestDeleteNotSupported(t *testing.T) {
	ed := New[*models.UserDraft](
		func(ctx context.Context, d *models.UserDraft) (string, error) { return d.ID, nil },
		nil,
		nil,
	)
	err := ed.Delete(context.Background(), &models.UserDraft{ID: "u1"}, true)
	assert.ErrorIs(t, err, apperrors.ErrNotSupported)

	ed.Open(&models.UserDraft{ID: "u1"})
	id, err := ed.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestSaveWritesSnapshotWhileUpdating(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var written map[string]any

	ed := New[*models.CourseDraft](
		func(ctx context.Context, d *models.CourseDraft) (string, error) {
			close(started)
			<-release
			written = d.Fields()
			return "c1", nil
		},
		nil,
		nil,
	)
	ed.Open(&models.CourseDraft{Title: "Go"})

	done := make(chan error, 1)
	go func() {
		_, err := ed.Save(context.Background())
		done <- err
	}()
	<-started

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = ed.Update(func(d *models.CourseDraft) { d.Title = fmt.Sprintf("Go %d", i) })
			_, _ = ed.Current()
		}(i)
	}
	wg.Wait()
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, "Go", written["title"])
	_, open := ed.Current()
	assert.False(t, open)
}

func TestSaveKeepsDraftOpenedMeanwhile(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ed := New[*models.CourseDraft](
		func(ctx context.Context, d *models.CourseDraft) (string, error) {
			close(started)
			<-release
			return "c1", nil
		},
		nil,
		nil,
	)
	ed.Open(&models.CourseDraft{Title: "Go"})

	done := make(chan error, 1)
	go func() {
		_, err := ed.Save(context.Background())
		done <- err
	}()
	<-started
	ed.Open(&models.CourseDraft{ID: "c2", Title: "Rust"})
	close(release)
	require.NoError(t, <-done)

	d, open := ed.Current()
	require.True(t, open)
	assert.Equal(t, "c2", d.ID)
}

func TestCurrentReturnsCopy(t *testing.T) {
	h := newHarness()
	h.ed.Open(&models.CourseDraft{Title: "Go"})
	d, _ := h.ed.Current()
	d.Title = "changed"
	cur, _ := h.ed.Current()
	assert.Equal(t, "Go", cur.Title)
}
