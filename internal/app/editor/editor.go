// Package editor holds the draft of the record an operator is editing and
// commits it to the store.
//
// Every Save or Delete ends in exactly one of three ways: the write is
// rejected (validation, missing confirmation) without touching the store;
// the write fails and the error is returned with the draft still open; or
// the write succeeds, the editor closes and the owning list is reloaded.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// ErrNotOpen is returned by Save and Update while no draft is open.
var ErrNotOpen = apperrors.NewBadRequestError("no record is being edited")

// SaveFunc creates or updates the record described by a draft and returns
// its id.
type SaveFunc[D models.Draft[D]] func(ctx context.Context, draft D) (string, error)

// DeleteFunc deletes the record a draft names.
type DeleteFunc[D models.Draft[D]] func(ctx context.Context, draft D) error

// ReloadFunc refreshes the list that shows the record.
type ReloadFunc[D models.Draft[D]] func(ctx context.Context, draft D) error

// Editor is safe for concurrent use.
type Editor[D models.Draft[D]] struct {
	save   SaveFunc[D]
	delete DeleteFunc[D]
	reload ReloadFunc[D]

	mu    sync.Mutex
	open  bool
	gen   uint64 // bumped by Open
	draft D
	err   error
}

// New creates a closed editor. del may be nil for records that cannot be
// deleted.
func New[D models.Draft[D]](save SaveFunc[D], del DeleteFunc[D], reload ReloadFunc[D]) *Editor[D] {
	return &Editor[D]{save: save, delete: del, reload: reload}
}

// Open starts editing draft. A draft without an id creates a new record on
// save. Opening replaces any draft already open.
func (e *Editor[D]) Open(draft D) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = true
	e.gen++
	e.draft = draft
	e.err = nil
}

// Current returns a copy of the open draft.
func (e *Editor[D]) Current() (D, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		var zero D
		return zero, false
	}
	return e.draft.Clone(), true
}

// Err is the error of the last failed Save, shown alongside the draft.
func (e *Editor[D]) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Update applies fn to the open draft.
func (e *Editor[D]) Update(fn func(D)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return ErrNotOpen
	}
	fn(e.draft)
	return nil
}

// Cancel closes the editor without writing.
func (e *Editor[D]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.close()
}

func (e *Editor[D]) close() {
	var zero D
	e.open = false
	e.draft = zero
	e.err = nil
}

// Save validates and writes a copy of the open draft taken when Save
// starts, so a concurrent Update never reaches the store half applied. An
// invalid draft is not written and stays open. After a successful write the
// editor closes and the list is reloaded; a failed reload is reported as
// apperrors.ErrReloadFailed together with the saved id.
func (e *Editor[D]) Save(ctx context.Context) (string, error) {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return "", ErrNotOpen
	}
	gen := e.gen
	draft := e.draft.Clone()
	if err := draft.Validate(); err != nil {
		e.err = err
		e.mu.Unlock()
		return "", err
	}
	e.mu.Unlock()

	id, err := e.save(ctx, draft)

	e.mu.Lock()
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidationFailed) && !errors.Is(err, apperrors.ErrResourceNotFound) &&
			!errors.Is(err, apperrors.ErrMutationFailed) {
			err = fmt.Errorf("%w: %w", apperrors.ErrMutationFailed, err)
		}
		if e.gen == gen {
			e.err = err
		}
		e.mu.Unlock()
		return "", err
	}
	// a draft opened while the write ran stays open
	if e.open && e.gen == gen {
		e.close()
	}
	e.mu.Unlock()

	return id, e.refresh(ctx, draft)
}

// Delete removes the record named by draft once the operator confirmed.
// Without confirmation nothing is written.
func (e *Editor[D]) Delete(ctx context.Context, draft D, confirmed bool) error {
	if e.delete == nil {
		return apperrors.ErrNotSupported
	}
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	if draft.RecordID() == "" {
		return apperrors.NewBadRequestError("record id is required")
	}

	if err := e.delete(ctx, draft); err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) && !errors.Is(err, apperrors.ErrMutationFailed) {
			err = fmt.Errorf("%w: %w", apperrors.ErrMutationFailed, err)
		}
		return err
	}

	e.mu.Lock()
	if cur := e.draft; e.open && cur.RecordID() == draft.RecordID() {
		e.close()
	}
	e.mu.Unlock()

	return e.refresh(ctx, draft)
}

func (e *Editor[D]) refresh(ctx context.Context, draft D) error {
	if e.reload == nil {
		return nil
	}
	if err := e.reload(ctx, draft); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrReloadFailed, err)
	}
	return nil
}
