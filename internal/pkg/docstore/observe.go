package docstore

import (
	"context"
	"time"
)

// Observer receives the outcome of every store call.
type Observer interface {
	ObserveStoreOp(op, collection string, err error, elapsed time.Duration)
}

// Observe wraps s so each call is reported to obs. The collection label is
// the root collection name so that per-course lecture paths share a series.
func Observe(s Store, obs Observer) Store {
	if obs == nil {
		return s
	}
	return &observedStore{next: s, obs: obs}
}

type observedStore struct {
	next Store
	obs  Observer
}

func (o *observedStore) report(op string, path Path, start time.Time, err error) {
	o.obs.ObserveStoreOp(op, path.Root(), err, time.Since(start))
}

func (o *observedStore) List(ctx context.Context, path Path, q Query) ([]Document, error) {
	start := time.Now()
	docs, err := o.next.List(ctx, path, q)
	o.report("list", path, start, err)
	return docs, err
}

func (o *observedStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	start := time.Now()
	doc, err := o.next.Get(ctx, path, id)
	o.report("get", path, start, err)
	return doc, err
}

func (o *observedStore) Create(ctx context.Context, path Path, data map[string]any) (string, error) {
	start := time.Now()
	id, err := o.next.Create(ctx, path, data)
	o.report("create", path, start, err)
	return id, err
}

func (o *observedStore) Update(ctx context.Context, path Path, id string, fields map[string]any) error {
	start := time.Now()
	err := o.next.Update(ctx, path, id, fields)
	o.report("update", path, start, err)
	return err
}

func (o *observedStore) Delete(ctx context.Context, path Path, id string) error {
	start := time.Now()
	err := o.next.Delete(ctx, path, id)
	o.report("delete", path, start, err)
	return err
}

func (o *observedStore) Close() error {
	return o.next.Close()
}
