package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreConfig selects the project and credentials. An empty
// CredentialsFile falls back to application default credentials; the
// FIRESTORE_EMULATOR_HOST variable is honoured by the client itself.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

// FirestoreStore is the hosted Cloud Firestore backend.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore dials Firestore.
func NewFirestoreStore(ctx context.Context, cfg FirestoreConfig) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func firestoreErr(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// List runs a collection query.
func (s *FirestoreStore) List(ctx context.Context, path Path, q Query) ([]Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if err := q.validate(); err != nil {
		return nil, err
	}

	query := s.client.Collection(string(path)).Query
	for _, f := range q.Where {
		query = query.Where(f.Field, "==", f.Value)
	}
	// Firestore's OrderBy skips documents without the field, so ordering
	// happens here instead.

	iter := query.Documents(ctx)
	defer iter.Stop()

	out := []Document{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore list %s: %w", path, err)
		}
		out = append(out, Document{ID: snap.Ref.ID, Data: normalizeFirestore(snap.Data())})
	}
	sortDocuments(out, q)
	return out, nil
}

// Get fetches one document.
func (s *FirestoreStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	if err := checkArgs(path, id); err != nil {
		return Document{}, err
	}
	snap, err := s.client.Collection(string(path)).Doc(id).Get(ctx)
	if err != nil {
		return Document{}, firestoreErr(err)
	}
	return Document{ID: snap.Ref.ID, Data: normalizeFirestore(snap.Data())}, nil
}

// Create adds a document with a Firestore generated id.
func (s *FirestoreStore) Create(ctx context.Context, path Path, data map[string]any) (string, error) {
	if err := path.Validate(); err != nil {
		return "", err
	}
	ref, _, err := s.client.Collection(string(path)).Add(ctx, cloneMap(data))
	if err != nil {
		return "", fmt.Errorf("firestore create %s: %w", path, err)
	}
	return ref.ID, nil
}

// Update writes fields with a per-field update, which fails with NotFound
// for a missing document instead of creating it.
func (s *FirestoreStore) Update(ctx context.Context, path Path, id string, fields map[string]any) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}
	if len(fields) == 0 {
		_, err := s.Get(ctx, path, id)
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: cloneValue(v)})
	}
	_, err := s.client.Collection(string(path)).Doc(id).Update(ctx, updates)
	return firestoreErr(err)
}

// Delete removes a document that must exist.
func (s *FirestoreStore) Delete(ctx context.Context, path Path, id string) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}
	_, err := s.client.Collection(string(path)).Doc(id).Delete(ctx, firestore.Exists)
	return firestoreErr(err)
}

// Close closes the client connection.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// normalizeFirestore converts nested values; Firestore already returns
// time.Time, int64, float64, []interface{} and map[string]interface{}.
func normalizeFirestore(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = normalizeFirestoreValue(v)
	}
	return out
}

func normalizeFirestoreValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeFirestore(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeFirestoreValue(t[i])
		}
		return out
	case *firestore.DocumentRef:
		if t == nil {
			return nil
		}
		return t.Path
	default:
		return v
	}
}
