package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresTimeLayout is fixed width so that timestamps stored as JSON text
// sort chronologically.
const postgresTimeLayout = "2006-01-02T15:04:05.000000000Z"

// PostgresStore keeps every collection in a single JSONB table:
//
//	documents(collection text, id text, data jsonb, created_at, updated_at)
//
// The table is created by the migrations package.
type PostgresStore struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresStore wraps an open pool. Closing the store closes the pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List selects the collection's rows, filtered with JSONB containment.
func (s *PostgresStore) List(ctx context.Context, path Path, q Query) ([]Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if err := q.validate(); err != nil {
		return nil, err
	}

	builder := s.sb.Select("id", "data").
		From("documents").
		Where(squirrel.Eq{"collection": string(path)})

	for _, f := range q.Where {
		patch, err := encodePostgres(map[string]any{f.Field: f.Value})
		if err != nil {
			return nil, err
		}
		builder = builder.Where(squirrel.Expr("data @> ?::jsonb", patch))
	}
	if q.OrderBy != "" {
		dir := "ASC NULLS FIRST"
		if q.Descending {
			dir = "DESC NULLS LAST"
		}
		// Field names are validated identifiers, safe to inline.
		builder = builder.OrderBy(fmt.Sprintf("data->'%s' %s", q.OrderBy, dir))
	}
	builder = builder.OrderBy("created_at ASC", "id ASC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", path, err)
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", path, err)
		}
		data, err := decodePostgres(raw)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s/%s: %w", path, id, err)
		}
		out = append(out, Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", path, err)
	}
	return out, nil
}

// Get selects a single row.
func (s *PostgresStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	if err := checkArgs(path, id); err != nil {
		return Document{}, err
	}

	sql, args, err := s.sb.Select("data").
		From("documents").
		Where(squirrel.Eq{"collection": string(path), "id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("failed to build get query: %w", err)
	}

	var raw []byte
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("error getting %s/%s: %w", path, id, err)
	}
	data, err := decodePostgres(raw)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Data: data}, nil
}

// Create inserts a row with a new id.
func (s *PostgresStore) Create(ctx context.Context, path Path, data map[string]any) (string, error) {
	if err := path.Validate(); err != nil {
		return "", err
	}
	payload, err := encodePostgres(data)
	if err != nil {
		return "", err
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	sql, args, err := s.sb.Insert("documents").
		Columns("collection", "id", "data").
		Values(string(path), id, squirrel.Expr("?::jsonb", payload)).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build insert query: %w", err)
	}
	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return "", fmt.Errorf("error creating document in %s: %w", path, err)
	}
	return id, nil
}

// Update merges fields into the stored JSONB object.
func (s *PostgresStore) Update(ctx context.Context, path Path, id string, fields map[string]any) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}
	patch, err := encodePostgres(fields)
	if err != nil {
		return err
	}

	sql, args, err := s.sb.Update("documents").
		Set("data", squirrel.Expr("data || ?::jsonb", patch)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"collection": string(path), "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating %s/%s: %w", path, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a row.
func (s *PostgresStore) Delete(ctx context.Context, path Path, id string) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}

	sql, args, err := s.sb.Delete("documents").
		Where(squirrel.Eq{"collection": string(path), "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting %s/%s: %w", path, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// encodePostgres marshals data with timestamps in postgresTimeLayout.
func encodePostgres(data map[string]any) (string, error) {
	b, err := json.Marshal(encodePostgresValue(cloneMap(data)))
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(b), nil
}

func encodePostgresValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(postgresTimeLayout)
	case map[string]any:
		for k, val := range t {
			t[k] = encodePostgresValue(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = encodePostgresValue(t[i])
		}
		return t
	default:
		return v
	}
}

func decodePostgres(raw []byte) (map[string]any, error) {
	data := map[string]any{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	for k, v := range data {
		data[k] = decodePostgresValue(v)
	}
	return data, nil
}

func decodePostgresValue(v any) any {
	switch t := v.(type) {
	case string:
		if len(t) == len(postgresTimeLayout) {
			if ts, err := time.Parse(postgresTimeLayout, t); err == nil {
				return ts
			}
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = decodePostgresValue(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = decodePostgresValue(t[i])
		}
		return t
	default:
		return v
	}
}
