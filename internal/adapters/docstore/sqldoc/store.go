package sqldoc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"petcare/internal/ports/docstore"

	"github.com/google/uuid"
)

// Store implementa docstore.Store sobre una tabla "documents"
// (Postgres con JSONB o SQLite con funciones json_*).
type Store struct {
	db      *sql.DB
	dialect Dialect

	pollInterval time.Duration
	now          func() time.Time
	newID        func() string
}

type Option func(*Store)

// WithPollInterval ajusta cada cuánto Watch vuelve a consultar la colección.
func WithPollInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

func New(db *sql.DB, d Dialect, opts ...Option) *Store {
	s := &Store{
		db:           db,
		dialect:      d,
		pollInterval: time.Second,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return docstore.Document{}, err
	}
	key := docstore.Join(coll, id)

	var raw string
	err = s.db.QueryRowContext(ctx, s.dialect.rebind(
		`SELECT `+s.dialect.selectData+` FROM documents WHERE path = ?`), key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, unavailable(err)
	}

	data, err := decodeData([]byte(raw))
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{ID: id, Path: key, Data: data}, nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return err
	}
	raw, err := encodeData(data)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	_, err = s.db.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO documents (path, collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, `+s.dialect.insertData+`, ?, ?)
		ON CONFLICT (path) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`), docstore.Join(coll, id), coll, id, string(raw), now, now)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Create inserta sin pisar: si la fila ya existe no se toca y devuelve ErrExists.
func (s *Store) Create(ctx context.Context, path string, data map[string]any) error {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return err
	}
	raw, err := encodeData(data)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO documents (path, collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, `+s.dialect.insertData+`, ?, ?)
		ON CONFLICT (path) DO NOTHING
	`), docstore.Join(coll, id), coll, id, string(raw), now, now)
	if err != nil {
		return unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if n == 0 {
		return docstore.ErrExists
	}
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (docstore.Document, error) {
	if !docstore.ValidCollection(collection) {
		return docstore.Document{}, docstore.ErrInvalidPath
	}
	coll := docstore.Join(collection)
	id := s.newID()
	raw, err := encodeData(data)
	if err != nil {
		return docstore.Document{}, err
	}

	now := s.now().UTC()
	key := docstore.Join(coll, id)
	_, err = s.db.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO documents (path, collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, `+s.dialect.insertData+`, ?, ?)
	`), key, coll, id, string(raw), now, now)
	if err != nil {
		return docstore.Document{}, unavailable(err)
	}

	// devolvemos lo que quedó persistido (tipos normalizados por el codec)
	stored, err := decodeData(raw)
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{ID: id, Path: key, Data: stored}, nil
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return err
	}
	key := docstore.Join(coll, id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, s.dialect.rebind(
		`SELECT `+s.dialect.selectData+` FROM documents WHERE path = ?`+s.dialect.lockRow), key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.ErrNotFound
	}
	if err != nil {
		return unavailable(err)
	}

	data, err := decodeData([]byte(raw))
	if err != nil {
		return err
	}
	for k, v := range fields {
		data[k] = v
	}
	merged, err := encodeData(data)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, s.dialect.rebind(
		`UPDATE documents SET data = `+s.dialect.insertData+`, updated_at = ? WHERE path = ?`),
		string(merged), s.now().UTC(), key)
	if err != nil {
		return unavailable(err)
	}
	if err := tx.Commit(); err != nil {
		return unavailable(err)
	}
	return nil
}

// CompareAndSet es un único UPDATE condicional: gana quien afecta la fila.
func (s *Store) CompareAndSet(ctx context.Context, path, field string, expected, next int64) (bool, error) {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return false, err
	}
	key := docstore.Join(coll, id)

	res, err := s.db.ExecContext(ctx, s.dialect.rebind(s.dialect.casUpdate),
		field, next, s.now().UTC(), key, field, expected)
	if err != nil {
		return false, unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable(err)
	}
	if n == 1 {
		return true, nil
	}

	// 0 filas: o no existe o el valor no coincidía
	var one int
	err = s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT 1 FROM documents WHERE path = ?`), key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, docstore.ErrNotFound
	}
	if err != nil {
		return false, unavailable(err)
	}
	return false, nil
}

func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	if !docstore.ValidCollection(collection) {
		return nil, docstore.ErrInvalidPath
	}
	coll := docstore.Join(collection)

	query := `SELECT id, ` + s.dialect.selectData + ` FROM documents WHERE collection = ?`
	args := []any{coll}
	// solo empujamos al motor la igualdad sobre strings; el resto lo filtra Apply
	if v, ok := q.Value.(string); ok && q.Field != "" {
		query += ` AND ` + s.dialect.jsonEquals
		args = append(args, q.Field, v)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, unavailable(err)
		}
		data, err := decodeData([]byte(raw))
		if err != nil {
			return nil, err
		}
		docs = append(docs, docstore.Document{ID: id, Path: docstore.Join(coll, id), Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return docstore.Apply(docs, q), nil
}

// Close cierra el pool subyacente.
func (s *Store) Close() error {
	return s.db.Close()
}

func unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
}
