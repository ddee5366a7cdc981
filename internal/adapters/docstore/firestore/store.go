package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petcare/internal/ports/docstore"

	gcfs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store implementa docstore.Store sobre Cloud Firestore.
// Con FIRESTORE_EMULATOR_HOST definido el cliente usa el emulador.
type Store struct {
	client *gcfs.Client
}

type Config struct {
	ProjectID       string
	CredentialsFile string
}

func Open(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("firestore: project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcfs.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: new client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) doc(path string) (*gcfs.DocumentRef, error) {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return nil, err
	}
	ref := s.client.Doc(docstore.Join(coll, id))
	if ref == nil {
		return nil, docstore.ErrInvalidPath
	}
	return ref, nil
}

func (s *Store) collection(path string) (*gcfs.CollectionRef, error) {
	if !docstore.ValidCollection(path) {
		return nil, docstore.ErrInvalidPath
	}
	ref := s.client.Collection(docstore.Join(path))
	if ref == nil {
		return nil, docstore.ErrInvalidPath
	}
	return ref, nil
}

func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	ref, err := s.doc(path)
	if err != nil {
		return docstore.Document{}, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return docstore.Document{}, mapErr(err)
	}
	return toDocument(snap), nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Set(ctx, docstore.Clone(data)); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, path string, data map[string]any) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Create(ctx, docstore.Clone(data)); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (docstore.Document, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return docstore.Document{}, err
	}
	ref, _, err := coll.Add(ctx, docstore.Clone(data))
	if err != nil {
		return docstore.Document{}, mapErr(err)
	}
	return docstore.Document{
		ID:   ref.ID,
		Path: docstore.Join(collection, ref.ID),
		Data: docstore.Clone(data),
	}, nil
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	updates := make([]gcfs.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, gcfs.Update{Path: k, Value: v})
	}
	if len(updates) == 0 {
		return nil
	}
	if _, err := ref.Update(ctx, updates); err != nil {
		return mapErr(err)
	}
	return nil
}

// CompareAndSet corre dentro de una transacción: Firestore reintenta
// si otro escritor tocó el documento entre la lectura y la escritura.
func (s *Store) CompareAndSet(ctx context.Context, path, field string, expected, next int64) (bool, error) {
	ref, err := s.doc(path)
	if err != nil {
		return false, err
	}

	swapped := false
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *gcfs.Transaction) error {
		swapped = false
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		current, _ := docstore.Int64(snap.Data()[field])
		if current != expected {
			return nil
		}
		if err := tx.Update(ref, []gcfs.Update{{Path: field, Value: next}}); err != nil {
			return err
		}
		swapped = true
		return nil
	})
	if err != nil {
		return false, mapErr(err)
	}
	return swapped, nil
}

func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	snaps, err := buildQuery(coll, q).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr(err)
	}
	return toDocuments(snaps, q), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// buildQuery empuja solo la igualdad; orden y límite se aplican en memoria
// para no exigir índices compuestos.
func buildQuery(coll *gcfs.CollectionRef, q docstore.Query) gcfs.Query {
	query := coll.Query
	if q.Field != "" {
		query = query.Where(q.Field, "==", q.Value)
	}
	return query
}

func toDocuments(snaps []*gcfs.DocumentSnapshot, q docstore.Query) []docstore.Document {
	docs := make([]docstore.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, toDocument(snap))
	}
	return docstore.Apply(docs, q)
}

func toDocument(snap *gcfs.DocumentSnapshot) docstore.Document {
	return docstore.Document{
		ID:   snap.Ref.ID,
		Path: relativePath(snap.Ref.Path),
		Data: snap.Data(),
	}
}

// relativePath recorta "projects/{p}/databases/{d}/documents/".
func relativePath(full string) string {
	const marker = "/documents/"
	if i := strings.Index(full, marker); i >= 0 {
		return full[i+len(marker):]
	}
	return full
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch status.Code(err) {
	case codes.NotFound:
		return docstore.ErrNotFound
	case codes.AlreadyExists:
		return docstore.ErrExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %v", docstore.ErrInvalidPath, err)
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
}
