package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/google/uuid"
)

// ErrBundleNotFound indicates that a bundle with the given ID does not exist.
var ErrBundleNotFound = errors.New("bundle not found")

// ErrInvalidName is returned for empty or overlong bundle names.
var ErrInvalidName = errors.New("invalid bundle name")

const maxNameLength = 100

// Bundle is a named, saved parameter bundle.
type Bundle struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Params    config.ParameterBundle `json:"params"`
	CreatedAt time.Time              `json:"created_at"`
}

// BundleStore provides data access methods for the bundle table.
type BundleStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewBundleStore creates a new BundleStore with the provided database connection.
func NewBundleStore(db *sql.DB) *BundleStore {
	return &BundleStore{db: db, now: time.Now}
}

// Create stores params under name with a fresh UUID.
func (s *BundleStore) Create(ctx context.Context, name string, params config.ParameterBundle) (Bundle, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return Bundle{}, fmt.Errorf("%w: must be 1 to %d characters", ErrInvalidName, maxNameLength)
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to encode bundle params: %w", err)
	}

	b := Bundle{
		ID:        uuid.New().String(),
		Name:      name,
		Params:    params,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}
	query := `
          INSERT INTO bundle (id, name, params, created_at)
          VALUES (?, ?, ?, ?)
      `
	if _, err := s.db.ExecContext(ctx, query, b.ID, b.Name, string(raw), b.CreatedAt.Format(time.RFC3339)); err != nil {
		return Bundle{}, fmt.Errorf("failed to insert bundle: %w", err)
	}
	return b, nil
}

// Get retrieves a bundle by ID.
func (s *BundleStore) Get(ctx context.Context, id string) (Bundle, error) {
	query := `
          SELECT id, name, params, created_at
          FROM bundle
          WHERE id = ?
      `
	b, err := scanBundle(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Bundle{}, ErrBundleNotFound
	}
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to query bundle %s: %w", id, err)
	}
	return b, nil
}

// List returns all bundles, oldest first. Returns an empty slice if none exist.
func (s *BundleStore) List(ctx context.Context) ([]Bundle, error) {
	query := `
          SELECT id, name, params, created_at
          FROM bundle
          ORDER BY created_at, name
      `
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bundle table: %w", err)
	}
	defer rows.Close()

	bundles := []Bundle{}
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bundle table results: %w", err)
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bundle table: %w", err)
	}
	return bundles, nil
}

// Delete removes a bundle by ID.
func (s *BundleStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bundle WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bundle %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete bundle %s: %w", id, err)
	}
	if n == 0 {
		return ErrBundleNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBundle(row scanner) (Bundle, error) {
	var (
		b         Bundle
		raw       string
		createdAt string
	)
	if err := row.Scan(&b.ID, &b.Name, &raw, &createdAt); err != nil {
		return Bundle{}, err
	}
	if err := json.Unmarshal([]byte(raw), &b.Params); err != nil {
		return Bundle{}, fmt.Errorf("failed to decode params of bundle %s: %w", b.ID, err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to parse created_at of bundle %s: %w", b.ID, err)
	}
	b.CreatedAt = t
	return b, nil
}
