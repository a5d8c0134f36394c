package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/metrics"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/serialization"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

const backend = "sqlite"

// MeshStore implements usecases.MeshRepository for SQLite. The mesh body is
// stored as one serialized blob next to a few summary columns.
type MeshStore struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewMeshStore creates a new SQLite mesh store. A nil serializer selects
// serialization.DefaultSerializer.
func NewMeshStore(db *sql.DB, serializer *serialization.Serializer) *MeshStore {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &MeshStore{
		db:         db,
		serializer: serializer,
		tableName:  "meshes",
	}
}

// Open opens dsn with the modernc driver and creates the tables.
func Open(ctx context.Context, dsn string, serializer *serialization.Serializer) (*MeshStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// Each :memory: connection is a separate database
	db.SetMaxOpenConns(1)

	s := NewMeshStore(db, serializer)
	if err := s.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// WithTableName allows overriding the default table name with validation.
// Only alphanumeric and underscore are permitted to prevent SQL injection via identifiers.
func (s *MeshStore) WithTableName(name string) *MeshStore {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

// Save stores a mesh, replacing any mesh with the same ID
func (s *MeshStore) Save(ctx context.Context, m *mesh.Mesh) error {
	if err := validation.ValidateStorable(m); err != nil {
		return err
	}

	data, err := s.serializer.EncodeMesh(m)
	if err != nil {
		return fmt.Errorf("failed to serialize mesh: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (id, name, coordinate_system, vertices, edges, cells, flow_links, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		m.ID, m.Name, m.CoordinateSystem,
		len(m.Vertices), len(m.Edges), len(m.Cells), len(m.FlowLinks),
		data, m.CreatedAt.UnixNano(), m.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save mesh: %w", err)
	}

	s.refreshGauge(ctx)
	return nil
}

// Get retrieves a mesh by ID
func (s *MeshStore) Get(ctx context.Context, id string) (*mesh.Mesh, error) {
	if id == "" {
		return nil, mesh.ErrMissingMeshID
	}

	query := fmt.Sprintf("SELECT body FROM %s WHERE id = ?", s.tableName)

	var data []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", mesh.ErrMeshNotFound, id)
		}
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}

	m, err := s.serializer.DecodeMesh(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize mesh %s: %w", id, err)
	}
	return m, nil
}

// List retrieves all meshes, oldest first
func (s *MeshStore) List(ctx context.Context) ([]*mesh.Mesh, error) {
	query := fmt.Sprintf("SELECT id, body FROM %s ORDER BY created_at ASC, rowid ASC", s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list meshes: %w", err)
	}
	defer rows.Close()

	var meshes []*mesh.Mesh
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan mesh row: %w", err)
		}
		m, err := s.serializer.DecodeMesh(data)
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize mesh %s: %w", id, err)
		}
		meshes = append(meshes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list meshes: %w", err)
	}

	return meshes, nil
}

// Delete removes a mesh by ID
func (s *MeshStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return mesh.ErrMissingMeshID
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete mesh: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", mesh.ErrMeshNotFound, id)
	}

	s.refreshGauge(ctx)
	return nil
}

// Count returns the number of stored meshes.
func (s *MeshStore) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tableName)
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count meshes: %w", err)
	}
	return n, nil
}

func (s *MeshStore) refreshGauge(ctx context.Context) {
	if n, err := s.Count(ctx); err == nil {
		metrics.SetMeshesStored(backend, n)
	}
}

// CreateTables creates the necessary database tables
func (s *MeshStore) CreateTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			coordinate_system TEXT NOT NULL DEFAULT '',
			vertices INTEGER NOT NULL,
			edges INTEGER NOT NULL,
			cells INTEGER NOT NULL,
			flow_links INTEGER NOT NULL,
			body BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *MeshStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

