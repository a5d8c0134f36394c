package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/metrics"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/serialization"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

const backend = "postgres"

// MeshStore implements usecases.MeshRepository for PostgreSQL
type MeshStore struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// Filter narrows Find results. Zero values are ignored.
type Filter = dto.ListFilter

// NewMeshStore creates a new PostgreSQL mesh store. A nil serializer selects
// serialization.DefaultSerializer.
func NewMeshStore(pool *pgxpool.Pool, serializer *serialization.Serializer) *MeshStore {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &MeshStore{
		pool:       pool,
		serializer: serializer,
		tableName:  "meshes",
	}
}

// Open connects to dsn and creates the tables.
func Open(ctx context.Context, dsn string, serializer *serialization.Serializer) (*MeshStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	s := NewMeshStore(pool, serializer)
	if err := s.CreateTables(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// WithTableName overrides the default table name. Names other than
// letters, digits and underscore are ignored.
func (s *MeshStore) WithTableName(name string) *MeshStore {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

func isSafeIdent(s string) bool {
	if s == "" || len(s) > 63 {
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

// Save stores a mesh in PostgreSQL
func (s *MeshStore) Save(ctx context.Context, m *mesh.Mesh) error {
	if err := validation.ValidateStorable(m); err != nil {
		return err
	}

	data, err := s.serializer.EncodeMesh(m)
	if err != nil {
		return fmt.Errorf("failed to serialize mesh: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, coordinate_system, vertices, edges, cells, flow_links, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			coordinate_system = EXCLUDED.coordinate_system,
			vertices = EXCLUDED.vertices,
			edges = EXCLUDED.edges,
			cells = EXCLUDED.cells,
			flow_links = EXCLUDED.flow_links,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		m.ID, m.Name, m.CoordinateSystem,
		len(m.Vertices), len(m.Edges), len(m.Cells), len(m.FlowLinks),
		data, m.CreatedAt, m.UpdatedAt)
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

	query := fmt.Sprintf("SELECT body FROM %s WHERE id = $1", s.tableName)

	var data []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
	return s.Find(ctx, Filter{})
}

// Find retrieves meshes matching filter, oldest first. The filter runs in
// the database, including paging.
func (s *MeshStore) Find(ctx context.Context, filter Filter) ([]*mesh.Mesh, error) {
	if s.pool == nil {
		return nil, errors.New("postgres pool is not configured")
	}
	query, args := s.buildListQuery(filter)

	rows, err := s.pool.Query(ctx, query, args...)
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

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete mesh: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", mesh.ErrMeshNotFound, id)
	}

	s.refreshGauge(ctx)
	return nil
}

// Count returns the number of stored meshes.
func (s *MeshStore) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tableName)
	if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
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
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			coordinate_system VARCHAR(32) NOT NULL DEFAULT '',
			vertices INTEGER NOT NULL,
			edges INTEGER NOT NULL,
			cells INTEGER NOT NULL,
			flow_links INTEGER NOT NULL,
			body BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at);
		CREATE INDEX IF NOT EXISTS idx_%s_name ON %s (name);
	`, s.tableName, s.tableName, s.tableName, s.tableName, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// buildListQuery constructs the SQL query for listing meshes
func (s *MeshStore) buildListQuery(filter Filter) (string, []interface{}) {
	query := fmt.Sprintf("SELECT id, body FROM %s WHERE 1=1", s.tableName)
	args := make([]interface{}, 0)
	argCount := 0

	if filter.NamePrefix != "" {
		argCount++
		query += fmt.Sprintf(" AND name LIKE $%d", argCount)
		args = append(args, filter.NamePrefix+"%")
	}

	if filter.Since != nil {
		argCount++
		query += fmt.Sprintf(" AND created_at > $%d", argCount)
		args = append(args, *filter.Since)
	}

	if filter.Before != nil {
		argCount++
		query += fmt.Sprintf(" AND created_at < $%d", argCount)
		args = append(args, *filter.Before)
	}

	query += " ORDER BY created_at ASC, id ASC"

	if filter.Limit > 0 {
		argCount++
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		argCount++
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	return query, args
}

// Close closes the database connection pool
func (s *MeshStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
