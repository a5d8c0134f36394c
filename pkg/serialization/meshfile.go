package serialization

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

// Mesh file extensions and the serializer each one maps to.
const (
	ExtJSON    = ".json"
	ExtMsgPack = ".msgpack"
	ExtMesh    = ".mesh" // msgpack + zstd
)

// ForPath picks a serializer from the file extension of path.
func ForPath(path string) (*Serializer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON:
		return NewSerializer(SerializationConfig{Codec: &JSONCodec{Indent: true}, Compression: CompressionNone}), nil
	case ExtMsgPack:
		return NewSerializer(SerializationConfig{Codec: NewMsgPackCodec(), Compression: CompressionNone}), nil
	case ExtMesh:
		return DefaultSerializer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, filepath.Ext(path))
	}
}

// EncodeMesh serializes m.
func (s *Serializer) EncodeMesh(m *mesh.Mesh) ([]byte, error) {
	if m == nil {
		return nil, mesh.NewArgumentError("mesh", "cannot be nil")
	}
	return s.Serialize(m)
}

// DecodeMesh deserializes a mesh and rebuilds its vertex to cell index,
// which is never stored.
func (s *Serializer) DecodeMesh(data []byte) (*mesh.Mesh, error) {
	var m mesh.Mesh
	if err := s.Deserialize(data, &m); err != nil {
		return nil, err
	}
	m.BuildVertexToCellIndex()
	return &m, nil
}

// ReadMeshFile loads a mesh from path using the serializer for its extension.
func ReadMeshFile(path string) (*mesh.Mesh, error) {
	s, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mesh file: %w", err)
	}
	m, err := s.DecodeMesh(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return m, nil
}

// WriteMeshFile stores m at path using the serializer for its extension.
func WriteMeshFile(path string, m *mesh.Mesh) error {
	s, err := ForPath(path)
	if err != nil {
		return err
	}
	data, err := s.EncodeMesh(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mesh file: %w", err)
	}
	return nil
}
