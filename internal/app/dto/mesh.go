package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

// MeshInfo describes a stored mesh without its topology.
type MeshInfo struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	CoordinateSystem string        `json:"coordinate_system,omitempty"`
	Vertices         int           `json:"vertices"`
	Edges            int           `json:"edges"`
	Cells            int           `json:"cells"`
	FlowLinks        int           `json:"flow_links"`
	Extent           mesh.Envelope `json:"extent"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// MeshInfoFrom summarises m.
func MeshInfoFrom(m *mesh.Mesh) MeshInfo {
	return MeshInfo{
		ID:               m.ID,
		Name:             m.Name,
		CoordinateSystem: m.CoordinateSystem,
		Vertices:         len(m.Vertices),
		Edges:            len(m.Edges),
		Cells:            len(m.Cells),
		FlowLinks:        len(m.FlowLinks),
		Extent:           m.Extent(),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ListFilter narrows a mesh listing. Zero values are ignored. Since and
// Before are exclusive bounds on the creation time.
type ListFilter struct {
	NamePrefix string     `form:"name_prefix" json:"name_prefix,omitempty"`
	Since      *time.Time `form:"created_after" json:"created_after,omitempty"`
	Before     *time.Time `form:"created_before" json:"created_before,omitempty"`
	Limit      int        `form:"limit" json:"limit,omitempty"`
	Offset     int        `form:"offset" json:"offset,omitempty"`
}

// Validate checks the paging bounds.
func (f ListFilter) Validate() error {
	if f.Limit < 0 || f.Limit > MaxListLimit {
		return fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidFilter, MaxListLimit)
	}
	if f.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidFilter)
	}
	return nil
}

// Match reports whether m passes the name and time conditions.
func (f ListFilter) Match(m *mesh.Mesh) bool {
	if f.NamePrefix != "" && !strings.HasPrefix(m.Name, f.NamePrefix) {
		return false
	}
	if f.Since != nil && !m.CreatedAt.After(*f.Since) {
		return false
	}
	if f.Before != nil && !m.CreatedAt.Before(*f.Before) {
		return false
	}
	return true
}

// Apply filters meshes, already in listing order, and cuts the requested page.
func (f ListFilter) Apply(meshes []*mesh.Mesh) []*mesh.Mesh {
	out := make([]*mesh.Mesh, 0, len(meshes))
	for _, m := range meshes {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	if f.Offset >= len(out) {
		return out[:0]
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out
}
