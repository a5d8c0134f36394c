package dto

import (
	"time"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/flowlink"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

// GenerateRequest asks for flow links of one stored mesh.
type GenerateRequest struct {
	MeshID  string          `json:"mesh_id"`
	Options GenerateOptions `json:"options"`
}

// GenerateOptions tune a generation run.
type GenerateOptions struct {
	Regenerate bool `json:"regenerate"` // clear existing links first
	Validate   bool `json:"validate"`   // run topology validation before deriving
}

// Validate checks the request is well formed.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return ErrNilRequest
	}
	if r.MeshID == "" {
		return ErrMissingMeshID
	}
	return nil
}

// GenerationStatus of a single mesh run.
type GenerationStatus string

const (
	GenerationStatusCompleted GenerationStatus = "completed"
	GenerationStatusFailed    GenerationStatus = "failed"
)

// GenerateResponse reports one generation run.
type GenerateResponse struct {
	MeshID     string           `json:"mesh_id"`
	Status     GenerationStatus `json:"status"`
	Summary    Summary          `json:"summary"`
	TotalLinks int              `json:"total_links"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    time.Time        `json:"end_time"`
	Duration   time.Duration    `json:"duration"`
	Error      string           `json:"error,omitempty"`
}

// Summary mirrors flowlink.Summary with a derived skipped count.
type Summary struct {
	Edges       int `json:"edges"`
	Linked      int `json:"linked"`
	Skipped     int `json:"skipped"`
	Unindexed   int `json:"unindexed"`
	Disjoint    int `json:"disjoint"`
	Boundary    int `json:"boundary"`
	NonManifold int `json:"non_manifold"`
}

// SummaryFrom converts a deriver summary.
func SummaryFrom(s flowlink.Summary) Summary {
	return Summary{
		Edges:       s.Edges,
		Linked:      s.Linked,
		Skipped:     s.Skipped(),
		Unindexed:   s.Unindexed,
		Disjoint:    s.Disjoint,
		Boundary:    s.Boundary,
		NonManifold: s.NonManifold,
	}
}

// BatchRequest generates flow links for several meshes.
type BatchRequest struct {
	MeshIDs []string        `json:"mesh_ids"`
	Options GenerateOptions `json:"options"`
}

// Validate checks the batch is non-empty, bounded and names no blank IDs.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return ErrNilRequest
	}
	if len(r.MeshIDs) == 0 {
		return ErrEmptyBatch
	}
	if len(r.MeshIDs) > MaxBatchSize {
		return ErrBatchTooLarge
	}
	for _, id := range r.MeshIDs {
		if id == "" {
			return ErrMissingMeshID
		}
	}
	return nil
}

// BatchResponse holds one result per distinct mesh ID, in request order.
type BatchResponse struct {
	Results   []*GenerateResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// FlowLink is the wire form of mesh.FlowLink.
type FlowLink struct {
	CellFrom   int `json:"cell_from"`
	CellTo     int `json:"cell_to"`
	EdgeIndex  int `json:"edge_index"`
	VertexFrom int `json:"vertex_from"`
	VertexTo   int `json:"vertex_to"`
}

// LinksResponse lists the flow links of a mesh.
type LinksResponse struct {
	MeshID string     `json:"mesh_id"`
	Count  int        `json:"count"`
	Links  []FlowLink `json:"links"`
}

// FlowLinksFrom converts mesh links to their wire form.
func FlowLinksFrom(links []mesh.FlowLink) []FlowLink {
	out := make([]FlowLink, len(links))
	for i, l := range links {
		out[i] = FlowLink{
			CellFrom:   l.CellFromIndex,
			CellTo:     l.CellToIndex,
			EdgeIndex:  l.EdgeIndex,
			VertexFrom: l.Edge.VertexFromIndex,
			VertexTo:   l.Edge.VertexToIndex,
		}
	}
	return out
}
