package usecases

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/flowlink"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/metrics"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

// FlowLinkService implements FlowLinkGenerator on top of a MeshRepository.
// PRINCIPLES:
// - KISS: load, derive, store
// - SRP: logging and metrics happen here, never in the deriver
type FlowLinkService struct {
	repo    MeshRepository
	workers int
	logger  *zerolog.Logger
}

// ServiceOption configures a FlowLinkService.
type ServiceOption func(*FlowLinkService)

// WithWorkers bounds the number of meshes processed concurrently by GenerateBatch.
func WithWorkers(n int) ServiceOption {
	return func(s *FlowLinkService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger overrides the global zerolog logger.
func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *FlowLinkService) { s.logger = &l }
}

// NewFlowLinkService creates a service backed by repo.
func NewFlowLinkService(repo MeshRepository, opts ...ServiceOption) *FlowLinkService {
	s := &FlowLinkService{repo: repo, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlowLinkService) log() *zerolog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return &log.Logger
}

// Generate loads the mesh, appends its flow links and stores it again.
// Without Options.Regenerate existing links are kept and new ones appended.
func (s *FlowLinkService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.generate(ctx, req)
	metrics.IncGeneration(err == nil)
	if err != nil {
		s.log().Error().Err(err).Str("mesh_id", req.MeshID).Msg("flow link generation failed")
		return nil, err
	}
	resp.StartTime = start
	resp.EndTime = time.Now()
	resp.Duration = resp.EndTime.Sub(start)
	metrics.ObserveGeneration(resp.Duration)

	s.log().Info().
		Str("mesh_id", resp.MeshID).
		Int("edges", resp.Summary.Edges).
		Int("linked", resp.Summary.Linked).
		Int("boundary", resp.Summary.Boundary).
		Int("non_manifold", resp.Summary.NonManifold).
		Int("unindexed", resp.Summary.Unindexed).
		Int("disjoint", resp.Summary.Disjoint).
		Int("total_links", resp.TotalLinks).
		Dur("duration", resp.Duration).
		Msg("flow links generated")
	if resp.Summary.NonManifold > 0 {
		s.log().Warn().
			Str("mesh_id", resp.MeshID).
			Int("edges", resp.Summary.NonManifold).
			Msg("edges shared by more than two cells were skipped")
	}
	return resp, nil
}

func (s *FlowLinkService) generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	m, err := s.repo.Get(ctx, req.MeshID)
	if err != nil {
		return nil, err
	}
	if m.VertexToCells == nil && len(m.Cells) > 0 {
		m.BuildVertexToCellIndex()
	}
	if req.Options.Validate {
		if verr := validation.ValidateMesh(m, validation.MeshValidationOptions{CheckIndex: true}); verr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMesh, req.MeshID, verr)
		}
	}
	if req.Options.Regenerate {
		m.ClearFlowLinks()
	}

	summary, err := flowlink.GenerateFlowLinks(m)
	if err != nil {
		return nil, err
	}
	recordSummary(summary)

	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("store mesh %s: %w", m.ID, err)
	}
	return &dto.GenerateResponse{
		MeshID:     m.ID,
		Status:     dto.GenerationStatusCompleted,
		Summary:    dto.SummaryFrom(summary),
		TotalLinks: len(m.FlowLinks),
	}, nil
}

func recordSummary(s flowlink.Summary) {
	metrics.AddFlowLinks(s.Linked)
	metrics.AddSkippedEdges(metrics.ReasonBoundary, s.Boundary)
	metrics.AddSkippedEdges(metrics.ReasonNonManifold, s.NonManifold)
	metrics.AddSkippedEdges(metrics.ReasonUnindexed, s.Unindexed)
	metrics.AddSkippedEdges(metrics.ReasonDisjoint, s.Disjoint)
}

// GenerateBatch generates flow links for each distinct mesh ID, at most
// workers at a time. Repeated IDs are processed once. A failing mesh is
// reported in its result and does not stop the others; only cancellation
// of ctx aborts the batch.
func (s *FlowLinkService) GenerateBatch(ctx context.Context, meshIDs []string, opts dto.GenerateOptions) (*dto.BatchResponse, error) {
	req := &dto.BatchRequest{MeshIDs: meshIDs, Options: opts}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	ids := distinct(meshIDs)
	results := make([]*dto.GenerateResponse, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			resp, err := s.Generate(gctx, &dto.GenerateRequest{MeshID: id, Options: opts})
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				results[i] = &dto.GenerateResponse{
					MeshID: id,
					Status: dto.GenerationStatusFailed,
					Error:  err.Error(),
				}
				return nil
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.BatchResponse{Results: results}
	for _, r := range results {
		if r.Status == dto.GenerationStatusCompleted {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	s.log().Info().
		Int("meshes", len(ids)).
		Int("succeeded", out.Succeeded).
		Int("failed", out.Failed).
		Msg("flow link batch finished")
	return out, nil
}

// Links returns the stored flow links of a mesh.
func (s *FlowLinkService) Links(ctx context.Context, meshID string) (*dto.LinksResponse, error) {
	if meshID == "" {
		return nil, dto.ErrMissingMeshID
	}
	m, err := s.repo.Get(ctx, meshID)
	if err != nil {
		return nil, err
	}
	return &dto.LinksResponse{
		MeshID: m.ID,
		Count:  len(m.FlowLinks),
		Links:  dto.FlowLinksFrom(m.FlowLinks),
	}, nil
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ FlowLinkGenerator = (*FlowLinkService)(nil)
