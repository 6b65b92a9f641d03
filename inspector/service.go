// Package inspector exposes the screen-reader preview engine as a service:
// single and batch inspection, HTML fragment rendering, MCP tools and
// HTTP routes.
//
// Usage:
//
//	svc := inspector.New(cfg, logger)
//	svc.RegisterMCP(mcpServer)
//	http.ListenAndServe(cfg.HTTP.Addr, svc.Handler())
package inspector

import (
	"context"
	"log/slog"

	"github.com/hazyhaar/nexus-a11y/idgen"
	"github.com/hazyhaar/nexus-a11y/kit"
	"github.com/hazyhaar/nexus-a11y/srpreview"
)

// Result is the outcome of inspecting one node.
type Result struct {
	ID       string              `json:"id"`
	Role     string              `json:"role,omitempty"`
	Segments []srpreview.Segment `json:"segments"`
	Preview  string              `json:"preview"`
}

// Service wraps the engine with configuration, IDs and logging.
type Service struct {
	config *Config
	logger *slog.Logger
	newID  idgen.Generator
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator sets the generator used for result IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Service) { s.newID = gen }
}

// New creates a Service. A nil cfg uses defaults, and fields that fail
// validation are replaced by their defaults.
func New(cfg *Config, logger *slog.Logger, opts ...Option) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.validate(); err != nil {
		logger.Warn("inspector: invalid config, falling back to defaults", "error", err)
		cfg.reset()
	}
	cfg.defaults()
	s := &Service{
		config: cfg,
		logger: logger,
		newID:  idgen.Prefixed("insp_", idgen.Default),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Inspect synthesizes the utterance for node. The configured joiner is
// applied first, so opts may override it. The request ID on ctx, if any,
// becomes the result ID.
func (s *Service) Inspect(ctx context.Context, node any, opts ...srpreview.PreviewOption) *Result {
	id := kit.GetRequestID(ctx)
	if id == "" {
		id = s.newID()
	}

	segs := srpreview.GenerateSegments(node)
	res := &Result{
		ID:       id,
		Role:     srpreview.Extract(node).Role,
		Segments: segs,
		Preview:  srpreview.PreviewString(segs, append([]srpreview.PreviewOption{srpreview.WithJoiner(s.config.Joiner)}, opts...)...),
	}

	s.logger.DebugContext(ctx, "inspector: inspected",
		"id", res.ID,
		"role", res.Role,
		"segments", len(segs),
		"transport", kit.GetTransport(ctx))
	return res
}

// InspectBatch inspects each node independently. Result IDs share the
// request ID as a prefix when one is set.
func (s *Service) InspectBatch(ctx context.Context, nodes []any, opts ...srpreview.PreviewOption) []*Result {
	reqID := kit.GetRequestID(ctx)
	out := make([]*Result, 0, len(nodes))
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			s.logger.WarnContext(ctx, "inspector: batch cancelled", "done", len(out), "total", len(nodes), "error", err)
			break
		}
		itemCtx := ctx
		if reqID != "" {
			itemCtx = kit.WithRequestID(ctx, reqID+"_"+s.newID())
		}
		out = append(out, s.Inspect(itemCtx, n, opts...))
	}
	return out
}

// RenderHTML inspects node and returns the HTML fragment.
func (s *Service) RenderHTML(ctx context.Context, node any) string {
	res := s.Inspect(ctx, node)
	return Render(res.Segments, s.config.Render.ClassPrefix, s.config.Joiner)
}
