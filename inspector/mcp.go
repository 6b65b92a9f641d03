package inspector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/nexus-a11y/kit"
	"github.com/hazyhaar/nexus-a11y/srpreview"
)

// RegisterMCP registers the inspector tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerSegmentsTool(srv)
	s.registerPreviewTool(srv)
	s.registerBatchTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sch := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sch["required"] = required
	}
	return sch
}

var nodeSchema = map[string]any{
	"type":        "object",
	"description": "Accessibility node: a CDP AXNode or a flat object with role, name, description, value and ARIA fields",
}

func (s *Service) endpoint(name string, e kit.Endpoint) kit.Endpoint {
	return kit.Chain(kit.Recovery(s.logger), kit.Logging(s.logger, name))(e)
}

// decodeArgs unmarshals tool arguments into v and stamps a request ID.
func (s *Service) decodeArgs(req *mcp.CallToolRequest, v any) (*kit.MCPDecodeResult, error) {
	if len(req.Params.Arguments) == 0 {
		return nil, ErrEmptyInput
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return nil, err
	}
	id := s.newID()
	return &kit.MCPDecodeResult{
		Request:   v,
		EnrichCtx: func(ctx context.Context) context.Context { return kit.WithRequestID(ctx, id) },
	}, nil
}

// --- inspector_segments ---

type segmentsRequest struct {
	Node any `json:"node"`
}

func (s *Service) registerSegmentsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "inspector_segments",
		Description: "Synthesize what a screen reader would announce for an accessibility node. Returns ordered segments (group, name, role, state, value, meta, description) and a preview string.",
		InputSchema: inputSchema(map[string]any{"node": nodeSchema}, []string{"node"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		rr := req.(*segmentsRequest)
		if rr.Node == nil {
			return nil, fmt.Errorf("node: %w", ErrEmptyInput)
		}
		return s.Inspect(ctx, rr.Node), nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return s.decodeArgs(req, &segmentsRequest{})
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint("inspector_segments", endpoint), decode)
}

// --- inspector_preview ---

type previewRequest struct {
	Node   any     `json:"node"`
	Joiner *string `json:"joiner,omitempty"`
}

type previewResponse struct {
	ID      string `json:"id"`
	Preview string `json:"preview"`
}

func (s *Service) registerPreviewTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "inspector_preview",
		Description: "Return the one-line screen-reader preview for an accessibility node, e.g. \"Submit, button, pressed\".",
		InputSchema: inputSchema(map[string]any{
			"node":   nodeSchema,
			"joiner": map[string]any{"type": "string", "description": "Separator between segments (default \", \")"},
		}, []string{"node"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		rr := req.(*previewRequest)
		if rr.Node == nil {
			return nil, fmt.Errorf("node: %w", ErrEmptyInput)
		}
		var opts []srpreview.PreviewOption
		if rr.Joiner != nil {
			opts = append(opts, srpreview.WithJoiner(*rr.Joiner))
		}
		res := s.Inspect(ctx, rr.Node, opts...)
		return &previewResponse{ID: res.ID, Preview: res.Preview}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return s.decodeArgs(req, &previewRequest{})
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint("inspector_preview", endpoint), decode)
}

// --- inspector_batch ---

type batchRequest struct {
	Nodes []any `json:"nodes"`
}

func (s *Service) registerBatchTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "inspector_batch",
		Description: "Inspect several accessibility nodes at once, e.g. every focusable node of a snapshot. Returns one result per node in input order.",
		InputSchema: inputSchema(map[string]any{
			"nodes": map[string]any{"type": "array", "items": nodeSchema},
		}, []string{"nodes"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		rr := req.(*batchRequest)
		if len(rr.Nodes) == 0 {
			return nil, fmt.Errorf("nodes: %w", ErrEmptyInput)
		}
		return s.InspectBatch(ctx, rr.Nodes), nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return s.decodeArgs(req, &batchRequest{})
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint("inspector_batch", endpoint), decode)
}
