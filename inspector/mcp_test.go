package inspector

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testImpl = &mcp.Implementation{Name: "inspector-test", Version: "0.1.0"}

func mcpSession(t *testing.T) (*Service, *mcp.ClientSession) {
	t.Helper()
	svc := testService(t, nil)

	srv := mcp.NewServer(testImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()

	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return svc, session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	return tc.Text
}

func TestMCP_ListTools(t *testing.T) {
	_, session := mcpSession(t)

	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"inspector_segments", "inspector_preview", "inspector_batch"} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

// --- inspector_segments ---

func TestMCP_Segments(t *testing.T) {
	_, session := mcpSession(t)

	text := callTool(t, session, "inspector_segments", map[string]any{
		"node": map[string]any{"role": "button", "name": "Submit", "pressed": true},
	})

	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Preview != "Submit, button, pressed" {
		t.Errorf("preview: got %q", res.Preview)
	}
	if len(res.Segments) != 3 || res.Segments[0].Kind != "name" {
		t.Errorf("segments: %+v", res.Segments)
	}
	if res.ID == "" {
		t.Error("expected an ID")
	}
}

func TestMCP_Segments_MissingNode(t *testing.T) {
	_, session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "inspector_segments",
		Arguments: map[string]any{"node": nil},
	})
	if err == nil && result.GetError() == nil {
		t.Fatal("expected an error for a missing node")
	}
}

// --- inspector_preview ---

func TestMCP_Preview_Joiner(t *testing.T) {
	_, session := mcpSession(t)

	text := callTool(t, session, "inspector_preview", map[string]any{
		"node":   map[string]any{"role": "link", "name": "Docs", "visited": true},
		"joiner": " | ",
	})

	var res previewResponse
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Preview != "Docs | link | visited" {
		t.Errorf("preview: got %q", res.Preview)
	}
}

func TestMCP_Preview_EmptyJoiner(t *testing.T) {
	_, session := mcpSession(t)

	text := callTool(t, session, "inspector_preview", map[string]any{
		"node":   map[string]any{"role": "link", "name": "Docs"},
		"joiner": "",
	})

	var res previewResponse
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Preview != "Docslink" {
		t.Errorf("preview: got %q", res.Preview)
	}
}

// --- inspector_batch ---

func TestMCP_Batch(t *testing.T) {
	_, session := mcpSession(t)

	text := callTool(t, session, "inspector_batch", map[string]any{
		"nodes": []any{
			map[string]any{"role": "tab", "name": "General", "selected": true},
			map[string]any{"role": "presentation", "name": "ignored"},
		},
	})

	var res []Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("results: got %d", len(res))
	}
	if res[1].Preview != "" || len(res[1].Segments) != 0 {
		t.Errorf("presentation node: %+v", res[1])
	}
	for _, r := range res {
		if r.ID == "" {
			t.Error("expected per-item IDs")
		}
	}
}
