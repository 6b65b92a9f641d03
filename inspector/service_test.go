package inspector

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hazyhaar/nexus-a11y/kit"
	"github.com/hazyhaar/nexus-a11y/srpreview"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id" + strconv.Itoa(n)
	}
}

func testService(t *testing.T, cfg *Config) *Service {
	t.Helper()
	return New(cfg, slog.Default(), WithIDGenerator(counterIDs()))
}

func TestInspect(t *testing.T) {
	svc := testService(t, nil)
	res := svc.Inspect(context.Background(), map[string]any{"role": "button", "name": "Submit", "pressed": true})

	want := &Result{
		ID:   "id1",
		Role: "button",
		Segments: []srpreview.Segment{
			{Kind: srpreview.KindName, Text: "Submit"},
			{Kind: srpreview.KindRole, Text: "button"},
			{Kind: srpreview.KindState, Text: "pressed"},
		},
		Preview: "Submit, button, pressed",
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestInspect_ConfigJoinerAndOverride(t *testing.T) {
	svc := testService(t, &Config{Joiner: " / "})
	node := map[string]any{"role": "link", "name": "Home"}

	if got := svc.Inspect(context.Background(), node).Preview; got != "Home / link" {
		t.Errorf("config joiner: got %q", got)
	}
	if got := svc.Inspect(context.Background(), node, srpreview.WithJoiner(" ")).Preview; got != "Home link" {
		t.Errorf("override joiner: got %q", got)
	}
}

func TestInspect_RequestIDFromContext(t *testing.T) {
	svc := testService(t, nil)
	ctx := kit.WithRequestID(context.Background(), "req-7")
	if got := svc.Inspect(ctx, nil).ID; got != "req-7" {
		t.Errorf("ID: got %q", got)
	}
}

func TestInspect_EmptyIsNotNil(t *testing.T) {
	svc := testService(t, nil)
	res := svc.Inspect(context.Background(), map[string]any{"role": "none"})
	if res.Segments == nil || len(res.Segments) != 0 {
		t.Errorf("segments: got %#v", res.Segments)
	}
	if res.Preview != "" {
		t.Errorf("preview: got %q", res.Preview)
	}
}

func TestInspectBatch(t *testing.T) {
	svc := testService(t, nil)
	ctx := kit.WithRequestID(context.Background(), "req")
	nodes := []any{
		map[string]any{"role": "heading", "level": 1, "name": "Title"},
		"not a node",
		map[string]any{"role": "checkbox", "name": "Agree", "checked": false},
	}

	out := svc.InspectBatch(ctx, nodes)
	if len(out) != 3 {
		t.Fatalf("results: got %d", len(out))
	}
	previews := []string{out[0].Preview, out[1].Preview, out[2].Preview}
	if diff := cmp.Diff([]string{"Title, Heading level 1", "", "Agree, checkbox, unchecked"}, previews); diff != "" {
		t.Errorf("previews (-want +got):\n%s", diff)
	}
	if out[0].ID != "req_id1" || out[2].ID != "req_id3" {
		t.Errorf("ids: %q %q", out[0].ID, out[2].ID)
	}
}

func TestInspectBatch_Cancelled(t *testing.T) {
	svc := testService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if out := svc.InspectBatch(ctx, []any{map[string]any{"role": "button"}}); len(out) != 0 {
		t.Errorf("cancelled batch: got %d results", len(out))
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := &Config{LogLevel: "loud", Render: RenderConfig{ClassPrefix: `x" onmouseover="alert(1)`}}
	svc := testService(t, cfg)
	if got := svc.Config().Render.ClassPrefix; got != "sr-seg" {
		t.Errorf("class prefix: got %q", got)
	}
	if got := svc.Config().LogLevel; got != "info" {
		t.Errorf("log level: got %q", got)
	}

	html := svc.RenderHTML(context.Background(), map[string]any{"role": "button", "name": "OK"})
	if !strings.HasPrefix(html, `<span class="sr-seg-preview">`) {
		t.Errorf("render: %s", html)
	}
}
