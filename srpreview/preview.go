// Package srpreview approximates what a screen reader announces for an
// accessibility node.
//
// A raw node (CDP AXNode, DOM-computed fallback, or any decoded JSON
// object) is normalized into a Descriptor, turned into an ordered list of
// labelled segments, and optionally joined into a one-line preview:
//
//	segs := srpreview.GenerateSegments(node)
//	line := srpreview.PreviewString(segs) // "Submit, button, pressed"
//
// Everything here is pure and synchronous. Nothing is cached and no
// package state is written, so calls may run concurrently.
package srpreview

import (
	"sort"
	"strings"
)

// DefaultJoiner separates segments in a preview string.
const DefaultJoiner = ", "

// GenerateSegments extracts and builds the utterance for node, sorted by
// Kind priority with emission order kept within a kind. It never panics;
// any failure yields an empty slice.
func GenerateSegments(node any) []Segment {
	return generate(node, BuildSegments)
}

func generate(node any, build func(Descriptor) []Segment) (segs []Segment) {
	defer func() {
		if recover() != nil {
			segs = []Segment{}
		}
	}()

	segs = build(Extract(node))
	if segs == nil {
		return []Segment{}
	}
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Kind.Priority() < segs[j].Kind.Priority()
	})
	return segs
}

type previewConfig struct {
	joiner string
}

// PreviewOption configures PreviewString.
type PreviewOption func(*previewConfig)

// WithJoiner sets the separator placed between segment texts. An empty
// joiner is honoured.
func WithJoiner(j string) PreviewOption {
	return func(c *previewConfig) { c.joiner = j }
}

// PreviewString joins the non-empty segment texts.
func PreviewString(segs []Segment, opts ...PreviewOption) string {
	if len(segs) == 0 {
		return ""
	}
	cfg := previewConfig{joiner: DefaultJoiner}
	for _, o := range opts {
		o(&cfg)
	}
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, cfg.joiner)
}
