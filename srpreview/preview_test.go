package srpreview

import "testing"

func TestPreviewString(t *testing.T) {
	segs := GenerateSegments(Node{"role": "button", "name": "Submit", "pressed": true})
	if got := PreviewString(segs); got != "Submit, button, pressed" {
		t.Errorf("default joiner: got %q", got)
	}
	if got := PreviewString(segs, WithJoiner(" | ")); got != "Submit | button | pressed" {
		t.Errorf("custom joiner: got %q", got)
	}
	if got := PreviewString(segs, WithJoiner("")); got != "Submitbuttonpressed" {
		t.Errorf("empty joiner: got %q", got)
	}
}

func TestPreviewString_Empty(t *testing.T) {
	if got := PreviewString(nil); got != "" {
		t.Errorf("nil: got %q", got)
	}
	if got := PreviewString(GenerateSegments(Node{"role": "presentation", "name": "ignored"})); got != "" {
		t.Errorf("presentation: got %q", got)
	}
}

func TestPreviewString_SkipsEmptyText(t *testing.T) {
	segs := []Segment{{Kind: KindName, Text: "A"}, {Kind: KindRole, Text: ""}, {Kind: KindState, Text: "B"}}
	if got := PreviewString(segs); got != "A, B" {
		t.Errorf("got %q, want %q", got, "A, B")
	}
}

func TestKindPriority(t *testing.T) {
	order := []Kind{KindGroup, KindName, KindRole, KindState, KindValue, KindMeta, KindDescription, Kind("other")}
	for i, k := range order {
		if k.Priority() != i {
			t.Errorf("%s priority: got %d, want %d", k, k.Priority(), i)
		}
	}
}

func TestGenerate_RecoversFromPanic(t *testing.T) {
	boom := func(Descriptor) []Segment { panic("boom") }
	got := generate(Node{"role": "button", "name": "OK"}, boom)
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v, want empty non-nil slice", got)
	}

	var d Descriptor
	nilMap := func(Descriptor) []Segment {
		var m map[string]int
		m["x"] = 1
		return nil
	}
	if got := generate(d, nilMap); got == nil || len(got) != 0 {
		t.Fatalf("runtime error: got %#v", got)
	}
}
