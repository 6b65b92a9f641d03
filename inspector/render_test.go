package inspector

import (
	"strings"
	"testing"

	"github.com/hazyhaar/nexus-a11y/srpreview"
)

func TestRender(t *testing.T) {
	segs := []srpreview.Segment{
		{Kind: srpreview.KindName, Text: "Tom & Jerry"},
		{Kind: srpreview.KindRole, Text: "button"},
	}
	got := Render(segs, "sr-seg", ", ")
	want := `<span class="sr-seg-preview">` +
		`<span class="sr-seg sr-seg-name">Tom &amp; Jerry</span>, ` +
		`<span class="sr-seg sr-seg-role">button</span>` +
		`</span>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestRender_EscapesMarkup(t *testing.T) {
	segs := []srpreview.Segment{
		{Kind: srpreview.KindName, Text: "Press <Enter> to send"},
		{Kind: srpreview.KindRole, Text: `<b onclick="x()">button</b>`},
	}
	got := Render(segs, "p", " <|> ")
	for _, want := range []string{
		`<span class="p p-name">Press &lt;Enter&gt; to send</span>`,
		`&lt;b onclick=&#34;x()&#34;&gt;button&lt;/b&gt;`,
		` &lt;|&gt; `,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
	if strings.Contains(got, "<b") {
		t.Errorf("markup leaked: %s", got)
	}
}

func TestRender_EscapesPrefix(t *testing.T) {
	segs := []srpreview.Segment{{Kind: srpreview.KindName, Text: "OK"}}
	got := Render(segs, `x" onmouseover="alert(1)`, ", ")
	if strings.Contains(got, `" onmouseover="`) {
		t.Errorf("prefix broke out of the class attribute: %s", got)
	}
}

func TestRender_Truncated(t *testing.T) {
	segs := []srpreview.Segment{{Kind: srpreview.KindValue, Text: "abc", Data: &srpreview.SegmentData{Truncated: true}}}
	if got := Render(segs, "p", ", "); !strings.Contains(got, `data-truncated="true"`) {
		t.Errorf("missing truncated marker: %s", got)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil, "p", ", "); got != "" {
		t.Errorf("got %q", got)
	}
}
