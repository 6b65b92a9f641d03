package inspector

import (
	"html"
	"strings"

	"github.com/hazyhaar/nexus-a11y/srpreview"
)

// Render builds the inspector HTML fragment for segs: one span per segment
// classed "<prefix> <prefix>-<kind>", separated by joiner. Segment text,
// joiner and prefix are HTML-escaped; markup in a name is shown, not run.
func Render(segs []srpreview.Segment, prefix, joiner string) string {
	if len(segs) == 0 {
		return ""
	}
	sep := html.EscapeString(joiner)
	prefix = html.EscapeString(prefix)

	var b strings.Builder
	b.WriteString(`<span class="`)
	b.WriteString(prefix)
	b.WriteString(`-preview">`)
	n := 0
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if n > 0 {
			b.WriteString(sep)
		}
		n++
		b.WriteString(`<span class="`)
		b.WriteString(prefix)
		b.WriteByte(' ')
		b.WriteString(prefix)
		b.WriteByte('-')
		b.WriteString(string(s.Kind))
		b.WriteByte('"')
		if s.Data != nil && s.Data.Truncated {
			b.WriteString(` data-truncated="true"`)
		}
		b.WriteByte('>')
		b.WriteString(html.EscapeString(s.Text))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</span>`)
	return b.String()
}
