package srpreview

// Kind classifies a segment of a screen-reader utterance.
type Kind string

const (
	KindGroup       Kind = "group"
	KindName        Kind = "name"
	KindRole        Kind = "role"
	KindState       Kind = "state"
	KindValue       Kind = "value"
	KindMeta        Kind = "meta"
	KindDescription Kind = "description"
)

var kindPriority = map[Kind]int{
	KindGroup:       0,
	KindName:        1,
	KindRole:        2,
	KindState:       3,
	KindValue:       4,
	KindMeta:        5,
	KindDescription: 6,
}

// Priority is the announcement rank of k. Unknown kinds sort last.
func (k Kind) Priority() int {
	if p, ok := kindPriority[k]; ok {
		return p
	}
	return len(kindPriority)
}

// Segment is one labelled piece of an utterance.
type Segment struct {
	Kind Kind         `json:"kind"`
	Text string       `json:"text"`
	Data *SegmentData `json:"data,omitempty"`
}

// SegmentData carries optional rendering hints.
type SegmentData struct {
	Truncated bool `json:"truncated,omitempty"`
}

// maxValueRunes caps value text announced through pushValue.
const maxValueRunes = 200

// builder accumulates segments for a single synthesis call.
type builder struct {
	segs   []Segment
	states map[string]bool
}

func (b *builder) add(kind Kind, text string) {
	b.addData(kind, text, nil)
}

func (b *builder) addData(kind Kind, text string, data *SegmentData) {
	if text == "" {
		return
	}
	if kind == KindState {
		if b.states[text] {
			return
		}
		if b.states == nil {
			b.states = make(map[string]bool)
		}
		b.states[text] = true
	}
	b.segs = append(b.segs, Segment{Kind: kind, Text: text, Data: data})
}

// pushValue emits a value segment, truncating long text.
func (b *builder) pushValue(text string) {
	r := []rune(text)
	if len(r) > maxValueRunes {
		b.addData(KindValue, string(r[:maxValueRunes]), &SegmentData{Truncated: true})
		return
	}
	b.add(KindValue, text)
}
