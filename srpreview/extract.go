package srpreview

// Descriptor is the canonical view of one accessibility node. Role is
// normalized; the other fields keep the loose value found on the node
// (bool, "true"/"false", number, numeric string, or a {value: ...} wrapper)
// and are nil when absent.
type Descriptor struct {
	Role            string
	RoleDescription any
	Name            any
	Description     any
	Value           any
	Level           any

	CheckedRaw      any
	Pressed         any
	Selected        any
	Expanded        any
	HasPopup        any
	Orientation     any
	Multiline       any
	Multiselectable any
	Autocomplete    any
	Modal           any
	Current         any
	Placeholder     any
	Hidden          any
	Disabled        any
	Readonly        any
	Required        any
	Invalid         any
	Busy            any
	Live            any
	Visited         any

	Rows     any
	Columns  any
	RowIndex any
	ColIndex any
	Headers  []string

	Length   any
	Index    any
	PosInSet any
	SetSize  any

	ValueMin any
	ValueMax any
	ValueNow any

	ActiveDescendant     any
	ActiveDescendantName any
	ActiveIndex          any
	ItemCount            any

	GroupLabels []string
	GroupLabel  string

	ID            any
	SelectedIndex any
	SelectedName  any
}

var (
	nameFields = []accessor{scalar(nested("name", "value")), scalar(prop("name")), scalar(prop("accessibleName")), scalar(prop("label"))}
	idFields   = []accessor{prop("id"), prop("nodeId"), prop("axId")}
)

// Extract normalizes a raw node into a Descriptor. Non-map input yields
// the zero Descriptor. Extract never fails; unreadable fields stay nil.
func Extract(node any) Descriptor {
	n, ok := asNode(node)
	if !ok {
		return Descriptor{}
	}

	d := Descriptor{
		Role:            NormalizeRole(str(first(n, nested("role", "value"), prop("role"), prop("computedRole")))),
		RoleDescription: first(n, prop("roledescription"), prop("roleDescription"), prop("aria-roledescription"), axProp("roledescription")),
		Name:            first(n, nameFields...),
		Description:     first(n, nested("description", "value"), prop("description"), prop("accessibleDescription"), prop("aria-description")),
		Value:           first(n, nested("value", "value"), prop("value"), prop("aria-valuetext")),
		Level:           first(n, flag("level")...),

		CheckedRaw:      first(n, flag("checked")...),
		Pressed:         first(n, flag("pressed")...),
		Selected:        first(n, flag("selected")...),
		Expanded:        first(n, flag("expanded")...),
		HasPopup:        first(n, flag("hasPopup", "haspopup")...),
		Orientation:     first(n, flag("orientation")...),
		Multiline:       first(n, flag("multiline")...),
		Multiselectable: first(n, flag("multiselectable", "multiSelectable")...),
		Autocomplete:    first(n, flag("autocomplete")...),
		Modal:           first(n, flag("modal")...),
		Current:         first(n, flag("current")...),
		Placeholder:     first(n, flag("placeholder")...),
		Hidden:          first(n, flag("hidden")...),
		Disabled:        first(n, flag("disabled")...),
		Readonly:        first(n, flag("readonly", "readOnly")...),
		Required:        first(n, flag("required")...),
		Invalid:         first(n, flag("invalid")...),
		Busy:            first(n, flag("busy")...),
		Live:            first(n, flag("live")...),
		Visited:         first(n, flag("visited")...),

		Rows:     first(n, prop("rows"), prop("rowCount"), prop("aria-rowcount")),
		Columns:  first(n, prop("columns"), prop("colCount"), prop("aria-colcount")),
		RowIndex: first(n, prop("rowIndex"), prop("aria-rowindex")),
		ColIndex: first(n, prop("colIndex"), prop("aria-colindex")),
		Headers:  textList(n["headers"]),

		Length:   first(n, prop("length"), prop("size")),
		Index:    first(n, prop("index")),
		PosInSet: first(n, prop("posInSet"), prop("posinset"), prop("aria-posinset"), axProp("posinset")),
		SetSize:  first(n, prop("setSize"), prop("setsize"), prop("aria-setsize"), axProp("setsize")),

		ValueMin: first(n, prop("valueMin"), prop("valuemin"), prop("aria-valuemin"), axProp("valuemin")),
		ValueMax: first(n, prop("valueMax"), prop("valuemax"), prop("aria-valuemax"), axProp("valuemax")),
		ValueNow: first(n, prop("valueNow"), prop("valuenow"), prop("aria-valuenow"), axProp("valuenow")),

		ActiveDescendant: first(n, prop("activeDescendant"), prop("activedescendant"), prop("aria-activedescendant"), axProp("activedescendant")),
		ActiveIndex:      first(n, prop("activeIndex")),
		ItemCount:        first(n, prop("itemCount")),

		GroupLabels: textList(n["groupLabels"]),

		ID:            first(n, idFields...),
		SelectedIndex: first(n, prop("selectedIndex")),
		SelectedName:  first(n, prop("selectedName")),
	}

	if g, ok := asNode(n["group"]); ok {
		d.GroupLabel = str(g["label"])
	}

	d.ActiveDescendantName = first(n, prop("activeDescendantName"))
	if d.ActiveDescendantName == nil {
		d.ActiveDescendantName = activeDescendantName(n, d.ActiveDescendant)
	}
	return d
}

// activeDescendantName resolves the name of the active descendant from,
// in order, the descendant object itself, an activeDescendantNode sibling,
// or a child whose id matches.
func activeDescendantName(n Node, active any) any {
	if m, ok := asNode(active); ok {
		if name := first(m, nameFields...); name != nil {
			return name
		}
	}
	if m, ok := asNode(n["activeDescendantNode"]); ok {
		if name := first(m, nameFields...); name != nil {
			return name
		}
	}
	id, ok := text(active)
	if !ok || id == "" {
		return nil
	}
	children, _ := n["children"].([]any)
	for _, c := range children {
		cm, ok := asNode(c)
		if !ok {
			continue
		}
		for _, acc := range idFields {
			if v, ok := acc(cm); ok && str(v) == id {
				return first(cm, nameFields...)
			}
		}
	}
	return nil
}

// textList keeps the text entries of an array; objects contribute their name.
func textList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return append([]string(nil), ss...)
		}
		return nil
	}
	var out []string
	for _, e := range arr {
		if m, ok := asNode(e); ok {
			e = first(m, nameFields...)
		}
		if s, ok := text(e); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
