package srpreview

import (
	"math"
	"strings"
)

// BuildSegments composes the utterance for d in the order each role
// family emits it. Callers that want announcement order should use
// GenerateSegments, which also sorts by Kind priority.
func BuildSegments(d Descriptor) []Segment {
	if d.Role == "" && d.Name == nil {
		return nil
	}
	if d.Role == "none" || d.Role == "presentation" {
		return nil
	}

	b := &builder{}
	b.add(KindGroup, d.GroupLabel)
	for _, l := range d.GroupLabels {
		b.add(KindMeta, l)
	}

	name := str(d.Name)

	switch d.Role {
	case "heading":
		if lvl, ok := number(d.Level); ok {
			b.add(KindMeta, "Heading level "+formatNumber(lvl))
		} else {
			b.add(KindRole, roleText(d, "heading"))
		}
		b.add(KindName, name)

	case "button":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "button"))
		b.add(KindState, boolState(d.Pressed, "pressed"))
		b.add(KindState, boolState(d.Disabled, "disabled"))
		b.add(KindState, boolState(d.Busy, "busy"))

	case "disclosuretriangle":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "button"))
		b.add(KindState, expandedState(d.Expanded))
		b.add(KindState, boolState(d.Disabled, "disabled"))

	case "link":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "link"))
		b.add(KindState, boolState(d.Visited, "visited"))

	case "textbox", "searchbox":
		b.add(KindName, name)
		b.add(KindRole, fixedRole(d, "edit"))
		b.entryFlags(d)
		b.entryValue(d)
		b.add(KindDescription, meaningfulDescription(d))

	case "combobox":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "combo box"))
		b.add(KindState, expandedState(d.Expanded))
		b.add(KindMeta, popupText(d.HasPopup))
		b.entryFlags(d)
		if active := str(d.ActiveDescendantName); active != "" && active != str(d.Value) {
			b.add(KindMeta, active)
		}
		b.entryValue(d)
		b.add(KindDescription, meaningfulDescription(d))

	case "checkbox", "menuitemcheckbox", "treeitem":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "checkbox"))
		b.add(KindState, checkedState(d.CheckedRaw))
		b.add(KindState, boolState(d.Disabled, "disabled"))
		if d.Role == "treeitem" {
			b.add(KindMeta, ofText(d.PosInSet, d.SetSize))
			b.add(KindState, expandedState(d.Expanded))
		}
		b.activeMarker(d)
		b.add(KindDescription, meaningfulDescription(d))

	case "radio", "menuitemradio":
		sel := d.Selected
		if sel == nil {
			sel = d.CheckedRaw
		}
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "radio button"))
		b.add(KindState, radioState(sel))
		b.add(KindState, boolState(d.Disabled, "disabled"))
		b.activeMarker(d)
		b.add(KindDescription, meaningfulDescription(d))

	case "switch":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "switch"))
		state := switchState(d.CheckedRaw)
		if state == "" {
			switch checkedState(d.CheckedRaw) {
			case "checked":
				state = "on"
			case "unchecked":
				state = "off"
			}
		}
		b.add(KindState, state)

	case "list", "listbox":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "list"))
		if n, ok := firstNumber(d.Length, d.SetSize); ok {
			b.add(KindMeta, "with "+formatNumber(n)+" items")
		}
		b.activeContext(d, d.ItemCount, d.Length, d.SetSize)
		b.add(KindState, boolState(d.Multiselectable, "multi-selectable"))

	case "tree":
		b.activeContext(d, d.ItemCount, d.Length, d.SetSize)
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "tree"))
		if n, ok := firstNumber(d.ItemCount, d.Length, d.SetSize); ok {
			b.add(KindMeta, "with "+formatNumber(n)+" items")
		}
		b.add(KindState, boolState(d.Multiselectable, "multi-selectable"))

	case "listitem", "option":
		fallback := "option"
		if d.Role == "listitem" {
			fallback = "list item"
		}
		pos := d.PosInSet
		if _, ok := number(pos); !ok {
			if idx, ok := number(d.Index); ok {
				pos = idx + 1
			}
		}
		size := d.SetSize
		if _, ok := number(size); !ok {
			size = d.Length
		}
		b.add(KindName, name)
		b.add(KindRole, roleText(d, fallback))
		b.add(KindMeta, ofText(pos, size))
		b.add(KindState, boolState(d.Selected, "selected"))
		b.activeMarker(d)

	case "tablist":
		b.activeContext(d, d.ItemCount)
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "tablist"))

	case "tab":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "tab"))
		b.add(KindState, boolState(d.Selected, "selected"))
		b.activeMarker(d)
		b.add(KindMeta, ofText(d.PosInSet, d.SetSize))

	case "tabpanel":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "tab panel"))
		b.add(KindDescription, meaningfulDescription(d))

	case "table", "grid", "treegrid":
		b.add(KindRole, fixedRole(d, "table"))
		if n, ok := number(d.Rows); ok {
			b.add(KindMeta, formatNumber(n)+" rows")
		}
		if n, ok := number(d.Columns); ok {
			b.add(KindMeta, formatNumber(n)+" columns")
		}
		if len(d.Headers) > 0 {
			b.add(KindMeta, "header: "+d.Headers[0])
		}
		b.add(KindName, name)
		if active := str(d.ActiveDescendantName); active != "" {
			b.add(KindMeta, active)
		} else if truthy(d.ActiveDescendant) {
			b.add(KindMeta, "has active descendant")
		}
		b.add(KindState, boolState(d.Multiselectable, "multi-selectable"))

	case "cell", "gridcell", "rowheader", "columnheader":
		b.add(KindRole, roleText(d, "cell"))
		if pos := ofText(d.RowIndex, d.Rows); pos != "" {
			b.add(KindMeta, "row "+pos)
		}
		if pos := ofText(d.ColIndex, d.Columns); pos != "" {
			b.add(KindMeta, "column "+pos)
		}
		b.add(KindName, name)

	case "progressbar", "slider", "spinbutton", "meter":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, d.Role))
		if now, ok := number(d.ValueNow); ok {
			lo, hasMin := number(d.ValueMin)
			hi, hasMax := number(d.ValueMax)
			b.pushValue(rangeText(now, lo, hi, hasMin, hasMax))
		} else {
			b.pushValue(str(d.Value))
		}
		b.add(KindDescription, meaningfulDescription(d))

	case "alert", "status", "log", "timer", "marquee":
		b.add(KindRole, roleText(d, d.Role))
		b.add(KindName, name)
		b.add(KindDescription, meaningfulDescription(d))
		b.add(KindMeta, str(d.Live))

	case "radiogroup":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "radio group"))
		if sel := str(d.SelectedName); sel != "" {
			b.add(KindMeta, "selected: "+sel)
		} else if idx, ok := number(d.SelectedIndex); ok {
			if count, ok := number(d.ItemCount); ok {
				b.add(KindMeta, "selected "+formatNumber(idx+1)+" of "+formatNumber(count))
			}
		}
		b.activeContext(d, d.ItemCount)

	case "menu", "menubar":
		fallback := "menu"
		if d.Role == "menubar" {
			fallback = "menu bar"
		}
		b.add(KindName, name)
		b.add(KindRole, roleText(d, fallback))
		b.activeContext(d, d.ItemCount)

	case "toolbar":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "toolbar"))
		b.activeContext(d, d.ItemCount)

	case "dialog", "alertdialog":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "dialog"))
		b.add(KindState, boolState(d.Modal, "modal"))
		b.add(KindDescription, meaningfulDescription(d))

	case "navigation", "main", "region", "banner", "complementary", "contentinfo", "form", "article", "feed":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, d.Role))
		if d.Role == "feed" {
			b.activeContext(d, d.ItemCount)
		}

	case "search":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, "search"))

	case "application", "document", "note", "figure", "math",
		"img", "image",
		"tooltip",
		"definition", "term":
		b.add(KindName, name)
		b.add(KindRole, roleText(d, d.Role))
		b.add(KindDescription, meaningfulDescription(d))

	case "row", "rowgroup":
		b.add(KindRole, roleText(d, d.Role))
		b.add(KindName, name)
		if pos := ofText(d.RowIndex, d.Rows); pos != "" {
			b.add(KindMeta, "row "+pos)
		}

	case "scrollbar":
		b.add(KindRole, roleText(d, "scroll bar"))
		now, hasNow := number(d.ValueNow)
		lo, hasMin := number(d.ValueMin)
		hi, hasMax := number(d.ValueMax)
		if hasNow && hasMin && hasMax && hi > lo {
			b.pushValue(formatNumber(math.Floor((now-lo)/(hi-lo)*100+0.5)) + "%")
		} else if hasNow {
			b.pushValue(formatNumber(now))
		}
		b.add(KindMeta, orientationText(d.Orientation))

	case "separator":
		b.add(KindRole, roleText(d, "separator"))
		b.add(KindMeta, orientationText(d.Orientation))
		if now, ok := number(d.ValueNow); ok {
			b.pushValue(formatNumber(now))
		}

	default:
		b.fallback(d, name)
	}

	return b.segs
}

func (b *builder) fallback(d Descriptor, name string) {
	b.add(KindName, name)
	b.add(KindRole, RoleLabel(d))
	b.add(KindState, boolState(d.Disabled, "disabled"))
	b.add(KindState, boolState(d.Readonly, "readonly"))
	b.add(KindState, boolState(d.Required, "required"))
	b.add(KindState, invalidState(d.Invalid))
	b.add(KindState, expandedState(d.Expanded))
	b.add(KindState, boolState(d.Selected, "selected"))
	b.add(KindState, boolState(d.Pressed, "pressed"))
	b.add(KindState, boolState(d.Hidden, "hidden"))
	b.add(KindState, boolState(d.Multiline, "multiline"))
	b.add(KindState, boolState(d.Multiselectable, "multi-selectable"))
	b.add(KindState, boolState(d.Modal, "modal"))
	b.add(KindState, currentState(d.Current))
	b.add(KindDescription, meaningfulDescription(d))
	b.activeMarker(d)
	b.add(KindMeta, orientationText(d.Orientation))
	if ac := str(d.Autocomplete); ac != "" {
		b.add(KindMeta, "autocomplete "+ac)
	}
	if ph := str(d.Placeholder); ph != "" && name == "" {
		b.add(KindMeta, "placeholder "+ph)
	}
}

// entryFlags emits the validation flags shared by editable fields.
func (b *builder) entryFlags(d Descriptor) {
	b.add(KindState, boolState(d.Required, "required"))
	b.add(KindState, boolState(d.Readonly, "readonly"))
	b.add(KindState, invalidState(d.Invalid))
}

// entryValue announces "empty" for an explicitly empty value.
func (b *builder) entryValue(d Descriptor) {
	if s, ok := d.Value.(string); ok && s == "" {
		b.add(KindState, "empty")
		return
	}
	b.pushValue(str(d.Value))
}

func (b *builder) activeMarker(d Descriptor) {
	active, ok := text(d.ActiveDescendant)
	if !ok || active == "" {
		return
	}
	if id, ok := text(d.ID); ok && id == active {
		b.add(KindState, "active")
	}
}

// activeContext describes the active descendant of a container. counts
// are tried in order for the "item X of Y" form.
func (b *builder) activeContext(d Descriptor, counts ...any) {
	if active := str(d.ActiveDescendantName); active != "" {
		b.add(KindMeta, active)
		return
	}
	if idx, ok := number(d.ActiveIndex); ok {
		if count, ok := firstNumber(counts...); ok {
			b.add(KindMeta, "item "+formatNumber(idx+1)+" of "+formatNumber(count))
			return
		}
	}
	if truthy(d.ActiveDescendant) {
		b.add(KindMeta, "has active descendant")
	}
}

// fixedRole announces word for the whole role family unless the author
// supplied a roledescription.
func fixedRole(d Descriptor, word string) string {
	if rd := str(d.RoleDescription); strings.TrimSpace(rd) != "" {
		return rd
	}
	return word
}

func roleText(d Descriptor, fallback string) string {
	if l := RoleLabel(d); l != "" {
		return l
	}
	return fallback
}

// ofText renders "idx of size" when both are numeric.
func ofText(idx, size any) string {
	i, ok := number(idx)
	if !ok {
		return ""
	}
	n, ok := number(size)
	if !ok {
		return ""
	}
	return formatNumber(i) + " of " + formatNumber(n)
}

func firstNumber(vs ...any) (float64, bool) {
	for _, v := range vs {
		if f, ok := number(v); ok {
			return f, true
		}
	}
	return 0, false
}

func popupText(v any) string {
	s, ok := v.(string)
	if !ok || s == "" || s == "false" {
		return ""
	}
	if s == "true" {
		s = "menu"
	}
	return "popup " + s
}

func orientationText(v any) string {
	switch s := str(v); s {
	case "vertical", "horizontal":
		return s
	}
	return ""
}
