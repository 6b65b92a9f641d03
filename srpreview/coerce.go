package srpreview

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// text renders a scalar as display text. Maps, slices and nil have no text.
func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case json.Number:
		return t.String(), true
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, ok := number(t)
		if !ok {
			return "", false
		}
		return formatNumber(f), true
	}
	return "", false
}

// str is text without the presence flag.
func str(v any) string {
	s, _ := text(v)
	return s
}

// number coerces a non-nil, non-empty value to a finite float64.
// Booleans are not numbers.
func number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		p, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isTrue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

func isFalse(v any) bool {
	switch t := v.(type) {
	case bool:
		return !t
	case string:
		return t == "false"
	}
	return false
}

// truthy mirrors loose truthiness: nil, false, "", 0 and NaN are falsy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	// Non-finite numbers land here too; NaN is falsy, infinities are not.
	if f, ok := v.(float64); ok {
		return !math.IsNaN(f)
	}
	return true
}

func checkedState(raw any) string {
	if s, ok := raw.(string); ok && s == "mixed" {
		return "mixed"
	}
	switch {
	case isTrue(raw):
		return "checked"
	case isFalse(raw):
		return "unchecked"
	}
	return ""
}

func radioState(selected any) string {
	switch {
	case isTrue(selected):
		return "selected"
	case isFalse(selected):
		return "not selected"
	}
	return ""
}

func switchState(raw any) string {
	switch {
	case isTrue(raw):
		return "on"
	case isFalse(raw):
		return "off"
	}
	return ""
}

// expandedState unwraps exactly one {value: ...} wrapper.
func expandedState(expanded any) string {
	if m, ok := asNode(expanded); ok {
		expanded = m["value"]
	}
	switch {
	case isTrue(expanded):
		return "expanded"
	case isFalse(expanded):
		return "collapsed"
	}
	return ""
}

func boolState(v any, word string) string {
	if isTrue(v) {
		return word
	}
	return ""
}

func invalidState(v any) string {
	if s, ok := v.(string); ok && (s == "grammar" || s == "spelling") {
		return "invalid " + s
	}
	return boolState(v, "invalid")
}

func currentState(v any) string {
	if !truthy(v) || isFalse(v) {
		return ""
	}
	if isTrue(v) {
		return "current"
	}
	return "current " + str(v)
}

var placeholderDescriptions = map[string]bool{
	"(no description)":            true,
	"(no accessible description)": true,
	"no description":              true,
}

// meaningfulDescription returns the description if it is worth announcing.
func meaningfulDescription(d Descriptor) string {
	desc := str(d.Description)
	if desc == "" {
		return ""
	}
	if placeholderDescriptions[strings.ToLower(strings.TrimSpace(desc))] {
		return ""
	}
	if desc == str(d.Name) {
		return ""
	}
	return desc
}

// rangeText formats aria-valuenow against its bounds.
func rangeText(now, lo, hi float64, hasMin, hasMax bool) string {
	n := formatNumber(now)
	switch {
	case hasMin && hasMax && hi > lo:
		pct := formatNumber(math.Floor((now-lo)/(hi-lo)*100 + 0.5))
		if lo == 0 {
			return n + " of " + formatNumber(hi) + " (" + pct + "%)"
		}
		return n + " (range " + formatNumber(lo) + " to " + formatNumber(hi) + ", " + pct + "%)"
	case hasMax && !hasMin:
		return n + " (max " + formatNumber(hi) + ")"
	case hasMin && !hasMax:
		return n + " (min " + formatNumber(lo) + ")"
	}
	return n
}
