package srpreview

import "strings"

// Node is the loosely-shaped accessibility node accepted by Extract.
// It is usually the result of decoding a CDP AXNode or a DOM-computed
// fallback object from JSON or YAML.
type Node = map[string]any

// accessor reads one candidate location of a field on a raw node.
type accessor func(Node) (any, bool)

// prop reads a top-level key.
func prop(key string) accessor {
	return func(n Node) (any, bool) {
		v, ok := n[key]
		return v, ok && v != nil
	}
}

// nested reads outer.inner, one level deep.
func nested(outer, inner string) accessor {
	return func(n Node) (any, bool) {
		m, ok := asNode(n[outer])
		if !ok {
			return nil, false
		}
		v, ok := m[inner]
		return v, ok && v != nil
	}
}

// axProp reads a named entry of a CDP properties array:
// [{"name": "checked", "value": {"type": "tristate", "value": "mixed"}}].
func axProp(name string) accessor {
	return func(n Node) (any, bool) {
		props, ok := n["properties"].([]any)
		if !ok {
			return nil, false
		}
		for _, p := range props {
			pm, ok := asNode(p)
			if !ok || pm["name"] != name {
				continue
			}
			v := pm["value"]
			if vm, ok := asNode(v); ok {
				v = vm["value"]
			}
			return v, v != nil
		}
		return nil, false
	}
}

// scalar accepts only values that render as text, so a wrapper object
// without a usable value falls through to the next candidate.
func scalar(a accessor) accessor {
	return func(n Node) (any, bool) {
		v, ok := a(n)
		if !ok {
			return nil, false
		}
		if _, ok := text(v); !ok {
			return nil, false
		}
		return v, true
	}
}

// first returns the first defined, non-nil candidate.
func first(n Node, candidates ...accessor) any {
	for _, c := range candidates {
		if v, ok := c(n); ok {
			return v
		}
	}
	return nil
}

// flag builds the usual alias list for an ARIA state or property:
// plain key, aria- prefixed key, states.<key>, then the CDP properties array.
func flag(key string, extra ...string) []accessor {
	acc := []accessor{prop(key)}
	for _, e := range extra {
		acc = append(acc, prop(e))
	}
	return append(acc,
		prop("aria-"+strings.ToLower(key)),
		nested("states", key),
		nested("properties", key),
		axProp(key),
	)
}

func asNode(v any) (Node, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}
