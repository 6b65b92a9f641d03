package inspector

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyInput is returned when a request carries no node.
	ErrEmptyInput = errors.New("inspector: empty input")

	// ErrDecode wraps JSON/YAML decoding failures.
	ErrDecode = errors.New("inspector: decode")

	// ErrTooLarge is returned by ReadLimited when input exceeds the cap.
	ErrTooLarge = errors.New("inspector: input too large")
)

// ReadLimited reads at most maxBytes from r. maxBytes <= 0 disables the cap.
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}

// Format is an input document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// FormatForContentType picks YAML for yaml media types and JSON otherwise.
func FormatForContentType(ct string) Format {
	if strings.Contains(strings.ToLower(ct), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// DecodeNodes decodes one node object or an array of nodes.
func DecodeNodes(data []byte, f Format) ([]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var doc any
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, f, err)
	}

	switch v := doc.(type) {
	case nil:
		return nil, ErrEmptyInput
	case []any:
		return v, nil
	case map[string]any:
		return []any{v}, nil
	}
	return nil, fmt.Errorf("%w: expected an object or an array, got %T", ErrDecode, doc)
}

// DecodeNode decodes exactly one node object. A one-element array is accepted.
func DecodeNode(data []byte, f Format) (any, error) {
	nodes, err := DecodeNodes(data, f)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: expected a single node object, got %d", ErrDecode, len(nodes))
	}
	if _, ok := nodes[0].(map[string]any); !ok {
		return nil, fmt.Errorf("%w: expected a single node object", ErrDecode)
	}
	return nodes[0], nil
}
