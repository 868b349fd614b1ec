package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads one serialized syntax tree from r and returns its root.
//
// A malformed document is an input-contract violation with the front
// end and surfaces as a Go error, not as a semantic diagnostic.
func Decode(r io.Reader) (*Node, error) {
	var root Node
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode syntax tree: %w", err)
	}
	if root.Kind == "" {
		return nil, fmt.Errorf("syntax tree root has no kind")
	}
	return &root, nil
}

// LoadFile decodes the syntax tree stored at path.
func LoadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open syntax tree %s: %w", path, err)
	}
	defer f.Close()

	root, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
