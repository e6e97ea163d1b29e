// Package format renders parse trees and derivations.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/derive/parse"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *parse.Node) error
}

// Names lists the encoders NewEncoder knows.
var Names = []string{"tree", "json", "bracket"}

// NewEncoder returns the encoder called name writing to w. style only
// applies to the tree encoder.
func NewEncoder(name string, w io.Writer, style *Style) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w).WithStyle(style), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "bracket":
		return NewBracketEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

// encode is the shared Encode body: marshal, then write.
func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
