package format

import (
	"errors"
	"io"

	"github.com/dhamidi/derive/parse"
)

// BracketEncoder prints a tree on one line, e.g. (S (A a) (B b)).
type BracketEncoder struct {
	w    io.Writer
	tree *parse.Node
}

func NewBracketEncoder(w io.Writer) *BracketEncoder {
	return &BracketEncoder{w: w}
}

func (e *BracketEncoder) Encode(tree *parse.Node) error {
	e.tree = tree
	return encode(e.w, e)
}

func (e *BracketEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errors.New("no tree to encode")
	}
	return []byte(e.tree.String() + "\n"), nil
}
