package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/derive/parse"
)

type JSONEncoder struct {
	w    io.Writer
	tree *parse.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *parse.Node) error {
	e.tree = tree
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errors.New("no tree to encode")
	}
	data, err := json.MarshalIndent(buildNode(e.tree), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type jsonNode struct {
	Symbol   string     `json:"symbol"`
	Kind     string     `json:"kind"`
	Children []jsonNode `json:"children,omitempty"`
}

func buildNode(n *parse.Node) jsonNode {
	node := jsonNode{
		Symbol: n.Symbol.Name,
		Kind:   n.Symbol.Kind.String(),
	}
	for _, child := range n.Children {
		node.Children = append(node.Children, buildNode(child))
	}
	return node
}
