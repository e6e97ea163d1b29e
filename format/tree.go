package format

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/derive/grammar"
	"github.com/dhamidi/derive/parse"
)

// Style colours the tree encoder's output.
type Style struct {
	Variable lipgloss.Style
	Terminal lipgloss.Style
	Branch   lipgloss.Style
}

// DefaultStyle prints variables bold, terminals green and the branch
// lines dimmed.
func DefaultStyle() *Style {
	return &Style{
		Variable: lipgloss.NewStyle().Bold(true),
		Terminal: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Branch:   lipgloss.NewStyle().Faint(true),
	}
}

// TreeEncoder prints one node per line, indented with box drawing:
//
//	S
//	├── A
//	│   └── a
//	└── B
//	    └── b
type TreeEncoder struct {
	w     io.Writer
	style *Style
	tree  *parse.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

// WithStyle sets the style; nil prints plain text.
func (e *TreeEncoder) WithStyle(style *Style) *TreeEncoder {
	e.style = style
	return e
}

func (e *TreeEncoder) Encode(tree *parse.Node) error {
	e.tree = tree
	return encode(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errors.New("no tree to encode")
	}
	var b strings.Builder
	b.WriteString(e.label(e.tree))
	b.WriteByte('\n')
	e.writeChildren(&b, e.tree, "")
	return []byte(b.String()), nil
}

func (e *TreeEncoder) writeChildren(b *strings.Builder, n *parse.Node, prefix string) {
	for i, child := range n.Children {
		branch, indent := "├── ", "│   "
		if i == len(n.Children)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString(e.branch(prefix + branch))
		b.WriteString(e.label(child))
		b.WriteByte('\n')
		e.writeChildren(b, child, prefix+indent)
	}
}

func (e *TreeEncoder) label(n *parse.Node) string {
	name := n.Symbol.Name
	if n.IsEmpty() {
		name += " " + grammar.Epsilon
	}
	if e.style == nil {
		return name
	}
	if n.Symbol.IsTerminal() {
		return e.style.Terminal.Render(name)
	}
	return e.style.Variable.Render(name)
}

func (e *TreeEncoder) branch(s string) string {
	if e.style == nil {
		return s
	}
	return e.style.Branch.Render(s)
}
