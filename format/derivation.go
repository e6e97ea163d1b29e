package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/derive/derivation"
)

// Arrow separates consecutive sentential forms.
const Arrow = " ⇒ "

// Derivation renders d on one line: S ⇒ A B ⇒ a B ⇒ a b.
func Derivation(d *derivation.Derivation) string {
	words := d.Words()
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.String()
	}
	return strings.Join(parts, Arrow)
}

// WriteDerivation writes d one step per line with the rule applied and
// the position it was applied at.
func WriteDerivation(w io.Writer, d *derivation.Derivation) error {
	for i, step := range d.All() {
		var err error
		switch s := step.(type) {
		case derivation.Initial:
			_, err = fmt.Fprintf(w, "%3d  %s\n", i, s.Word)
		case derivation.Rewrite:
			_, err = fmt.Fprintf(w, "%3d  %s    [%s at %d]\n", i, s.Word, s.Rule, s.Index)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
