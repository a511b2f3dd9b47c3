package layout

import (
	"fmt"
	"strings"

	"github.com/matheus3301/keyview/internal/keycode"
)

// Descriptor describes one slot of a keyboard row: a key or a spacer.
type Descriptor struct {
	Code  keycode.Code // keycode.None for a spacer
	Label string       // may hold one '\n' for a two-line legend
	Width float64      // in key units
}

// IsSpacer reports whether d is a layout-only gap.
func (d Descriptor) IsSpacer() bool {
	return d.Code == keycode.None
}

// ValidationError locates a malformed descriptor.
type ValidationError struct {
	Row, Col int
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("layout row %d col %d: %s", e.Row, e.Col, e.Reason)
}

// Validate checks the layout invariants: positive widths, distinct key
// codes, at most one line break per label and no labels on spacers.
func Validate(rows [][]Descriptor) error {
	seen := make(map[keycode.Code][2]int)
	for r, row := range rows {
		for c, d := range row {
			if !(d.Width > 0) {
				return &ValidationError{Row: r, Col: c, Reason: fmt.Sprintf("width %v must be > 0", d.Width)}
			}
			if d.IsSpacer() {
				if d.Label != "" {
					return &ValidationError{Row: r, Col: c, Reason: "spacer has a label"}
				}
				continue
			}
			if strings.Count(d.Label, "\n") > 1 {
				return &ValidationError{Row: r, Col: c, Reason: fmt.Sprintf("label %q has more than one line break", d.Label)}
			}
			if at, dup := seen[d.Code]; dup {
				return &ValidationError{Row: r, Col: c, Reason: fmt.Sprintf("key %s already placed at row %d col %d", d.Code, at[0], at[1])}
			}
			seen[d.Code] = [2]int{r, c}
		}
	}
	return nil
}

// Count returns the number of keys and spacers across all rows.
func Count(rows [][]Descriptor) (keys, spacers int) {
	for _, row := range rows {
		for _, d := range row {
			if d.IsSpacer() {
				spacers++
			} else {
				keys++
			}
		}
	}
	return keys, spacers
}

// Resolve returns the built-in layout when path is empty and the layout
// stored at path otherwise.
func Resolve(path string) ([][]Descriptor, error) {
	if path == "" {
		return Build(), nil
	}
	return LoadFile(path)
}

// Format renders rows as text, one line per row. Spacers print as '·' and
// two-line labels are joined with '/'.
func Format(rows [][]Descriptor) string {
	var sb strings.Builder
	for _, row := range rows {
		for i, d := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if d.IsSpacer() {
				sb.WriteString("·")
				continue
			}
			label := strings.ReplaceAll(d.Label, "\n", "/")
			if d.Width != 1 {
				fmt.Fprintf(&sb, "[%s %gu]", label, d.Width)
			} else {
				fmt.Fprintf(&sb, "[%s]", label)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
