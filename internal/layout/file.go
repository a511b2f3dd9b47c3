package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/keyview/internal/keycode"
)

type fileLayout struct {
	Rows []fileRow `toml:"row"`
}

type fileRow struct {
	Keys []fileKey `toml:"keys"`
}

type fileKey struct {
	Code  string  `toml:"code"`
	Label string  `toml:"label"`
	Width float64 `toml:"width"`
	Gap   float64 `toml:"gap"`
}

// LoadFile reads a layout from a TOML file of the form
//
//	[[row]]
//	keys = [{ code = "ESC", label = "ESC" }, { gap = 0.5 }, { code = "F1" }]
//
// A missing width is one unit and a missing label is the key name.
// The result is validated before it is returned.
func LoadFile(path string) ([][]Descriptor, error) {
	var fl fileLayout
	md, err := toml.DecodeFile(path, &fl)
	if err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("layout %s: unknown field %q", path, undecoded[0].String())
	}
	if len(fl.Rows) == 0 {
		return nil, fmt.Errorf("layout %s: no rows", path)
	}

	rows := make([][]Descriptor, 0, len(fl.Rows))
	for r, fr := range fl.Rows {
		row := make([]Descriptor, 0, len(fr.Keys))
		for c, fk := range fr.Keys {
			d, err := fk.descriptor()
			if err != nil {
				return nil, fmt.Errorf("layout %s: %w", path, &ValidationError{Row: r, Col: c, Reason: err.Error()})
			}
			row = append(row, d)
		}
		rows = append(rows, row)
	}

	if err := Validate(rows); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return rows, nil
}

func (fk fileKey) descriptor() (Descriptor, error) {
	if fk.Code == "" {
		if fk.Gap == 0 {
			return Descriptor{}, fmt.Errorf("entry needs either code or gap")
		}
		if fk.Label != "" || fk.Width != 0 {
			return Descriptor{}, fmt.Errorf("gap entries take no label or width")
		}
		return gap(fk.Gap), nil
	}
	if fk.Gap != 0 {
		return Descriptor{}, fmt.Errorf("entry %q has both code and gap", fk.Code)
	}

	code, err := keycode.Parse(fk.Code)
	if err != nil {
		return Descriptor{}, err
	}
	d := Descriptor{Code: code, Label: fk.Label, Width: fk.Width}
	if d.Label == "" {
		d.Label = code.String()
	}
	if d.Width == 0 {
		d.Width = 1
	}
	return d, nil
}
