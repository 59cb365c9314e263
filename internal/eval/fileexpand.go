package eval

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileExpand turns a Value used in file-path position into the concrete
// list of paths it denotes: a File/String is passed through literally, a
// Glob is expanded against the filesystem (falling back to the literal
// pattern when nothing matches, the conventional shell behavior), a Regex
// selects the names of the entries in the current directory that it
// matches, and a List expands and concatenates each of its elements. Grounded on
// value/mod.rs's file_expand() per-variant rules.
func (v Value) FileExpand() ([]string, error) {
	switch v.kind {
	case KindFile:
		p, _ := v.AsFile()
		return []string{p}, nil

	case KindString:
		s, _ := v.AsString()
		return []string{s}, nil

	case KindGlob:
		g, _ := v.AsGlob()
		matches, err := filepath.Glob(g)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		if len(matches) == 0 {
			return []string{g}, nil
		}
		return matches, nil

	case KindRegex:
		_, re, _ := v.AsRegex()
		entries, err := os.ReadDir(".")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		var out []string
		for _, e := range entries {
			if re.MatchString(e.Name()) {
				out = append(out, e.Name())
			}
		}
		return out, nil

	case KindList:
		l, _ := v.AsList()
		var out []string
		for _, item := range l.Items() {
			sub, err := item.FileExpand()
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s cannot expand to a file path", ErrInvalidData, v.kind)
	}
}
