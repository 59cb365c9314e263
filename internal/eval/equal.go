package eval

import (
	"bytes"
	"path/filepath"
)

// Equal implements Value equality: same-variant structural equality, plus
// the one documented cross-variant exception (a File equals a String when
// their canonicalized paths match), and false for every other cross-variant
// comparison. Grounded on value/mod.rs's PartialEq impl.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		if (v.kind == KindFile && other.kind == KindString) || (v.kind == KindString && other.kind == KindFile) {
			return canonicalPath(v.String()) == canonicalPath(other.String())
		}
		return false
	}

	switch v.kind {
	case KindString:
		a, _ := v.AsString()
		b, _ := other.AsString()
		return a == b
	case KindInteger:
		a, _ := v.AsInteger()
		b, _ := other.AsInteger()
		return a.Cmp(b) == 0
	case KindFloat:
		a, _ := v.AsFloat()
		b, _ := other.AsFloat()
		return a == b
	case KindBool:
		a, _ := v.AsBool()
		b, _ := other.AsBool()
		return a == b
	case KindTime:
		a, _ := v.AsTime()
		b, _ := other.AsTime()
		return a.Equal(b)
	case KindDuration:
		a, _ := v.AsDuration()
		b, _ := other.AsDuration()
		return a == b
	case KindEmpty:
		return true
	case KindField:
		a, _ := v.AsField()
		b, _ := other.AsField()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case KindGlob:
		a, _ := v.AsGlob()
		b, _ := other.AsGlob()
		return a == b
	case KindRegex:
		a, _, _ := v.AsRegex()
		b, _, _ := other.AsRegex()
		return a == b
	case KindFile:
		a, _ := v.AsFile()
		b, _ := other.AsFile()
		return canonicalPath(a) == canonicalPath(b)
	case KindBinary:
		a, _ := v.AsBinary()
		b, _ := other.AsBinary()
		return bytes.Equal(a, b)
	case KindBinaryStream, KindTableStream:
		// Streams have no snapshot to compare; two stream handles are
		// never considered equal, even to themselves.
		return false
	case KindTable:
		a, _ := v.AsTable()
		b, _ := other.AsTable()
		return tablesEqual(a, b)
	case KindList:
		a, _ := v.AsList()
		b, _ := other.AsList()
		return listsEqual(a, b)
	case KindDict:
		a, _ := v.AsDict()
		b, _ := other.AsDict()
		return dictsEqual(a, b)
	case KindStruct:
		a, _ := v.AsStruct()
		b, _ := other.AsStruct()
		return structsEqual(a, b)
	case KindScope:
		a, _ := v.AsScope()
		b, _ := other.AsScope()
		return a == b
	case KindCommand:
		a, _ := v.AsCommand()
		b, _ := other.AsCommand()
		return a == b
	case KindType:
		a, _ := v.AsType()
		b, _ := other.AsType()
		return typesEqual(a, b)
	default:
		return false
	}
}

func canonicalPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

func tablesEqual(a, b *TableData) bool {
	if a == b {
		return true
	}
	if a.Len() != b.Len() || len(a.Columns) != len(b.Columns) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i].Name != b.Columns[i].Name || !typesEqual(a.Columns[i].Type, b.Columns[i].Type) {
			return false
		}
	}
	for i := range a.Rows {
		for j := range a.Rows[i] {
			if !a.Rows[i][j].Equal(b.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

func listsEqual(a, b *ListData) bool {
	if a == b {
		return true
	}
	ai, bi := a.Items(), b.Items()
	if len(ai) != len(bi) {
		return false
	}
	for i := range ai {
		if !ai[i].Equal(bi[i]) {
			return false
		}
	}
	return true
}

func dictsEqual(a, b *DictData) bool {
	if a == b {
		return true
	}
	ae, be := a.Entries(), b.Entries()
	if len(ae) != len(be) {
		return false
	}
	for _, e := range ae {
		v, ok, err := b.Get(e.Key)
		if err != nil || !ok || !v.Equal(e.Val) {
			return false
		}
	}
	return true
}

func structsEqual(a, b *StructData) bool {
	if a == b {
		return true
	}
	an, bn := a.Names(), b.Names()
	if len(an) != len(bn) {
		return false
	}
	for _, n := range an {
		av, _ := a.Get(n)
		bv, ok := b.Get(n)
		if !ok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

func typesEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindList:
		return typesEqual(a.Elem, b.Elem)
	case KindDict:
		return typesEqual(a.Key, b.Key) && typesEqual(a.Val, b.Val)
	case KindTable, KindTableStream:
		if len(a.Columns) != len(b.Columns) {
			return false
		}
		for i := range a.Columns {
			if a.Columns[i].Name != b.Columns[i].Name || !typesEqual(a.Columns[i].Type, b.Columns[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
