package eval

import (
	"bytes"
	"fmt"
)

// Less implements a strict weak ordering within a single variant; comparing
// Values of different Kinds is an error, and several variants (Empty,
// Regex, Scope, Command, Type, the two stream kinds) have no ordering at
// all. Grounded on value/mod.rs's PartialOrd impl: same-variant only.
// Lists compare lexicographically by delegating to their elements' own
// ordering; Tables, Dicts and Structs compare their sizes (row, entry or
// field count) first, and only equal-sized ones are compared element by
// element, so they are not ordered lexicographically.
func (v Value) Less(other Value) (bool, error) {
	if v.kind != other.kind {
		return false, fmt.Errorf("%w: cannot order %s against %s", ErrInvalidData, v.kind, other.kind)
	}

	switch v.kind {
	case KindString:
		a, _ := v.AsString()
		b, _ := other.AsString()
		return a < b, nil
	case KindInteger:
		a, _ := v.AsInteger()
		b, _ := other.AsInteger()
		return a.Cmp(b) < 0, nil
	case KindFloat:
		a, _ := v.AsFloat()
		b, _ := other.AsFloat()
		return a < b, nil
	case KindBool:
		a, _ := v.AsBool()
		b, _ := other.AsBool()
		return !a && b, nil
	case KindTime:
		a, _ := v.AsTime()
		b, _ := other.AsTime()
		return a.Before(b), nil
	case KindDuration:
		a, _ := v.AsDuration()
		b, _ := other.AsDuration()
		return a < b, nil
	case KindField:
		a, _ := v.AsField()
		b, _ := other.AsField()
		return lessStringSlice(a, b), nil
	case KindGlob:
		a, _ := v.AsGlob()
		b, _ := other.AsGlob()
		return a < b, nil
	case KindFile:
		a, _ := v.AsFile()
		b, _ := other.AsFile()
		return a < b, nil
	case KindBinary:
		a, _ := v.AsBinary()
		b, _ := other.AsBinary()
		return bytes.Compare(a, b) < 0, nil
	case KindList:
		a, _ := v.AsList()
		b, _ := other.AsList()
		return lessList(a, b)
	case KindTable:
		a, _ := v.AsTable()
		b, _ := other.AsTable()
		return lessTable(a, b)
	case KindDict:
		a, _ := v.AsDict()
		b, _ := other.AsDict()
		return lessDict(a, b)
	case KindStruct:
		a, _ := v.AsStruct()
		b, _ := other.AsStruct()
		return lessStruct(a, b)
	default:
		return false, fmt.Errorf("%w: %s has no ordering", ErrInvalidData, v.kind)
	}
}

func lessStringSlice(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func lessList(a, b *ListData) (bool, error) {
	ai, bi := a.Items(), b.Items()
	for i := 0; i < len(ai) && i < len(bi); i++ {
		if ai[i].Equal(bi[i]) {
			continue
		}
		return ai[i].Less(bi[i])
	}
	return len(ai) < len(bi), nil
}

func lessTable(a, b *TableData) (bool, error) {
	if len(a.Rows) != len(b.Rows) {
		return len(a.Rows) < len(b.Rows), nil
	}
	for i := range a.Rows {
		for j := range a.Rows[i] {
			if a.Rows[i][j].Equal(b.Rows[i][j]) {
				continue
			}
			return a.Rows[i][j].Less(b.Rows[i][j])
		}
	}
	return false, nil
}

func lessDict(a, b *DictData) (bool, error) {
	ae, be := a.Entries(), b.Entries()
	if len(ae) != len(be) {
		return len(ae) < len(be), nil
	}
	for i := range ae {
		if !ae[i].Key.Equal(be[i].Key) {
			return ae[i].Key.Less(be[i].Key)
		}
		if ae[i].Val.Equal(be[i].Val) {
			continue
		}
		return ae[i].Val.Less(be[i].Val)
	}
	return false, nil
}

func lessStruct(a, b *StructData) (bool, error) {
	an, bn := a.Names(), b.Names()
	if len(an) != len(bn) {
		return len(an) < len(bn), nil
	}
	for i := range an {
		if an[i] != bn[i] {
			return an[i] < bn[i], nil
		}
		av, _ := a.Get(an[i])
		bv, _ := b.Get(bn[i])
		if av.Equal(bv) {
			continue
		}
		return av.Less(bv)
	}
	return false, nil
}
