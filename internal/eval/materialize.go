package eval

import "io"

// Materialize drains any stream payload (TableStream, BinaryStream) into an
// in-memory equivalent (Table, Binary), recursing into container values so
// that a Table/List/Dict/Struct containing streams comes back fully
// resolved. It is idempotent: materializing an already-materialized Value
// returns it unchanged. Grounded on value/mod.rs's materialize().
func (v Value) Materialize() (Value, error) {
	switch v.kind {
	case KindTableStream:
		r, _ := v.AsTableStream()
		var rows []Row
		for {
			row, err := r.Recv()
			if err == ErrEndOfStream {
				break
			}
			if err != nil {
				return Value{}, err
			}
			mrow := make(Row, len(row))
			for i, cell := range row {
				mv, err := cell.Materialize()
				if err != nil {
					return Value{}, err
				}
				mrow[i] = mv
			}
			rows = append(rows, mrow)
		}
		return NewTable(NewTableData(r.Columns(), rows)), nil

	case KindBinaryStream:
		r, _ := v.AsBinaryStream()
		data, err := io.ReadAll(r)
		if err != nil {
			return Value{}, err
		}
		_ = r.Close()
		return NewBinary(data), nil

	case KindTable:
		t, _ := v.AsTable()
		rows := make([]Row, len(t.Rows))
		for i, row := range t.Rows {
			mrow := make(Row, len(row))
			for j, cell := range row {
				mv, err := cell.Materialize()
				if err != nil {
					return Value{}, err
				}
				mrow[j] = mv
			}
			rows[i] = mrow
		}
		return NewTable(NewTableData(t.Columns, rows)), nil

	case KindList:
		l, _ := v.AsList()
		items := l.Items()
		out := make([]Value, len(items))
		for i, it := range items {
			mv, err := it.Materialize()
			if err != nil {
				return Value{}, err
			}
			out[i] = mv
		}
		return NewList(NewListData(l.Elem, out)), nil

	case KindDict:
		d, _ := v.AsDict()
		nd := NewDictData(d.Key, d.Val)
		for _, e := range d.Entries() {
			mk, err := e.Key.Materialize()
			if err != nil {
				return Value{}, err
			}
			mv, err := e.Val.Materialize()
			if err != nil {
				return Value{}, err
			}
			if err := nd.Set(mk, mv); err != nil {
				return Value{}, err
			}
		}
		return NewDict(nd), nil

	case KindStruct:
		s, _ := v.AsStruct()
		names := s.Names()
		values := map[string]Value{}
		for _, n := range names {
			fv, _ := s.Get(n)
			mv, err := fv.Materialize()
			if err != nil {
				return Value{}, err
			}
			values[n] = mv
		}
		return NewStruct(NewStructData(names, values)), nil

	default:
		return v, nil
	}
}
