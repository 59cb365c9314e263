package eval

import "fmt"

// Field implements the single dispatch rule shared by every Value (spec.md
// §4.A): a Struct looks up a stored key; a Scope looks up a declared
// variable by name, falling through to its type's methods if the name
// isn't a variable; a Type looks up in that type's own methods; a List
// indexes by integer (negative indices count from the end) or, when asked
// by name, dispatches to a list method; a Dict looks up by key using Value
// equality/hashing, or dispatches to a dict method when the key is a
// string not present in the dict; every other kind routes straight to
// value_type().fields(). Grounded on value/mod.rs's Value::field(), with
// List/Dict indexing layered on top since this port's GetItem conflates
// member access and container indexing into one key-based lookup where the
// original keeps them as separate operations.
func (v Value) Field(key Value) (Value, error) {
	switch v.kind {
	case KindStruct:
		name, ok := key.AsString()
		if !ok {
			return Value{}, fmt.Errorf("%w: struct field name must be a string", ErrInvalidData)
		}
		s, _ := v.AsStruct()
		fv, ok := s.Get(name)
		if !ok {
			return Value{}, fmt.Errorf("%w: no such field %q", ErrInvalidData, name)
		}
		return fv, nil

	case KindList:
		if name, ok := key.AsString(); ok {
			if cmd, ok := v.Type().Fields().Get(name); ok {
				return NewCommand(cmd), nil
			}
		}
		idx, ok := key.AsInteger()
		if !ok {
			return Value{}, fmt.Errorf("%w: list index must be an integer", ErrInvalidData)
		}
		l, _ := v.AsList()
		i := int(idx.Int64())
		if i < 0 {
			i += l.Len()
		}
		item, ok := l.Get(i)
		if !ok {
			return Value{}, fmt.Errorf("%w: list index %d out of range", ErrInvalidData, i)
		}
		return item, nil

	case KindDict:
		d, _ := v.AsDict()
		val, ok, err := d.Get(key)
		if err != nil {
			return Value{}, err
		}
		if ok {
			return val, nil
		}
		if name, ok := key.AsString(); ok {
			if cmd, ok := v.Type().Fields().Get(name); ok {
				return NewCommand(cmd), nil
			}
		}
		return Value{}, fmt.Errorf("%w: no such key %s", ErrInvalidData, key.String())

	case KindScope:
		name, ok := key.AsString()
		if !ok {
			return Value{}, fmt.Errorf("%w: scope field name must be a string", ErrInvalidData)
		}
		sc, _ := v.AsScope()
		if val, ok := sc.Get(name); ok {
			return val, nil
		}
		if cmd, ok := v.Type().Fields().Get(name); ok {
			return NewCommand(cmd), nil
		}
		return Value{}, fmt.Errorf("%w: unknown variable %q", ErrGeneric, name)

	case KindType:
		name, ok := key.AsString()
		if !ok {
			return Value{}, fmt.Errorf("%w: type field name must be a string", ErrInvalidData)
		}
		t, _ := v.AsType()
		cmd, ok := t.Fields().Get(name)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s has no method %q", ErrInvalidData, t.String(), name)
		}
		return NewCommand(cmd), nil

	default:
		name, ok := key.AsString()
		if ok {
			if cmd, ok := v.Type().Fields().Get(name); ok {
				return NewCommand(cmd), nil
			}
		}
		return Value{}, fmt.Errorf("%w: %s has no fields", ErrInvalidData, v.kind)
	}
}
