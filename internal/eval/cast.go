package eval

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cast converts v to the given target Kind, grounded on value/mod.rs's
// cast(): an identity fast path for a same-kind target, a special-cased
// Integer<->Bool conversion (0 is false, anything else true), and otherwise
// a stringify-then-parse path for the scalar kinds that have a textual
// form. Every container/resource kind (Table, TableStream, Struct, List,
// Dict, Scope, Command, Time, BinaryStream, Type, Empty, Any) rejects a
// cast: their shape carries no canonical string encoding to parse back.
func (v Value) Cast(target Kind) (Value, error) {
	if v.kind == target {
		return v, nil
	}

	if v.kind == KindInteger && target == KindBool {
		i, _ := v.AsInteger()
		return NewBool(i.Sign() != 0), nil
	}
	if v.kind == KindBool && target == KindInteger {
		b, _ := v.AsBool()
		if b {
			return NewIntegerFromInt64(1), nil
		}
		return NewIntegerFromInt64(0), nil
	}

	switch target {
	case KindString:
		return NewString(v.String()), nil
	case KindInteger:
		i, ok := new(big.Int).SetString(strings.TrimSpace(v.String()), 10)
		if !ok {
			return Value{}, fmt.Errorf("%w: cannot cast %q to integer", ErrInvalidData, v.String())
		}
		return NewInteger(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: cannot cast %q to float", ErrInvalidData, v.String())
		}
		return NewFloat(f), nil
	case KindBool:
		s := strings.TrimSpace(v.String())
		switch s {
		case "true":
			return NewBool(true), nil
		case "false":
			return NewBool(false), nil
		default:
			return Value{}, fmt.Errorf("%w: cannot cast %q to bool", ErrInvalidData, s)
		}
	case KindField:
		return NewField(strings.Split(strings.TrimPrefix(v.String(), "^"), ":")), nil
	case KindGlob:
		return NewGlob(v.String()), nil
	case KindRegex:
		p := v.String()
		re, err := regexp.Compile(p)
		if err != nil {
			return Value{}, fmt.Errorf("%w: cannot cast %q to regex: %v", ErrInvalidData, p, err)
		}
		return NewRegex(p, re), nil
	case KindFile:
		return NewFile(v.String()), nil
	case KindDuration:
		d, err := time.ParseDuration(v.String())
		if err != nil {
			return Value{}, fmt.Errorf("%w: cannot cast %q to duration", ErrInvalidData, v.String())
		}
		return NewDuration(d), nil
	case KindBinary:
		return NewBinary([]byte(v.String())), nil
	default:
		return Value{}, fmt.Errorf("%w: invalid cast from %s to %s", ErrInvalidData, v.kind, target)
	}
}
