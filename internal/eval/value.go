// Package eval is the execution core: values, scopes, closures, the
// command-invocation resolver, and the pipeline executor. The types here are
// mutually recursive (a Value can hold a Scope, a Scope holds Values, a
// Command is invoked with a Scope) so, like a single-crate interpreter, they
// live in one package rather than being split across packages that Go's
// import graph cannot make cyclic.
package eval

import (
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// Kind tags the variant a Value holds. Every Value carries exactly one Kind
// and the payload that goes with it; Type() is total.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindTime
	KindDuration
	KindEmpty
	KindField
	KindGlob
	KindRegex
	KindFile
	KindBinary
	KindBinaryStream
	KindTable
	KindTableStream
	KindList
	KindDict
	KindStruct
	KindScope
	KindCommand
	KindType
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	case KindEmpty:
		return "empty"
	case KindField:
		return "field"
	case KindGlob:
		return "glob"
	case KindRegex:
		return "regex"
	case KindFile:
		return "file"
	case KindBinary:
		return "binary"
	case KindBinaryStream:
		return "binary_stream"
	case KindTable:
		return "table"
	case KindTableStream:
		return "table_stream"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindStruct:
		return "struct"
	case KindScope:
		return "scope"
	case KindCommand:
		return "command"
	case KindType:
		return "type"
	default:
		return "<unknown>"
	}
}

// regexPayload pairs the original pattern text with its compiled matcher, so
// equality/hashing/display can use the text while file_expand can use the
// matcher.
type regexPayload struct {
	pattern string
	re      *regexp.Regexp
}

// Value is a tagged sum of every runtime value the core ever passes between
// pipeline stages, scopes, or arguments.
type Value struct {
	kind    Kind
	payload any
}

// Type returns the ValueType describing v's shape. Total: every variant has
// a well-defined type, including parameterized containers.
func (v Value) Type() *Type {
	switch v.kind {
	case KindString:
		return TString
	case KindInteger:
		return TInteger
	case KindFloat:
		return TFloat
	case KindBool:
		return TBool
	case KindTime:
		return TTime
	case KindDuration:
		return TDuration
	case KindEmpty:
		return TEmpty
	case KindField:
		return TField
	case KindGlob:
		return TGlob
	case KindRegex:
		return TRegex
	case KindFile:
		return TFile
	case KindBinary:
		return TBinary
	case KindBinaryStream:
		return TBinaryStream
	case KindTable:
		return TableType(v.payload.(*TableData).Columns)
	case KindTableStream:
		return TableStreamType(v.payload.(RowReceiver).Columns())
	case KindList:
		return ListType(v.payload.(*ListData).Elem)
	case KindDict:
		d := v.payload.(*DictData)
		return DictType(d.Key, d.Val)
	case KindStruct:
		return TStruct
	case KindScope:
		return TScope
	case KindCommand:
		return TCommand
	case KindType:
		return TType
	default:
		return TAny
	}
}

func (v Value) Kind() Kind { return v.kind }

// ---- Constructors ----------------------------------------------------

func NewString(s string) Value { return Value{kind: KindString, payload: s} }

func NewInteger(i *big.Int) Value {
	if i == nil {
		i = big.NewInt(0)
	}
	return Value{kind: KindInteger, payload: i}
}

func NewIntegerFromInt64(i int64) Value { return NewInteger(big.NewInt(i)) }

func NewFloat(f float64) Value     { return Value{kind: KindFloat, payload: f} }
func NewBool(b bool) Value         { return Value{kind: KindBool, payload: b} }
func NewTime(t time.Time) Value    { return Value{kind: KindTime, payload: t} }
func NewDuration(d time.Duration) Value {
	return Value{kind: KindDuration, payload: d}
}
func NewEmpty() Value { return Value{kind: KindEmpty} }

func NewField(segments []string) Value {
	cp := append([]string(nil), segments...)
	return Value{kind: KindField, payload: cp}
}

func NewGlob(pattern string) Value { return Value{kind: KindGlob, payload: pattern} }

func NewRegex(pattern string, re *regexp.Regexp) Value {
	return Value{kind: KindRegex, payload: regexPayload{pattern: pattern, re: re}}
}

func NewFile(path string) Value { return Value{kind: KindFile, payload: path} }

func NewBinary(b []byte) Value {
	cp := append([]byte(nil), b...)
	return Value{kind: KindBinary, payload: cp}
}

func NewBinaryStream(r BinaryReader) Value { return Value{kind: KindBinaryStream, payload: r} }

func NewTable(t *TableData) Value { return Value{kind: KindTable, payload: t} }

func NewTableStream(r RowReceiver) Value { return Value{kind: KindTableStream, payload: r} }

func NewList(l *ListData) Value { return Value{kind: KindList, payload: l} }

func NewDict(d *DictData) Value { return Value{kind: KindDict, payload: d} }

func NewStruct(s *StructData) Value { return Value{kind: KindStruct, payload: s} }

func NewScope(s *Scope) Value { return Value{kind: KindScope, payload: s} }

func NewCommand(c Command) Value { return Value{kind: KindCommand, payload: c} }

func NewType(t *Type) Value { return Value{kind: KindType, payload: t} }

// ---- Payload accessors -------------------------------------------------

func (v Value) AsString() (string, bool) {
	s, ok := v.payload.(string)
	return s, ok && v.kind == KindString
}

func (v Value) AsInteger() (*big.Int, bool) {
	i, ok := v.payload.(*big.Int)
	return i, ok && v.kind == KindInteger
}

func (v Value) AsFloat() (float64, bool) {
	f, ok := v.payload.(float64)
	return f, ok && v.kind == KindFloat
}

func (v Value) AsBool() (bool, bool) {
	b, ok := v.payload.(bool)
	return b, ok && v.kind == KindBool
}

func (v Value) AsTime() (time.Time, bool) {
	t, ok := v.payload.(time.Time)
	return t, ok && v.kind == KindTime
}

func (v Value) AsDuration() (time.Duration, bool) {
	d, ok := v.payload.(time.Duration)
	return d, ok && v.kind == KindDuration
}

func (v Value) AsField() ([]string, bool) {
	f, ok := v.payload.([]string)
	return f, ok && v.kind == KindField
}

func (v Value) AsGlob() (string, bool) {
	s, ok := v.payload.(string)
	return s, ok && v.kind == KindGlob
}

func (v Value) AsRegex() (string, *regexp.Regexp, bool) {
	r, ok := v.payload.(regexPayload)
	if !ok || v.kind != KindRegex {
		return "", nil, false
	}
	return r.pattern, r.re, true
}

func (v Value) AsFile() (string, bool) {
	s, ok := v.payload.(string)
	return s, ok && v.kind == KindFile
}

func (v Value) AsBinary() ([]byte, bool) {
	b, ok := v.payload.([]byte)
	return b, ok && v.kind == KindBinary
}

func (v Value) AsBinaryStream() (BinaryReader, bool) {
	r, ok := v.payload.(BinaryReader)
	return r, ok && v.kind == KindBinaryStream
}

func (v Value) AsTable() (*TableData, bool) {
	t, ok := v.payload.(*TableData)
	return t, ok && v.kind == KindTable
}

func (v Value) AsTableStream() (RowReceiver, bool) {
	r, ok := v.payload.(RowReceiver)
	return r, ok && v.kind == KindTableStream
}

func (v Value) AsList() (*ListData, bool) {
	l, ok := v.payload.(*ListData)
	return l, ok && v.kind == KindList
}

func (v Value) AsDict() (*DictData, bool) {
	d, ok := v.payload.(*DictData)
	return d, ok && v.kind == KindDict
}

func (v Value) AsStruct() (*StructData, bool) {
	s, ok := v.payload.(*StructData)
	return s, ok && v.kind == KindStruct
}

func (v Value) AsScope() (*Scope, bool) {
	s, ok := v.payload.(*Scope)
	return s, ok && v.kind == KindScope
}

func (v Value) AsCommand() (Command, bool) {
	c, ok := v.payload.(Command)
	return c, ok && v.kind == KindCommand
}

func (v Value) AsType() (*Type, bool) {
	t, ok := v.payload.(*Type)
	return t, ok && v.kind == KindType
}

// String renders v's canonical string form, used both for display and as the
// intermediate form for string-based casts.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		s, _ := v.AsString()
		return s
	case KindInteger:
		i, _ := v.AsInteger()
		return i.String()
	case KindFloat:
		f, _ := v.AsFloat()
		return fmt.Sprintf("%v", f)
	case KindBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case KindTime:
		t, _ := v.AsTime()
		return t.Format("2006-01-02 15:04:05 -0700")
	case KindDuration:
		d, _ := v.AsDuration()
		return d.String()
	case KindEmpty:
		return "<empty>"
	case KindField:
		f, _ := v.AsField()
		s := "^"
		for i, seg := range f {
			if i > 0 {
				s += ":"
			}
			s += seg
		}
		return s
	case KindGlob:
		g, _ := v.AsGlob()
		return g
	case KindRegex:
		p, _, _ := v.AsRegex()
		return fmt.Sprintf("re%q", p)
	case KindFile:
		f, _ := v.AsFile()
		return f
	case KindBinary:
		b, _ := v.AsBinary()
		return fmt.Sprintf("<binary %d bytes>", len(b))
	case KindType:
		t, _ := v.AsType()
		return t.String()
	case KindList:
		return v.payload.(*ListData).String()
	case KindDict:
		return v.payload.(*DictData).String()
	case KindStruct:
		return v.payload.(*StructData).String()
	default:
		return fmt.Sprintf("<%s>", v.Type().String())
	}
}

// Clone returns a shallow copy appropriate to the variant's mutability
// contract. Hashable/immutable-shape variants copy their payload value;
// reference-shape containers (List, Dict, Struct, Table) share their
// underlying storage (the language's containers are reference types); a
// BinaryStream clone is a second handle onto the SAME reader, and cloning a
// TableStream is refused with ErrInvalidData, since a second handle would
// race the first for rows.
func (v Value) Clone() (Value, error) {
	switch v.kind {
	case KindTableStream:
		return Value{}, fmt.Errorf("%w: cloning a table stream produces a racing second consumer", ErrInvalidData)
	default:
		return v, nil
	}
}
