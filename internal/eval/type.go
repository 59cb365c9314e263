package eval

import "strings"

// Type describes the shape of a Value: every Kind has a corresponding Type,
// and container kinds carry the type parameters needed to describe their
// elements.
type Type struct {
	Kind    Kind
	Elem    *Type       // List element type
	Key     *Type       // Dict key type
	Val     *Type       // Dict value type
	Columns []ColumnType // Table / TableStream schema
}

// ColumnType names one column of a Table/TableStream schema.
type ColumnType struct {
	Name string
	Type *Type
}

// MethodTable is a method-name to Command mapping, the "mapping of method
// name → command, used for member access and polymorphic dispatch" every
// ValueType carries (spec.md §4.A). It is what Type.Fields returns and what
// Value.Field (field.go) falls back to once a Value's own kind-specific
// field rule doesn't apply.
type MethodTable map[string]Command

// Get looks up name in the table.
func (m MethodTable) Get(name string) (Command, bool) {
	c, ok := m[name]
	return c, ok
}

// typeMethods is the per-Kind method table, populated once at startup by
// RegisterMethod — the Go equivalent of the original's per-ValueType method
// maps built up as each library registers its commands.
var typeMethods = map[Kind]MethodTable{}

// RegisterMethod adds name as a method every Value/Type of kind k exposes,
// consulted by Type.Fields and the uniform field-dispatch fallback in
// Value.Field. Bootstrap code calls this once per type method (e.g. list's
// "__call_type__" and "new") before any pipeline runs.
func RegisterMethod(k Kind, name string, cmd Command) {
	t, ok := typeMethods[k]
	if !ok {
		t = MethodTable{}
		typeMethods[k] = t
	}
	t[name] = cmd
}

// Fields returns t's method table, or nil if t is nil or has none
// registered (looking a name up in a nil table finds nothing).
func (t *Type) Fields() MethodTable {
	if t == nil {
		return nil
	}
	return typeMethods[t.Kind]
}

var (
	TString       = &Type{Kind: KindString}
	TInteger      = &Type{Kind: KindInteger}
	TFloat        = &Type{Kind: KindFloat}
	TBool         = &Type{Kind: KindBool}
	TTime         = &Type{Kind: KindTime}
	TDuration     = &Type{Kind: KindDuration}
	TEmpty        = &Type{Kind: KindEmpty}
	TField        = &Type{Kind: KindField}
	TGlob         = &Type{Kind: KindGlob}
	TRegex        = &Type{Kind: KindRegex}
	TFile         = &Type{Kind: KindFile}
	TBinary       = &Type{Kind: KindBinary}
	TBinaryStream = &Type{Kind: KindBinaryStream}
	TStruct       = &Type{Kind: KindStruct}
	TScope        = &Type{Kind: KindScope}
	TCommand      = &Type{Kind: KindCommand}
	TType         = &Type{Kind: KindType}
	// TAny is used where a precise type cannot be named, e.g. the type of
	// an empty, untyped list literal.
	TAny = &Type{Kind: -1}
)

func ListType(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

func DictType(key, val *Type) *Type { return &Type{Kind: KindDict, Key: key, Val: val} }

func TableType(cols []ColumnType) *Type {
	return &Type{Kind: KindTable, Columns: cols}
}

func TableStreamType(cols []ColumnType) *Type {
	return &Type{Kind: KindTableStream, Columns: cols}
}

// Is reports whether t and other describe the same shape, recursing into
// container type parameters. TAny matches anything, in either position,
// which lets a target parameter declared as `any` accept every Value.
func (t *Type) Is(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind == -1 || other.Kind == -1 {
		return true
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindList:
		return t.Elem.Is(other.Elem)
	case KindDict:
		return t.Key.Is(other.Key) && t.Val.Is(other.Val)
	case KindTable, KindTableStream:
		if len(t.Columns) != len(other.Columns) {
			return false
		}
		for i := range t.Columns {
			if t.Columns[i].Name != other.Columns[i].Name || !t.Columns[i].Type.Is(other.Columns[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case -1:
		return "any"
	case KindList:
		return "list of " + t.Elem.String()
	case KindDict:
		return "dict of " + t.Key.String() + " to " + t.Val.String()
	case KindTable, KindTableStream:
		names := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			names[i] = c.Name + ": " + c.Type.String()
		}
		prefix := "table"
		if t.Kind == KindTableStream {
			prefix = "table_stream"
		}
		return prefix + "<" + strings.Join(names, ", ") + ">"
	default:
		return t.Kind.String()
	}
}
