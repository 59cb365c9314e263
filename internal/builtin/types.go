package builtin

import (
	"fmt"

	"tshell/internal/eval"
)

// ListCallType is list's "__call_type__" method: called when a bare list
// Type value is invoked with an argument, e.g. `list integer`. It reads the
// element type from its single positional argument and returns the
// parameterized List(elem) Type value. Grounded on spec.md §4.F's
// "list integer yields List(Integer)" example and list.rs's call_type,
// registered against eval.KindList via eval.RegisterMethod so the
// resolver's uniform Type dispatch (resolver.go's invokeValue) can find it.
func ListCallType() *eval.Native {
	return eval.NewNative("list:__call_type__", false, func(ctx *eval.ExecutionContext) error {
		if len(ctx.Arguments) != 1 {
			return fmt.Errorf("%w: list takes exactly one element-type argument", eval.ErrArgument)
		}
		elem, ok := ctx.Arguments[0].Value.AsType()
		if !ok {
			return fmt.Errorf("%w: list's argument must be a type", eval.ErrArgument)
		}
		return ctx.Output.Send(eval.NewType(eval.ListType(elem)))
	}, "list elem_type", "Construct a parameterized list type", "")
}

// ListNew is the "new" method on a parameterized list Type value, e.g.
// `(list integer):new`. It reads the concrete element type off ctx.This —
// the receiver the resolver's member-access dispatch (compileCommandSlot)
// threads through — and returns an empty List of that element type.
func ListNew() *eval.Native {
	return eval.NewNative("list:new", false, func(ctx *eval.ExecutionContext) error {
		if ctx.This == nil {
			return fmt.Errorf("%w: list:new must be called on a list type", eval.ErrGeneric)
		}
		t, ok := ctx.This.AsType()
		if !ok {
			return fmt.Errorf("%w: list:new must be called on a list type", eval.ErrGeneric)
		}
		return ctx.Output.Send(eval.NewList(eval.NewListData(t.Elem, nil)))
	}, "new", "Build an empty list of this type's element type", "")
}

// RegisterTypeMethods wires every type-level method this command library
// provides into eval's per-Kind method tables, the way the teacher's
// registration idiom declares one built-in at a time rather than relying
// on package init() side effects.
func RegisterTypeMethods() {
	eval.RegisterMethod(eval.KindList, "__call_type__", ListCallType())
	eval.RegisterMethod(eval.KindList, "new", ListNew())
}
