// Package builtin is the small native command library exercising the core
// end to end: value construction, list helpers, loop control flow, a
// streaming filter and sort, external process execution, and a gopsutil-backed
// process table. Like internal/printer and cmd/tshell, it imports
// internal/eval one-directionally — every built-in here is a thin eval.Command wrapping a plain Go
// function, the same shape the teacher's traversal/var built-ins use.
package builtin

import (
	"fmt"
	"io"

	"tshell/internal/eval"
)

// Val either re-emits its single argument, or, given none, passes its input
// value through unchanged. Grounded on lib/var/set.rs's minimal
// iterate-arguments builtin shape.
func Val() *eval.Native {
	return eval.NewNative("val", false, func(ctx *eval.ExecutionContext) error {
		if len(ctx.Arguments) > 0 {
			return ctx.Output.Send(ctx.Arguments[0].Value)
		}
		v, err := ctx.Input.Recv()
		if err != nil {
			return err
		}
		return ctx.Output.Send(v)
	}, "val value", "Emit a literal value, or pass input through unchanged", "")
}

// Echo prints each argument's display string to w, space-separated,
// followed by a newline, and emits Empty.
func Echo(w io.Writer) *eval.Native {
	return eval.NewNative("echo", false, func(ctx *eval.ExecutionContext) error {
		for i, a := range ctx.Arguments {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, a.Value.String())
		}
		fmt.Fprintln(w)
		return ctx.Output.Send(eval.NewEmpty())
	}, "echo value...", "Print every argument to standard output", "")
}

// ListOf builds a List out of every positional argument. The list's element
// type is that single type if every argument shares one, else Any —
// grounded on list.rs's of(), which collects the distinct set of argument
// types and only uses it directly when exactly one distinct type occurs.
func ListOf() *eval.Native {
	return eval.NewNative("list:of", false, func(ctx *eval.ExecutionContext) error {
		items := make([]eval.Value, len(ctx.Arguments))
		distinct := map[string]*eval.Type{}
		for i, a := range ctx.Arguments {
			items[i] = a.Value
			t := a.Value.Type()
			distinct[t.String()] = t
		}
		elem := eval.TAny
		if len(distinct) == 1 {
			for _, t := range distinct {
				elem = t
			}
		}
		return ctx.Output.Send(eval.NewList(eval.NewListData(elem, items)))
	}, "list:of value...", "Build a list from its arguments", "")
}

// ListLen reports the length of its single List argument.
func ListLen() *eval.Native {
	return eval.NewNative("list:len", false, func(ctx *eval.ExecutionContext) error {
		if len(ctx.Arguments) != 1 {
			return fmt.Errorf("%w: list:len takes exactly one argument", eval.ErrArgument)
		}
		l, ok := ctx.Arguments[0].Value.AsList()
		if !ok {
			return fmt.Errorf("%w: list:len requires a list argument", eval.ErrArgument)
		}
		return ctx.Output.Send(eval.NewIntegerFromInt64(int64(l.Len())))
	}, "list:len list", "Report the length of a list", "")
}
